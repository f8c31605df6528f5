package document

import (
	"maps"
	"slices"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/guid"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/units"
)

type idSet map[model.ID]struct{}

func (s idSet) sorted() []model.ID {
	return slices.Sorted(maps.Keys(s))
}

type relKey struct {
	kind model.RelationKind
	id   model.ID
}

// Document is an in-memory store of objects, placements and relations.
type Document struct {
	unit   units.LengthUnit
	nextID model.ID

	objects    map[model.ID]model.Object
	placements map[model.ID]model.Placement

	holders   map[model.ID]idSet // placement -> objects holding it
	dependent map[model.ID]idSet // placement -> placements relative to it

	relating map[relKey]model.ID // (kind, related) -> relating
	related  map[relKey]idSet    // (kind, relating) -> related
}

// New creates an empty document in the given length unit. An empty or
// unknown unit defaults to metres.
func New(unit units.LengthUnit) *Document {
	if !unit.Valid() {
		unit = units.Metre
	}
	return &Document{
		unit:       unit,
		objects:    make(map[model.ID]model.Object),
		placements: make(map[model.ID]model.Placement),
		holders:    make(map[model.ID]idSet),
		dependent:  make(map[model.ID]idSet),
		relating:   make(map[relKey]model.ID),
		related:    make(map[relKey]idSet),
	}
}

// Unit returns the project length unit.
func (d *Document) Unit() units.LengthUnit { return d.unit }

// LengthScale returns metres per project unit.
func (d *Document) LengthScale() float64 { return d.unit.Scale() }

func (d *Document) allocate() model.ID {
	d.nextID++
	return d.nextID
}

// CreateObject adds an object of the given class with a fresh GlobalId.
func (d *Document) CreateObject(class model.Class, name string) (model.Object, error) {
	if !class.Known() {
		return model.Object{}, errors.New(errors.ErrCodeInvalidInput, "unknown class %q", class)
	}
	if err := errors.ValidateName(name); err != nil {
		return model.Object{}, err
	}
	o := model.Object{
		ID:       d.allocate(),
		GlobalID: guid.New(),
		Class:    class,
		Name:     name,
	}
	d.objects[o.ID] = o
	return o, nil
}

// CreatePlacement adds a placement with the given local transform, relative
// to relTo (None for absolute).
func (d *Document) CreatePlacement(local geom.Transform, relTo model.ID) (model.Placement, error) {
	if !relTo.IsZero() {
		if _, ok := d.placements[relTo]; !ok {
			return model.Placement{}, errors.New(errors.ErrCodeNotFound, "relative-to placement %s not found", relTo)
		}
	}
	p := model.Placement{ID: d.allocate(), Local: local, RelTo: relTo}
	d.placements[p.ID] = p
	if !relTo.IsZero() {
		addRef(d.dependent, relTo, p.ID)
	}
	return p, nil
}

// Object returns the object with the given identity.
func (d *Document) Object(id model.ID) (model.Object, bool) {
	o, ok := d.objects[id]
	return o, ok
}

// Placement returns the placement with the given identity.
func (d *Document) Placement(id model.ID) (model.Placement, bool) {
	p, ok := d.placements[id]
	return p, ok
}

// ObjectByName returns the first object, by identity, with the given name.
func (d *Document) ObjectByName(name string) (model.Object, bool) {
	for _, o := range d.Objects() {
		if o.Name == name {
			return o, true
		}
	}
	return model.Object{}, false
}

// Objects returns all objects ordered by identity.
func (d *Document) Objects() []model.Object {
	out := make([]model.Object, 0, len(d.objects))
	for _, id := range slices.Sorted(maps.Keys(d.objects)) {
		out = append(out, d.objects[id])
	}
	return out
}

// Placements returns all placements ordered by identity.
func (d *Document) Placements() []model.Placement {
	out := make([]model.Placement, 0, len(d.placements))
	for _, id := range slices.Sorted(maps.Keys(d.placements)) {
		out = append(out, d.placements[id])
	}
	return out
}

// ObjectCount returns the number of objects.
func (d *Document) ObjectCount() int { return len(d.objects) }

// PlacementCount returns the number of placements.
func (d *Document) PlacementCount() int { return len(d.placements) }

// SetObjectPlacement points obj at placement p, or clears it when p is None.
func (d *Document) SetObjectPlacement(obj, p model.ID) error {
	o, ok := d.objects[obj]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "object %s not found", obj)
	}
	if !o.Class.Placeable() {
		return errors.New(errors.ErrCodeUnsupportedObject, "%s cannot hold a placement", o.Class)
	}
	if !p.IsZero() {
		if _, ok := d.placements[p]; !ok {
			return errors.New(errors.ErrCodeNotFound, "placement %s not found", p)
		}
	}
	if !o.Placement.IsZero() {
		dropRef(d.holders, o.Placement, obj)
	}
	o.Placement = p
	d.objects[obj] = o
	if !p.IsZero() {
		addRef(d.holders, p, obj)
	}
	return nil
}

// SetLocal replaces the local transform of placement p.
func (d *Document) SetLocal(p model.ID, local geom.Transform) error {
	pl, ok := d.placements[p]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "placement %s not found", p)
	}
	pl.Local = local
	d.placements[p] = pl
	return nil
}

// SetRelativeTo re-anchors placement p onto relTo without changing its local
// transform. It fails with CYCLE if relTo is p or one of its dependents.
func (d *Document) SetRelativeTo(p, relTo model.ID) error {
	pl, ok := d.placements[p]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "placement %s not found", p)
	}
	if !relTo.IsZero() {
		if _, ok := d.placements[relTo]; !ok {
			return errors.New(errors.ErrCodeNotFound, "relative-to placement %s not found", relTo)
		}
		for cur := relTo; !cur.IsZero(); cur = d.placements[cur].RelTo {
			if cur == p {
				return errors.New(errors.ErrCodeCycle, "placement %s would be relative to itself via %s", p, relTo)
			}
		}
	}
	if !pl.RelTo.IsZero() {
		dropRef(d.dependent, pl.RelTo, p)
	}
	pl.RelTo = relTo
	d.placements[p] = pl
	if !relTo.IsZero() {
		addRef(d.dependent, relTo, p)
	}
	return nil
}

// HoldersOf returns the objects whose placement is p.
func (d *Document) HoldersOf(p model.ID) []model.ID {
	return d.holders[p].sorted()
}

// DependentsOf returns the placements that are relative to p.
func (d *Document) DependentsOf(p model.ID) []model.ID {
	return d.dependent[p].sorted()
}

// ReferencesTo returns the identities of all entities that reference id.
// For a placement these are its holders and the placements relative to it.
// For an object these are the objects on the other side of its relations.
func (d *Document) ReferencesTo(id model.ID) []model.ID {
	refs := make(idSet)
	if _, ok := d.placements[id]; ok {
		for h := range d.holders[id] {
			refs[h] = struct{}{}
		}
		for p := range d.dependent[id] {
			refs[p] = struct{}{}
		}
		return refs.sorted()
	}
	if _, ok := d.objects[id]; ok {
		for key, relating := range d.relating {
			if key.id == id {
				refs[relating] = struct{}{}
			}
		}
		for key, set := range d.related {
			if key.id == id {
				for r := range set {
					refs[r] = struct{}{}
				}
			}
		}
	}
	return refs.sorted()
}

// Delete removes an object or placement. Placements that are still
// referenced are not removed and an IN_USE error is returned. Deleting an
// object removes its relations and releases its placement, which is then
// deleted along with each relative-to ancestor the release leaves
// unreferenced.
func (d *Document) Delete(id model.ID) error {
	if pl, ok := d.placements[id]; ok {
		if refs := d.ReferencesTo(id); len(refs) > 0 {
			return errors.New(errors.ErrCodeInUse, "placement %s is referenced by %v", id, refs)
		}
		if !pl.RelTo.IsZero() {
			dropRef(d.dependent, pl.RelTo, id)
		}
		delete(d.placements, id)
		delete(d.holders, id)
		delete(d.dependent, id)
		return nil
	}
	o, ok := d.objects[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "entity %s not found", id)
	}
	if !o.Placement.IsZero() {
		dropRef(d.holders, o.Placement, id)
	}
	for _, r := range d.Relations() {
		if r.Related == id || r.Relating == id {
			d.unrelate(r)
		}
	}
	delete(d.objects, id)
	d.release(o.Placement)
	return nil
}

// release deletes the placement id and then its relative-to ancestors, up to
// the first one that is still referenced.
func (d *Document) release(id model.ID) {
	for !id.IsZero() {
		pl, ok := d.placements[id]
		if !ok || d.Delete(id) != nil {
			return
		}
		id = pl.RelTo
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		unit:       d.unit,
		nextID:     d.nextID,
		objects:    maps.Clone(d.objects),
		placements: maps.Clone(d.placements),
		holders:    cloneIndex(d.holders),
		dependent:  cloneIndex(d.dependent),
		relating:   maps.Clone(d.relating),
		related:    make(map[relKey]idSet, len(d.related)),
	}
	for k, v := range d.related {
		c.related[k] = maps.Clone(v)
	}
	return c
}

func cloneIndex(idx map[model.ID]idSet) map[model.ID]idSet {
	out := make(map[model.ID]idSet, len(idx))
	for k, v := range idx {
		out[k] = maps.Clone(v)
	}
	return out
}

func addRef[K comparable](idx map[K]idSet, key K, id model.ID) {
	s, ok := idx[key]
	if !ok {
		s = make(idSet)
		idx[key] = s
	}
	s[id] = struct{}{}
}

func dropRef[K comparable](idx map[K]idSet, key K, id model.ID) {
	s, ok := idx[key]
	if !ok {
		return
	}
	delete(s, id)
	if len(s) == 0 {
		delete(idx, key)
	}
}
