package document

import (
	"cmp"
	"slices"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
)

// Relate links related to relating with a relation of the given kind.
// An object can be the related side of only one relation per kind.
func (d *Document) Relate(kind model.RelationKind, relating, related model.ID) error {
	if !kind.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "unknown relation kind %d", kind)
	}
	if relating == related {
		return errors.New(errors.ErrCodeCycle, "%s cannot relate %s to itself", kind, relating)
	}
	if _, ok := d.objects[relating]; !ok {
		return errors.New(errors.ErrCodeNotFound, "relating object %s not found", relating)
	}
	child, ok := d.objects[related]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "related object %s not found", related)
	}
	if !kind.AllowedRelated(child.Class) {
		return errors.New(errors.ErrCodeInvalidInput, "%s cannot be the related side of %s", child.Class, kind)
	}
	if existing, ok := d.relating[relKey{kind, related}]; ok {
		return errors.New(errors.ErrCodeDuplicateRelation, "%s already %s %s", d.objects[existing], kind, child)
	}
	d.relating[relKey{kind, related}] = relating
	addRef(d.related, relKey{kind, relating}, related)
	return nil
}

// Unrelate removes the relation of the given kind in which related is the
// child. It returns NOT_FOUND if there is none.
func (d *Document) Unrelate(kind model.RelationKind, related model.ID) error {
	relating, ok := d.relating[relKey{kind, related}]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "%s has no %s relation", related, kind)
	}
	d.unrelate(model.Relation{Kind: kind, Relating: relating, Related: related})
	return nil
}

func (d *Document) unrelate(r model.Relation) {
	delete(d.relating, relKey{r.Kind, r.Related})
	dropRef(d.related, relKey{r.Kind, r.Relating}, r.Related)
}

// Relating returns the object on the relating side of related's relation of
// the given kind.
func (d *Document) Relating(related model.ID, kind model.RelationKind) (model.ID, bool) {
	id, ok := d.relating[relKey{kind, related}]
	return id, ok
}

// Related returns the objects related to relating through relations of the
// given kind, ordered by identity.
func (d *Document) Related(relating model.ID, kind model.RelationKind) []model.ID {
	return d.related[relKey{kind, relating}].sorted()
}

// Relations returns every relation ordered by kind, relating and related.
func (d *Document) Relations() []model.Relation {
	out := make([]model.Relation, 0, len(d.relating))
	for key, relating := range d.relating {
		out = append(out, model.Relation{Kind: key.kind, Relating: relating, Related: key.id})
	}
	slices.SortFunc(out, func(a, b model.Relation) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Relating, b.Relating),
			cmp.Compare(a.Related, b.Related),
		)
	})
	return out
}
