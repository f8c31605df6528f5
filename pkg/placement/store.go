package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
)

// Reader is the read side of the document store.
type Reader interface {
	Object(id model.ID) (model.Object, bool)
	Placement(id model.ID) (model.Placement, bool)
	ReferencesTo(id model.ID) []model.ID
	HoldersOf(placement model.ID) []model.ID
	DependentsOf(placement model.ID) []model.ID
	Relating(related model.ID, kind model.RelationKind) (model.ID, bool)
	Related(relating model.ID, kind model.RelationKind) []model.ID
	LengthScale() float64
}

// Store is the document store the engine mutates.
type Store interface {
	Reader
	CreatePlacement(local geom.Transform, relTo model.ID) (model.Placement, error)
	SetObjectPlacement(object, placement model.ID) error
	SetLocal(placement model.ID, local geom.Transform) error
	SetRelativeTo(placement, relTo model.ID) error
	Delete(id model.ID) error
}

// World returns the world transform of a placement by composing its
// relative-to chain. The absent placement is the identity.
func World(r Reader, id model.ID) mgl64.Mat4 {
	var chain []geom.Transform
	seen := make(map[model.ID]bool)
	for cur := id; !cur.IsZero() && !seen[cur]; {
		seen[cur] = true
		p, ok := r.Placement(cur)
		if !ok {
			break
		}
		chain = append(chain, p.Local)
		cur = p.RelTo
	}
	m := mgl64.Ident4()
	for i := len(chain) - 1; i >= 0; i-- {
		m = m.Mul4(geom.Compose(chain[i]))
	}
	return m
}

// ObjectWorld returns the world transform of an object's placement, or the
// identity when the object has none.
func ObjectWorld(r Reader, object model.ID) mgl64.Mat4 {
	o, ok := r.Object(object)
	if !ok {
		return mgl64.Ident4()
	}
	return World(r, o.Placement)
}

// chain returns the set of placements on the relative-to chain starting at id.
func chain(r Reader, id model.ID) map[model.ID]bool {
	out := make(map[model.ID]bool)
	for cur := id; !cur.IsZero() && !out[cur]; {
		out[cur] = true
		p, ok := r.Placement(cur)
		if !ok {
			break
		}
		cur = p.RelTo
	}
	return out
}

// localFor expresses world relative to the placement relTo.
func localFor(r Reader, world mgl64.Mat4, relTo model.ID) geom.Transform {
	if relTo.IsZero() {
		return geom.Decompose(world)
	}
	return geom.Decompose(World(r, relTo).Inv().Mul4(world))
}
