package placement

import (
	"cmp"
	"slices"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
)

// Parent is the resolved placement parent of an object.
type Parent struct {
	Object model.ID           // relating object
	Kind   model.RelationKind // relation that supplied it
}

// Found reports whether a parent was resolved.
func (p Parent) Found() bool { return !p.Object.IsZero() }

// Dependent is an object whose resolved parent is some other object.
type Dependent struct {
	Object model.ID
	Kind   model.RelationKind
	Always bool // keeps its world transform regardless of propagation
}

// Resolver determines which relation supplies an object's placement parent.
// It is side-effect free.
type Resolver struct {
	store Reader
}

// NewResolver returns a resolver over the given store.
func NewResolver(store Reader) *Resolver {
	return &Resolver{store: store}
}

// ResolveParent returns the parent of obj according to [model.PriorityOrder].
// Relation kinds that do not apply to obj's class are skipped. The zero
// Parent is returned when no relation applies.
func (r *Resolver) ResolveParent(obj model.Object) Parent {
	for _, kind := range model.PriorityOrder {
		if !kind.Applies(obj.Class) {
			continue
		}
		if parent, ok := r.store.Relating(obj.ID, kind); ok {
			return Parent{Object: parent, Kind: kind}
		}
	}
	return Parent{}
}

// Ancestors returns the chain of resolved parents of obj, nearest first.
// It fails with CYCLE if the chain returns to an object already visited.
func (r *Resolver) Ancestors(obj model.ID) ([]model.ID, error) {
	visited := map[model.ID]bool{obj: true}
	var out []model.ID
	cur := obj
	for {
		o, ok := r.store.Object(cur)
		if !ok {
			return out, nil
		}
		p := r.ResolveParent(o)
		if !p.Found() {
			return out, nil
		}
		if visited[p.Object] {
			return nil, errors.New(errors.ErrCodeCycle, "%s is its own placement ancestor via %s", p.Object, p.Kind)
		}
		visited[p.Object] = true
		out = append(out, p.Object)
		cur = p.Object
	}
}

// Dependents returns the objects whose resolved parent is obj, ordered by
// identity.
func (r *Resolver) Dependents(obj model.ID) []Dependent {
	parent, ok := r.store.Object(obj)
	if !ok {
		return nil
	}
	var out []Dependent
	for _, kind := range model.PriorityOrder {
		for _, id := range r.store.Related(obj, kind) {
			child, ok := r.store.Object(id)
			if !ok {
				continue
			}
			if p := r.ResolveParent(child); p.Object != obj || p.Kind != kind {
				continue
			}
			out = append(out, Dependent{
				Object: id,
				Kind:   kind,
				Always: alwaysPropagates(kind, parent.Class, child.Class),
			})
		}
	}
	slices.SortFunc(out, func(a, b Dependent) int { return cmp.Compare(a.Object, b.Object) })
	return out
}

// alwaysPropagates reports whether a dependent keeps its world transform
// whenever its parent moves.
func alwaysPropagates(kind model.RelationKind, parent, child model.Class) bool {
	switch kind {
	case model.RelNesting:
		return child.IsPort() && parent.IsFlowElement()
	case model.RelVoids, model.RelFills, model.RelProjects:
		return true
	}
	return false
}
