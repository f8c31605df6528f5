package placement

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
)

// Target selects the relative-to parent of an edited object.
type Target struct {
	// RelativeTo overrides relation resolution with an explicit parent
	// object. None means resolve automatically.
	RelativeTo model.ID
	// Propagate shifts optional dependents by the parent's delta.
	Propagate bool
}

// step is one planned placement write.
type step struct {
	object model.ID
	world  mgl64.Mat4
	role   Role
	kind   model.RelationKind

	// parent is the object whose placement, at execution time, becomes the
	// relative-to parent. When parent is None, relTo is used as planned.
	parent model.ID
	relTo  model.ID
}

// Result reports every write performed by an edit.
type Result struct {
	Placement model.Placement // resulting placement of the edited object
	Writes    []Write         // in execution order, edited object first
}

// Collected returns every placement deleted during the edit.
func (r *Result) Collected() []model.ID {
	var out []model.ID
	for _, w := range r.Writes {
		out = append(out, w.Collected...)
	}
	return out
}

// Controller plans and applies an edit together with the writes it implies
// for dependent objects.
type Controller struct {
	store    Store
	resolver *Resolver
	writer   *Writer
	logger   *log.Logger
}

// NewController wires a controller from its parts.
func NewController(store Store, resolver *Resolver, writer *Writer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{store: store, resolver: resolver, writer: writer, logger: logger}
}

// Apply gives object the world transform world (internal units) and
// re-expresses its dependents. Every check runs before the first write, so a
// returned error leaves the store untouched. Apply returns a nil Result when
// the object's class cannot hold a placement.
func (c *Controller) Apply(ctx context.Context, object model.ID, world mgl64.Mat4, t Target) (*Result, error) {
	obj, ok := c.store.Object(object)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "object %s not found", object)
	}
	if !obj.Class.Placeable() {
		c.logger.Debug("object cannot hold a placement", "object", obj)
		return nil, nil
	}

	steps, err := c.plan(obj, world, t)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("edit planned", "object", obj, "writes", len(steps), "propagate", t.Propagate)

	res := &Result{}
	for _, s := range steps {
		relTo := s.relTo
		if !s.parent.IsZero() {
			p, _ := c.store.Object(s.parent)
			relTo = p.Placement
		}
		w, err := c.writer.SetPlacement(ctx, s.object, s.world, relTo)
		if err != nil {
			return res, err
		}
		if w == nil {
			continue
		}
		w.Role = s.role
		w.Kind = s.kind
		res.Writes = append(res.Writes, *w)
	}
	if len(res.Writes) > 0 {
		res.Placement = res.Writes[0].Placement
	}
	return res, nil
}

// plan resolves the parent of obj, checks for cycles and walks the
// dependents depth-first, ancestor before descendant.
func (c *Controller) plan(obj model.Object, world mgl64.Mat4, t Target) ([]step, error) {
	top := step{object: obj.ID, world: world, role: RoleEdited}

	switch {
	case !t.RelativeTo.IsZero():
		if err := c.checkOverride(obj.ID, t.RelativeTo); err != nil {
			return nil, err
		}
		top.parent = t.RelativeTo
	default:
		if _, err := c.resolver.Ancestors(obj.ID); err != nil {
			return nil, err
		}
		if p := c.resolver.ResolveParent(obj); p.Found() {
			top.parent = p.Object
			top.kind = p.Kind
		} else if cur, ok := c.store.Placement(obj.Placement); ok {
			top.relTo = cur.RelTo
		}
	}

	relTo := top.relTo
	if !top.parent.IsZero() {
		p, _ := c.store.Object(top.parent)
		relTo = p.Placement
	}
	if err := c.checkReanchor(obj, chain(c.store, relTo)); err != nil {
		return nil, err
	}

	steps := []step{top}
	visited := map[model.ID]bool{obj.ID: true}
	oldWorld := ObjectWorld(c.store, obj.ID)
	if err := c.planDependents(obj, oldWorld, world, t.Propagate, chain(c.store, relTo), visited, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// planDependents appends the writes for the dependents of parent, whose world
// transform changes from oldWorld to newWorld. parentChain approximates the
// relative-to chain the parent's placement will have after its own write.
func (c *Controller) planDependents(parent model.Object, oldWorld, newWorld mgl64.Mat4, propagate bool, parentChain map[model.ID]bool, visited map[model.ID]bool, steps *[]step) error {
	depChain := make(map[model.ID]bool, len(parentChain)+1)
	for id := range parentChain {
		depChain[id] = true
	}
	if !parent.Placement.IsZero() {
		depChain[parent.Placement] = true
	}

	delta := newWorld.Mul4(oldWorld.Inv())
	for _, d := range c.resolver.Dependents(parent.ID) {
		if visited[d.Object] {
			return errors.New(errors.ErrCodeCycle, "%s is reached twice while propagating from %s", d.Object, parent.ID)
		}
		visited[d.Object] = true

		dep, _ := c.store.Object(d.Object)
		if !dep.HasPlacement() || !dep.Class.Placeable() {
			continue
		}
		if !d.Always && !propagate {
			continue
		}
		if err := c.checkReanchor(dep, depChain); err != nil {
			return err
		}

		depOld := World(c.store, dep.Placement)
		s := step{object: dep.ID, parent: parent.ID, kind: d.Kind}
		if d.Always {
			s.role = RoleAlways
			s.world = depOld
			*steps = append(*steps, s)
			continue
		}

		s.role = RoleOptional
		s.world = delta.Mul4(depOld)
		*steps = append(*steps, s)
		if err := c.planDependents(dep, depOld, s.world, propagate, depChain, visited, steps); err != nil {
			return err
		}
	}
	return nil
}

// checkOverride rejects an explicit parent that is missing, is the object
// itself, or descends from it.
func (c *Controller) checkOverride(object, parent model.ID) error {
	if parent == object {
		return errors.New(errors.ErrCodeCycle, "%s cannot be placed relative to itself", object)
	}
	if _, ok := c.store.Object(parent); !ok {
		return errors.New(errors.ErrCodeNotFound, "relative-to object %s not found", parent)
	}
	ancestors, err := c.resolver.Ancestors(parent)
	if err != nil {
		return err
	}
	for _, a := range ancestors {
		if a == object {
			return errors.New(errors.ErrCodeCycle, "%s is a placement ancestor of %s", object, parent)
		}
	}
	return nil
}

// checkReanchor rejects a write whose re-anchoring would make a placement
// relative to itself: one of the placements that follow obj lies on the new
// parent's chain.
func (c *Controller) checkReanchor(obj model.Object, parentChain map[model.ID]bool) error {
	for _, dep := range c.writer.OwnedDependents(obj) {
		if parentChain[dep] {
			return errors.New(errors.ErrCodeCycle, "placement %s of a dependent of %s would become its own ancestor", dep, obj)
		}
	}
	return nil
}
