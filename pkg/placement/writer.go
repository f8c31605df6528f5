package placement

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/observability"
)

// Role describes why an object was written during an edit.
type Role int

const (
	RoleEdited   Role = iota // the object named by the edit
	RoleAlways               // dependent that keeps its world transform
	RoleOptional             // dependent shifted with its parent
)

func (r Role) String() string {
	switch r {
	case RoleAlways:
		return "always"
	case RoleOptional:
		return "optional"
	}
	return "edited"
}

// Write records one placement write.
type Write struct {
	Object     model.ID
	Placement  model.Placement // resulting placement
	Previous   model.ID        // placement held before the write
	Reused     bool            // previous placement updated in place
	Reanchored []model.ID      // placements moved from Previous onto Placement
	Collected  []model.ID      // placements deleted after the write
	Role       Role
	Kind       model.RelationKind // relation to the parent for dependents
}

// Replaced reports whether the write changed the object's placement identity.
func (w Write) Replaced() bool { return w.Previous != w.Placement.ID }

func (w Write) String() string {
	action := "created"
	if w.Reused {
		action = "reused"
	}
	return fmt.Sprintf("%s %s %s (was %s)", w.Object, action, w.Placement.ID, w.Previous)
}

// Writer builds or rewrites the placement of a single object.
type Writer struct {
	store     Store
	resolver  *Resolver
	collector *Collector
	logger    *log.Logger
}

// NewWriter returns a writer that hands replaced placements to collector.
func NewWriter(store Store, collector *Collector, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	if collector == nil {
		collector = NewCollector(store, logger)
	}
	return &Writer{store: store, resolver: NewResolver(store), collector: collector, logger: logger}
}

// SetPlacement gives object the world transform world, expressed relative to
// the placement relTo (None for absolute). The matrix must already be in
// internal units.
//
// The existing placement is updated in place when the object is its only
// referrer and it is already relative to relTo. Otherwise a new placement is
// created. The placements relative to the old one that the object owns (see
// [Writer.OwnedDependents]) are re-anchored onto the new one with their local
// transforms unchanged, and the old placement is collected along with any
// ancestors left unreferenced.
//
// SetPlacement returns nil without touching the store when the object's
// class cannot hold a placement.
func (w *Writer) SetPlacement(ctx context.Context, object model.ID, world mgl64.Mat4, relTo model.ID) (*Write, error) {
	obj, ok := w.store.Object(object)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "object %s not found", object)
	}
	if !obj.Class.Placeable() {
		w.logger.Debug("object cannot hold a placement", "object", obj)
		return nil, nil
	}
	if !relTo.IsZero() {
		if _, ok := w.store.Placement(relTo); !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "relative-to placement %s not found", relTo)
		}
	}

	local := localFor(w.store, world, relTo)
	old := obj.Placement
	out := &Write{Object: object, Previous: old}

	if !old.IsZero() {
		prev, _ := w.store.Placement(old)
		refs := w.store.ReferencesTo(old)
		if len(refs) == 1 && refs[0] == object && prev.RelTo == relTo {
			if err := w.store.SetLocal(old, local); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "update placement %s", old)
			}
			out.Placement, _ = w.store.Placement(old)
			out.Reused = true
			w.logger.Debug("placement updated in place", "object", obj, "placement", old)
			observability.Graph().OnPlacementWritten(ctx, int64(object), int64(old), true)
			return out, nil
		}
	}

	owned := w.OwnedDependents(obj)
	p, err := w.store.CreatePlacement(local, relTo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create placement for %s", obj)
	}
	if err := w.store.SetObjectPlacement(object, p.ID); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "assign placement %s", p.ID)
	}
	out.Placement = p
	w.logger.Debug("placement created", "object", obj, "placement", p.ID, "rel", relTo, "previous", old)
	observability.Graph().OnPlacementWritten(ctx, int64(object), int64(p.ID), false)

	if old.IsZero() {
		return out, nil
	}
	for _, dep := range owned {
		if err := w.store.SetRelativeTo(dep, p.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "re-anchor placement %s", dep)
		}
		out.Reanchored = append(out.Reanchored, dep)
		w.logger.Debug("placement re-anchored", "placement", dep, "from", old, "to", p.ID)
		observability.Graph().OnPlacementReanchored(ctx, int64(dep), int64(old), int64(p.ID))
	}
	out.Collected = w.collector.CollectChain(ctx, old)
	return out, nil
}

// OwnedDependents returns the placements relative to obj's current placement that
// follow obj when it moves onto a new one. A placement follows obj when every
// object holding it resolves its parent to obj. A placement whose holders
// have no resolved parent follows obj only when no other object holds obj's
// placement. Placements that belong to another holder's subtree stay put.
func (w *Writer) OwnedDependents(obj model.Object) []model.ID {
	if obj.Placement.IsZero() {
		return nil
	}
	shared := false
	for _, h := range w.store.HoldersOf(obj.Placement) {
		if h != obj.ID {
			shared = true
			break
		}
	}

	var out []model.ID
	for _, dep := range w.store.DependentsOf(obj.Placement) {
		owned, unowned := true, true
		holders := w.store.HoldersOf(dep)
		for _, h := range holders {
			ho, _ := w.store.Object(h)
			parent := w.resolver.ResolveParent(ho)
			if parent.Object != obj.ID {
				owned = false
			}
			if parent.Found() {
				unowned = false
			}
		}
		if (len(holders) > 0 && owned) || (unowned && !shared) {
			out = append(out, dep)
		}
	}
	return out
}
