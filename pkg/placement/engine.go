package placement

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/observability"
)

// Options configures an Engine.
type Options struct {
	// Tolerance bounds the orthonormality check on input matrices.
	// Zero means geom.DefaultTolerance.
	Tolerance float64

	// Logger receives debug output for every write, re-anchor and
	// collection decision. Nil means log.Default().
	Logger *log.Logger
}

// Request is a single placement edit.
//
// A literal Request has IsSI false, which treats Matrix as already in internal
// units. Callers that want the default unit handling must build requests with
// NewRequest.
type Request struct {
	Object model.ID
	Matrix mgl64.Mat4

	// IsSI scales the matrix translation by the project length unit.
	IsSI bool

	// RelativeTo overrides relation resolution. None means automatic.
	RelativeTo model.ID

	// Propagate shifts contained, aggregated and nested dependents along
	// with the object.
	Propagate bool
}

// NewRequest returns a request for object with IsSI set.
func NewRequest(object model.ID, matrix mgl64.Mat4) Request {
	return Request{Object: object, Matrix: matrix, IsSI: true}
}

// Engine exposes the edit_placement operation over a store.
type Engine struct {
	store      Store
	adapter    geom.Adapter
	resolver   *Resolver
	collector  *Collector
	writer     *Writer
	controller *Controller
	logger     *log.Logger
}

// New wires an engine over store.
func New(store Store, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	resolver := NewResolver(store)
	collector := NewCollector(store, logger)
	writer := NewWriter(store, collector, logger)
	return &Engine{
		store:      store,
		adapter:    geom.NewAdapter(store.LengthScale(), opts.Tolerance),
		resolver:   resolver,
		collector:  collector,
		writer:     writer,
		controller: NewController(store, resolver, writer, logger),
		logger:     logger,
	}
}

// Resolver returns the engine's relation resolver.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Adapter returns the engine's matrix and unit adapter.
func (e *Engine) Adapter() geom.Adapter { return e.adapter }

// EditPlacement sets the world transform of req.Object.
//
// It returns a nil Result and no error when the object's class cannot hold a
// placement. INVALID_TRANSFORM, CYCLE and NOT_FOUND errors are returned
// before anything is written.
func (e *Engine) EditPlacement(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()
	observability.Edit().OnEditStart(ctx, int64(req.Object))
	defer func() {
		writes := 0
		if res != nil {
			writes = len(res.Writes)
		}
		observability.Edit().OnEditComplete(ctx, int64(req.Object), writes, time.Since(start), err)
	}()

	obj, ok := e.store.Object(req.Object)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "object %s not found", req.Object)
	}
	if !obj.Class.Placeable() {
		e.logger.Debug("skipping edit: class cannot hold a placement", "object", obj)
		return nil, nil
	}

	m, err := e.adapter.Normalize(req.Matrix, req.IsSI)
	if err != nil {
		return nil, err
	}

	res, err = e.controller.Apply(ctx, obj.ID, m, Target{RelativeTo: req.RelativeTo, Propagate: req.Propagate})
	if err != nil {
		return nil, err
	}
	if res != nil {
		e.logger.Debug("placement edited",
			"object", obj,
			"placement", res.Placement.ID,
			"writes", len(res.Writes),
			"collected", len(res.Collected()),
		)
	}
	return res, nil
}

// WorldOf returns the world transform of object, converted back to caller
// units when isSI is set.
func (e *Engine) WorldOf(object model.ID, isSI bool) mgl64.Mat4 {
	return e.adapter.Denormalize(ObjectWorld(e.store, object), isSI)
}
