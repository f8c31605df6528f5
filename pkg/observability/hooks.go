// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about placement edits, placement graph mutations, and
// rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the engine never imports
// a concrete backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditHooks(&myEditHooks{})
//	    observability.SetGraphHooks(&myGraphHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Edit().OnEditStart(ctx, objectID)
//	// ... plan and apply ...
//	observability.Edit().OnEditComplete(ctx, objectID, writes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Edit Hooks
// =============================================================================

// EditHooks receives events for top-level placement edits.
type EditHooks interface {
	// OnEditStart records the start of an edit of the given object.
	OnEditStart(ctx context.Context, object int64)

	// OnEditComplete records the end of an edit with the number of
	// placement writes it performed.
	OnEditComplete(ctx context.Context, object int64, writes int, duration time.Duration, err error)
}

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from placement graph mutations.
type GraphHooks interface {
	// OnPlacementWritten records a placement write. Reused is true when the
	// existing placement was updated in place.
	OnPlacementWritten(ctx context.Context, object, placement int64, reused bool)

	// OnPlacementReanchored records a placement moved onto a new relative-to parent.
	OnPlacementReanchored(ctx context.Context, placement, from, to int64)

	// OnOrphanCollected records the deletion of an unreferenced placement.
	OnOrphanCollected(ctx context.Context, placement int64)

	// OnCollectSkipped records a placement kept because it is still referenced.
	OnCollectSkipped(ctx context.Context, placement int64, references int)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from graph rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditHooks is a no-op implementation of EditHooks.
type NoopEditHooks struct{}

func (NoopEditHooks) OnEditStart(context.Context, int64)                               {}
func (NoopEditHooks) OnEditComplete(context.Context, int64, int, time.Duration, error) {}

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnPlacementWritten(context.Context, int64, int64, bool)     {}
func (NoopGraphHooks) OnPlacementReanchored(context.Context, int64, int64, int64) {}
func (NoopGraphHooks) OnOrphanCollected(context.Context, int64)                   {}
func (NoopGraphHooks) OnCollectSkipped(context.Context, int64, int)               {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editHooks   EditHooks   = NoopEditHooks{}
	graphHooks  GraphHooks  = NoopGraphHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetEditHooks registers custom edit hooks.
// This should be called once at application startup before any edits.
func SetEditHooks(h EditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editHooks = h
	}
}

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any edits.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Edit returns the registered edit hooks.
func Edit() EditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editHooks
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editHooks = NoopEditHooks{}
	graphHooks = NoopGraphHooks{}
	renderHooks = NoopRenderHooks{}
}
