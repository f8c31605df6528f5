// Package placement implements the placement-graph engine: it sets the
// absolute transform of an object by rewriting the placement chain that
// locates it, while keeping shared placements intact and never leaving
// unreferenced placements behind.
//
// # Components
//
// The engine is assembled from five parts, each usable on its own:
//
//   - [Resolver] picks the object whose placement becomes the relative-to
//     parent, using the fixed priority list [model.PriorityOrder].
//   - [geom.Adapter] validates the input matrix and converts its units.
//   - [Writer] builds or rewrites the placement of one object. It reuses
//     the existing placement in place only when the object owns it
//     exclusively and the parent is unchanged; otherwise it creates a new
//     placement, re-anchors placements that were relative to the old one
//     and hands the old one to the [Collector].
//   - [Controller] plans every write of an edit, including writes to
//     dependent objects, and executes the plan ancestor before descendant.
//   - [Collector] deletes placements that are no longer referenced.
//
// # Propagation
//
// A dependent of X is an object whose resolved parent is X. Ports nested in
// a flow element, fillings of an opening, openings of a host and projection
// features always keep their world transform when X moves. Contained,
// aggregated and other nested objects are shifted by X's delta only when the
// edit asks for propagation; otherwise their local transform is left alone
// and they follow X implicitly.
//
// # Errors
//
// All fatal errors (INVALID_TRANSFORM, CYCLE, NOT_FOUND) are raised while
// planning, before the first write. An object whose class cannot hold a
// placement makes [Engine.EditPlacement] return a nil result without error.
//
// # Usage
//
//	doc := document.New(units.Millimetre)
//	wall, _ := doc.CreateObject(model.ClassWall, "W1")
//
//	eng := placement.New(doc, placement.Options{})
//	res, err := eng.EditPlacement(ctx, placement.NewRequest(wall.ID, mgl64.Translate3D(1000, 0, 0)))
//
// The engine is synchronous and does no locking; callers must not mutate the
// store concurrently with an edit.
package placement
