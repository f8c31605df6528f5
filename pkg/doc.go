// Package pkg provides the core libraries for placegraph.
//
// # Overview
//
// Placegraph maintains the placement graph of a building model. Every object
// (wall, storey, window, port) may hold a placement, and a placement is a
// local transform relative to another placement. Editing an object means
// choosing a parent for it, deciding whether its placement can be updated in
// place or must be replaced, re-expressing its dependents, and deleting any
// placement that is no longer referenced.
//
// # Architecture
//
// An edit flows through the [placement] package:
//
//	edit request (matrix, is_si, relative_to, propagate)
//	         ↓
//	    [geom] Adapter (validate, convert units)
//	         ↓
//	    [placement] Resolver (parent by relation priority)
//	         ↓
//	    [placement] Controller (plan writes for the object and its dependents)
//	         ↓
//	    [placement] Writer (reuse or create placements, re-anchor)
//	         ↓
//	    [placement] Collector (delete unreferenced placements)
//
// The graph itself lives in a [document.Document], an in-memory store of
// objects, placements and relations.
//
// # Quick Start
//
//	doc := document.New(units.Millimetre)
//	storey, _ := doc.CreateObject(model.ClassBuildingStorey, "Level 1")
//	wall, _ := doc.CreateObject(model.ClassWall, "W1")
//	_ = doc.Relate(model.RelContainment, storey.ID, wall.ID)
//
//	eng := placement.New(doc, placement.Options{})
//	res, err := eng.EditPlacement(ctx, placement.NewRequest(wall.ID, mgl64.Translate3D(1000, 0, 0)))
//
// # Main Packages
//
// [model] - Object, Placement and Relation types and the class capability
// table that decides which classes can hold a placement.
//
// [geom] - Rigid transforms on mgl64 matrices: validation, unit conversion,
// decomposition into origin and axes.
//
// [document] - The in-memory document store with reference queries and an
// integrity check.
//
// [placement] - The edit engine.
//
// [render] - DOT, SVG and JSON views of the placement graph.
//
// [guid] - IFC GlobalId generation and conversion.
//
// [config] - TOML and environment configuration.
//
// [observability] - Hooks for edit, graph and render events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/placement/...  # Specific package
//	go test -run Example       # Examples only
package pkg
