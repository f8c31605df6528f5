// Package model defines the entities of a placement graph: objects, the
// placements that locate them, and the semantic relations that decide which
// object's placement another object is expressed against.
//
// # Entities
//
// An [Object] carries at most one placement reference. A [Placement] holds a
// local transform and an optional relative-to link to a parent placement; a
// placement without a parent is absolute. A [Relation] links a relating object
// (the structure, whole, host or opening) to a related object (the child).
//
// # Classes
//
// The [Class] of an object determines which relations it may take part in and
// whether it can hold a placement at all. Capabilities are looked up through
// the fixed class table, see [Class.Placeable], [Class.IsOpening],
// [Class.IsFilling], [Class.IsProjection], [Class.IsPort] and
// [Class.IsFlowElement].
//
// Identities are plain integers assigned by the document store. The zero
// [ID] never names an entity and is used as the "none" value for optional
// references.
package model
