package model

// RelationKind identifies a semantic relation that can supply a placement parent.
type RelationKind int

// Relation kinds in resolution priority order.
const (
	RelContainment RelationKind = iota + 1 // spatial structure contains element
	RelAggregation                         // whole aggregates part
	RelNesting                             // host nests component or port
	RelVoids                               // host element is voided by opening
	RelFills                               // opening is filled by filling
	RelProjects                            // host element projects feature
)

// PriorityOrder is the fixed order in which relations are consulted when
// resolving a placement parent.
var PriorityOrder = []RelationKind{
	RelContainment,
	RelAggregation,
	RelNesting,
	RelVoids,
	RelFills,
	RelProjects,
}

var relationNames = map[RelationKind]string{
	RelContainment: "contained_in",
	RelAggregation: "aggregates",
	RelNesting:     "nests",
	RelVoids:       "voids",
	RelFills:       "fills",
	RelProjects:    "projects",
}

func (k RelationKind) String() string {
	if s, ok := relationNames[k]; ok {
		return s
	}
	return "none"
}

// Valid reports whether k is a known relation kind.
func (k RelationKind) Valid() bool {
	_, ok := relationNames[k]
	return ok
}

// Applies reports whether the relation kind can supply a placement parent for
// objects of class c. Containment, aggregation and nesting apply to every
// placeable class; voids, fills and projects only to openings, fillings and
// projection features respectively.
func (k RelationKind) Applies(c Class) bool {
	if !c.Placeable() {
		return false
	}
	switch k {
	case RelContainment, RelAggregation, RelNesting:
		return true
	case RelVoids:
		return c.IsOpening()
	case RelFills:
		return c.IsFilling()
	case RelProjects:
		return c.IsProjection()
	}
	return false
}

// AllowedRelated reports whether an object of class related may take part as
// the child of a relation of kind k.
func (k RelationKind) AllowedRelated(related Class) bool {
	switch k {
	case RelVoids:
		return related.IsOpening()
	case RelFills:
		return related.IsFilling()
	case RelProjects:
		return related.IsProjection()
	case RelContainment:
		return !related.IsSpatial() && related.Known() && related != ClassProject
	}
	return related.Known()
}
