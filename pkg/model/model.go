package model

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/placegraph/pkg/geom"
)

// ID identifies an object or placement within a document. Zero means "none".
type ID int64

// None is the absent identity.
const None ID = 0

// IsZero reports whether id is the absent identity.
func (id ID) IsZero() bool { return id == None }

func (id ID) String() string {
	if id == None {
		return "-"
	}
	return "#" + strconv.FormatInt(int64(id), 10)
}

// Object is a modeled entity that may carry a spatial placement.
type Object struct {
	ID        ID     // Document identity
	GlobalID  string // 22-character IFC GlobalId
	Class     Class  // Semantic class
	Name      string // Optional display name
	Placement ID     // Placement reference (None when unplaced)
}

// HasPlacement reports whether the object references a placement.
func (o Object) HasPlacement() bool { return !o.Placement.IsZero() }

func (o Object) String() string {
	if o.Name != "" {
		return fmt.Sprintf("%s%s(%s)", o.Class, o.ID, o.Name)
	}
	return fmt.Sprintf("%s%s", o.Class, o.ID)
}

// Placement locates an object as RelTo's world transform composed with Local.
type Placement struct {
	ID    ID             // Document identity
	Local geom.Transform // Local transform relative to RelTo
	RelTo ID             // Parent placement (None when absolute)
}

// IsAbsolute reports whether the placement has no relative-to parent.
func (p Placement) IsAbsolute() bool { return p.RelTo.IsZero() }

func (p Placement) String() string {
	return fmt.Sprintf("placement%s rel=%s", p.ID, p.RelTo)
}

// Relation is a directed semantic link between two objects. Relating is the
// candidate placement parent and Related is the child.
type Relation struct {
	Kind     RelationKind
	Relating ID
	Related  ID
}

func (r Relation) String() string {
	return fmt.Sprintf("%s %s -> %s", r.Kind, r.Relating, r.Related)
}
