package model

import (
	"slices"
	"strings"
)

// Class is the semantic class of an object.
type Class string

const (
	ClassProject           Class = "IfcProject"
	ClassSite              Class = "IfcSite"
	ClassBuilding          Class = "IfcBuilding"
	ClassBuildingStorey    Class = "IfcBuildingStorey"
	ClassSpace             Class = "IfcSpace"
	ClassWall              Class = "IfcWall"
	ClassSlab              Class = "IfcSlab"
	ClassBeam              Class = "IfcBeam"
	ClassColumn            Class = "IfcColumn"
	ClassDoor              Class = "IfcDoor"
	ClassWindow            Class = "IfcWindow"
	ClassElementAssembly   Class = "IfcElementAssembly"
	ClassOpeningElement    Class = "IfcOpeningElement"
	ClassProjectionElement Class = "IfcProjectionElement"
	ClassFlowSegment       Class = "IfcFlowSegment"
	ClassFlowFitting       Class = "IfcFlowFitting"
	ClassDistributionPort  Class = "IfcDistributionPort"
)

type capability uint8

const (
	capPlaceable capability = 1 << iota
	capSpatial
	capOpening
	capFilling
	capProjection
	capFlowElement
	capPort
)

var classTable = map[Class]capability{
	ClassProject:           0,
	ClassSite:              capPlaceable | capSpatial,
	ClassBuilding:          capPlaceable | capSpatial,
	ClassBuildingStorey:    capPlaceable | capSpatial,
	ClassSpace:             capPlaceable | capSpatial,
	ClassWall:              capPlaceable,
	ClassSlab:              capPlaceable,
	ClassBeam:              capPlaceable,
	ClassColumn:            capPlaceable,
	ClassDoor:              capPlaceable | capFilling,
	ClassWindow:            capPlaceable | capFilling,
	ClassElementAssembly:   capPlaceable,
	ClassOpeningElement:    capPlaceable | capOpening,
	ClassProjectionElement: capPlaceable | capProjection,
	ClassFlowSegment:       capPlaceable | capFlowElement,
	ClassFlowFitting:       capPlaceable | capFlowElement,
	ClassDistributionPort:  capPlaceable | capPort,
}

func (c Class) has(flag capability) bool { return classTable[c]&flag != 0 }

// Known reports whether the class is in the class table.
func (c Class) Known() bool {
	_, ok := classTable[c]
	return ok
}

// Placeable reports whether objects of this class can hold a placement.
func (c Class) Placeable() bool { return c.has(capPlaceable) }

// IsSpatial reports whether the class is a spatial structure element.
func (c Class) IsSpatial() bool { return c.has(capSpatial) }

// IsOpening reports whether the class voids a host element.
func (c Class) IsOpening() bool { return c.has(capOpening) }

// IsFilling reports whether the class can fill an opening.
func (c Class) IsFilling() bool { return c.has(capFilling) }

// IsProjection reports whether the class projects from a host element.
func (c Class) IsProjection() bool { return c.has(capProjection) }

// IsFlowElement reports whether the class carries a distribution flow.
func (c Class) IsFlowElement() bool { return c.has(capFlowElement) }

// IsPort reports whether the class is a distribution port.
func (c Class) IsPort() bool { return c.has(capPort) }

// Classes returns every known class in sorted order.
func Classes() []Class {
	out := make([]Class, 0, len(classTable))
	for c := range classTable {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ParseClass resolves a class name case-insensitively, with or without the
// "Ifc" prefix.
func ParseClass(s string) (Class, bool) {
	name := strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(name), "ifc") {
		name = "Ifc" + name
	}
	for c := range classTable {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}
