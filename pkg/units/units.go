// Package units maps project length units to their scale in metres.
package units

import (
	"slices"
	"strings"

	"github.com/matzehuels/placegraph/pkg/errors"
)

// LengthUnit is a project length unit.
type LengthUnit string

const (
	Metre      LengthUnit = "metre"
	Millimetre LengthUnit = "millimetre"
	Centimetre LengthUnit = "centimetre"
	Decimetre  LengthUnit = "decimetre"
	Kilometre  LengthUnit = "kilometre"
	Foot       LengthUnit = "foot"
	Inch       LengthUnit = "inch"
)

var scales = map[LengthUnit]float64{
	Metre:      1,
	Millimetre: 0.001,
	Centimetre: 0.01,
	Decimetre:  0.1,
	Kilometre:  1000,
	Foot:       0.3048,
	Inch:       0.0254,
}

var aliases = map[string]LengthUnit{
	"m":          Metre,
	"meter":      Metre,
	"mm":         Millimetre,
	"millimeter": Millimetre,
	"cm":         Centimetre,
	"centimeter": Centimetre,
	"dm":         Decimetre,
	"decimeter":  Decimetre,
	"km":         Kilometre,
	"kilometer":  Kilometre,
	"ft":         Foot,
	"feet":       Foot,
	"in":         Inch,
	"inches":     Inch,
}

// Scale returns the number of metres in one unit. Unknown units scale by 1.
func (u LengthUnit) Scale() float64 {
	if s, ok := scales[u]; ok {
		return s
	}
	return 1
}

// Valid reports whether u is a known unit.
func (u LengthUnit) Valid() bool {
	_, ok := scales[u]
	return ok
}

func (u LengthUnit) String() string { return string(u) }

// Parse resolves a unit name or abbreviation, case-insensitively.
func Parse(s string) (LengthUnit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u := LengthUnit(key); u.Valid() {
		return u, nil
	}
	if u, ok := aliases[key]; ok {
		return u, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown length unit %q", s)
}

// All returns the known units sorted by scale.
func All() []LengthUnit {
	out := make([]LengthUnit, 0, len(scales))
	for u := range scales {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b LengthUnit) int {
		switch {
		case scales[a] < scales[b]:
			return -1
		case scales[a] > scales[b]:
			return 1
		}
		return 0
	})
	return out
}
