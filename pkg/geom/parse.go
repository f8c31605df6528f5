package geom

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
)

// ParseVec3 parses "x,y,z".
func ParseVec3(s string) (mgl64.Vec3, error) {
	vals, err := parseFloats(s, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{vals[0], vals[1], vals[2]}, nil
}

// ParseMatrix parses 16 comma or whitespace separated values in row-major
// order, or 12 values for the top three rows.
func ParseMatrix(s string) (mgl64.Mat4, error) {
	fields := splitFields(s)
	if len(fields) == 12 {
		fields = append(fields, "0", "0", "0", "1")
	}
	vals, err := parseFloats(strings.Join(fields, ","), 16)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	var m mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, vals[r*4+c])
		}
	}
	return m, nil
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := splitFields(s)
	if len(fields) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "value %d", i)
		}
		out[i] = v
	}
	return out, nil
}
