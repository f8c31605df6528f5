package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/placegraph/pkg/errors"
)

// DefaultTolerance bounds orthonormality and bottom-row deviations.
const DefaultTolerance = 1e-6

// Adapter converts matrices between project units and internal units.
type Adapter struct {
	Scale     float64 // metres per project unit; 0 means 1
	Tolerance float64 // 0 means DefaultTolerance
}

// NewAdapter returns an adapter for the given unit scale and tolerance.
func NewAdapter(scale, tolerance float64) Adapter {
	return Adapter{Scale: scale, Tolerance: tolerance}
}

func (a Adapter) scale() float64 {
	if a.Scale == 0 {
		return 1
	}
	return a.Scale
}

func (a Adapter) tolerance() float64 {
	if a.Tolerance <= 0 {
		return DefaultTolerance
	}
	return a.Tolerance
}

// Normalize validates m and converts it to internal units. When isSI is
// false the matrix is returned unchanged.
func (a Adapter) Normalize(m mgl64.Mat4, isSI bool) (mgl64.Mat4, error) {
	if err := Validate(m, a.tolerance()); err != nil {
		return mgl64.Mat4{}, err
	}
	if !isSI {
		return m, nil
	}
	return scaleTranslation(m, a.scale()), nil
}

// Denormalize converts an internal matrix back to caller units.
func (a Adapter) Denormalize(m mgl64.Mat4, isSI bool) mgl64.Mat4 {
	if !isSI {
		return m
	}
	return scaleTranslation(m, 1/a.scale())
}

func scaleTranslation(m mgl64.Mat4, f float64) mgl64.Mat4 {
	out := m
	out.Set(0, 3, m.At(0, 3)*f)
	out.Set(1, 3, m.At(1, 3)*f)
	out.Set(2, 3, m.At(2, 3)*f)
	return out
}

// Validate reports an INVALID_TRANSFORM error unless m is a rigid transform
// within tol.
func Validate(m mgl64.Mat4, tol float64) error {
	for i, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidTransform, "element %d is not finite", i)
		}
	}
	row := m.Row(3)
	if math.Abs(row[0]) > tol || math.Abs(row[1]) > tol || math.Abs(row[2]) > tol || math.Abs(row[3]-1) > tol {
		return errors.New(errors.ErrCodeInvalidTransform, "bottom row is %v, want [0 0 0 1]", row)
	}
	cols := [3]mgl64.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}
	for i, c := range cols {
		if math.Abs(c.Len()-1) > tol {
			return errors.New(errors.ErrCodeInvalidTransform, "axis %d has length %g, want 1", i, c.Len())
		}
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if d := cols[i].Dot(cols[j]); math.Abs(d) > tol {
				return errors.New(errors.ErrCodeInvalidTransform, "axes %d and %d are not orthogonal (dot %g)", i, j, d)
			}
		}
	}
	if det := m.Mat3().Det(); math.Abs(det-1) > tol {
		return errors.New(errors.ErrCodeInvalidTransform, "rotation determinant is %g, want 1", det)
	}
	return nil
}
