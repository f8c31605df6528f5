package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// AxisX is the default primary axis.
	AxisX = mgl64.Vec3{1, 0, 0}
	// AxisY is the default secondary axis.
	AxisY = mgl64.Vec3{0, 1, 0}
)

// Transform is a rigid local transform: an origin plus the primary and
// secondary direction axes. The third axis is implied.
type Transform struct {
	Origin    mgl64.Vec3
	Primary   mgl64.Vec3
	Secondary mgl64.Vec3
}

// Identity returns the transform at the origin with default axes.
func Identity() Transform {
	return Transform{Primary: AxisX, Secondary: AxisY}
}

// At returns an unrotated transform at the given origin.
func At(x, y, z float64) Transform {
	return Transform{Origin: mgl64.Vec3{x, y, z}, Primary: AxisX, Secondary: AxisY}
}

// Third returns the implied third axis.
func (t Transform) Third() mgl64.Vec3 {
	return t.primary().Cross(t.secondary())
}

// Matrix is shorthand for Compose(t).
func (t Transform) Matrix() mgl64.Mat4 { return Compose(t) }

// ApproxEqual reports whether both transforms agree within eps.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return nearVec3(t.Origin, o.Origin, eps) &&
		nearVec3(t.primary(), o.primary(), eps) &&
		nearVec3(t.secondary(), o.secondary(), eps)
}

func (t Transform) String() string {
	return fmt.Sprintf("origin=%s x=%s y=%s", FormatVec3(t.Origin), FormatVec3(t.primary()), FormatVec3(t.secondary()))
}

// Unset axes fall back to the defaults, matching optional placement axes.
func (t Transform) primary() mgl64.Vec3 {
	if t.Primary == (mgl64.Vec3{}) {
		return AxisX
	}
	return t.Primary
}

func (t Transform) secondary() mgl64.Vec3 {
	if t.Secondary == (mgl64.Vec3{}) {
		return AxisY
	}
	return t.Secondary
}

// Decompose splits a rigid matrix into origin and the first two basis columns.
// The matrix is assumed valid; see [Validate].
func Decompose(m mgl64.Mat4) Transform {
	return Transform{
		Origin:    m.Col(3).Vec3(),
		Primary:   m.Col(0).Vec3(),
		Secondary: m.Col(1).Vec3(),
	}
}

// Compose rebuilds the right-handed 4x4 matrix of t.
func Compose(t Transform) mgl64.Mat4 {
	x, y := t.primary(), t.secondary()
	return mgl64.Mat4FromCols(
		x.Vec4(0),
		y.Vec4(0),
		x.Cross(y).Vec4(0),
		t.Origin.Vec4(1),
	)
}

// Origin returns the translation of m.
func Origin(m mgl64.Mat4) mgl64.Vec3 { return m.Col(3).Vec3() }

// FormatVec3 renders a vector with trailing zeros trimmed.
func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", clean(v[0]), clean(v[1]), clean(v[2]))
}

// clean folds negative zero and rounding noise below 1e-12 to 0.
func clean(f float64) float64 {
	if f > -1e-12 && f < 1e-12 {
		return 0
	}
	return f
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func ApproxEqual(a, b mgl64.Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func nearVec3(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}
