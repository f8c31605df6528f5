// Package geom converts 4x4 homogeneous transforms between project units and
// the internal length unit, validates them, and decomposes them into the
// origin-plus-axes form stored on placements.
//
// Matrices are [mgl64.Mat4] values (column-major). A valid placement matrix
// is a rigid transform: bottom row [0 0 0 1], an orthonormal rotation block
// with determinant +1, and an arbitrary translation.
//
// # Decomposition
//
// [Decompose] extracts the origin from the last column and the first two
// basis columns as the primary (X) and secondary (Y) axes. [Compose] is the
// exact inverse: the third axis is rebuilt as primary × secondary.
//
//	m := mgl64.Translate3D(1, 2, 3)
//	t := geom.Decompose(m)
//	geom.Compose(t) == m // true
//
// # Units
//
// An [Adapter] carries the project length scale in metres per unit. With
// isSI set, [Adapter.Normalize] scales the translation by that factor and
// [Adapter.Denormalize] divides it back out; rotation columns are never
// scaled.
package geom
