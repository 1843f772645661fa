package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a 4×4 affine matrix stored row-major. The translation lives in the
// last column (elements 3, 7 and 11). Bone local transforms use this layout.
type Mat4 [mat4Size]float64

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// LocRotScale composes translation, rotation and scale into one matrix
// (scale applied first, then rotation, then translation).
func LocRotScale(loc r3.Vec, rot quat.Number, scale r3.Vec) Mat4 {
	r := quatToBasis(QuatNormalize(rot))
	s := [3]float64{scale.X, scale.Y, scale.Z}
	m := Mat4Identity()
	for row := range 3 {
		for col := range 3 {
			m[row*mat4Dim+col] = r[row][col] * s[col]
		}
	}
	m[3], m[7], m[11] = loc.X, loc.Y, loc.Z
	return m
}

// Translation returns the location part of the matrix.
func (m Mat4) Translation() r3.Vec {
	return r3.Vec{X: m[3], Y: m[7], Z: m[11]}
}

// Scale returns the length of each basis column. Scale is always reported
// positive; a mirrored matrix shows up in its rotation instead.
func (m Mat4) Scale() r3.Vec {
	return r3.Vec{
		X: r3.Norm(m.column(0)),
		Y: r3.Norm(m.column(1)),
		Z: r3.Norm(m.column(2)),
	}
}

// Rotation returns the unit quaternion of the matrix's rotation part, with
// scale removed.
func (m Mat4) Rotation() quat.Number {
	return basisToQuat(m.normalizedBasis())
}

// Euler returns the rotation as XYZ euler angles in radians.
func (m Mat4) Euler() r3.Vec {
	r := m.normalizedBasis()
	cy := math.Hypot(r[0][0], r[1][0])
	if cy > gimbalThreshold {
		return r3.Vec{
			X: math.Atan2(r[2][1], r[2][2]),
			Y: math.Atan2(-r[2][0], cy),
			Z: math.Atan2(r[1][0], r[0][0]),
		}
	}
	// Gimbal lock: Z is folded into X.
	return r3.Vec{
		X: math.Atan2(-r[1][2], r[1][1]),
		Y: math.Atan2(-r[2][0], cy),
		Z: 0,
	}
}

func (m Mat4) column(c int) r3.Vec {
	return r3.Vec{X: m[c], Y: m[mat4Dim+c], Z: m[2*mat4Dim+c]}
}

func (m Mat4) normalizedBasis() [3][3]float64 {
	var b [3][3]float64
	for c := range 3 {
		col := m.column(c)
		n := r3.Norm(col)
		if n < scaleEpsilon {
			b[c][c] = 1
			continue
		}
		col = r3.Scale(1/n, col)
		b[0][c], b[1][c], b[2][c] = col.X, col.Y, col.Z
	}
	return b
}

func quatToBasis(q quat.Number) [3][3]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return [3][3]float64{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}
}

// basisToQuat converts an orthonormal rotation basis using Shepperd's method.
func basisToQuat(r [3][3]float64) quat.Number {
	var q quat.Number
	tr := r[0][0] + r[1][1] + r[2][2]
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * quatShepperdTwo
		q = quat.Number{
			Real: quatShepperdQuarter * s,
			Imag: (r[2][1] - r[1][2]) / s,
			Jmag: (r[0][2] - r[2][0]) / s,
			Kmag: (r[1][0] - r[0][1]) / s,
		}
	case r[0][0] > r[1][1] && r[0][0] > r[2][2]:
		s := math.Sqrt(1+r[0][0]-r[1][1]-r[2][2]) * quatShepperdTwo
		q = quat.Number{
			Real: (r[2][1] - r[1][2]) / s,
			Imag: quatShepperdQuarter * s,
			Jmag: (r[0][1] + r[1][0]) / s,
			Kmag: (r[0][2] + r[2][0]) / s,
		}
	case r[1][1] > r[2][2]:
		s := math.Sqrt(1+r[1][1]-r[0][0]-r[2][2]) * quatShepperdTwo
		q = quat.Number{
			Real: (r[0][2] - r[2][0]) / s,
			Imag: (r[0][1] + r[1][0]) / s,
			Jmag: quatShepperdQuarter * s,
			Kmag: (r[1][2] + r[2][1]) / s,
		}
	default:
		s := math.Sqrt(1+r[2][2]-r[0][0]-r[1][1]) * quatShepperdTwo
		q = quat.Number{
			Real: (r[1][0] - r[0][1]) / s,
			Imag: (r[0][2] + r[2][0]) / s,
			Jmag: (r[1][2] + r[2][1]) / s,
			Kmag: quatShepperdQuarter * s,
		}
	}
	return canonical(QuatNormalize(q))
}
