package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quaternion component order used throughout this package is (w, x, y, z),
// stored in a gonum quat.Number as (Real, Imag, Jmag, Kmag).

// QuatIdentity returns the identity rotation.
func QuatIdentity() quat.Number {
	return quat.Number{Real: 1}
}

// QuatFromAxisAngle builds a unit quaternion rotating angle radians about axis.
// A zero axis yields the identity.
func QuatFromAxisAngle(axis r3.Vec, angle float64) quat.Number {
	n := r3.Norm(axis)
	if n < scaleEpsilon {
		return QuatIdentity()
	}
	axis = r3.Scale(1/n, axis)
	s, c := math.Sincos(angle / halfAngleDivisor)
	return quat.Number{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// QuatFromEuler converts XYZ euler angles (radians) to a quaternion.
// The rotation applies X first, then Y, then Z.
func QuatFromEuler(e r3.Vec) quat.Number {
	qx := QuatFromAxisAngle(r3.Vec{X: 1}, e.X)
	qy := QuatFromAxisAngle(r3.Vec{Y: 1}, e.Y)
	qz := QuatFromAxisAngle(r3.Vec{Z: 1}, e.Z)
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// QuatNormalize returns q scaled to unit length. A zero quaternion yields the identity.
func QuatNormalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n < scaleEpsilon {
		return QuatIdentity()
	}
	return quat.Scale(1/n, q)
}

// QuatSlerp interpolates between unit quaternions a and b along the shorter
// arc. t is not clamped.
func QuatSlerp(a, b quat.Number, t float64) quat.Number {
	a, b = QuatNormalize(a), QuatNormalize(b)
	dot := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	if dot < 0 {
		b = quat.Scale(-1, b)
		dot = -dot
	}

	// Nearly parallel: fall back to a normalized lerp.
	if dot > slerpLinearThreshold {
		return QuatNormalize(quat.Add(a, quat.Scale(t, quat.Sub(b, a))))
	}

	theta0 := math.Acos(dot)
	sin0 := math.Sin(theta0)
	s0 := math.Sin((1-t)*theta0) / sin0
	s1 := math.Sin(t*theta0) / sin0
	return quat.Add(quat.Scale(s0, a), quat.Scale(s1, b))
}

// QuatToAxisAngle returns the rotation axis and angle of q.
// The identity rotation reports the Y axis with a zero angle.
func QuatToAxisAngle(q quat.Number) (axis r3.Vec, angle float64) {
	q = canonical(QuatNormalize(q))
	s := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if s < scaleEpsilon {
		return r3.Vec{Y: 1}, 0
	}
	angle = halfAngleDivisor * math.Atan2(s, q.Real)
	return r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}, angle
}

// SwingAimAxis returns where the given local axis points after rotating by q,
// which is the matching column of q's rotation matrix.
//
//	X: (1-2(y²+z²), 2(xy+wz), 2(xz-wy))
//	Y: (2(xy-wz), 1-2(x²+z²), 2(yz+wx))
//	Z: (2(xz+wy), 2(yz-wx), 1-2(x²+y²))
func SwingAimAxis(q quat.Number, axis Axis) r3.Vec {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	switch axis {
	case AxisX:
		return r3.Vec{X: 1 - 2*(y*y+z*z), Y: 2 * (x*y + w*z), Z: 2 * (x*z - w*y)}
	case AxisY:
		return r3.Vec{X: 2 * (x*y - w*z), Y: 1 - 2*(x*x+z*z), Z: 2 * (y*z + w*x)}
	default:
		return r3.Vec{X: 2 * (x*z + w*y), Y: 2 * (y*z - w*x), Z: 1 - 2*(x*x+y*y)}
	}
}

// SwingTwist decomposes q into a swing rotation perpendicular to axis and a
// twist angle about axis, so that q = swing * twist(axis, angle).
//
// The quaternion is made canonical (w >= 0) first, which keeps the twist
// angle in (-π, π].
func SwingTwist(q quat.Number, axis Axis) (swing quat.Number, twist float64) {
	q = canonical(QuatNormalize(q))
	half := math.Atan2(component(q, axis), q.Real)
	twist = halfAngleDivisor * half

	s, c := math.Sincos(half)
	tq := quat.Number{Real: c}
	setComponent(&tq, axis, s)
	swing = quat.Mul(q, quat.Conj(tq))
	return swing, twist
}

// TwistAngle returns the twist sample for q about axis: 2*sin(θ/2) where θ is
// the twist angle of the swing-twist decomposition.
//
// The sample is continuous and odd around zero and has no branch cut inside
// the canonical range, unlike the raw angle.
func TwistAngle(q quat.Number, axis Axis) float64 {
	q = canonical(QuatNormalize(q))
	a := component(q, axis)
	h := math.Hypot(a, q.Real)
	if h < scaleEpsilon {
		// Pure swing by π: twist is undefined, report none.
		return 0
	}
	return twistSampleScale * a / h
}

// canonical flips q into the hemisphere with a non-negative real part.
func canonical(q quat.Number) quat.Number {
	if q.Real < 0 {
		return quat.Scale(-1, q)
	}
	return q
}

func component(q quat.Number, axis Axis) float64 {
	switch axis {
	case AxisX:
		return q.Imag
	case AxisY:
		return q.Jmag
	default:
		return q.Kmag
	}
}

func setComponent(q *quat.Number, axis Axis, v float64) {
	switch axis {
	case AxisX:
		q.Imag = v
	case AxisY:
		q.Jmag = v
	default:
		q.Kmag = v
	}
}
