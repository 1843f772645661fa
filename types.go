package interpolator

import (
	"github.com/tphakala/go-pose-interpolator/internal/channel"
	"github.com/tphakala/go-pose-interpolator/internal/curve"
	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat4 is a row-major 4×4 bone local transform. Translation lives in
// elements 3, 7 and 11.
type Mat4 = mathutil.Mat4

// Axis selects one of the three principal axes.
type Axis = mathutil.Axis

// Axis values.
const (
	AxisX = mathutil.AxisX
	AxisY = mathutil.AxisY
	AxisZ = mathutil.AxisZ
)

// RotationMode selects how an input's rotation is split into channels.
type RotationMode = channel.RotationMode

// Rotation modes.
const (
	RotationSwingTwist = channel.ModeSwingTwist
	RotationAngle      = channel.ModeAngle
	RotationSwing      = channel.ModeSwing
	RotationTwist      = channel.ModeTwist
)

// CurvePoint is a control point of a falloff curve.
type CurvePoint = curve.Point

// HandleType selects the tangent rule of a curve point.
type HandleType = curve.HandleType

// Curve handle types.
const (
	HandleAuto        = curve.HandleAuto
	HandleAutoClamped = curve.HandleAutoClamped
	HandleVector      = curve.HandleVector
)

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Mat4 { return mathutil.Mat4Identity() }

// ComposeMatrix builds a local transform from location, rotation and scale.
func ComposeMatrix(loc r3.Vec, rot quat.Number, scale r3.Vec) Mat4 {
	return mathutil.LocRotScale(loc, rot, scale)
}

// EulerRotation returns the quaternion of XYZ euler angles in radians.
func EulerRotation(x, y, z float64) quat.Number {
	return mathutil.QuatFromEuler(r3.Vec{X: x, Y: y, Z: z})
}

// AxisAngleRotation returns the quaternion rotating by angle radians about axis.
func AxisAngleRotation(axis r3.Vec, angle float64) quat.Number {
	return mathutil.QuatFromAxisAngle(axis, angle)
}

// ParseAxis parses "X", "Y" or "Z".
func ParseAxis(s string) (Axis, error) { return mathutil.ParseAxis(s) }

// ParseRotationMode parses ANGLE, SWING, TWIST or SWING_TWIST.
func ParseRotationMode(s string) (RotationMode, error) { return channel.ParseRotationMode(s) }

// ParseHandleType parses AUTO, AUTO_CLAMPED or VECTOR.
func ParseHandleType(s string) (HandleType, error) { return curve.ParseHandleType(s) }
