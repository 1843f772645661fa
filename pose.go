package interpolator

import (
	"slices"

	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PoseData is the recorded local transform of one input in one pose.
type PoseData struct {
	inputHandle string

	// Matrix is the recorded bone local transform.
	Matrix Mat4
}

// InputHandle returns the handle of the input this data belongs to.
func (d *PoseData) InputHandle() string { return d.inputHandle }

// Location returns the recorded translation.
func (d *PoseData) Location() r3.Vec { return d.Matrix.Translation() }

// Rotation returns the recorded rotation as a unit quaternion.
func (d *PoseData) Rotation() quat.Number { return d.Matrix.Rotation() }

// Euler returns the recorded rotation as XYZ euler angles.
func (d *PoseData) Euler() r3.Vec { return d.Matrix.Euler() }

// AxisAngle returns the recorded rotation as an axis and an angle.
func (d *PoseData) AxisAngle() (axis r3.Vec, angle float64) {
	return mathutil.QuatToAxisAngle(d.Rotation())
}

// Scale returns the recorded scale.
func (d *PoseData) Scale() r3.Vec { return d.Matrix.Scale() }

// SetLocation replaces the translation.
func (d *PoseData) SetLocation(v r3.Vec) {
	d.Matrix = mathutil.LocRotScale(v, d.Rotation(), d.Scale())
}

// SetRotation replaces the rotation.
func (d *PoseData) SetRotation(q quat.Number) {
	d.Matrix = mathutil.LocRotScale(d.Location(), q, d.Scale())
}

// SetEuler replaces the rotation with XYZ euler angles.
func (d *PoseData) SetEuler(e r3.Vec) {
	d.SetRotation(mathutil.QuatFromEuler(e))
}

// SetAxisAngle replaces the rotation with an axis-angle rotation.
func (d *PoseData) SetAxisAngle(axis r3.Vec, angle float64) {
	d.SetRotation(mathutil.QuatFromAxisAngle(axis, angle))
}

// SetScale replaces the scale.
func (d *PoseData) SetScale(v r3.Vec) {
	d.Matrix = mathutil.LocRotScale(d.Location(), d.Rotation(), v)
}

// Pose is a named reference configuration. Its name is also the name of the
// shape key it drives.
type Pose struct {
	name string
	data []*PoseData

	// RangeMin is the weight outside the pose's radius.
	RangeMin float64
	// RangeMax is the weight when the live pose matches exactly.
	RangeMax float64
	// Clamp restricts the weight to [RangeMin, RangeMax].
	Clamp bool
	// UseInterpolation makes Settings override the interpolator default.
	UseInterpolation bool
	// Settings is the pose's own curve, used when UseInterpolation is set.
	// Like the interpolator default it must not be modified during Bind.
	Settings InterpolationSettings
}

func newPose(name string) *Pose {
	return &Pose{
		name:     name,
		RangeMin: defaultRangeMin,
		RangeMax: defaultRangeMax,
		Clamp:    true,
	}
}

// Name returns the pose (and shape key) name.
func (p *Pose) Name() string { return p.name }

// IsValid reports whether the pose's shape key resolves.
func (p *Pose) IsValid(keys ShapeKeys) bool { return keys.HasShapeKey(p.name) }

// Data returns the pose's recorded transforms in input order.
func (p *Pose) Data() []*PoseData { return slices.Clone(p.data) }

// DataFor returns the recorded transform of the input with the given handle.
func (p *Pose) DataFor(handle string) (*PoseData, bool) {
	i := p.dataIndex(handle)
	if i < 0 {
		return nil, false
	}
	return p.data[i], true
}

func (p *Pose) dataIndex(handle string) int {
	return slices.IndexFunc(p.data, func(d *PoseData) bool { return d.inputHandle == handle })
}

func (p *Pose) effectiveSettings(def *InterpolationSettings) *InterpolationSettings {
	if p.UseInterpolation {
		return &p.Settings
	}
	return def
}
