package interpolator

import (
	"github.com/tphakala/go-pose-interpolator/internal/channel"
)

// Input binds a set of transform channels to one bone.
//
// Channel flags may be edited at any time; a bound interpolator keeps using
// the configuration captured at bind time until it is bound again.
type Input struct {
	handle string

	// Armature names the armature object that owns Bone.
	Armature string
	// Bone names the input bone.
	Bone string

	UseLocation  [3]bool
	UseRotation  bool
	RotationMode RotationMode
	RotationAxis Axis
	UseScale     [3]bool
}

func newInput(handle, armature, bone string) *Input {
	return &Input{
		handle:       handle,
		Armature:     armature,
		Bone:         bone,
		RotationMode: RotationSwingTwist,
		RotationAxis: AxisY,
	}
}

// Handle returns the input's immutable unique handle.
func (in *Input) Handle() string { return in.handle }

// Name returns the bone name, which is how inputs are shown to users.
func (in *Input) Name() string { return in.Bone }

// IsEnabled reports whether any channel is switched on.
func (in *Input) IsEnabled() bool { return in.spec().Enabled() }

// IsValid reports whether the bone resolves in src.
func (in *Input) IsValid(src TransformSource) bool {
	_, ok := src.LocalMatrix(in.Armature, in.Bone)
	return ok
}

// matrix returns the bone's live local transform, or identity when the bone
// does not resolve.
func (in *Input) matrix(src TransformSource) Mat4 {
	if m, ok := src.LocalMatrix(in.Armature, in.Bone); ok {
		return m
	}
	return IdentityMatrix()
}

func (in *Input) spec() channel.Spec {
	return channel.Spec{
		UseLocation:  in.UseLocation,
		UseRotation:  in.UseRotation,
		RotationMode: in.RotationMode,
		RotationAxis: in.RotationAxis,
		UseScale:     in.UseScale,
	}
}
