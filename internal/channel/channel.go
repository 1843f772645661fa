// Package channel converts a bone's local transform into the scalar channels
// an input is configured to track: location axes, a rotation angle, swing
// aim components, a twist sample and scale axes.
package channel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
)

// ErrUnknownRotationMode is returned when parsing an unrecognised mode.
var ErrUnknownRotationMode = errors.New("unknown rotation mode")

// RotationMode selects how a rotation is decomposed into channels.
type RotationMode int

const (
	// ModeSwingTwist emits both swing and twist channels. This is the default.
	ModeSwingTwist RotationMode = iota
	// ModeAngle emits the euler angle about the rotation axis.
	ModeAngle
	// ModeSwing emits the aim direction of the rotation axis.
	ModeSwing
	// ModeTwist emits the twist about the rotation axis.
	ModeTwist
)

var modeNames = [...]string{
	ModeSwingTwist: "SWING_TWIST",
	ModeAngle:      "ANGLE",
	ModeSwing:      "SWING",
	ModeTwist:      "TWIST",
}

func (m RotationMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RotationMode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is a known mode.
func (m RotationMode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// ParseRotationMode parses a mode name (case-insensitive).
func ParseRotationMode(s string) (RotationMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return RotationMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRotationMode, s)
}

func (m RotationMode) hasSwing() bool { return m == ModeSwing || m == ModeSwingTwist }
func (m RotationMode) hasTwist() bool { return m == ModeTwist || m == ModeSwingTwist }

// Kind identifies what a channel measures.
type Kind int

const (
	// KindLocation is one translation component.
	KindLocation Kind = iota
	// KindAngle is the euler angle about the rotation axis.
	KindAngle
	// KindSwing is one component of the rotated aim axis.
	KindSwing
	// KindTwist is the twist about the rotation axis.
	KindTwist
	// KindScale is one scale component.
	KindScale
)

func (k Kind) String() string {
	switch k {
	case KindLocation:
		return "location"
	case KindAngle:
		return "angle"
	case KindSwing:
		return "swing"
	case KindTwist:
		return "twist"
	case KindScale:
		return "scale"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is the channel configuration of one input.
type Spec struct {
	UseLocation  [3]bool
	UseRotation  bool
	RotationMode RotationMode
	RotationAxis mathutil.Axis
	UseScale     [3]bool
}

// Enabled reports whether any channel is switched on.
func (s Spec) Enabled() bool {
	for i := range 3 {
		if s.UseLocation[i] || s.UseScale[i] {
			return true
		}
	}
	return s.UseRotation
}

// Channel describes a single scalar channel.
type Channel struct {
	ID   string
	Kind Kind
	// Axis is the vector component read: the location or scale axis, the
	// swing aim component, or the rotation axis for angle and twist.
	Axis mathutil.Axis
	// Ref is the rotation axis that swing is measured for.
	Ref mathutil.Axis
}

// Read returns the channel value for a single local matrix.
func (c Channel) Read(m mathutil.Mat4) float64 {
	switch c.Kind {
	case KindLocation:
		return mathutil.Component(m.Translation(), c.Axis)
	case KindScale:
		return mathutil.Component(m.Scale(), c.Axis)
	case KindAngle:
		return mathutil.Component(m.Euler(), c.Axis)
	case KindSwing:
		return mathutil.Component(mathutil.SwingAimAxis(m.Rotation(), c.Ref), c.Axis)
	case KindTwist:
		return mathutil.TwistAngle(m.Rotation(), c.Axis)
	default:
		return 0
	}
}

// Channels lists every channel s enables, in extraction order: location
// X/Y/Z, rotation, scale X/Y/Z.
func Channels(s Spec) []Channel {
	var out []Channel
	for _, axis := range mathutil.Axes {
		if s.UseLocation[axis] {
			out = append(out, Channel{ID: idLocationPrefix + axisSuffix(axis), Kind: KindLocation, Axis: axis})
		}
	}

	if s.UseRotation && s.RotationMode == ModeAngle {
		out = append(out, Channel{ID: idAngle, Kind: KindAngle, Axis: s.RotationAxis})
	}
	if s.UseRotation && s.RotationMode.hasSwing() {
		for _, axis := range mathutil.Axes {
			out = append(out, Channel{
				ID:   idSwingPrefix + axisSuffix(axis),
				Kind: KindSwing,
				Axis: axis,
				Ref:  s.RotationAxis,
			})
		}
	}
	if s.UseRotation && s.RotationMode.hasTwist() {
		out = append(out, Channel{ID: idTwist, Kind: KindTwist, Axis: s.RotationAxis})
	}

	for _, axis := range mathutil.Axes {
		if s.UseScale[axis] {
			out = append(out, Channel{ID: idScalePrefix + axisSuffix(axis), Kind: KindScale, Axis: axis})
		}
	}
	return out
}

func axisSuffix(a mathutil.Axis) string {
	return strings.ToLower(a.String())
}
