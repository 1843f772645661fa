package interpolator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tphakala/go-pose-interpolator/internal/curve"
)

// Interpolation is the falloff curve family.
type Interpolation int

const (
	// InterpolationLinear falls off linearly with distance.
	InterpolationLinear Interpolation = iota
	// InterpolationSine follows a sine ramp.
	InterpolationSine
	// InterpolationQuad follows a quadratic ramp.
	InterpolationQuad
	// InterpolationCubic follows a cubic ramp.
	InterpolationCubic
	// InterpolationQuart follows a quartic ramp.
	InterpolationQuart
	// InterpolationQuint follows a quintic ramp.
	InterpolationQuint
	// InterpolationExpo follows an exponential ramp. It has no preset, so
	// selecting it fails with ErrNoPreset.
	InterpolationExpo
	// InterpolationCustom keeps whatever control points the curve holds.
	InterpolationCustom
)

var interpolationNames = [...]string{
	InterpolationLinear: "LINEAR",
	InterpolationSine:   "SINE",
	InterpolationQuad:   "QUAD",
	InterpolationCubic:  "CUBIC",
	InterpolationQuart:  "QUART",
	InterpolationQuint:  "QUINT",
	InterpolationExpo:   "EXPO",
	InterpolationCustom: "CUSTOM",
}

func (k Interpolation) String() string {
	if k < 0 || int(k) >= len(interpolationNames) {
		return fmt.Sprintf("Interpolation(%d)", int(k))
	}
	return interpolationNames[k]
}

// ParseInterpolation parses an interpolation name (case-insensitive).
func ParseInterpolation(s string) (Interpolation, error) {
	for i, name := range interpolationNames {
		if strings.EqualFold(s, name) {
			return Interpolation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidCurve, s)
}

// Easing selects which end of the curve is eased.
type Easing int

const (
	// EaseInOut is the default easing.
	EaseInOut Easing = iota
	// EaseIn eases the start of the ramp.
	EaseIn
	// EaseOut eases the end of the ramp.
	EaseOut
)

var easingNames = [...]string{
	EaseInOut: "EASE_IN_OUT",
	EaseIn:    "EASE_IN",
	EaseOut:   "EASE_OUT",
}

func (e Easing) String() string {
	if e < 0 || int(e) >= len(easingNames) {
		return fmt.Sprintf("Easing(%d)", int(e))
	}
	return easingNames[e]
}

// ParseEasing parses EASE_IN, EASE_OUT or EASE_IN_OUT (case-insensitive).
func ParseEasing(s string) (Easing, error) {
	for i, name := range easingNames {
		if strings.EqualFold(s, name) {
			return Easing(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown easing %q", ErrInvalidCurve, s)
}

// presetFor returns the curve preset for kind and easing. CUSTOM has none.
func presetFor(kind Interpolation, easing Easing) ([]CurvePoint, bool) {
	if kind == InterpolationCustom {
		return nil, false
	}
	return curve.Preset(curve.PresetKey(kind.String(), easing.String()))
}

// InterpolationSettings configures the falloff curve of an interpolator or
// of a single pose. The zero value is LINEAR with EASE_IN_OUT easing; its
// curve is created on first use.
//
// Settings are not safe for concurrent use. They must not be modified
// while Bind or Evaluate run on the interpolator that owns them. A
// successful Bind may create or load the curve of settings that have none
// yet; a failed Bind leaves them unchanged.
type InterpolationSettings struct {
	interpolation Interpolation
	easing        Easing
	handle        string
	mapping       *curve.Mapping
}

// Interpolation returns the curve family.
func (s *InterpolationSettings) Interpolation() Interpolation { return s.interpolation }

// Easing returns the easing.
func (s *InterpolationSettings) Easing() Easing { return s.easing }

// CurveHandle returns the curve's unique handle, assigning one on first use.
func (s *InterpolationSettings) CurveHandle() string {
	if s.handle == "" {
		s.handle = uuid.NewString()
	}
	return s.handle
}

// SetInterpolation selects a curve family and, unless it is CUSTOM,
// overwrites the curve with the matching preset. Kinds without a preset
// fail with ErrNoPreset and leave the settings unchanged.
func (s *InterpolationSettings) SetInterpolation(kind Interpolation) error {
	if kind < 0 || int(kind) >= len(interpolationNames) {
		return fmt.Errorf("%w: %v", ErrInvalidCurve, kind)
	}
	return s.apply(kind, s.easing)
}

// SetEasing selects the easing and reapplies the preset of the current
// family. With CUSTOM only the easing is recorded.
func (s *InterpolationSettings) SetEasing(easing Easing) error {
	if easing < 0 || int(easing) >= len(easingNames) {
		return fmt.Errorf("%w: %v", ErrInvalidCurve, easing)
	}
	return s.apply(s.interpolation, easing)
}

func (s *InterpolationSettings) apply(kind Interpolation, easing Easing) error {
	if kind == InterpolationCustom {
		s.interpolation, s.easing = kind, easing
		return nil
	}
	pts, ok := presetFor(kind, easing)
	if !ok {
		return fmt.Errorf("%w: %v %v", ErrNoPreset, kind, easing)
	}
	s.Curve().ApplyPreset(pts)
	s.interpolation, s.easing = kind, easing
	return nil
}

// SetCurvePoints switches to CUSTOM and replaces the control points.
func (s *InterpolationSettings) SetCurvePoints(pts []CurvePoint) error {
	m := &curve.Mapping{Points: pts, Clip: true}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCurve, err)
	}
	s.Curve().ApplyPreset(pts)
	s.interpolation = InterpolationCustom
	return nil
}

// CurvePoints returns a copy of the current control points.
func (s *InterpolationSettings) CurvePoints() []CurvePoint {
	return s.Curve().Clone().Points
}

// Evaluate maps x through the curve.
func (s *InterpolationSettings) Evaluate(x float64) float64 {
	return s.Curve().Evaluate(x)
}

// CopyFrom copies the family, easing and control points of src. The curve
// handle of s is kept.
func (s *InterpolationSettings) CopyFrom(src *InterpolationSettings) {
	if s == src {
		return
	}
	src.Curve().CopyTo(s.Curve())
	s.interpolation, s.easing = src.interpolation, src.easing
}

// Curve returns the curve mapping, creating it on first use with the
// preset of the current family.
func (s *InterpolationSettings) Curve() *curve.Mapping {
	if s.mapping == nil {
		s.mapping = curve.New()
		if pts, ok := presetFor(s.interpolation, s.easing); ok {
			s.mapping.ApplyPreset(pts)
		}
		s.CurveHandle()
	}
	return s.mapping
}

// resolve returns the curve without modifying s. A curve that has not
// been created yet is loaded from store, or built from the preset of the
// current family. The second result reports whether the curve is new.
func (s *InterpolationSettings) resolve(store CurveStore) (*curve.Mapping, bool) {
	if s.mapping != nil {
		return s.mapping, false
	}
	m := curve.New()
	if s.handle != "" && store != nil {
		if pts, ok := store.LoadCurve(s.handle); ok {
			m.ApplyPreset(pts)
			return m, true
		}
	}
	if pts, ok := presetFor(s.interpolation, s.easing); ok {
		m.ApplyPreset(pts)
	}
	return m, true
}

// adopt installs a curve returned by resolve.
func (s *InterpolationSettings) adopt(m *curve.Mapping) {
	if s.mapping != nil {
		return
	}
	s.mapping = m
	s.CurveHandle()
}

// save writes the curve to store if it has been created.
func (s *InterpolationSettings) save(store CurveStore) error {
	if s.mapping == nil || store == nil {
		return nil
	}
	return store.SaveCurve(s.CurveHandle(), s.mapping.Points)
}

// drop removes the curve from store.
func (s *InterpolationSettings) drop(store CurveStore) {
	if s.handle != "" && store != nil {
		store.DeleteCurve(s.handle)
	}
}

// SetCurveHandle sets the handle the curve is stored under. A curve that
// has not been created yet is loaded from the curve store at bind time.
func (s *InterpolationSettings) SetCurveHandle(handle string) {
	s.handle = handle
}
