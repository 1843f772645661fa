// Package curve implements the falloff curve mapping used to shape pose
// weights: an ordered list of control points over [0,1] evaluated as a
// piecewise cubic Hermite spline.
package curve

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidMapping is returned by Validate for malformed control point lists.
var ErrInvalidMapping = errors.New("invalid curve mapping")

// HandleType selects how the tangent at a control point is derived.
type HandleType int

const (
	// HandleAuto gives a smooth tangent from the neighbouring points.
	HandleAuto HandleType = iota
	// HandleAutoClamped is like HandleAuto but never overshoots its neighbours.
	HandleAutoClamped
	// HandleVector makes the point a corner; adjacent segments are straight
	// toward it.
	HandleVector
)

var handleNames = [...]string{
	HandleAuto:        "AUTO",
	HandleAutoClamped: "AUTO_CLAMPED",
	HandleVector:      "VECTOR",
}

func (h HandleType) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("HandleType(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandleType parses "AUTO", "AUTO_CLAMPED" or "VECTOR" (case-insensitive).
func ParseHandleType(s string) (HandleType, error) {
	for i, name := range handleNames {
		if strings.EqualFold(s, name) {
			return HandleType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown handle type %q", ErrInvalidMapping, s)
}

// Point is a single curve control point.
type Point struct {
	X, Y   float64
	Handle HandleType
}

// Mapping is an editable curve over the unit interval.
type Mapping struct {
	Points []Point
	// Clip clamps the evaluation input to [0,1].
	Clip bool
}

// New returns a clipped mapping holding the LINEAR preset.
func New() *Mapping {
	pts, _ := Preset(PresetLinear)
	return &Mapping{Points: pts, Clip: true}
}

// ApplyPreset replaces the control points with pts. Surplus points are
// removed from just before the last point and missing points are inserted
// there, so the first and last points keep their role throughout.
func (m *Mapping) ApplyPreset(pts []Point) {
	m.resize(len(pts))
	copy(m.Points, pts)
}

// CopyTo deep-copies the control points of m into dst, resizing dst the
// same way ApplyPreset does.
func (m *Mapping) CopyTo(dst *Mapping) {
	if dst == m {
		return
	}
	dst.ApplyPreset(m.Points)
}

// Clone returns an independent copy of m.
func (m *Mapping) Clone() *Mapping {
	return &Mapping{Points: slices.Clone(m.Points), Clip: m.Clip}
}

// Equal reports whether both mappings hold the same points and clip flag.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Clip == other.Clip && slices.Equal(m.Points, other.Points)
}

// Validate checks that the mapping has at least two points inside the unit
// square with non-decreasing X values and known handle types.
func (m *Mapping) Validate() error {
	if len(m.Points) < minPoints {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidMapping, minPoints, len(m.Points))
	}
	for i, p := range m.Points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidMapping, i)
		}
		if p.X < domainMin || p.X > domainMax || p.Y < domainMin || p.Y > domainMax {
			return fmt.Errorf("%w: point %d (%g, %g) outside the unit square", ErrInvalidMapping, i, p.X, p.Y)
		}
		if p.Handle < HandleAuto || p.Handle > HandleVector {
			return fmt.Errorf("%w: point %d has unknown handle %d", ErrInvalidMapping, i, int(p.Handle))
		}
		if i > 0 && p.X < m.Points[i-1].X {
			return fmt.Errorf("%w: point %d x=%g precedes point %d x=%g",
				ErrInvalidMapping, i, p.X, i-1, m.Points[i-1].X)
		}
	}
	return nil
}

func (m *Mapping) resize(n int) {
	for len(m.Points) > n && len(m.Points) > minPoints {
		m.Points = slices.Delete(m.Points, len(m.Points)-2, len(m.Points)-1)
	}
	for len(m.Points) < n {
		at := max(len(m.Points)-1, 0)
		m.Points = slices.Insert(m.Points, at, Point{})
	}
	// A preset shorter than the minimum still replaces the whole list.
	m.Points = m.Points[:n]
}
