package mathutil

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects one of the three principal axes.
type Axis int

const (
	// AxisX is the X axis.
	AxisX Axis = iota
	// AxisY is the Y axis.
	AxisY
	// AxisZ is the Z axis.
	AxisZ
)

// Axes lists all axes in index order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String returns the single-letter axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis parses "X", "Y" or "Z" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "X", "x":
		return AxisX, nil
	case "Y", "y":
		return AxisY, nil
	case "Z", "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// Component returns the element of v along a.
func Component(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}
