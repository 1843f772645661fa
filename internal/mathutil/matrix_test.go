package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-pose-interpolator/internal/testutil"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMat4Identity_Decompose(t *testing.T) {
	m := Mat4Identity()
	testutil.AssertVecInDelta(t, r3.Vec{}, m.Translation(), 0)
	testutil.AssertVecInDelta(t, r3.Vec{X: 1, Y: 1, Z: 1}, m.Scale(), 0)
	testutil.AssertVecInDelta(t, r3.Vec{}, m.Euler(), 0)

	q := m.Rotation()
	assert.InDelta(t, 1.0, q.Real, 1e-15)
	assert.InDelta(t, 0.0, q.Imag, 1e-15)
	assert.InDelta(t, 0.0, q.Jmag, 1e-15)
	assert.InDelta(t, 0.0, q.Kmag, 1e-15)
}

// TestLocRotScale_RoundTrip tests that composed matrices decompose back into
// their location, rotation and scale.
func TestLocRotScale_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		loc   r3.Vec
		euler r3.Vec
		scale r3.Vec
	}{
		{"Translation only", r3.Vec{X: 1, Y: -2, Z: 3}, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}},
		{"Rotation X", r3.Vec{}, r3.Vec{X: 0.5}, r3.Vec{X: 1, Y: 1, Z: 1}},
		{"Rotation all axes", r3.Vec{}, r3.Vec{X: 0.3, Y: -0.6, Z: 1.2}, r3.Vec{X: 1, Y: 1, Z: 1}},
		{"Non-uniform scale", r3.Vec{Z: 0.25}, r3.Vec{Y: 0.4}, r3.Vec{X: 2, Y: 0.5, Z: 1.5}},
		{"Large angles", r3.Vec{X: -4}, r3.Vec{X: 2.5, Y: 1.2, Z: -2.8}, r3.Vec{X: 1, Y: 3, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromEuler(tt.euler)
			m := LocRotScale(tt.loc, q, tt.scale)

			testutil.AssertVecInDelta(t, tt.loc, m.Translation(), testutil.MatrixTolerance)
			testutil.AssertVecInDelta(t, tt.scale, m.Scale(), testutil.MatrixTolerance)
			testutil.AssertVecInDelta(t, tt.euler, m.Euler(), testutil.MatrixTolerance)

			got := m.Rotation()
			// q and -q are the same rotation.
			dot := got.Real*q.Real + got.Imag*q.Imag + got.Jmag*q.Jmag + got.Kmag*q.Kmag
			assert.InDelta(t, 1.0, math.Abs(dot), testutil.MatrixTolerance)
		})
	}
}

// TestEuler_GimbalLock tests the fallback branch when Y is ±90°.
func TestEuler_GimbalLock(t *testing.T) {
	m := LocRotScale(r3.Vec{}, QuatFromEuler(r3.Vec{X: 0.3, Y: math.Pi / 2}), r3.Vec{X: 1, Y: 1, Z: 1})
	e := m.Euler()
	assert.InDelta(t, math.Pi/2, e.Y, 1e-6)
	assert.InDelta(t, 0.0, e.Z, 0)

	// The recovered angles describe the same rotation.
	back := LocRotScale(r3.Vec{}, QuatFromEuler(e), r3.Vec{X: 1, Y: 1, Z: 1})
	for i := range m {
		assert.InDelta(t, m[i], back[i], 1e-6, "element %d", i)
	}
}

