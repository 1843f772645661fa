package interpolator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	testArmature = "Armature"
	testBone     = "forearm"
)

var unitScale = r3.Vec{X: 1, Y: 1, Z: 1}

// bent returns the forearm bent by angle radians about X.
func bent(angle float64) Mat4 {
	return ComposeMatrix(r3.Vec{}, AxisAngleRotation(r3.Vec{X: 1}, angle), unitScale)
}

// newRestBent builds an interpolator with one rotation input on the forearm
// and two poses: "Rest" (identity) and "Bent" (90° about X). The forearm is
// left at rest.
func newRestBent(t testing.TB, parallel bool) (*Interpolator, *MemoryHost) {
	t.Helper()
	h := NewMemoryHost()
	h.ShapeKeys.Add("Rest", "Bent")
	h.Armature.SetLocalMatrix(testArmature, testBone, bent(0))

	config := DefaultConfig()
	config.Name = "Elbow"
	config.EnableParallel = parallel
	config.CurveStore = h.Curves
	ip, err := New(config, h.Host())
	require.NoError(t, err)

	in, err := ip.AddInput(testArmature, testBone)
	require.NoError(t, err)
	in.UseRotation = true

	_, err = ip.AddPose("Rest")
	require.NoError(t, err)
	h.Armature.SetLocalMatrix(testArmature, testBone, bent(math.Pi/2))
	_, err = ip.AddPose("Bent")
	require.NoError(t, err)
	h.Armature.SetLocalMatrix(testArmature, testBone, bent(0))
	return ip, h
}
