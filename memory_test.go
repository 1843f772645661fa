package interpolator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryArmature(t *testing.T) {
	a := NewMemoryArmature()
	_, ok := a.LocalMatrix("Armature", "bone")
	assert.False(t, ok)

	m := bent(0.5)
	a.SetLocalMatrix("Armature", "bone", m)
	a.SetLocalMatrix("Armature", "another", IdentityMatrix())
	got, ok := a.LocalMatrix("Armature", "bone")
	require.True(t, ok)
	assert.Equal(t, m, got)
	assert.Equal(t, []string{"another", "bone"}, a.Bones("Armature"))

	a.RemoveBone("Armature", "bone")
	_, ok = a.LocalMatrix("Armature", "bone")
	assert.False(t, ok)
}

func TestMemoryShapeKeys_Rename(t *testing.T) {
	k := NewMemoryShapeKeys("A", "B")
	require.NoError(t, k.RenameShapeKey("A", "C"))
	assert.True(t, k.HasShapeKey("C"))
	assert.False(t, k.HasShapeKey("A"))
	assert.ErrorIs(t, k.RenameShapeKey("C", "B"), ErrDuplicateName)
	assert.NoError(t, k.RenameShapeKey("missing", "D"))
	assert.False(t, k.HasShapeKey("D"))
}

func TestMemorySink_RemoveEntries(t *testing.T) {
	s := NewMemorySink()
	require.NoError(t, s.SetWeight("a/x", "x", 0.1))
	require.NoError(t, s.SetWeight("a/y", "y", 0.2))
	require.NoError(t, s.SetWeight("b/x", "x", 0.3))

	assert.Equal(t, 2, s.RemoveEntries("a/"))
	assert.Equal(t, 0, s.RemoveEntries("a/"))
	w, ok := s.Weight("x")
	require.True(t, ok)
	assert.InDelta(t, 0.3, w, 0)
	_, ok = s.Weight("y")
	assert.False(t, ok)
}

func TestMemoryCurveStore_Copies(t *testing.T) {
	c := NewMemoryCurveStore()
	pts := []CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
	require.NoError(t, c.SaveCurve("h", pts))
	pts[0].Y = 9

	got, ok := c.LoadCurve("h")
	require.True(t, ok)
	assert.InDelta(t, 0.0, got[0].Y, 0)
	got[1].Y = 7
	again, _ := c.LoadCurve("h")
	assert.InDelta(t, 1.0, again[1].Y, 0)

	c.DeleteCurve("h")
	_, ok = c.LoadCurve("h")
	assert.False(t, ok)
}

func TestNewSimple(t *testing.T) {
	h := NewMemoryHost()
	ip, err := NewSimple("", h.Host())
	require.NoError(t, err)
	assert.Equal(t, DefaultName, ip.Name())

	ip, err = NewSimple("Knee", h.Host())
	require.NoError(t, err)
	assert.Equal(t, "Knee", ip.Name())

	_, err = NewSimple("Knee", Host{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWeightMap(t *testing.T) {
	m := WeightMap([]Weight{{Pose: "A", Value: 0.25}, {Pose: "B", Value: 1}})
	assert.Equal(t, map[string]float64{"A": 0.25, "B": 1}, m)
}
