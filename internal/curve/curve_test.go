package curve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pose-interpolator/internal/testutil"
)

func TestNew_IsLinear(t *testing.T) {
	m := New()
	require.NoError(t, m.Validate())
	assert.True(t, m.Clip)
	assert.Equal(t, []Point{{0, 0, HandleVector}, {1, 1, HandleVector}}, m.Points)

	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		assert.InDelta(t, x, m.Evaluate(x), 1e-15, "x=%v", x)
	}
	assert.Equal(t, 0.5, m.Evaluate(0.5))
}

func TestEvaluate_Clip(t *testing.T) {
	m := New()
	assert.Equal(t, 0.0, m.Evaluate(-3))
	assert.Equal(t, 1.0, m.Evaluate(7))

	m.Clip = false
	assert.InDelta(t, -3.0, m.Evaluate(-3), 1e-12)
	assert.InDelta(t, 7.0, m.Evaluate(7), 1e-12)
}

// TestEvaluate_PassesThroughPoints tests that every control point lies on
// the evaluated curve.
func TestEvaluate_PassesThroughPoints(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			pts, ok := Preset(name)
			require.True(t, ok)
			m := &Mapping{Points: pts, Clip: true}
			for _, p := range pts {
				assert.InDelta(t, p.Y, m.Evaluate(p.X), testutil.CurveTolerance, "x=%v", p.X)
			}
		})
	}
}

// TestPresets_MonotoneInUnitRange tests that every preset stays within [0,1]
// and never decreases.
func TestPresets_MonotoneInUnitRange(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			pts, _ := Preset(name)
			m := &Mapping{Points: pts, Clip: true}
			samples := m.Sample(501)
			testutil.AssertNoNaNOrInf(t, samples)
			testutil.AssertAllInRange(t, samples, 0, 1)
			testutil.AssertMonotonic(t, samples)
		})
	}
}

func TestPresets_Table(t *testing.T) {
	assert.Len(t, PresetNames(), 16)

	pts, ok := Preset("QUINT_EASE_OUT")
	require.True(t, ok)
	want := []Point{{0, 0, HandleAuto}, {0.725, 0.975, HandleAutoClamped}, {1, 1, HandleAuto}}
	assert.Empty(t, cmp.Diff(want, pts))

	_, ok = Preset("EXPO_EASE_IN")
	assert.False(t, ok)
}

func TestPreset_ReturnsCopy(t *testing.T) {
	pts, _ := Preset("SINE_EASE_IN")
	pts[1].Y = 42
	again, _ := Preset("SINE_EASE_IN")
	assert.InDelta(t, 0.03, again[1].Y, 0)
}

func TestPresetKey(t *testing.T) {
	assert.Equal(t, "LINEAR", PresetKey("LINEAR", "EASE_IN_OUT"))
	assert.Equal(t, "CUBIC_EASE_OUT", PresetKey("cubic", "ease_out"))
	assert.Equal(t, "EXPO_EASE_IN", PresetKey("EXPO", "EASE_IN"))
}

// TestApplyPreset_Resize tests that growing and shrinking yields exactly the
// preset's point list.
func TestApplyPreset_Resize(t *testing.T) {
	m := New()
	inOut, _ := Preset("SINE_EASE_IN_OUT")
	m.ApplyPreset(inOut)
	assert.Equal(t, inOut, m.Points)

	in, _ := Preset("QUAD_EASE_IN")
	m.ApplyPreset(in)
	assert.Equal(t, in, m.Points)

	lin, _ := Preset(PresetLinear)
	m.ApplyPreset(lin)
	assert.Equal(t, lin, m.Points)
}

func TestApplyPreset_ShrinkDropsBeforeLast(t *testing.T) {
	m := &Mapping{Points: []Point{
		{0, 0, HandleAuto}, {0.2, 0.1, HandleAuto}, {0.5, 0.6, HandleAuto}, {1, 1, HandleAuto},
	}}
	m.resize(3)
	assert.Equal(t, []Point{{0, 0, HandleAuto}, {0.2, 0.1, HandleAuto}, {1, 1, HandleAuto}}, m.Points)
}

func TestCopyTo(t *testing.T) {
	src := New()
	pts, _ := Preset("CUBIC_EASE_IN_OUT")
	src.ApplyPreset(pts)

	dst := New()
	src.CopyTo(dst)
	assert.Equal(t, src.Points, dst.Points)

	// Copying twice changes nothing.
	src.CopyTo(dst)
	assert.Equal(t, src.Points, dst.Points)

	// The copy is deep.
	dst.Points[1].Y = 0.5
	assert.InDelta(t, 0.03, src.Points[1].Y, 0)
}

func TestClone_Independent(t *testing.T) {
	m := New()
	c := m.Clone()
	assert.True(t, m.Equal(c))
	c.Points[0].Y = 1
	assert.False(t, m.Equal(c))
	assert.InDelta(t, 0.0, m.Points[0].Y, 0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		ok   bool
	}{
		{"Linear", []Point{{0, 0, HandleVector}, {1, 1, HandleVector}}, true},
		{"Too few", []Point{{0, 0, HandleAuto}}, false},
		{"Unordered", []Point{{0.5, 0, HandleAuto}, {0.2, 1, HandleAuto}}, false},
		{"NaN", []Point{{0, math.NaN(), HandleAuto}, {1, 1, HandleAuto}}, false},
		{"Out of range", []Point{{0, -0.5, HandleAuto}, {1, 1, HandleAuto}}, false},
		{"Bad handle", []Point{{0, 0, HandleType(9)}, {1, 1, HandleAuto}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Mapping{Points: tt.pts}).Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidMapping)
			}
		})
	}
}

// TestEvaluate_AutoClampedNoOvershoot tests that a clamped peak point is a
// local maximum rather than being overshot.
func TestEvaluate_AutoClampedNoOvershoot(t *testing.T) {
	m := &Mapping{Clip: true, Points: []Point{
		{0, 0, HandleAuto}, {0.5, 1, HandleAutoClamped}, {1, 0, HandleAuto},
	}}
	testutil.AssertAllInRange(t, m.Sample(201), 0, 1)
	assert.InDelta(t, 1.0, m.Evaluate(0.5), 1e-12)
}

func TestEvaluate_VectorCorner(t *testing.T) {
	m := &Mapping{Clip: true, Points: []Point{
		{0, 0, HandleVector}, {0.5, 1, HandleVector}, {1, 0, HandleVector},
	}}
	assert.InDelta(t, 0.5, m.Evaluate(0.25), 1e-12)
	assert.InDelta(t, 0.5, m.Evaluate(0.75), 1e-12)
}

func TestEvaluate_Degenerate(t *testing.T) {
	assert.InDelta(t, 0.3, (&Mapping{}).Evaluate(0.3), 0)
	assert.InDelta(t, 0.7, (&Mapping{Points: []Point{{0.2, 0.7, HandleAuto}}}).Evaluate(0.9), 0)
}

func TestParseHandleType(t *testing.T) {
	for _, h := range []HandleType{HandleAuto, HandleAutoClamped, HandleVector} {
		got, err := ParseHandleType(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}
	got, err := ParseHandleType("auto_clamped")
	require.NoError(t, err)
	assert.Equal(t, HandleAutoClamped, got)

	_, err = ParseHandleType("BEZIER")
	assert.ErrorIs(t, err, ErrInvalidMapping)
}
