package channel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
	"gonum.org/v1/gonum/spatial/r3"
)

var unitScale = r3.Vec{X: 1, Y: 1, Z: 1}

func ids[T interface{ Channel | Sequence | Value }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		switch v := any(it).(type) {
		case Channel:
			out[i] = v.ID
		case Sequence:
			out[i] = v.ID
		case Value:
			out[i] = v.ID
		}
	}
	return out
}

func TestChannels_Order(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		expected []string
	}{
		{"Nothing", Spec{}, []string{}},
		{"Location XZ", Spec{UseLocation: [3]bool{true, false, true}}, []string{"lx", "lz"}},
		{"Angle", Spec{UseRotation: true, RotationMode: ModeAngle, RotationAxis: mathutil.AxisZ}, []string{"a"}},
		{"Swing", Spec{UseRotation: true, RotationMode: ModeSwing}, []string{"dx", "dy", "dz"}},
		{"Twist", Spec{UseRotation: true, RotationMode: ModeTwist}, []string{"tw"}},
		{"Swing twist", Spec{UseRotation: true, RotationMode: ModeSwingTwist}, []string{"dx", "dy", "dz", "tw"}},
		{"Rotation flag off", Spec{RotationMode: ModeAngle}, []string{}},
		{
			"Everything",
			Spec{
				UseLocation:  [3]bool{true, true, true},
				UseRotation:  true,
				RotationMode: ModeSwingTwist,
				UseScale:     [3]bool{false, true, false},
			},
			[]string{"lx", "ly", "lz", "dx", "dy", "dz", "tw", "sy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Channels(tt.spec)))
			assert.Equal(t, len(tt.expected) > 0, tt.spec.Enabled())
		})
	}
}

func TestExtract_Location(t *testing.T) {
	spec := Spec{UseLocation: [3]bool{false, true, false}}
	mats := []mathutil.Mat4{
		mathutil.LocRotScale(r3.Vec{Y: 1}, mathutil.QuatIdentity(), unitScale),
		mathutil.LocRotScale(r3.Vec{Y: -2}, mathutil.QuatIdentity(), unitScale),
		mathutil.LocRotScale(r3.Vec{X: 9, Y: 0.5}, mathutil.QuatIdentity(), unitScale),
	}
	seqs := Extract(spec, mats)
	require.Len(t, seqs, 1)
	assert.Equal(t, "ly", seqs[0].ID)
	assert.Equal(t, KindLocation, seqs[0].Kind)
	assert.Equal(t, []float64{1, -2, 0.5}, seqs[0].Samples)
}

// TestExtract_ScaleReadsScale tests that scale channels sample the matrix
// scale rather than its translation.
func TestExtract_ScaleReadsScale(t *testing.T) {
	spec := Spec{UseScale: [3]bool{true, false, true}}
	mats := []mathutil.Mat4{
		mathutil.LocRotScale(r3.Vec{X: 5, Z: 7}, mathutil.QuatIdentity(), r3.Vec{X: 2, Y: 1, Z: 3}),
		mathutil.LocRotScale(r3.Vec{X: -5, Z: -7}, mathutil.QuatFromEuler(r3.Vec{Y: 0.4}), r3.Vec{X: 0.5, Y: 1, Z: 1}),
	}
	seqs := Extract(spec, mats)
	require.Len(t, seqs, 2)
	assert.Equal(t, []string{"sx", "sz"}, ids(seqs))
	assert.InDeltaSlice(t, []float64{2, 0.5}, seqs[0].Samples, 1e-12)
	assert.InDeltaSlice(t, []float64{3, 1}, seqs[1].Samples, 1e-12)
}

func TestExtract_Angle(t *testing.T) {
	spec := Spec{UseRotation: true, RotationMode: ModeAngle, RotationAxis: mathutil.AxisX}
	mats := []mathutil.Mat4{
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatIdentity(), unitScale),
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatFromEuler(r3.Vec{X: 0.8}), unitScale),
	}
	seqs := Extract(spec, mats)
	require.Len(t, seqs, 1)
	assert.Equal(t, "a", seqs[0].ID)
	assert.InDeltaSlice(t, []float64{0, 0.8}, seqs[0].Samples, 1e-12)
}

// TestExtract_SwingDropsConstantComponents tests that a swing about one axis
// only produces the components that actually move.
func TestExtract_SwingDropsConstantComponents(t *testing.T) {
	spec := Spec{UseRotation: true, RotationMode: ModeSwingTwist, RotationAxis: mathutil.AxisY}
	// Bending about X moves the Y axis within the YZ plane; dx stays 0.
	mats := []mathutil.Mat4{
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatIdentity(), unitScale),
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatFromAxisAngle(r3.Vec{X: 1}, math.Pi/2), unitScale),
	}
	seqs := Extract(spec, mats)
	assert.Equal(t, []string{"dy", "dz", "tw"}, ids(seqs))

	assert.InDeltaSlice(t, []float64{1, 0}, seqs[0].Samples, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1}, seqs[1].Samples, 1e-12)
	// Twist is kept even when constant.
	assert.InDeltaSlice(t, []float64{0, 0}, seqs[2].Samples, 1e-12)
}

func TestExtract_Twist(t *testing.T) {
	spec := Spec{UseRotation: true, RotationMode: ModeTwist, RotationAxis: mathutil.AxisZ}
	mats := []mathutil.Mat4{
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatFromAxisAngle(r3.Vec{Z: 1}, -math.Pi/2), unitScale),
		mathutil.LocRotScale(r3.Vec{}, mathutil.QuatFromAxisAngle(r3.Vec{Z: 1}, math.Pi/3), unitScale),
	}
	seqs := Extract(spec, mats)
	require.Len(t, seqs, 1)
	assert.InDeltaSlice(t, []float64{-2 * math.Sin(math.Pi/4), 2 * math.Sin(math.Pi/6)}, seqs[0].Samples, 1e-12)
}

func TestExtract_NoPoses(t *testing.T) {
	spec := Spec{UseLocation: [3]bool{true, false, false}, UseRotation: true}
	seqs := Extract(spec, nil)
	// Location survives with no samples; swing components are all constant.
	assert.Equal(t, []string{"lx", "tw"}, ids(seqs))
}

// TestReadAll_MatchesExtract tests that live reads produce the same values
// as extraction does for the same matrix.
func TestReadAll_MatchesExtract(t *testing.T) {
	spec := Spec{
		UseLocation:  [3]bool{true, false, true},
		UseRotation:  true,
		RotationMode: ModeSwingTwist,
		RotationAxis: mathutil.AxisX,
		UseScale:     [3]bool{true, true, true},
	}
	m := mathutil.LocRotScale(r3.Vec{X: 0.3, Z: -1}, mathutil.QuatFromEuler(r3.Vec{X: 0.2, Y: 0.5, Z: -0.9}), r3.Vec{X: 1, Y: 2, Z: 0.5})
	chs := Channels(spec)
	dst := make([]float64, len(chs))
	ReadAll(chs, m, dst)

	byID := make(map[string]float64, len(chs))
	for i, ch := range chs {
		byID[ch.ID] = dst[i]
	}
	seqs := Extract(spec, []mathutil.Mat4{m, mathutil.Mat4Identity()})
	require.NotEmpty(t, seqs)
	for _, seq := range seqs {
		assert.InDelta(t, seq.Samples[0], byID[seq.ID], 1e-12, seq.ID)
	}
}

func TestParseRotationMode(t *testing.T) {
	for _, m := range []RotationMode{ModeAngle, ModeSwing, ModeTwist, ModeSwingTwist} {
		got, err := ParseRotationMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.True(t, m.Valid())
	}
	_, err := ParseRotationMode("EULER")
	assert.ErrorIs(t, err, ErrUnknownRotationMode)
	assert.False(t, RotationMode(7).Valid())
}
