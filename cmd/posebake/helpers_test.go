package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-pose-interpolator/internal/rigfile"
)

const testRig = `
name = "Elbow"

[[bones]]
bone = "forearm"
keys = [
  { frame = 0, rotation = [0, 0, 0] },
  { frame = 4, rotation = [90, 0, 0] },
]

[[inputs]]
bone = "forearm"
rotation = true

[[poses]]
name = "Rest"
frame = 0

[[poses]]
name = "Bent"
frame = 4
`

func loadTestRig(t *testing.T) *rigfile.Rig {
	t.Helper()
	doc, err := rigfile.Parse([]byte(testRig), rigfile.FormatTOML)
	require.NoError(t, err)
	rig, err := rigfile.Build(doc, nil)
	require.NoError(t, err)
	return rig
}

func TestBake(t *testing.T) {
	rig := loadTestRig(t)
	res, err := bake(context.Background(), rig)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rest", "Bent"}, res.poses)
	require.Len(t, res.frames, 5)
	require.Len(t, res.weights, 2)

	assert.InDelta(t, 1.0, res.weights[0][0], 1e-6)
	assert.InDelta(t, 0.0, res.weights[1][0], 1e-6)
	assert.InDelta(t, 0.0, res.weights[0][4], 1e-6)
	assert.InDelta(t, 1.0, res.weights[1][4], 1e-6)
	assert.InDelta(t, res.weights[0][2], res.weights[1][2], 1e-6)

	// Bake leaves the rig unbound with no sink entries.
	assert.False(t, rig.Interpolator.IsBound())
	assert.Zero(t, rig.Host.Sink.Len())
}

func TestBake_NotEnoughPoses(t *testing.T) {
	doc, err := rigfile.Parse([]byte(`
[[inputs]]
bone = "forearm"
rotation = true
[[poses]]
name = "Only"
`), rigfile.FormatTOML)
	require.NoError(t, err)
	rig, err := rigfile.Build(doc, nil)
	require.NoError(t, err)

	_, err = bake(context.Background(), rig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind")
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		path     string
		expected string
		wantErr  bool
	}{
		{"From csv extension", "", "out.csv", formatCSV, false},
		{"From WAV extension", "", "OUT.WAV", formatWAV, false},
		{"Explicit wins", "csv", "out.wav", formatCSV, false},
		{"Unknown extension", "", "out.txt", "", true},
		{"Unknown explicit", "flac", "out.wav", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.explicit, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateWAVParams(t *testing.T) {
	assert.NoError(t, validateWAVParams(24, 16))
	assert.NoError(t, validateWAVParams(60, 24))
	assert.NoError(t, validateWAVParams(60, 32))
	assert.Error(t, validateWAVParams(0, 16))
	assert.Error(t, validateWAVParams(24, 8))
}

func TestWriteCSV(t *testing.T) {
	res := &bakeResult{
		frames:  []float64{0, 0.5},
		poses:   []string{"A", "B"},
		weights: [][]float64{{1, 0.25}, {0, 0.75}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "frame,A,B", lines[0])
	assert.Equal(t, "0,1.000000,0.000000", lines[1])
	assert.Equal(t, "0.5,0.250000,0.750000", lines[2])
}

func TestWriteWAVFile_RoundTrip(t *testing.T) {
	res := &bakeResult{
		frames:  []float64{0, 1, 2},
		poses:   []string{"A", "B"},
		weights: [][]float64{{1, 0.5, 0}, {0, 0.5, 2}},
	}
	path := filepath.Join(t.TempDir(), "weights.wav")
	require.NoError(t, writeWAVFile(path, res, 24, bitsPerSample16))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, 24, buf.Format.SampleRate)
	require.Len(t, buf.Data, 6)

	// Interleaved A,B per frame; B's 2.0 is clamped to full scale.
	expected := []int{32767, 0, 16383, 16383, 0, 32767}
	assert.Equal(t, expected, buf.Data)
}

func TestWriteWAVFile_Errors(t *testing.T) {
	err := writeWAVFile(filepath.Join(t.TempDir(), "x.wav"), &bakeResult{}, 24, 16)
	require.Error(t, err)

	res := &bakeResult{frames: []float64{0}, poses: []string{"A"}, weights: [][]float64{{1}}}
	err = writeWAVFile("/nonexistent/dir/out.wav", res, 24, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestInterleave(t *testing.T) {
	got := interleave([][]float64{{1, -1}, {-2, 0.5}}, 100)
	assert.Equal(t, []int{100, -100, -100, 50}, got)
	assert.Nil(t, interleave(nil, 100))
}

func TestGetMaxValue(t *testing.T) {
	assert.InDelta(t, maxInt16, getMaxValue(bitsPerSample16), 0)
	assert.InDelta(t, maxInt24, getMaxValue(bitsPerSample24), 0)
	assert.InDelta(t, maxInt32, getMaxValue(bitsPerSample32), 0)
	assert.InDelta(t, maxInt16, getMaxValue(8), 0)
}
