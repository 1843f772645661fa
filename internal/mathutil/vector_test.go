package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumOfSquares(t *testing.T) {
	tests := []struct {
		name     string
		vec      []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{2}, 4},
		{"Pythagorean", []float64{3, 4}, 25},
		{"Negative", []float64{-1, -2, 2}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SumOfSquares(tt.vec), 1e-12)
		})
	}
}

// TestNormalize_Degenerate tests that all-zero vectors of any length are left
// unchanged and report a norm of 1.
func TestNormalize_Degenerate(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 8} {
		vec := make([]float64, n)
		norm := Normalize(vec)
		assert.InDelta(t, 1.0, norm, 0, "length %d", n)
		assert.Equal(t, make([]float64, n), vec, "length %d should be unchanged", n)
	}
}

// TestNormalize_NearZero tests the 1e-5 absolute tolerance on the sum of squares.
func TestNormalize_NearZero(t *testing.T) {
	vec := []float64{1e-3, 1e-3}
	norm := Normalize(vec)
	assert.InDelta(t, 1.0, norm, 0)
	assert.Equal(t, []float64{1e-3, 1e-3}, vec)
}

// TestNormalize_DividesBySumOfSquares tests that Normalize divides by the sum
// of squares rather than its square root.
func TestNormalize_DividesBySumOfSquares(t *testing.T) {
	vec := []float64{3, 4}
	norm := Normalize(vec)
	assert.InDelta(t, 25.0, norm, 1e-12)
	assert.InDelta(t, 0.12, vec[0], 1e-12)
	assert.InDelta(t, 0.16, vec[1], 1e-12)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.InDelta(t, 0.0, Distance([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 0.0, Distance(nil, nil), 0)
	// Trailing elements of the longer slice are ignored.
	assert.InDelta(t, 1.0, Distance([]float64{1}, []float64{0, 100}), 1e-12)
}

func TestDistance_Symmetric(t *testing.T) {
	a := []float64{0.3, -1.2, 4}
	b := []float64{-2, 0.5, 1}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
}
