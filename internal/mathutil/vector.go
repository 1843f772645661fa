// Package mathutil provides the vector, quaternion and matrix math used by
// pose interpolation.
package mathutil

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// SumOfSquares returns the sum of the squared elements of vec.
func SumOfSquares(vec []float64) float64 {
	if len(vec) == 0 {
		return 0
	}
	return f64.DotProduct(vec, vec)
}

// Normalize divides every element of vec in place by its sum of squares and
// returns that sum.
//
// This is not a Euclidean normalization: the divisor is the sum of squares,
// not its square root. Recorded pose samples and live query samples are both
// scaled by the same returned value, so distances stay comparable.
//
// If the sum of squares is within 1e-5 of zero the vector is left unchanged
// and 1.0 is returned, so a channel that never moves is treated as already
// normalized.
func Normalize(vec []float64) float64 {
	norm := SumOfSquares(vec)
	if math.Abs(norm) <= normalizeTolerance {
		return degenerateNorm
	}
	f64.Scale(vec, vec, 1.0/norm)
	return norm
}

// Distance returns the Euclidean distance between a and b.
// Extra trailing elements of the longer slice are ignored.
func Distance(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	diff := make([]float64, n)
	for i := range n {
		diff[i] = a[i] - b[i]
	}
	return math.Sqrt(f64.DotProduct(diff, diff))
}
