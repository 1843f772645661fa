package channel

import (
	"slices"

	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
)

// Sequence holds one channel's samples across all poses, one per pose.
type Sequence struct {
	Channel
	Samples []float64
}

// Extract reads every enabled channel from the per-pose matrices of one
// input. Swing components that do not vary across the poses carry no
// information and are left out.
func Extract(s Spec, matrices []mathutil.Mat4) []Sequence {
	chs := Channels(s)
	out := make([]Sequence, 0, len(chs))
	for _, ch := range chs {
		samples := make([]float64, len(matrices))
		for i, m := range matrices {
			samples[i] = ch.Read(m)
		}
		if ch.Kind == KindSwing && isConstant(samples) {
			continue
		}
		out = append(out, Sequence{Channel: ch, Samples: samples})
	}
	return out
}

// ReadAll reads the given channels from m into dst, which must be at least
// len(chs) long.
func ReadAll(chs []Channel, m mathutil.Mat4, dst []float64) {
	for i, ch := range chs {
		dst[i] = ch.Read(m)
	}
}

func isConstant(samples []float64) bool {
	if len(samples) == 0 {
		return true
	}
	return slices.Max(samples)-slices.Min(samples) <= degenerateSpread
}
