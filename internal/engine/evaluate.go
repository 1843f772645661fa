package engine

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-pose-interpolator/internal/channel"
	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
)

// Query reads the bound channels from the live matrices (one per input, in
// bind order) and scales each value by its stored norm.
func (s *Snapshot) Query(live []mathutil.Mat4) ([]float64, error) {
	if len(live) != len(s.layers) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLiveCount, len(live), len(s.layers))
	}
	q := make([]float64, s.width)
	off := 0
	for i, l := range s.layers {
		dst := q[off : off+len(l.channels)]
		channel.ReadAll(l.channels, live[i], dst)
		for c, norm := range l.norms {
			dst[c] /= norm
		}
		off += len(l.channels)
	}
	return q, nil
}

// Evaluate returns one weight per bound pose for the live matrices.
// Poses are evaluated concurrently when the snapshot was built with
// parallel evaluation enabled.
func (s *Snapshot) Evaluate(ctx context.Context, live []mathutil.Mat4) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := s.Query(live)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(s.poses))

	// Sequential processing (default or when parallel disabled)
	if !s.parallel || len(s.poses) < minParallelPoses {
		for p := range s.poses {
			weights[p] = s.weight(p, q)
		}
		return weights, nil
	}

	// Parallel processing: one goroutine per pose, each writing its own slot
	var wg sync.WaitGroup
	for p := range s.poses {
		wg.Add(1)
		go func(pose int) {
			defer wg.Done()
			weights[pose] = s.weight(pose, q)
		}(p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return weights, nil
}

// Distance returns the distance between the normalized query q and pose p.
func (s *Snapshot) Distance(p int, q []float64) float64 {
	return mathutil.Distance(q, s.samples[p])
}

func (s *Snapshot) weight(p int, q []float64) float64 {
	return Weight(s.Distance(p, q), s.radii[p], s.poses[p])
}

// Weight maps a pose distance to its final weight: the distance is turned
// into a proximity 1-d/radius, shaped by the pose curve and remapped into
// [RangeMin, RangeMax].
func Weight(d, radius float64, p PoseParams) float64 {
	t := 1 - d/math.Max(radius, minRadius)
	y := p.Curve.Evaluate(t)
	w := p.RangeMin + y*(p.RangeMax-p.RangeMin)
	if p.Clamp {
		lo, hi := p.RangeMin, p.RangeMax
		if lo > hi {
			lo, hi = hi, lo
		}
		w = min(max(w, lo), hi)
	}
	return w
}
