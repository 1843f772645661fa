// Package engine holds the bound state of a pose interpolator and computes
// per-pose weights from live bone transforms.
//
// A Snapshot is built once at bind time from the recorded pose matrices. It
// owns normalized copies of every channel sequence, the per-channel norms and
// the per-pose falloff radii, and is read-only afterwards so evaluation can
// run from any number of goroutines.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-pose-interpolator/internal/channel"
	"github.com/tphakala/go-pose-interpolator/internal/curve"
	"github.com/tphakala/go-pose-interpolator/internal/mathutil"
)

// Engine errors.
var (
	ErrNoInputs        = errors.New("no inputs")
	ErrTooFewPoses     = errors.New("at least two poses are required")
	ErrPoseCount       = errors.New("pose count mismatch")
	ErrLiveCount       = errors.New("live transform count mismatch")
	ErrInvalidRange    = errors.New("invalid pose range")
	ErrMissingCurve    = errors.New("missing pose curve")
	ErrNonFiniteSample = errors.New("non-finite channel sample")
	ErrNoChannels      = errors.New("no informative channels")
)

// EmptyInputError reports an input whose channels are all constant across
// the recorded poses, so it cannot tell any pose apart.
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("input %q: %v", e.Input, ErrNoChannels)
}

func (e *EmptyInputError) Unwrap() error { return ErrNoChannels }

// InputData is one input's channel configuration and its recorded local
// matrix in every pose, in pose order.
type InputData struct {
	Name     string
	Spec     channel.Spec
	Matrices []mathutil.Mat4
}

// PoseParams is the weight shaping of one pose.
type PoseParams struct {
	Name     string
	Curve    *curve.Mapping
	RangeMin float64
	RangeMax float64
	Clamp    bool
}

// layer is the bound channel data of one input.
type layer struct {
	name     string
	spec     channel.Spec
	channels []channel.Channel
	norms    []float64
}

// Snapshot is the immutable bound state of an interpolator.
type Snapshot struct {
	layers   []layer
	poses    []PoseParams
	width    int         // total channel count across layers
	samples  [][]float64 // [pose][channel], normalized
	radii    []float64
	parallel bool
}

// Build extracts, normalizes and indexes the recorded pose data. Curves are
// cloned so later edits to the source settings do not leak into a bound
// snapshot.
func Build(inputs []InputData, poses []PoseParams, parallel bool) (*Snapshot, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if len(poses) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoses, len(poses))
	}

	s := &Snapshot{
		layers:   make([]layer, 0, len(inputs)),
		poses:    make([]PoseParams, len(poses)),
		samples:  make([][]float64, len(poses)),
		parallel: parallel,
	}

	for i, p := range poses {
		if p.Curve == nil {
			return nil, fmt.Errorf("%w: pose %q", ErrMissingCurve, p.Name)
		}
		if math.IsNaN(p.RangeMin) || math.IsNaN(p.RangeMax) {
			return nil, fmt.Errorf("%w: pose %q", ErrInvalidRange, p.Name)
		}
		p.Curve = p.Curve.Clone()
		s.poses[i] = p
	}

	var columns [][]float64
	for _, in := range inputs {
		if len(in.Matrices) != len(poses) {
			return nil, fmt.Errorf("%w: input %q has %d matrices for %d poses",
				ErrPoseCount, in.Name, len(in.Matrices), len(poses))
		}
		seqs := channel.Extract(in.Spec, in.Matrices)
		if len(seqs) == 0 {
			return nil, &EmptyInputError{Input: in.Name}
		}
		l := layer{
			name:     in.Name,
			spec:     in.Spec,
			channels: make([]channel.Channel, len(seqs)),
			norms:    make([]float64, len(seqs)),
		}
		for c, seq := range seqs {
			for _, v := range seq.Samples {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, fmt.Errorf("%w: input %q channel %s", ErrNonFiniteSample, in.Name, seq.ID)
				}
			}
			l.channels[c] = seq.Channel
			l.norms[c] = mathutil.Normalize(seq.Samples)
			columns = append(columns, seq.Samples)
		}
		s.layers = append(s.layers, l)
	}

	s.width = len(columns)
	for p := range poses {
		row := make([]float64, s.width)
		for c, col := range columns {
			row[c] = col[p]
		}
		s.samples[p] = row
	}
	s.radii = nearestRadii(s.samples)
	return s, nil
}

// nearestRadii returns, for each pose, the distance to its closest
// neighbour, floored at minRadius.
func nearestRadii(samples [][]float64) []float64 {
	radii := make([]float64, len(samples))
	for i := range samples {
		r := math.Inf(1)
		for j := range samples {
			if i == j {
				continue
			}
			r = min(r, mathutil.Distance(samples[i], samples[j]))
		}
		radii[i] = max(r, minRadius)
	}
	return radii
}

// PoseCount returns the number of bound poses.
func (s *Snapshot) PoseCount() int { return len(s.poses) }

// InputCount returns the number of bound inputs.
func (s *Snapshot) InputCount() int { return len(s.layers) }

// Width returns the total number of channels across all inputs.
func (s *Snapshot) Width() int { return s.width }

// Pose returns the shaping parameters of pose i.
func (s *Snapshot) Pose(i int) PoseParams { return s.poses[i] }

// Radius returns the falloff radius of pose i.
func (s *Snapshot) Radius(i int) float64 { return s.radii[i] }

// Samples returns a copy of pose i's normalized channel samples.
func (s *Snapshot) Samples(i int) []float64 {
	return append([]float64(nil), s.samples[i]...)
}

// ChannelIDs returns "<input>/<channel>" for every bound channel in order.
func (s *Snapshot) ChannelIDs() []string {
	ids := make([]string, 0, s.width)
	for _, l := range s.layers {
		for _, ch := range l.channels {
			ids = append(ids, l.name+"/"+ch.ID)
		}
	}
	return ids
}

// Norms returns the stored norm of every bound channel in order.
func (s *Snapshot) Norms() []float64 {
	norms := make([]float64, 0, s.width)
	for _, l := range s.layers {
		norms = append(norms, l.norms...)
	}
	return norms
}
