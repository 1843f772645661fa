package interpolator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tphakala/go-pose-interpolator/internal/curve"
	"github.com/tphakala/go-pose-interpolator/internal/engine"
)

// Weight is the computed weight of one pose.
type Weight struct {
	Pose  string
	Value float64
}

// pendingCurve is a curve Bind created for settings that had none. It is
// installed only once the bind succeeds.
type pendingCurve struct {
	settings *InterpolationSettings
	mapping  *curve.Mapping
}

// Bind validates the inputs and poses, captures the recorded pose data,
// registers one weight sink entry per pose and publishes the initial
// weights. On failure nothing is registered and the interpolator stays
// unbound. Binding an already bound interpolator is a no-op.
func (ip *Interpolator) Bind(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if ip.snap != nil {
		ip.logger.Debug("already bound")
		return nil
	}

	inputs, err := ip.enabledInputs()
	if err != nil {
		return err
	}
	if err := ip.validatePoses(); err != nil {
		return err
	}

	data := make([]engine.InputData, len(inputs))
	bound := make([]boundInput, len(inputs))
	for i, in := range inputs {
		mats := make([]Mat4, len(ip.poses))
		for j, p := range ip.poses {
			d, ok := p.DataFor(in.handle)
			if !ok {
				return fmt.Errorf("%w: no data for input %q", &InvalidPoseError{Name: p.name}, in.Bone)
			}
			mats[j] = d.Matrix
		}
		data[i] = engine.InputData{Name: in.Bone, Spec: in.spec(), Matrices: mats}
		bound[i] = boundInput{name: in.Bone, armature: in.Armature, bone: in.Bone}
	}

	params := make([]engine.PoseParams, len(ip.poses))
	var created []pendingCurve
	for i, p := range ip.poses {
		s := p.effectiveSettings(&ip.settings)
		c, isNew := s.resolve(ip.config.CurveStore)
		if isNew {
			created = append(created, pendingCurve{settings: s, mapping: c})
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: pose %q: %w", ErrInvalidCurve, p.name, err)
		}
		params[i] = engine.PoseParams{
			Name:     p.name,
			Curve:    c,
			RangeMin: p.RangeMin,
			RangeMax: p.RangeMax,
			Clamp:    p.Clamp,
		}
	}

	snap, err := engine.Build(data, params, ip.config.EnableParallel)
	if err != nil {
		var empty *engine.EmptyInputError
		if errors.As(err, &empty) {
			return fmt.Errorf("bind %q: %w: %w", ip.name, &InvalidInputError{Name: empty.Input}, err)
		}
		return fmt.Errorf("bind %q: %w", ip.name, err)
	}

	weights, err := ip.compute(ctx, snap, bound)
	if err != nil {
		return err
	}
	if err := ip.publish(snap, weights); err != nil {
		ip.host.Weights.RemoveEntries(ip.entryPrefix())
		return err
	}

	for _, pc := range created {
		pc.settings.adopt(pc.mapping)
	}
	ip.snap, ip.bound = snap, bound
	ip.logger.Info("bound",
		"inputs", snap.InputCount(),
		"poses", snap.PoseCount(),
		"channels", snap.Width(),
		"parallel", ip.config.EnableParallel)
	for i := range snap.PoseCount() {
		ip.logger.Debug("pose radius", "pose", snap.Pose(i).Name, "radius", snap.Radius(i))
	}
	return nil
}

// Evaluate reads the live bone transforms, computes every pose weight,
// publishes the weights to the sink and returns them in pose order.
func (ip *Interpolator) Evaluate(ctx context.Context) ([]Weight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ip.mu.RLock()
	defer ip.mu.RUnlock()
	if ip.snap == nil {
		return nil, ErrNotBound
	}

	weights, err := ip.compute(ctx, ip.snap, ip.bound)
	if err != nil {
		return nil, err
	}
	if err := ip.publish(ip.snap, weights); err != nil {
		return nil, err
	}

	out := make([]Weight, len(weights))
	for i, w := range weights {
		out[i] = Weight{Pose: ip.snap.Pose(i).Name, Value: w}
	}
	ip.logger.Debug("evaluated", "weights", len(out))
	return out, nil
}

// Unbind removes the interpolator's weight sink entries and drops the bound
// state. Unbinding an unbound interpolator is a no-op.
func (ip *Interpolator) Unbind(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ip.mu.Lock()
	defer ip.mu.Unlock()
	if ip.snap == nil {
		return nil
	}
	n := ip.host.Weights.RemoveEntries(ip.entryPrefix())
	ip.snap, ip.bound = nil, nil
	ip.logger.Info("unbound", "entries_removed", n)
	return nil
}

// enabledInputs checks that every input resolves and returns the enabled
// ones.
func (ip *Interpolator) enabledInputs() ([]*Input, error) {
	var out []*Input
	for _, in := range ip.inputs {
		if !in.IsValid(ip.host.Transforms) {
			return nil, &InvalidInputError{Name: in.Bone}
		}
		if in.IsEnabled() {
			out = append(out, in)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoValidInputs
	}
	return out, nil
}

func (ip *Interpolator) validatePoses() error {
	for _, p := range ip.poses {
		if !p.IsValid(ip.host.ShapeKeys) {
			return &InvalidPoseError{Name: p.name}
		}
	}
	if len(ip.poses) < 2 {
		return fmt.Errorf("%w: need at least 2, have %d", ErrNoValidPoses, len(ip.poses))
	}
	return nil
}

func (ip *Interpolator) compute(ctx context.Context, snap *engine.Snapshot, bound []boundInput) ([]float64, error) {
	live := make([]Mat4, len(bound))
	for i, b := range bound {
		m, ok := ip.host.Transforms.LocalMatrix(b.armature, b.bone)
		if !ok {
			return nil, &InvalidInputError{Name: b.name}
		}
		live[i] = m
	}
	return snap.Evaluate(ctx, live)
}

func (ip *Interpolator) publish(snap *engine.Snapshot, weights []float64) error {
	for i, w := range weights {
		name := snap.Pose(i).Name
		if err := ip.host.Weights.SetWeight(ip.entryID(name), name, w); err != nil {
			return fmt.Errorf("publish weight for %q: %w", name, err)
		}
	}
	return nil
}

func (ip *Interpolator) entryPrefix() string { return ip.handle + entrySeparator }

func (ip *Interpolator) entryID(pose string) string { return ip.entryPrefix() + pose }
