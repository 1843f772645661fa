package interpolator

import (
	"context"
	"errors"
)

// MemoryHost bundles the in-memory host adapters.
type MemoryHost struct {
	Armature  *MemoryArmature
	ShapeKeys *MemoryShapeKeys
	Sink      *MemorySink
	Curves    *MemoryCurveStore
}

// NewMemoryHost returns empty in-memory adapters.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		Armature:  NewMemoryArmature(),
		ShapeKeys: NewMemoryShapeKeys(),
		Sink:      NewMemorySink(),
		Curves:    NewMemoryCurveStore(),
	}
}

// Host returns the adapters as a Host.
func (h *MemoryHost) Host() Host {
	return Host{Transforms: h.Armature, ShapeKeys: h.ShapeKeys, Weights: h.Sink}
}

// NewSimple creates an interpolator with the given name and default
// settings.
func NewSimple(name string, host Host) (*Interpolator, error) {
	config := DefaultConfig()
	if name != "" {
		config.Name = name
	}
	return New(config, host)
}

// NewInMemory creates an interpolator backed by fresh in-memory adapters,
// with curves persisted to the memory curve store.
func NewInMemory(name string) (*Interpolator, *MemoryHost, error) {
	h := NewMemoryHost()
	config := DefaultConfig()
	if name != "" {
		config.Name = name
	}
	config.CurveStore = h.Curves
	ip, err := New(config, h.Host())
	if err != nil {
		return nil, nil, err
	}
	return ip, h, nil
}

// EvaluateOnce returns the current weights, binding for the duration of the
// call if the interpolator is not already bound.
func EvaluateOnce(ctx context.Context, ip *Interpolator) (weights []Weight, err error) {
	if ip.IsBound() {
		return ip.Evaluate(ctx)
	}
	if err := ip.Bind(ctx); err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, ip.Unbind(context.WithoutCancel(ctx)))
	}()
	return ip.Evaluate(ctx)
}

// WeightMap indexes weights by pose name.
func WeightMap(weights []Weight) map[string]float64 {
	m := make(map[string]float64, len(weights))
	for _, w := range weights {
		m[w.Pose] = w.Value
	}
	return m
}
