package interpolator

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Registry is an ordered collection of interpolators sharing one host, such
// as all the interpolators driving the shape keys of one mesh.
type Registry struct {
	mu     sync.RWMutex
	config Config
	host   Host
	items  []*Interpolator
}

// NewRegistry creates an empty registry. The config is used as the template
// for every interpolator it creates; its Name is ignored.
func NewRegistry(config *Config, host Host) (*Registry, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}
	return &Registry{config: *config, host: host}, nil
}

// New creates an empty interpolator. The name gets a numeric suffix if it is
// already taken.
func (r *Registry) New(name string) (*Interpolator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		name = DefaultName
	}
	config := r.config
	config.Name = uniqueName(name, func(n string) bool { return r.index(n) >= 0 })
	ip, err := New(&config, r.host)
	if err != nil {
		return nil, err
	}
	r.items = append(r.items, ip)
	return ip, nil
}

// NewWithRest creates an interpolator holding a single "Rest" pose.
func (r *Registry) NewWithRest(name string) (*Interpolator, error) {
	ip, err := r.New(name)
	if err != nil {
		return nil, err
	}
	if _, err := ip.AddPose(RestPoseName); err != nil {
		return nil, err
	}
	return ip, nil
}

// Get returns the interpolator at index i.
func (r *Registry) Get(i int) (*Interpolator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.items) {
		return nil, false
	}
	return r.items[i], true
}

// Find returns the interpolator with the given name.
func (r *Registry) Find(name string) (*Interpolator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(name)
	if i < 0 {
		return nil, false
	}
	return r.items[i], true
}

// Rename renames an interpolator; names are unique within the registry.
func (r *Registry) Rename(oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(oldName)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownInterpolator, oldName)
	}
	if newName == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if j := r.index(newName); j >= 0 && j != i {
		return fmt.Errorf("%w: interpolator %q", ErrDuplicateName, newName)
	}
	r.items[i].setName(newName)
	return nil
}

// Remove unbinds an interpolator, deletes its curves from the curve store
// and drops it from the registry.
func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownInterpolator, name)
	}
	ip := r.items[i]
	if err := ip.Unbind(ctx); err != nil {
		return err
	}
	ip.dropCurves()
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// Move moves the interpolator at index from to index to.
func (r *Registry) Move(from, to int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !move(r.items, from, to) {
		return fmt.Errorf("%w: index %d to %d out of range", ErrUnknownInterpolator, from, to)
	}
	return nil
}

// Len returns the number of interpolators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// All returns the interpolators in order.
func (r *Registry) All() []*Interpolator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// BindAll binds every interpolator, stopping at the first failure.
func (r *Registry) BindAll(ctx context.Context) error {
	for _, ip := range r.All() {
		if err := ip.Bind(ctx); err != nil {
			return fmt.Errorf("%s: %w", ip.Name(), err)
		}
	}
	return nil
}

// EvaluateAll evaluates every bound interpolator and returns the weights by
// interpolator name.
func (r *Registry) EvaluateAll(ctx context.Context) (map[string][]Weight, error) {
	out := make(map[string][]Weight)
	for _, ip := range r.All() {
		if !ip.IsBound() {
			continue
		}
		ws, err := ip.Evaluate(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ip.Name(), err)
		}
		out[ip.Name()] = ws
	}
	return out, nil
}

// UnbindAll unbinds every interpolator.
func (r *Registry) UnbindAll(ctx context.Context) error {
	for _, ip := range r.All() {
		if err := ip.Unbind(ctx); err != nil {
			return fmt.Errorf("%s: %w", ip.Name(), err)
		}
	}
	return nil
}

func (r *Registry) index(name string) int {
	return slices.IndexFunc(r.items, func(ip *Interpolator) bool { return ip.Name() == name })
}
