package interpolator

import (
	"fmt"
	"io"
	"log/slog"
)

// Config holds interpolator configuration.
type Config struct {
	// Name is the display name of the interpolator.
	Name string

	// Logger receives bind and evaluation diagnostics.
	// Set to nil to discard them.
	Logger *slog.Logger

	// EnableParallel evaluates poses concurrently.
	// Worth enabling for interpolators with many poses or channels.
	EnableParallel bool

	// CurveStore persists curve mappings by handle. When nil, curves live
	// only in memory.
	CurveStore CurveStore
}

// DefaultConfig returns a configuration with the default name and
// sequential evaluation.
func DefaultConfig() *Config {
	return &Config{Name: DefaultName}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Host bundles the host application collaborators.
type Host struct {
	Transforms TransformSource
	ShapeKeys  ShapeKeys
	Weights    WeightSink
}

// Validate checks that every collaborator is set.
func (h Host) Validate() error {
	switch {
	case h.Transforms == nil:
		return fmt.Errorf("%w: transform source is required", ErrInvalidConfig)
	case h.ShapeKeys == nil:
		return fmt.Errorf("%w: shape keys are required", ErrInvalidConfig)
	case h.Weights == nil:
		return fmt.Errorf("%w: weight sink is required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
