package interpolator

import (
	"errors"
	"fmt"
)

// Common errors returned by the interpolator.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid interpolator configuration")

	// ErrInvalidInput indicates an input whose bone does not resolve.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoValidInputs indicates that no input has any channel enabled.
	ErrNoValidInputs = errors.New("no enabled inputs")

	// ErrInvalidPose indicates a pose whose shape key does not resolve.
	ErrInvalidPose = errors.New("invalid pose")

	// ErrNoValidPoses indicates fewer than two poses at bind time.
	ErrNoValidPoses = errors.New("no poses defined")

	// ErrStructuralChangeWhileBound is returned by input and pose mutators
	// while the interpolator is bound.
	ErrStructuralChangeWhileBound = errors.New("structural change while bound")

	// ErrDuplicateHandle indicates an input handle already in use.
	ErrDuplicateHandle = errors.New("duplicate handle")

	// ErrDuplicateName indicates a pose or interpolator name already in use.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotBound is returned by Evaluate on an unbound interpolator.
	ErrNotBound = errors.New("interpolator not bound")

	// ErrUnknownInput indicates a handle that names no input.
	ErrUnknownInput = errors.New("unknown input")

	// ErrUnknownPose indicates a name that names no pose.
	ErrUnknownPose = errors.New("unknown pose")

	// ErrUnknownInterpolator indicates a name or index that names no
	// interpolator in a registry.
	ErrUnknownInterpolator = errors.New("unknown interpolator")

	// ErrNoPreset indicates an interpolation kind without a curve preset.
	ErrNoPreset = errors.New("no curve preset")

	// ErrInvalidCurve indicates malformed curve control points.
	ErrInvalidCurve = errors.New("invalid curve")
)

// InvalidInputError reports an input that failed validation.
type InvalidInputError struct {
	Name string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidInput, e.Name)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InvalidPoseError reports a pose that failed validation.
type InvalidPoseError struct {
	Name string
}

func (e *InvalidPoseError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidPose, e.Name)
}

func (e *InvalidPoseError) Unwrap() error { return ErrInvalidPose }
