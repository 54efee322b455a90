package integrators

import "errors"

// Parameter precondition errors. Callers are expected to validate inputs
// before invoking an integrator; these fire anyway, naming the violated
// constraint.
var (
	// ErrStepSize indicates a step size h <= 0.
	ErrStepSize = errors.New("integrators: step size h must be positive")

	// ErrInterval indicates xEnd <= x0.
	ErrInterval = errors.New("integrators: xEnd must be greater than x0")

	// ErrIterations indicates a corrector iteration count < 1.
	ErrIterations = errors.New("integrators: corrector iterations must be at least 1")
)
