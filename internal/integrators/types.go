// Package integrators provides fixed-step numerical methods for first-order
// initial value problems y' = f(x, y).
//
// Both integrators validate their parameters, produce the full trajectory
// including the seed point, and abort on the first evaluation failure of the
// right-hand side; a partial trajectory is never returned silently.
package integrators

// Field is the right-hand side f(x, y) of the ODE. Evaluation may fail at
// specific points (domain errors); integrators propagate such failures
// unchanged.
type Field interface {
	Eval(x, y float64) (float64, error)
}

// Point is one step of a single-valued trajectory.
type Point struct {
	X, Y float64
}

// HeunPoint is one step of the predictor-corrector trajectory. YSingle is
// the value after exactly one correction; YIterated is the value after the
// configured number of corrector passes. Each column continues from its own
// previous value, so the two can be compared for fixed-point convergence.
type HeunPoint struct {
	X         float64
	YSingle   float64
	YIterated float64
}

// boundaryEps guards the loop condition against float accumulation emitting
// a spurious extra step at the right boundary.
const boundaryEps = 1e-9
