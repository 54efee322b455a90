// Package exact attempts to derive a closed-form solution y(x) for an
// initial value problem y' = f(x, y), y(x0) = y0.
//
// The symbolic search runs on a worker goroutine under a hard wall-clock
// budget. A search that exceeds the budget is abandoned and its eventual
// result discarded; "no closed form" is a normal outcome, never an error.
package exact

import (
	"context"
	"math"
	"time"

	"github.com/davigp/odelab/internal/symath"
)

// DefaultTimeout bounds one symbolic solve attempt.
const DefaultTimeout = 3 * time.Second

// Solution is an immutable closed-form solution y(x).
type Solution struct {
	form    symath.Expr
	display string
}

// Display returns the human-readable form of y(x).
func (s *Solution) Display() string { return s.display }

// Eval computes y at x. Points outside the solution's real domain yield NaN
// rather than an error, so samplers can mark individual points unavailable.
func (s *Solution) Eval(x float64) float64 {
	v, err := symath.Eval(s.form, map[string]float64{"x": x})
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// SolveFunc derives a closed form for y' = rhs with y(x0) = y0, returning
// candidate solutions in deterministic order, or ok=false when the equation
// is outside the solvable classes.
type SolveFunc func(rhs symath.Expr, x0, y0 float64) (candidates []symath.Expr, ok bool)

// Orchestrator wraps a symbolic solve capability with a wall-clock budget.
// The zero value is not usable; construct with New.
type Orchestrator struct {
	timeout time.Duration
	solve   SolveFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout overrides the solve budget.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithSolver replaces the symbolic solve capability.
func WithSolver(fn SolveFunc) Option {
	return func(o *Orchestrator) { o.solve = fn }
}

// New returns an orchestrator using the built-in first-order solver and the
// default timeout.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{timeout: DefaultTimeout, solve: SolveFirstOrder}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type solveOutcome struct {
	candidates []symath.Expr
	ok         bool
}

// TrySolve re-parses src symbolically and attempts a closed-form solution
// for y' = f(x, y), y(x0) = y0. It returns (nil, false) on parse failure,
// on solver failure or panic, when no closed form exists, and on timeout;
// all are the same non-error outcome for the caller.
func (o *Orchestrator) TrySolve(ctx context.Context, src string, x0, y0 float64) (*Solution, bool) {
	rhs, err := symath.Parse(src)
	if err != nil {
		return nil, false
	}
	for name := range symath.FreeVars(rhs) {
		if name != "x" && name != "y" {
			return nil, false
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// Buffered so an abandoned worker can still deliver and terminate.
	results := make(chan solveOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- solveOutcome{}
			}
		}()
		candidates, ok := o.solve(rhs, x0, y0)
		results <- solveOutcome{candidates: candidates, ok: ok}
	}()

	select {
	case out := <-results:
		if !out.ok || len(out.candidates) == 0 {
			return nil, false
		}
		// First candidate wins; the solver returns them in a fixed order.
		form := symath.Simplify(out.candidates[0])
		return &Solution{form: form, display: form.String()}, true
	case <-ctx.Done():
		return nil, false
	}
}
