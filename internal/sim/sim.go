// Package sim coordinates one simulation run: compile the expression, run
// the selected integrator(s), attempt the exact solution once, and sample it
// on the numeric x-grid. Each run produces a fresh, immutable Result; stage
// failures are isolated: an integration error ends the run, a failed exact
// attempt only means the result carries no comparison.
package sim

import (
	"context"
	"fmt"

	"github.com/davigp/odelab/internal/exact"
	"github.com/davigp/odelab/internal/expr"
	"github.com/davigp/odelab/internal/integrators"
)

// Method selects which integrators a run executes.
type Method string

const (
	MethodEuler Method = "euler"
	MethodHeun  Method = "heun"
	MethodBoth  Method = "both"
)

// ParseMethod maps user input to a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEuler, MethodHeun, MethodBoth:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown method %q (euler, heun, both)", s)
	}
}

// Params describes one initial value problem run. Immutable once a run
// starts.
type Params struct {
	Source     string
	X0, Y0     float64
	H          float64
	XEnd       float64
	Method     Method
	Iterations int
}

// Result aggregates one run. It is never mutated after Run returns;
// rendering and plotting collaborators only read it.
type Result struct {
	Params Params

	Euler []integrators.Point
	Heun  []integrators.HeunPoint

	// Exact holds the closed-form solution sampled at the numeric x-grid,
	// aligned index-for-index with the trajectory. Nil when no closed form
	// was found. Individual samples may be NaN outside the solution's
	// domain.
	Exact        []float64
	ExactDisplay string

	// Err is set when compilation or integration failed; the run carries no
	// trajectories in that case.
	Err string
}

// HasExact reports whether a closed-form comparison is available.
func (r *Result) HasExact() bool { return r.Exact != nil }

// Grid returns the x-values of the run's trajectory.
func (r *Result) Grid() []float64 {
	if len(r.Euler) > 0 {
		xs := make([]float64, len(r.Euler))
		for i, p := range r.Euler {
			xs[i] = p.X
		}
		return xs
	}
	xs := make([]float64, len(r.Heun))
	for i, p := range r.Heun {
		xs[i] = p.X
	}
	return xs
}

// Runner executes simulation runs. The zero value is not usable; construct
// with NewRunner.
type Runner struct {
	exact *exact.Orchestrator
}

// NewRunner returns a Runner backed by the given exact-solution
// orchestrator.
func NewRunner(orc *exact.Orchestrator) *Runner {
	return &Runner{exact: orc}
}

// Compile validates and compiles the expression of p. It is exposed so
// front-ends can validate a formula before collecting numeric parameters.
func (r *Runner) Compile(source string) (*expr.Function, error) {
	return expr.Compile(source)
}

// Run executes one full simulation: parse, integrate, attempt the exact
// solution, and sample it on the shared grid. It never returns an error;
// failures are captured in the Result.
func (r *Runner) Run(ctx context.Context, p Params) *Result {
	res := &Result{Params: p}

	f, err := expr.Compile(p.Source)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	switch p.Method {
	case MethodEuler:
		res.Euler, err = integrators.Euler(f, p.X0, p.Y0, p.H, p.XEnd)
	case MethodHeun:
		res.Heun, err = integrators.Heun(f, p.X0, p.Y0, p.H, p.XEnd, p.Iterations)
	case MethodBoth:
		res.Euler, err = integrators.Euler(f, p.X0, p.Y0, p.H, p.XEnd)
		if err == nil {
			res.Heun, err = integrators.Heun(f, p.X0, p.Y0, p.H, p.XEnd, p.Iterations)
		}
	default:
		err = fmt.Errorf("unknown method %q", p.Method)
	}
	if err != nil {
		res.Euler, res.Heun = nil, nil
		res.Err = err.Error()
		return res
	}

	// One exact attempt per run, sampled at exactly the numeric grid.
	if sol, ok := r.exact.TrySolve(ctx, p.Source, p.X0, p.Y0); ok {
		grid := res.Grid()
		samples := make([]float64, len(grid))
		for i, x := range grid {
			samples[i] = sol.Eval(x)
		}
		res.Exact = samples
		res.ExactDisplay = sol.Display()
	}

	return res
}

// SolveExactDense re-invokes the exact search and samples the solution on a
// dense n-point grid over [x0, xEnd]; plotting uses it for a smooth curve.
// It returns nil when no closed form is available.
func (r *Runner) SolveExactDense(ctx context.Context, p Params, n int) ([]float64, []float64) {
	sol, ok := r.exact.TrySolve(ctx, p.Source, p.X0, p.Y0)
	if !ok || n < 2 {
		return nil, nil
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	step := (p.XEnd - p.X0) / float64(n-1)
	for i := 0; i < n; i++ {
		xs[i] = p.X0 + float64(i)*step
		ys[i] = sol.Eval(xs[i])
	}
	return xs, ys
}
