package exact

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/davigp/odelab/internal/symath"
)

func trySolve(t *testing.T, src string, x0, y0 float64) (*Solution, bool) {
	t.Helper()
	return New().TrySolve(context.Background(), src, x0, y0)
}

func TestSolve_Exponential(t *testing.T) {
	sol, ok := trySolve(t, "y", 0, 1)
	if !ok {
		t.Fatal("expected a closed form for y' = y")
	}
	if sol.Display() != "exp(x)" {
		t.Errorf("expected display exp(x), got %q", sol.Display())
	}
	for x := 0.0; x <= 1.0; x += 0.1 {
		if got, want := sol.Eval(x), math.Exp(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("y(%g) = %g, want %g", x, got, want)
		}
	}
}

func TestSolve_ExponentialDecay(t *testing.T) {
	sol, ok := trySolve(t, "-2*y", 0, 3)
	if !ok {
		t.Fatal("expected a closed form for y' = -2*y")
	}
	for x := 0.0; x <= 2.0; x += 0.25 {
		want := 3 * math.Exp(-2*x)
		if got := sol.Eval(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("y(%g) = %g, want %g", x, got, want)
		}
	}
}

func TestSolve_DirectIntegration(t *testing.T) {
	// y' = x, y(1) = 2  =>  y = x^2/2 + 3/2
	sol, ok := trySolve(t, "x", 1, 2)
	if !ok {
		t.Fatal("expected a closed form for y' = x")
	}
	for x := -1.0; x <= 3.0; x += 0.5 {
		want := x*x/2 + 1.5
		if got := sol.Eval(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("y(%g) = %g, want %g", x, got, want)
		}
	}
}

func TestSolve_SeparablePower(t *testing.T) {
	// y' = x*y^2, y(0) = 1  =>  y = 1/(1 - x^2/2)
	sol, ok := trySolve(t, "x*y^2", 0, 1)
	if !ok {
		t.Fatal("expected a closed form for y' = x*y^2")
	}
	for _, x := range []float64{0, 0.2, 0.5, 1.0} {
		want := 1 / (1 - x*x/2)
		if got := sol.Eval(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("y(%g) = %g, want %g", x, got, want)
		}
	}
}

func TestSolve_EquilibriumBranch(t *testing.T) {
	sol, ok := trySolve(t, "y", 0, 0)
	if !ok {
		t.Fatal("expected the zero solution for y' = y, y(0) = 0")
	}
	if got := sol.Eval(5); got != 0 {
		t.Errorf("expected y identically 0, got y(5) = %g", got)
	}
}

func TestSolve_NoClosedForm(t *testing.T) {
	cases := []string{
		"x + y",    // needs integration by parts
		"sin(y)",   // non-polynomial in y
		"x*y + y^2", // Riccati-like
		"exp(y)",
	}
	for _, src := range cases {
		if _, ok := trySolve(t, src, 0, 1); ok {
			t.Errorf("expected no closed form for %q", src)
		}
	}
}

func TestSolve_BadInputIsNotAnError(t *testing.T) {
	if _, ok := trySolve(t, "x +", 0, 1); ok {
		t.Error("malformed input must degrade to no solution")
	}
	if _, ok := trySolve(t, "x + z", 0, 1); ok {
		t.Error("foreign symbols must degrade to no solution")
	}
}

func TestSolve_TimeoutAbandonsWorker(t *testing.T) {
	slow := func(rhs symath.Expr, x0, y0 float64) ([]symath.Expr, bool) {
		time.Sleep(5 * time.Second)
		return []symath.Expr{symath.Num(1)}, true
	}

	o := New(WithSolver(slow), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, ok := o.TrySolve(context.Background(), "y", 0, 1)
	elapsed := time.Since(start)

	if ok {
		t.Error("timed-out solve must report no solution")
	}
	if elapsed > time.Second {
		t.Errorf("timeout not enforced: took %v", elapsed)
	}
}

func TestSolve_PanickingSolverDegrades(t *testing.T) {
	panicky := func(rhs symath.Expr, x0, y0 float64) ([]symath.Expr, bool) {
		panic("pathological expression")
	}

	o := New(WithSolver(panicky), WithTimeout(time.Second))
	if _, ok := o.TrySolve(context.Background(), "y", 0, 1); ok {
		t.Error("panicking solver must report no solution")
	}
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := func(rhs symath.Expr, x0, y0 float64) ([]symath.Expr, bool) {
		time.Sleep(time.Second)
		return nil, false
	}
	o := New(WithSolver(blocked))
	if _, ok := o.TrySolve(ctx, "y", 0, 1); ok {
		t.Error("cancelled context must report no solution")
	}
}

func TestSolution_NaNOutsideDomain(t *testing.T) {
	// y' = x*y^2 from (0, 1) blows up at x = sqrt(2); at the pole the
	// evaluator must yield NaN, not fail.
	sol, ok := trySolve(t, "x*y^2", 0, 1)
	if !ok {
		t.Fatal("expected a closed form")
	}
	if v := sol.Eval(math.Sqrt2); !math.IsNaN(v) {
		t.Errorf("expected NaN at the pole, got %g", v)
	}
}

func TestSolve_FirstCandidateDeterministic(t *testing.T) {
	multi := func(rhs symath.Expr, x0, y0 float64) ([]symath.Expr, bool) {
		return []symath.Expr{symath.Sym("x"), symath.Num(7)}, true
	}
	o := New(WithSolver(multi))
	sol, ok := o.TrySolve(context.Background(), "y", 0, 1)
	if !ok {
		t.Fatal("expected a solution")
	}
	if sol.Display() != "x" {
		t.Errorf("expected the first candidate, got %q", sol.Display())
	}
}
