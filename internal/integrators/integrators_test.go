package integrators

import (
	"errors"
	"math"
	"testing"
)

// fieldFunc adapts a plain function to the Field interface.
type fieldFunc func(x, y float64) (float64, error)

func (f fieldFunc) Eval(x, y float64) (float64, error) { return f(x, y) }

// exponential is y' = y, whose exact solution from (0, 1) is e^x.
var exponential = fieldFunc(func(x, y float64) (float64, error) { return y, nil })

func TestEuler_Exponential(t *testing.T) {
	points, err := Euler(exponential, 0, 1, 0.1, 1)
	if err != nil {
		t.Fatalf("euler failed: %v", err)
	}

	if len(points) != 11 {
		t.Fatalf("expected 11 points, got %d", len(points))
	}
	if points[0].X != 0 || points[0].Y != 1 {
		t.Errorf("seed point not preserved: got (%g, %g)", points[0].X, points[0].Y)
	}

	final := points[len(points)-1]
	if math.Abs(final.X-1.0) > 1e-9 {
		t.Errorf("final x should be 1.0, got %g", final.X)
	}
	// Euler at h=0.1 gives (1.1)^10 ~ 2.5937; the exact value is e ~ 2.71828.
	if math.Abs(final.Y-math.E) > 0.15 {
		t.Errorf("final y too far from e: got %g", final.Y)
	}
}

func TestEuler_FirstOrderConvergence(t *testing.T) {
	errorAt := func(h float64) float64 {
		points, err := Euler(exponential, 0, 1, h, 1)
		if err != nil {
			t.Fatalf("euler failed at h=%g: %v", h, err)
		}
		return math.Abs(points[len(points)-1].Y - math.E)
	}

	coarse := errorAt(0.1)
	fine := errorAt(0.01)
	finest := errorAt(0.001)

	if fine >= coarse {
		t.Errorf("error did not decrease: h=0.1 -> %g, h=0.01 -> %g", coarse, fine)
	}
	if finest >= fine {
		t.Errorf("error did not decrease: h=0.01 -> %g, h=0.001 -> %g", fine, finest)
	}
	// Order 1: halving-by-ten should shrink the error by roughly ten.
	if ratio := coarse / fine; ratio < 5 || ratio > 20 {
		t.Errorf("convergence ratio %g outside first-order range", ratio)
	}
}

func TestEuler_StrictlyIncreasingX(t *testing.T) {
	points, err := Euler(exponential, 0, 1, 0.3, 1)
	if err != nil {
		t.Fatalf("euler failed: %v", err)
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			t.Fatalf("x not strictly increasing at index %d", i)
		}
	}
}

func TestEuler_NoSpuriousBoundaryStep(t *testing.T) {
	// 0.1 accumulates float error; the loop guard must not emit an 11th step.
	points, err := Euler(exponential, 0, 1, 0.1, 1)
	if err != nil {
		t.Fatalf("euler failed: %v", err)
	}
	if got := len(points); got != 11 {
		t.Errorf("expected 11 points, got %d", got)
	}
}

func TestHeun_MoreAccurateThanEuler(t *testing.T) {
	eulerPoints, err := Euler(exponential, 0, 1, 0.1, 1)
	if err != nil {
		t.Fatalf("euler failed: %v", err)
	}
	heunPoints, err := Heun(exponential, 0, 1, 0.1, 1, 1)
	if err != nil {
		t.Fatalf("heun failed: %v", err)
	}

	eulerErr := math.Abs(eulerPoints[len(eulerPoints)-1].Y - math.E)
	heunErr := math.Abs(heunPoints[len(heunPoints)-1].YSingle - math.E)

	if heunErr > eulerErr {
		t.Errorf("heun error %g exceeds euler error %g at equal h", heunErr, eulerErr)
	}
}

func TestHeun_CorrectorFixedPointConvergence(t *testing.T) {
	one, err := Heun(exponential, 0, 1, 0.1, 1, 1)
	if err != nil {
		t.Fatalf("heun failed: %v", err)
	}
	five, err := Heun(exponential, 0, 1, 0.1, 1, 5)
	if err != nil {
		t.Fatalf("heun failed: %v", err)
	}

	finalOne := one[len(one)-1].YIterated
	finalFive := five[len(five)-1].YIterated

	// The refinement from iterating must be smaller than the first
	// correction itself.
	eulerPoints, _ := Euler(exponential, 0, 1, 0.1, 1)
	firstCorrection := math.Abs(one[len(one)-1].YSingle - eulerPoints[len(eulerPoints)-1].Y)
	refinement := math.Abs(finalFive - finalOne)

	if refinement >= firstCorrection {
		t.Errorf("corrector not contracting: refinement %g >= first correction %g",
			refinement, firstCorrection)
	}
}

func TestHeun_SingleEqualsIteratedAtOnePass(t *testing.T) {
	points, err := Heun(exponential, 0, 1, 0.1, 1, 1)
	if err != nil {
		t.Fatalf("heun failed: %v", err)
	}
	for i, p := range points {
		if p.YSingle != p.YIterated {
			t.Fatalf("columns diverge at index %d with one corrector pass", i)
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		h, x0, e float64
		iter     int
		sentinel error
	}{
		{"zero step", 0, 0, 1, 1, ErrStepSize},
		{"negative step", -0.1, 0, 1, 1, ErrStepSize},
		{"empty interval", 0.1, 1, 1, 1, ErrInterval},
		{"reversed interval", 0.1, 2, 1, 1, ErrInterval},
		{"zero iterations", 0.1, 0, 1, 0, ErrIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sentinel != ErrIterations {
				_, err := Euler(exponential, tt.x0, 1, tt.h, tt.e)
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("euler: expected %v, got %v", tt.sentinel, err)
				}
			}
			_, err := Heun(exponential, tt.x0, 1, tt.h, tt.e, tt.iter)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("heun: expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestEvalErrorAbortsIntegration(t *testing.T) {
	wall := 0.35
	failing := fieldFunc(func(x, y float64) (float64, error) {
		if x >= wall {
			return 0, errors.New("domain failure at the wall")
		}
		return y, nil
	})

	points, err := Euler(failing, 0, 1, 0.1, 1)
	if err == nil {
		t.Fatal("expected evaluation error to propagate")
	}
	if points != nil {
		t.Error("no partial trajectory may be returned on failure")
	}

	heunPoints, err := Heun(failing, 0, 1, 0.1, 1, 3)
	if err == nil {
		t.Fatal("expected evaluation error to propagate")
	}
	if heunPoints != nil {
		t.Error("no partial trajectory may be returned on failure")
	}
}

func BenchmarkEuler(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Euler(exponential, 0, 1, 0.001, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHeun5(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Heun(exponential, 0, 1, 0.001, 1, 5); err != nil {
			b.Fatal(err)
		}
	}
}
