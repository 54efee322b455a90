package integrators

import "fmt"

// Heun integrates y' = f(x, y) with the improved Euler (Heun)
// predictor-corrector scheme:
//
//	predictor:  y* = y_i + h*f(x_i, y_i)
//	corrector:  y^(k) = y_i + (h/2)*(f(x_i, y_i) + f(x_{i+1}, y^(k-1)))
//
// The corrector is a fixed-point iteration on the trapezoidal rule: the slope
// at the step start is held fixed while the slope at the predicted point is
// re-evaluated against the refined value. Two trajectories are maintained per
// run, one applying a single correction per step and one applying the full
// iteration count, so callers can compare their convergence.
func Heun(f Field, x0, y0, h, xEnd float64, iterations int) ([]HeunPoint, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w (got h = %g)", ErrStepSize, h)
	}
	if xEnd <= x0 {
		return nil, fmt.Errorf("%w (got x0 = %g, xEnd = %g)", ErrInterval, x0, xEnd)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrIterations, iterations)
	}

	points := []HeunPoint{{X: x0, YSingle: y0, YIterated: y0}}
	x := x0
	ySingle, yIter := y0, y0

	for x < xEnd-boundaryEps {
		xNext := x + h

		next, err := heunStep(f, x, ySingle, h, 1)
		if err != nil {
			return nil, err
		}
		ySingle = next

		yIter, err = heunStep(f, x, yIter, h, iterations)
		if err != nil {
			return nil, err
		}

		x = xNext
		points = append(points, HeunPoint{X: x, YSingle: ySingle, YIterated: yIter})
	}
	return points, nil
}

// heunStep advances one step from (x, y), applying the corrector the given
// number of times.
func heunStep(f Field, x, y, h float64, iterations int) (float64, error) {
	k1, err := f.Eval(x, y)
	if err != nil {
		return 0, err
	}

	xNext := x + h
	predicted := y + h*k1

	k2, err := f.Eval(xNext, predicted)
	if err != nil {
		return 0, err
	}
	corrected := y + (h/2)*(k1+k2)

	// Further passes refine against the previous correction; k1 stays fixed.
	for pass := 1; pass < iterations; pass++ {
		k2, err = f.Eval(xNext, corrected)
		if err != nil {
			return 0, err
		}
		corrected = y + (h/2)*(k1+k2)
	}
	return corrected, nil
}
