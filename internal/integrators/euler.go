package integrators

import "fmt"

// Euler integrates y' = f(x, y) from (x0, y0) to xEnd with fixed step h
// using the explicit Euler scheme y_{i+1} = y_i + h*f(x_i, y_i).
// The returned trajectory starts with the seed point and has strictly
// increasing x. An evaluation failure of f aborts the whole integration.
func Euler(f Field, x0, y0, h, xEnd float64) ([]Point, error) {
	if h <= 0 {
		return nil, fmt.Errorf("%w (got h = %g)", ErrStepSize, h)
	}
	if xEnd <= x0 {
		return nil, fmt.Errorf("%w (got x0 = %g, xEnd = %g)", ErrInterval, x0, xEnd)
	}

	points := []Point{{X: x0, Y: y0}}
	x, y := x0, y0

	for x < xEnd-boundaryEps {
		slope, err := f.Eval(x, y)
		if err != nil {
			return nil, err
		}
		y += h * slope
		x += h
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
