package exact

import (
	"math"

	"github.com/davigp/odelab/internal/symath"
)

// SolveFirstOrder is the built-in symbolic solve capability. It recognizes
// three classes of first-order equations:
//
//   - directly integrable:  y' = g(x)
//   - linear:               y' = a(x)*y + b(x)   (integrating factor)
//   - separable power:      y' = g(x)*y^n, n >= 2
//
// Anything else, including equations whose derivation needs an
// antiderivative outside the kernel's pattern table, reports no closed form.
func SolveFirstOrder(rhs symath.Expr, x0, y0 float64) ([]symath.Expr, bool) {
	// y' = g(x): integrate directly, y = y0 + G(x) - G(x0).
	if !symath.DependsOn(rhs, "y") {
		anti, ok := symath.Integrate(rhs, "x")
		if !ok {
			return nil, false
		}
		atX0, err := symath.Eval(anti, map[string]float64{"x": x0})
		if err != nil || !isFinite(atX0) {
			return nil, false
		}
		form := symath.Add(symath.Num(y0-atX0), anti)
		return []symath.Expr{form}, true
	}

	coeffs, ok := symath.PolyCoeffs(rhs, "y")
	if !ok {
		return nil, false
	}
	for deg, c := range coeffs {
		if deg > 0 && symath.DependsOn(c, "y") {
			return nil, false
		}
	}

	if deg, g, single := singleDegree(coeffs); single && deg >= 2 {
		return solveSeparablePower(g, deg, x0, y0)
	}

	a := coeffs[1]
	b := coeffs[0]
	if a == nil {
		return nil, false
	}
	for deg := range coeffs {
		if deg > 1 {
			return nil, false
		}
	}
	if b == nil {
		b = symath.Num(0)
	}

	// Homogeneous linear y' = a(x)*y: y = y0 * exp(A(x) - A(x0)).
	anti, ok := symath.Integrate(a, "x")
	if !ok {
		return nil, false
	}
	aAtX0, err := symath.Eval(anti, map[string]float64{"x": x0})
	if err != nil || !isFinite(aAtX0) {
		return nil, false
	}

	if isZero(b) {
		if y0 == 0 {
			return []symath.Expr{symath.Num(0)}, true
		}
		form := symath.Mul(
			symath.Num(y0),
			symath.Fn("exp", symath.Add(anti, symath.Num(-aAtX0))),
		)
		return []symath.Expr{form}, true
	}

	// Inhomogeneous linear: with A = integral of a,
	//   y = e^A * (G(x) + C),  G = integral of e^{-A} b,
	//   C = y0*e^{-A(x0)} - G(x0).
	mu := symath.Fn("exp", symath.Neg(anti))
	g, ok := symath.Integrate(symath.Simplify(symath.Mul(mu, b)), "x")
	if !ok {
		return nil, false
	}
	gAtX0, err := symath.Eval(g, map[string]float64{"x": x0})
	if err != nil || !isFinite(gAtX0) {
		return nil, false
	}
	c := y0*math.Exp(-aAtX0) - gAtX0

	form := symath.Mul(
		symath.Fn("exp", anti),
		symath.Add(g, symath.Num(c)),
	)
	return []symath.Expr{form}, true
}

// solveSeparablePower handles y' = g(x)*y^n for integer n >= 2:
//
//	y = ((1-n) * (G(x) + C))^(1/(1-n)),  G = integral of g,
//	C = y0^(1-n)/(1-n) - G(x0).
func solveSeparablePower(g symath.Expr, n int, x0, y0 float64) ([]symath.Expr, bool) {
	if symath.DependsOn(g, "y") {
		return nil, false
	}
	if y0 == 0 {
		// y == 0 is the equilibrium branch.
		return []symath.Expr{symath.Num(0)}, true
	}

	anti, ok := symath.Integrate(g, "x")
	if !ok {
		return nil, false
	}
	gAtX0, err := symath.Eval(anti, map[string]float64{"x": x0})
	if err != nil || !isFinite(gAtX0) {
		return nil, false
	}

	m := 1 - float64(n)
	c := math.Pow(y0, m)/m - gAtX0

	form := symath.Pow(
		symath.Mul(symath.Num(m), symath.Add(anti, symath.Num(c))),
		symath.Num(1/m),
	)
	return []symath.Expr{form}, true
}

// singleDegree reports whether coeffs has exactly one entry, returning it.
func singleDegree(coeffs map[int]symath.Expr) (int, symath.Expr, bool) {
	if len(coeffs) != 1 {
		return 0, nil, false
	}
	for deg, c := range coeffs {
		return deg, c, true
	}
	return 0, nil, false
}

func isZero(e symath.Expr) bool {
	n, ok := symath.Simplify(e).(*symath.Number)
	return ok && n.Val == 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
