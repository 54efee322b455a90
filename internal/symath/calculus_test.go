package symath_test

import (
	"testing"

	"github.com/davigp/odelab/internal/symath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// antiderivative parses src, integrates in x, and checks the result
// numerically: F(b) - F(a) must match a trapezoid estimate of the integral.
func checkAntiderivative(t *testing.T, src string, a, b float64) {
	t.Helper()
	e, err := symath.Parse(src)
	require.NoError(t, err)

	anti, ok := symath.Integrate(e, "x")
	require.True(t, ok, "no antiderivative found for %q", src)

	fa, err := symath.Eval(anti, map[string]float64{"x": a})
	require.NoError(t, err)
	fb, err := symath.Eval(anti, map[string]float64{"x": b})
	require.NoError(t, err)

	const n = 20000
	h := (b - a) / n
	numeric := 0.0
	for i := 0; i <= n; i++ {
		v, err := symath.Eval(e, map[string]float64{"x": a + float64(i)*h})
		require.NoError(t, err)
		w := 1.0
		if i == 0 || i == n {
			w = 0.5
		}
		numeric += w * v * h
	}

	assert.InDelta(t, numeric, fb-fa, 1e-4, "definite integral of %q over [%g, %g]", src, a, b)
}

func TestIntegrate_Patterns(t *testing.T) {
	cases := []struct {
		src  string
		a, b float64
	}{
		{"3", 0, 2},
		{"x", 0, 2},
		{"x^2", 0, 2},
		{"x^2 + 2*x + 1", -1, 1},
		{"1/x", 1, 3},
		{"sin(x)", 0, 2},
		{"cos(2*x)", 0, 1},
		{"exp(x)", 0, 1},
		{"exp(-2*x)", 0, 1},
		{"e^x", 0, 1},
		{"sqrt(x)", 1, 4},
		{"(2*x + 1)^3", 0, 1},
		{"1/(2*x + 1)", 0, 1},
		{"tan(x)", 0, 1},
		{"2^x", 0, 2},
		{"pi * x", 0, 1},
	}
	for _, tc := range cases {
		checkAntiderivative(t, tc.src, tc.a, tc.b)
	}
}

func TestIntegrate_Unsupported(t *testing.T) {
	cases := []string{
		"x * exp(x)",   // integration by parts
		"sin(x^2)",     // non-linear argument
		"exp(x) / x",   // exponential integral
		"x^x",          // variable in base and exponent
		"log(sin(x))",  // nested non-linear
	}
	for _, src := range cases {
		e, err := symath.Parse(src)
		require.NoError(t, err)
		_, ok := symath.Integrate(e, "x")
		assert.False(t, ok, "expected no antiderivative for %q", src)
	}
}

func TestIntegrate_ConstantInOtherVariable(t *testing.T) {
	e, err := symath.Parse("y")
	require.NoError(t, err)
	anti, ok := symath.Integrate(e, "x")
	require.True(t, ok)
	assert.Equal(t, "y*x", anti.String())
}

func TestPolyCoeffs_Linear(t *testing.T) {
	e, err := symath.Parse("2*y + x^2")
	require.NoError(t, err)

	coeffs, ok := symath.PolyCoeffs(e, "y")
	require.True(t, ok)

	assert.Equal(t, "2", coeffs[1].String())
	assert.Equal(t, "x^2", coeffs[0].String())
}

func TestPolyCoeffs_PurePower(t *testing.T) {
	e, err := symath.Parse("x * y^2")
	require.NoError(t, err)

	coeffs, ok := symath.PolyCoeffs(e, "y")
	require.True(t, ok)
	require.Len(t, coeffs, 1)
	assert.Equal(t, "x", coeffs[2].String())
}

func TestPolyCoeffs_NotPolynomial(t *testing.T) {
	for _, src := range []string{"sin(y)", "exp(y)", "1/y", "y^x"} {
		e, err := symath.Parse(src)
		require.NoError(t, err)
		_, ok := symath.PolyCoeffs(e, "y")
		assert.False(t, ok, "expected PolyCoeffs failure for %q", src)
	}
}
