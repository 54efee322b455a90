package symath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/davigp/odelab/internal/symath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalAt(t *testing.T, src string, env map[string]float64) float64 {
	t.Helper()
	e, err := symath.Parse(src)
	require.NoError(t, err, "parse %q", src)
	v, err := symath.Eval(e, env)
	require.NoError(t, err, "eval %q", src)
	return v
}

func TestParse_Arithmetic(t *testing.T) {
	env := map[string]float64{"x": 2, "y": 3}

	assert.InDelta(t, 5, evalAt(t, "x + y", env), 1e-12)
	assert.InDelta(t, -1, evalAt(t, "x - y", env), 1e-12)
	assert.InDelta(t, 6, evalAt(t, "x * y", env), 1e-12)
	assert.InDelta(t, 2.0/3.0, evalAt(t, "x / y", env), 1e-12)
	assert.InDelta(t, 8, evalAt(t, "x^3", env), 1e-12)
	assert.InDelta(t, 8, evalAt(t, "x**3", env), 1e-12)
	assert.InDelta(t, 512, evalAt(t, "x^3^2", env), 1e-12, "power is right-associative")
	assert.InDelta(t, -4, evalAt(t, "-x^2", env), 1e-12)
	assert.InDelta(t, 0.25, evalAt(t, "x^-2", env), 1e-12)
	assert.InDelta(t, 14, evalAt(t, "x + 4*y", env), 1e-12)
	assert.InDelta(t, 10, evalAt(t, "(x + y) * x", env), 1e-12)
}

func TestParse_FunctionsAndConstants(t *testing.T) {
	env := map[string]float64{"x": 0.5, "y": 5}

	assert.InDelta(t, math.Sin(0.5)*5, evalAt(t, "sin(x)*y", env), 1e-12)
	assert.InDelta(t, math.Exp(0.5), evalAt(t, "exp(x)", env), 1e-12)
	assert.InDelta(t, math.Pi, evalAt(t, "pi", env), 1e-12)
	assert.InDelta(t, math.E, evalAt(t, "e", env), 1e-12)
	assert.InDelta(t, math.Sqrt(5), evalAt(t, "sqrt(y)", env), 1e-12)
	assert.InDelta(t, math.Log(5), evalAt(t, "log(y)", env), 1e-12)
	assert.InDelta(t, math.Tan(0.5), evalAt(t, "tan(x)", env), 1e-12)
	assert.InDelta(t, math.Cos(0.5), evalAt(t, "cos(x)", env), 1e-12)
	// e^x via the named constant, not the exp function.
	assert.InDelta(t, math.Exp(0.5), evalAt(t, "e^x", env), 1e-12)
}

func TestParse_NumericLiterals(t *testing.T) {
	env := map[string]float64{}

	assert.InDelta(t, 2.5, evalAt(t, "2.5", env), 1e-12)
	assert.InDelta(t, 0.5, evalAt(t, ".5", env), 1e-12)
	assert.InDelta(t, 250, evalAt(t, "2.5e2", env), 1e-12)
	assert.InDelta(t, 0.025, evalAt(t, "2.5e-2", env), 1e-12)
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"x +",
		"(x + y",
		"x + * y",
		"foo(x)",
		"2..5",
		"x $ y",
	}
	for _, src := range cases {
		_, err := symath.Parse(src)
		require.Error(t, err, "expected parse failure for %q", src)
		assert.True(t, errors.Is(err, symath.ErrParse), "error for %q should wrap ErrParse", src)

		var perr *symath.ParseError
		require.ErrorAs(t, err, &perr)
		assert.GreaterOrEqual(t, perr.Pos, 0)
	}
}

func TestParse_FreeVars(t *testing.T) {
	e, err := symath.Parse("x + sin(y) + pi*z")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, symath.SortedVars(e))
}

func TestSimplify_Display(t *testing.T) {
	cases := map[string]string{
		"x + x":     "2*x",
		"x * x":     "x^2",
		"x + 0":     "x",
		"1 * y":     "y",
		"x - x":     "0",
		"2 + 3":     "5",
		"x / y":     "x/y",
		"x^1":       "x",
		"-(x + y)":  "-x - y",
		"exp(0)":    "1",
		"log(e)":    "1",
		"sqrt(4)":   "2",
		"x^(1/2)":   "sqrt(x)",
		"2*x + 3*x": "5*x",
	}
	for src, want := range cases {
		e, err := symath.Parse(src)
		require.NoError(t, err, "parse %q", src)
		assert.Equal(t, want, e.String(), "display of %q", src)
	}
}

func TestSubstitute(t *testing.T) {
	e, err := symath.Parse("x^2 + y")
	require.NoError(t, err)

	at := symath.Substitute(symath.Substitute(e, "x", symath.Num(3)), "y", symath.Num(4))
	n, ok := at.(*symath.Number)
	require.True(t, ok, "full substitution should fold to a number, got %s", at)
	assert.InDelta(t, 13, n.Val, 1e-12)
}

func TestEval_DomainErrors(t *testing.T) {
	cases := map[string]map[string]float64{
		"1/x":     {"x": 0},
		"log(x)":  {"x": -1},
		"sqrt(x)": {"x": -4},
	}
	for src, env := range cases {
		e, err := symath.Parse(src)
		require.NoError(t, err)
		_, err = symath.Eval(e, env)
		assert.Error(t, err, "expected domain error for %q at %v", src, env)
	}
}
