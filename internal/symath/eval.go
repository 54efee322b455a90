package symath

import (
	"fmt"
	"math"
)

// Eval computes the numeric value of e with variables bound by env.
// Domain violations (division by zero, log/sqrt outside the real domain)
// and unbound variables are reported as errors; non-finite intermediate
// values propagate to the caller unchanged.
func Eval(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Number:
		return v.Val, nil
	case *Constant:
		return v.Val, nil
	case *Symbol:
		val, ok := env[v.Name]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", v.Name)
		}
		return val, nil
	case *Sum:
		total := 0.0
		for _, t := range v.Terms {
			tv, err := Eval(t, env)
			if err != nil {
				return 0, err
			}
			total += tv
		}
		return total, nil
	case *Product:
		total := 1.0
		for _, f := range v.Factors {
			fv, err := Eval(f, env)
			if err != nil {
				return 0, err
			}
			total *= fv
		}
		return total, nil
	case *Power:
		base, err := Eval(v.Base, env)
		if err != nil {
			return 0, err
		}
		exp, err := Eval(v.Exp, env)
		if err != nil {
			return 0, err
		}
		if base == 0 && exp < 0 {
			return 0, fmt.Errorf("division by zero")
		}
		r := math.Pow(base, exp)
		if math.IsNaN(r) {
			return 0, fmt.Errorf("non-real result for %g^%g", base, exp)
		}
		return r, nil
	case *Call:
		arg, err := Eval(v.Arg, env)
		if err != nil {
			return 0, err
		}
		switch v.Fn {
		case "log":
			if arg <= 0 {
				return 0, fmt.Errorf("log of non-positive value %g", arg)
			}
		case "sqrt":
			if arg < 0 {
				return 0, fmt.Errorf("square root of negative value %g", arg)
			}
		}
		fn, ok := funcs[v.Fn]
		if !ok {
			return 0, fmt.Errorf("unknown function %q", v.Fn)
		}
		return fn(arg), nil
	default:
		return 0, fmt.Errorf("cannot evaluate %T", e)
	}
}
