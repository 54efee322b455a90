package symath

// Integrate returns an antiderivative of e with respect to the variable name,
// or false when no pattern applies. Supported patterns: anything free of the
// variable, termwise sums, constant factors, powers of a linear argument,
// and sin/cos/tan/exp of a linear argument. The additive constant is omitted.
func Integrate(e Expr, name string) (Expr, bool) {
	v := Sym(name)

	if !DependsOn(e, name) {
		return Mul(e, v), true
	}

	switch t := e.(type) {
	case *Symbol:
		// t == v here, since the free-variable case is handled above.
		return Mul(Num(0.5), Pow(v, Num(2))), true

	case *Sum:
		terms := make([]Expr, len(t.Terms))
		for i, term := range t.Terms {
			anti, ok := Integrate(term, name)
			if !ok {
				return nil, false
			}
			terms[i] = anti
		}
		return Add(terms...), true

	case *Product:
		var constant []Expr
		var varying []Expr
		for _, f := range t.Factors {
			if DependsOn(f, name) {
				varying = append(varying, f)
			} else {
				constant = append(constant, f)
			}
		}
		if len(varying) != 1 {
			return nil, false
		}
		anti, ok := Integrate(varying[0], name)
		if !ok {
			return nil, false
		}
		return Mul(append(constant, anti)...), true

	case *Power:
		if DependsOn(t.Exp, name) {
			return integrateExponential(t, name)
		}
		n, ok := t.Exp.(*Number)
		if !ok {
			return nil, false
		}
		slope, _, ok := linearIn(t.Base, name)
		if !ok {
			return nil, false
		}
		if n.Val == -1 {
			// 1/(a*v+b) -> log(a*v+b)/a
			return Div(Fn("log", t.Base), Num(slope)), true
		}
		// (a*v+b)^n -> (a*v+b)^(n+1) / (a*(n+1))
		return Div(Pow(t.Base, Num(n.Val+1)), Num(slope*(n.Val+1))), true

	case *Call:
		slope, _, ok := linearIn(t.Arg, name)
		if !ok {
			return nil, false
		}
		switch t.Fn {
		case "sin":
			return Div(Neg(Fn("cos", t.Arg)), Num(slope)), true
		case "cos":
			return Div(Fn("sin", t.Arg), Num(slope)), true
		case "tan":
			return Div(Neg(Fn("log", Fn("cos", t.Arg))), Num(slope)), true
		case "exp":
			return Div(Fn("exp", t.Arg), Num(slope)), true
		case "sqrt":
			// sqrt(a*v+b) -> (2/3)*(a*v+b)^(3/2)/a
			return Div(Mul(Num(2.0/3.0), Pow(t.Arg, Num(1.5))), Num(slope)), true
		default:
			return nil, false
		}
	}
	return nil, false
}

// integrateExponential handles c^(linear) for a numeric or named-constant
// base, most importantly e^(a*v+b).
func integrateExponential(p *Power, name string) (Expr, bool) {
	slope, _, ok := linearIn(p.Exp, name)
	if !ok {
		return nil, false
	}
	switch base := p.Base.(type) {
	case *Constant:
		if base.Name == "e" {
			return Div(p, Num(slope)), true
		}
		return nil, false
	case *Number:
		if base.Val <= 0 || base.Val == 1 {
			return nil, false
		}
		// c^(a*v+b) -> c^(a*v+b) / (a*log(c))
		return Div(p, Mul(Num(slope), Fn("log", base))), true
	default:
		return nil, false
	}
}

// linearIn decomposes e as slope*v + intercept with numeric slope, where the
// intercept may be any expression free of the variable. The slope must be
// nonzero.
func linearIn(e Expr, name string) (slope float64, intercept Expr, ok bool) {
	terms := []Expr{e}
	if s, isSum := e.(*Sum); isSum {
		terms = s.Terms
	}

	slope = 0
	var rest []Expr
	for _, t := range terms {
		if !DependsOn(t, name) {
			rest = append(rest, t)
			continue
		}
		c, part := splitCoeff(t)
		if part == nil {
			return 0, nil, false
		}
		if sym, isSym := part.(*Symbol); !isSym || sym.Name != name {
			return 0, nil, false
		}
		slope += c
	}
	if slope == 0 {
		return 0, nil, false
	}
	return slope, Add(rest...), true
}

// PolyCoeffs views e as a polynomial in the variable name and returns the
// coefficient expression for each occurring degree. It fails when the
// variable appears inside a function call, in an exponent, or raised to a
// non-integer or negative power.
func PolyCoeffs(e Expr, name string) (map[int]Expr, bool) {
	se := Simplify(e)
	terms := []Expr{se}
	if s, isSum := se.(*Sum); isSum {
		terms = s.Terms
	}

	coeffs := map[int][]Expr{}
	for _, t := range terms {
		deg, coeff, ok := termDegree(t, name)
		if !ok {
			return nil, false
		}
		coeffs[deg] = append(coeffs[deg], coeff)
	}

	out := make(map[int]Expr, len(coeffs))
	for deg, parts := range coeffs {
		out[deg] = Add(parts...)
	}
	return out, true
}

func termDegree(t Expr, name string) (deg int, coeff Expr, ok bool) {
	if !DependsOn(t, name) {
		return 0, t, true
	}

	factors := []Expr{t}
	if p, isProd := t.(*Product); isProd {
		factors = p.Factors
	}

	deg = 0
	var rest []Expr
	for _, f := range factors {
		if !DependsOn(f, name) {
			rest = append(rest, f)
			continue
		}
		switch v := f.(type) {
		case *Symbol:
			deg++
		case *Power:
			base, isSym := v.Base.(*Symbol)
			if !isSym || base.Name != name || DependsOn(v.Exp, name) {
				return 0, nil, false
			}
			n, isNum := v.Exp.(*Number)
			if !isNum {
				return 0, nil, false
			}
			k, isInt := nearInt(n.Val)
			if !isInt || k < 0 {
				return 0, nil, false
			}
			deg += k
		default:
			return 0, nil, false
		}
	}
	if len(rest) == 0 {
		return deg, Num(1), true
	}
	return deg, Mul(rest...), true
}
