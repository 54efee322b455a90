package symath

import "math"

// Simplify returns a normalized form of e: nested sums and products are
// flattened, numeric subexpressions are folded, identity elements are
// dropped, and like terms/factors are combined. The result is deterministic
// for a given input tree.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Sum:
		return simplifySum(v)
	case *Product:
		return simplifyProduct(v)
	case *Power:
		return simplifyPower(v)
	case *Call:
		return simplifyCall(v)
	default:
		return e
	}
}

// splitCoeff separates a simplified term into its numeric coefficient and
// the remaining symbolic part (nil when the term is purely numeric).
func splitCoeff(t Expr) (float64, Expr) {
	switch v := t.(type) {
	case *Number:
		return v.Val, nil
	case *Product:
		if len(v.Factors) > 0 {
			if n, ok := v.Factors[0].(*Number); ok {
				rest := v.Factors[1:]
				if len(rest) == 1 {
					return n.Val, rest[0]
				}
				return n.Val, &Product{Factors: rest}
			}
		}
		return 1, v
	default:
		return 1, t
	}
}

// withCoeff rebuilds coeff*part from pieces produced by splitCoeff.
func withCoeff(coeff float64, part Expr) Expr {
	if part == nil {
		return Num(coeff)
	}
	if coeff == 1 {
		return part
	}
	if p, ok := part.(*Product); ok {
		factors := append([]Expr{Num(coeff)}, p.Factors...)
		return &Product{Factors: factors}
	}
	return &Product{Factors: []Expr{Num(coeff), part}}
}

func simplifySum(s *Sum) Expr {
	var flat []Expr
	for _, t := range s.Terms {
		switch st := Simplify(t).(type) {
		case *Sum:
			flat = append(flat, st.Terms...)
		default:
			flat = append(flat, st)
		}
	}

	numeric := 0.0
	coeffs := map[string]float64{}
	parts := map[string]Expr{}
	var order []string

	for _, t := range flat {
		c, part := splitCoeff(t)
		if part == nil {
			numeric += c
			continue
		}
		key := part.String()
		if _, seen := parts[key]; !seen {
			parts[key] = part
			order = append(order, key)
		}
		coeffs[key] += c
	}

	var terms []Expr
	for _, key := range order {
		if c := coeffs[key]; c != 0 {
			terms = append(terms, withCoeff(c, parts[key]))
		}
	}
	if numeric != 0 || len(terms) == 0 {
		terms = append(terms, Num(numeric))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Sum{Terms: terms}
}

func simplifyProduct(p *Product) Expr {
	var flat []Expr
	for _, f := range p.Factors {
		switch sf := Simplify(f).(type) {
		case *Product:
			flat = append(flat, sf.Factors...)
		default:
			flat = append(flat, sf)
		}
	}

	coeff := 1.0
	exps := map[string][]Expr{}
	bases := map[string]Expr{}
	var order []string

	addFactor := func(base, exp Expr) {
		key := base.String()
		if _, seen := bases[key]; !seen {
			bases[key] = base
			order = append(order, key)
		}
		exps[key] = append(exps[key], exp)
	}

	for _, f := range flat {
		switch v := f.(type) {
		case *Number:
			coeff *= v.Val
		case *Power:
			addFactor(v.Base, v.Exp)
		default:
			addFactor(v, Num(1))
		}
	}

	if coeff == 0 {
		return Num(0)
	}

	var factors []Expr
	for _, key := range order {
		exp := Add(exps[key]...)
		f := Pow(bases[key], exp)
		switch fv := f.(type) {
		case *Number:
			coeff *= fv.Val
		default:
			factors = append(factors, f)
		}
	}

	if len(factors) == 0 {
		return Num(coeff)
	}
	// Distribute a bare numeric coefficient over a lone sum so that
	// -(x + y) normalizes to -x - y.
	if coeff != 1 && len(factors) == 1 {
		if s, isSum := factors[0].(*Sum); isSum {
			terms := make([]Expr, len(s.Terms))
			for i, t := range s.Terms {
				terms[i] = Mul(Num(coeff), t)
			}
			return Add(terms...)
		}
	}
	if coeff != 1 {
		factors = append([]Expr{Num(coeff)}, factors...)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &Product{Factors: factors}
}

func simplifyPower(p *Power) Expr {
	base := Simplify(p.Base)
	exp := Simplify(p.Exp)

	if en, ok := exp.(*Number); ok {
		if en.Val == 0 {
			return Num(1)
		}
		if en.Val == 1 {
			return base
		}
		switch bv := base.(type) {
		case *Number:
			if r := math.Pow(bv.Val, en.Val); !math.IsNaN(r) && !math.IsInf(r, 0) {
				return Num(r)
			}
		case *Power:
			// (b^c)^d -> b^(c*d) for numeric inner exponents.
			if cn, ok := bv.Exp.(*Number); ok {
				return Pow(bv.Base, Num(cn.Val*en.Val))
			}
		}
	}
	if bn, ok := base.(*Number); ok {
		if bn.Val == 1 {
			return Num(1)
		}
	}
	return &Power{Base: base, Exp: exp}
}

func simplifyCall(c *Call) Expr {
	arg := Simplify(c.Arg)
	if n, ok := arg.(*Number); ok {
		if fn, known := funcs[c.Fn]; known {
			if r := fn(n.Val); !math.IsNaN(r) && !math.IsInf(r, 0) {
				return Num(r)
			}
		}
	}
	// log(e) and exp-of-log shortcuts keep derived solutions readable.
	if c.Fn == "log" {
		if k, ok := arg.(*Constant); ok && k.Name == "e" {
			return Num(1)
		}
	}
	if c.Fn == "exp" {
		if inner, ok := arg.(*Call); ok && inner.Fn == "log" {
			return inner.Arg
		}
	}
	return &Call{Fn: c.Fn, Arg: arg}
}
