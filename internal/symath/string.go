package symath

import (
	"math"
	"strings"
)

// Operator precedence levels used when deciding where parentheses are
// required in printed output.
const (
	precSum = iota + 1
	precProduct
	precPower
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Sum:
		return precSum
	case *Product:
		return precProduct
	case *Power:
		return precPower
	case *Number:
		if v.Val < 0 {
			return precSum
		}
		return precAtom
	default:
		return precAtom
	}
}

func paren(e Expr, min int) string {
	s := e.String()
	if precedence(e) < min {
		return "(" + s + ")"
	}
	return s
}

func (n *Number) String() string   { return formatFloat(n.Val) }
func (c *Constant) String() string { return c.Name }
func (s *Symbol) String() string   { return s.Name }

func (s *Sum) String() string {
	var b strings.Builder
	for i, t := range s.Terms {
		c, part := splitCoeff(t)
		if i == 0 {
			b.WriteString(t.String())
			continue
		}
		if c < 0 {
			b.WriteString(" - ")
			b.WriteString(withCoeff(-c, part).String())
		} else {
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (p *Product) String() string {
	coeff := 1.0
	var num, den []string

	for _, f := range p.Factors {
		if n, ok := f.(*Number); ok {
			coeff *= n.Val
			continue
		}
		if pw, ok := f.(*Power); ok {
			if e, ok := pw.Exp.(*Number); ok && e.Val < 0 {
				inv := Expr(pw.Base)
				if e.Val != -1 {
					inv = &Power{Base: pw.Base, Exp: Num(-e.Val)}
				}
				den = append(den, paren(inv, precPower))
				continue
			}
		}
		num = append(num, paren(f, precProduct))
	}

	sign := ""
	if coeff < 0 {
		sign = "-"
		coeff = -coeff
	}
	if coeff != 1 || len(num) == 0 {
		num = append([]string{formatFloat(coeff)}, num...)
	}

	out := sign + strings.Join(num, "*")
	if len(den) == 1 {
		out += "/" + den[0]
	} else if len(den) > 1 {
		out += "/(" + strings.Join(den, "*") + ")"
	}
	return out
}

func (p *Power) String() string {
	if e, ok := p.Exp.(*Number); ok && e.Val == 0.5 {
		return "sqrt(" + p.Base.String() + ")"
	}
	base := paren(p.Base, precAtom)
	exp := paren(p.Exp, precAtom)
	return base + "^" + exp
}

func (c *Call) String() string {
	return c.Fn + "(" + c.Arg.String() + ")"
}

// nearInt reports whether v is within floating tolerance of an integer.
func nearInt(v float64) (int, bool) {
	r := math.Round(v)
	if math.Abs(v-r) < 1e-12 && math.Abs(r) < 1e15 {
		return int(r), true
	}
	return 0, false
}
