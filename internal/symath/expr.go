package symath

import (
	"math"
	"sort"
	"strconv"
)

// Expr is a node in an immutable expression tree.
type Expr interface {
	String() string
	node()
}

// Number is a numeric literal.
type Number struct {
	Val float64
}

// Constant is a named mathematical constant (pi, e). It prints by name but
// evaluates to its numeric value.
type Constant struct {
	Name string
	Val  float64
}

// Symbol is a free variable.
type Symbol struct {
	Name string
}

// Sum is an n-ary sum of terms.
type Sum struct {
	Terms []Expr
}

// Product is an n-ary product of factors.
type Product struct {
	Factors []Expr
}

// Power is Base raised to Exp. Division is represented as Exp = -1.
type Power struct {
	Base, Exp Expr
}

// Call applies a unary function (sin, cos, tan, exp, log, sqrt) to Arg.
type Call struct {
	Fn  string
	Arg Expr
}

func (*Number) node()   {}
func (*Constant) node() {}
func (*Symbol) node()   {}
func (*Sum) node()      {}
func (*Product) node()  {}
func (*Power) node()    {}
func (*Call) node()     {}

// Predefined constants.
var (
	Pi = &Constant{Name: "pi", Val: math.Pi}
	E  = &Constant{Name: "e", Val: math.E}
)

// funcs is the fixed unary function vocabulary.
var funcs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"log":  math.Log,
	"sqrt": math.Sqrt,
}

// IsFunc reports whether name is one of the supported unary functions.
func IsFunc(name string) bool {
	_, ok := funcs[name]
	return ok
}

// Num returns a numeric literal.
func Num(v float64) *Number { return &Number{Val: v} }

// Sym returns a variable reference.
func Sym(name string) *Symbol { return &Symbol{Name: name} }

// Add returns the simplified sum of terms.
func Add(terms ...Expr) Expr { return Simplify(&Sum{Terms: terms}) }

// Mul returns the simplified product of factors.
func Mul(factors ...Expr) Expr { return Simplify(&Product{Factors: factors}) }

// Pow returns the simplified power base^exp.
func Pow(base, exp Expr) Expr { return Simplify(&Power{Base: base, Exp: exp}) }

// Div returns the simplified quotient num/den.
func Div(num, den Expr) Expr { return Mul(num, Pow(den, Num(-1))) }

// Neg returns the simplified negation of e.
func Neg(e Expr) Expr { return Mul(Num(-1), e) }

// Fn returns the simplified application of a unary function.
// The function name must be in the fixed vocabulary.
func Fn(name string, arg Expr) Expr { return Simplify(&Call{Fn: name, Arg: arg}) }

// FreeVars returns the set of free variable names in e.
// Named constants are not free variables.
func FreeVars(e Expr) map[string]bool {
	out := map[string]bool{}
	collectVars(e, out)
	return out
}

func collectVars(e Expr, out map[string]bool) {
	switch v := e.(type) {
	case *Symbol:
		out[v.Name] = true
	case *Sum:
		for _, t := range v.Terms {
			collectVars(t, out)
		}
	case *Product:
		for _, f := range v.Factors {
			collectVars(f, out)
		}
	case *Power:
		collectVars(v.Base, out)
		collectVars(v.Exp, out)
	case *Call:
		collectVars(v.Arg, out)
	}
}

// SortedVars returns the free variables of e in lexical order.
func SortedVars(e Expr) []string {
	set := FreeVars(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DependsOn reports whether e references the variable name.
func DependsOn(e Expr, name string) bool {
	return FreeVars(e)[name]
}

// Substitute replaces every occurrence of the variable name in e with repl
// and simplifies the result.
func Substitute(e Expr, name string, repl Expr) Expr {
	switch v := e.(type) {
	case *Symbol:
		if v.Name == name {
			return repl
		}
		return v
	case *Sum:
		terms := make([]Expr, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = Substitute(t, name, repl)
		}
		return Add(terms...)
	case *Product:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			factors[i] = Substitute(f, name, repl)
		}
		return Mul(factors...)
	case *Power:
		return Pow(Substitute(v.Base, name, repl), Substitute(v.Exp, name, repl))
	case *Call:
		return Fn(v.Fn, Substitute(v.Arg, name, repl))
	default:
		return e
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
