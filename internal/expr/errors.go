package expr

import (
	"errors"
	"fmt"
)

// Domain errors for expression compilation and evaluation.
var (
	// ErrUnknownSymbol indicates a free variable other than x or y.
	ErrUnknownSymbol = errors.New("expr: unknown symbol")

	// ErrEval indicates a runtime failure while evaluating a compiled
	// expression at a specific point.
	ErrEval = errors.New("expr: evaluation failed")
)

// UnknownSymbolError names the offending free variable.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q: only x and y may appear", e.Symbol)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// EvalError reports a domain failure at a specific evaluation point.
// Every runtime failure of a compiled function surfaces as this type.
type EvalError struct {
	X, Y  float64
	Cause string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating f(%g, %g): %s", e.X, e.Y, e.Cause)
}

func (e *EvalError) Unwrap() error { return ErrEval }
