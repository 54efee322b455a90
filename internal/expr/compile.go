// Package expr compiles user-entered f(x, y) text into a sandboxed numeric
// evaluator. Compilation parses the text into a symbolic tree, rejects any
// free variable outside {x, y}, and lowers the tree to a flat stack program.
// The program's fixed opcode set is the sandbox: an evaluator can only ever
// perform the arithmetic and the six whitelisted functions, no matter what
// the input text contained.
package expr

import (
	"fmt"
	"sort"

	"github.com/davigp/odelab/internal/symath"
)

// Function is a compiled, immutable f(x, y). It is safe for concurrent use;
// each Eval call owns its evaluation stack.
type Function struct {
	src   string
	prog  []instr
	depth int
}

// Compile parses and validates src and returns an evaluable function.
// It fails with *symath.ParseError on malformed input and with
// *UnknownSymbolError when a free variable outside {x, y} appears.
func Compile(src string) (*Function, error) {
	tree, err := symath.Parse(src)
	if err != nil {
		return nil, err
	}

	vars := symath.SortedVars(tree)
	sort.Strings(vars)
	for _, name := range vars {
		if name != "x" && name != "y" {
			return nil, &UnknownSymbolError{Symbol: name}
		}
	}

	c := &compiler{}
	c.emit(tree)
	return &Function{src: src, prog: c.prog, depth: c.maxDepth}, nil
}

// Source returns the original expression text.
func (f *Function) Source() string { return f.src }

// Eval computes f at (x, y). Any runtime failure is returned as *EvalError.
func (f *Function) Eval(x, y float64) (float64, error) {
	return run(f.prog, f.depth, x, y)
}

type compiler struct {
	prog     []instr
	depth    int
	maxDepth int
}

func (c *compiler) push(in instr) {
	c.prog = append(c.prog, in)
	c.depth += 1 - in.pops
	if c.depth > c.maxDepth {
		c.maxDepth = c.depth
	}
}

func (c *compiler) emit(e symath.Expr) {
	switch v := e.(type) {
	case *symath.Number:
		c.push(instr{op: opConst, val: v.Val})
	case *symath.Constant:
		c.push(instr{op: opConst, val: v.Val})
	case *symath.Symbol:
		switch v.Name {
		case "x":
			c.push(instr{op: opX})
		case "y":
			c.push(instr{op: opY})
		default:
			// Unreachable after whitelist validation.
			panic(fmt.Sprintf("expr: compiling unvalidated symbol %q", v.Name))
		}
	case *symath.Sum:
		c.emit(v.Terms[0])
		for _, t := range v.Terms[1:] {
			c.emit(t)
			c.push(instr{op: opAdd, pops: 2})
		}
	case *symath.Product:
		c.emit(v.Factors[0])
		for _, f := range v.Factors[1:] {
			c.emit(f)
			c.push(instr{op: opMul, pops: 2})
		}
	case *symath.Power:
		// A plain reciprocal gets a dedicated opcode so that division by
		// zero is reported as such instead of as a generic overflow.
		if n, ok := v.Exp.(*symath.Number); ok && n.Val == -1 {
			c.emit(v.Base)
			c.push(instr{op: opRecip, pops: 1})
			return
		}
		c.emit(v.Base)
		c.emit(v.Exp)
		c.push(instr{op: opPow, pops: 2})
	case *symath.Call:
		c.emit(v.Arg)
		op, ok := callOps[v.Fn]
		if !ok {
			panic(fmt.Sprintf("expr: compiling unknown function %q", v.Fn))
		}
		c.push(instr{op: op, pops: 1})
	default:
		panic(fmt.Sprintf("expr: cannot compile %T", e))
	}
}
