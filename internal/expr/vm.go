package expr

import "math"

type opcode uint8

const (
	opConst opcode = iota
	opX
	opY
	opAdd
	opMul
	opPow
	opRecip
	opSin
	opCos
	opTan
	opExp
	opLog
	opSqrt
)

type instr struct {
	op   opcode
	val  float64
	pops int
}

var callOps = map[string]opcode{
	"sin":  opSin,
	"cos":  opCos,
	"tan":  opTan,
	"exp":  opExp,
	"log":  opLog,
	"sqrt": opSqrt,
}

func run(prog []instr, depth int, x, y float64) (float64, error) {
	stack := make([]float64, 0, depth)

	fail := func(cause string) (float64, error) {
		return 0, &EvalError{X: x, Y: y, Cause: cause}
	}

	for _, in := range prog {
		switch in.op {
		case opConst:
			stack = append(stack, in.val)
		case opX:
			stack = append(stack, x)
		case opY:
			stack = append(stack, y)
		case opAdd:
			n := len(stack)
			stack[n-2] += stack[n-1]
			stack = stack[:n-1]
		case opMul:
			n := len(stack)
			stack[n-2] *= stack[n-1]
			stack = stack[:n-1]
		case opPow:
			n := len(stack)
			base, exp := stack[n-2], stack[n-1]
			if base == 0 && exp < 0 {
				return fail("division by zero")
			}
			r := math.Pow(base, exp)
			if math.IsNaN(r) {
				return fail("non-real result (negative base with fractional exponent)")
			}
			stack[n-2] = r
			stack = stack[:n-1]
		case opRecip:
			n := len(stack)
			if stack[n-1] == 0 {
				return fail("division by zero")
			}
			stack[n-1] = 1 / stack[n-1]
		case opSin:
			stack[len(stack)-1] = math.Sin(stack[len(stack)-1])
		case opCos:
			stack[len(stack)-1] = math.Cos(stack[len(stack)-1])
		case opTan:
			stack[len(stack)-1] = math.Tan(stack[len(stack)-1])
		case opExp:
			stack[len(stack)-1] = math.Exp(stack[len(stack)-1])
		case opLog:
			if v := stack[len(stack)-1]; v <= 0 {
				return fail("logarithm of a non-positive value")
			}
			stack[len(stack)-1] = math.Log(stack[len(stack)-1])
		case opSqrt:
			if v := stack[len(stack)-1]; v < 0 {
				return fail("square root of a negative value")
			}
			stack[len(stack)-1] = math.Sqrt(stack[len(stack)-1])
		}
	}

	v := stack[len(stack)-1]
	if math.IsNaN(v) {
		return fail("result is not a number")
	}
	if math.IsInf(v, 0) {
		return fail("overflow")
	}
	return v, nil
}
