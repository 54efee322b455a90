// Package symath is a small symbolic math kernel for first-order ODE work.
//
// It covers exactly the vocabulary the rest of the program accepts from the
// user: numeric literals, the constants pi and e, named variables, sums,
// products, powers, and the unary functions sin, cos, tan, exp, log and sqrt.
//
//   - [Parse]: plain-text grammar -> expression tree
//   - [Simplify]: deterministic flatten/fold normalization
//   - [Integrate]: pattern-based antiderivatives
//   - [Eval]: numeric evaluation against a variable environment
//
// Expressions are immutable; every operation returns a new tree. The kernel
// is deliberately not a general CAS: anything outside its patterns reports
// failure instead of guessing.
package symath
