// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Operations are recorded on a Tape as they are evaluated; Backward then
// propagates adjoints from an output to every variable it depends on.
// Besides elementary arithmetic, the tape supports the log absolute
// determinant of a square matrix of variables.
//
// Example:
//
//	import "github.com/KaiKogure/stan/autodiff"
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    m := tape.NewMatrixFromValues(2, 2, []float64{4, 1, 2, 3})
//
//	    ld, err := autodiff.LogDeterminant(m) // log|det| = log 10
//	    if err != nil { ... }
//	    if err := tape.Backward(ld); err != nil { ... }
//
//	    d := m.At(0, 0).Adjoint() // 0.3
//	}
package autodiff

import (
	"github.com/KaiKogure/stan/internal/autodiff"
)

// Tape records operations for reverse-mode differentiation.
type Tape = autodiff.Tape

// Var is a handle to a scalar variable on a Tape.
type Var = autodiff.Var

// Matrix is a dense row-major matrix of variables.
type Matrix = autodiff.Matrix

// Func is a scalar function written on the tape.
type Func = autodiff.Func

// Errors returned by tape operations.
var (
	ErrDimensionMismatch = autodiff.ErrDimensionMismatch
	ErrSingularMatrix    = autodiff.ErrSingularMatrix
	ErrForeignVar        = autodiff.ErrForeignVar
)

// NewTape creates a new empty tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}

// LogDeterminant returns log|det(m)| and records its reverse pass.
//
// A non-square matrix is rejected with ErrDimensionMismatch before anything
// is recorded. A singular matrix yields -Inf; its reverse pass fails with
// ErrSingularMatrix.
func LogDeterminant(m *Matrix) (Var, error) {
	return autodiff.LogDeterminant(m)
}

// Gradient evaluates f at x and returns f(x) and its gradient.
//
// Example:
//
//	tape := autodiff.NewTape()
//	v, g, err := autodiff.Gradient(tape, func(x []autodiff.Var) (autodiff.Var, error) {
//	    return autodiff.Mul(x[0], x[1]), nil
//	}, []float64{2, 3})
func Gradient(t *Tape, f Func, x []float64) (float64, []float64, error) {
	return autodiff.Gradient(t, f, x)
}

// Evaluate runs f at x without a reverse pass.
func Evaluate(t *Tape, f Func, x []float64) (float64, error) {
	return autodiff.Evaluate(t, f, x)
}

// Elementary operations.

// Add returns a + b.
func Add(a, b Var) Var { return autodiff.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Var) Var { return autodiff.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b Var) Var { return autodiff.Mul(a, b) }

// Div returns a / b.
func Div(a, b Var) Var { return autodiff.Div(a, b) }

// Square returns x * x.
func Square(x Var) Var { return autodiff.Square(x) }

// Scale returns c * x.
func Scale(x Var, c float64) Var { return autodiff.Scale(x, c) }

// Shift returns x + c.
func Shift(x Var, c float64) Var { return autodiff.Shift(x, c) }

// Neg returns -x.
func Neg(x Var) Var { return autodiff.Neg(x) }

// Exp returns exp(x).
func Exp(x Var) Var { return autodiff.Exp(x) }

// Log returns log(x).
func Log(x Var) Var { return autodiff.Log(x) }

// Sqrt returns sqrt(x).
func Sqrt(x Var) Var { return autodiff.Sqrt(x) }

// Sum returns the sum of xs.
func Sum(xs []Var) Var { return autodiff.Sum(xs) }

// Dot returns Σ w[i]*xs[i] for constant weights w.
func Dot(xs []Var, w []float64) Var { return autodiff.Dot(xs, w) }
