// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Architecture:
//   - Tape: append-only record of values, adjoints and nodes
//   - Var: non-owning handle (tape + index) to one differentiable scalar
//   - ops.Node: one type per operation, each with its own chain rule
//   - Arena: tape-owned buffers for node-private state, reclaimed in bulk
//
// Usage:
//
//	tape := autodiff.NewTape()
//	a := tape.NewMatrixFromValues(2, 2, []float64{4, 1, 2, 3})
//	ld, err := autodiff.LogDeterminant(a)
//	if err != nil { ... }
//	if err := tape.Backward(ld); err != nil { ... }
//	g := a.At(0, 0).Adjoint() // (A^-T)[0,0]
package autodiff

// Var is a differentiable scalar: a handle to one value/adjoint slot on a
// tape. Copying a Var copies the handle, not the value. The zero Var is not
// usable.
type Var struct {
	tape *Tape
	idx  int
	gen  uint64
}

// Value returns the forward value.
func (v Var) Value() float64 {
	return v.tape.vals[v.idx]
}

// Adjoint returns the adjoint accumulated by reverse passes so far.
func (v Var) Adjoint() float64 {
	return v.tape.adjs[v.idx]
}

// Index returns the variable's index on its tape.
func (v Var) Index() int {
	return v.idx
}

// Tape returns the tape the variable lives on.
func (v Var) Tape() *Tape {
	return v.tape
}

// Values returns the forward values of vs.
func Values(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Value()
	}
	return out
}

// Adjoints returns the adjoints of vs.
func Adjoints(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Adjoint()
	}
	return out
}
