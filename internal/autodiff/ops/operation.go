// Package ops defines the node interface and node implementations for the
// scalar reverse-mode tape.
//
// Each node records the tape indices of its operands and of its output during
// the forward pass. Chain propagates the output adjoint into the operand
// adjoints during the reverse pass.
//
// Supported nodes:
//   - AddOp, SubOp, MulOp, DivOp: binary arithmetic
//   - LinearOp: out = slope*x + intercept (scale, shift, negate)
//   - ExpOp, LogOp, SqrtOp: elementary functions
//   - SumOp, DotOp: reductions with constant weights
//   - LogDetOp: log(|det(A)|) of a square matrix (d/dA = A^-T)
package ops

// Node represents a differentiable operation recorded on the tape.
//
// Nodes never own their operands. Operands are referenced by index into the
// tape's value/adjoint storage, and the tape guarantees that every operand
// index was created before the node itself.
type Node interface {
	// Chain adds the contribution of this node's output adjoint to the
	// adjoints of its operands. adj is the tape's adjoint storage indexed
	// by variable index.
	Chain(adj []float64) error

	// Inputs returns the operand indices for this node.
	Inputs() []int

	// Output returns the index of the variable produced by this node.
	Output() int
}
