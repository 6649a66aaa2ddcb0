package ops

// SumOp represents the sum of its operands: output = Σ x_i.
type SumOp struct {
	xs  []int
	out int
}

// NewSumOp creates a new SumOp. xs is retained, not copied.
func NewSumOp(xs []int, out int) *SumOp {
	return &SumOp{xs: xs, out: out}
}

// Chain propagates the output adjoint unchanged to every operand.
func (op *SumOp) Chain(adj []float64) error {
	g := adj[op.out]
	for _, x := range op.xs {
		adj[x] += g
	}
	return nil
}

// Inputs returns the operand indices.
func (op *SumOp) Inputs() []int {
	return op.xs
}

// Output returns the index of the sum.
func (op *SumOp) Output() int {
	return op.out
}
