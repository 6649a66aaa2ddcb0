package ops

// SubOp represents a scalar subtraction: output = a - b.
//
// Reverse pass:
//   - d(a-b)/da = 1, so adj_a += adj_out
//   - d(a-b)/db = -1, so adj_b -= adj_out
type SubOp struct {
	a, b int
	out  int
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, out int) *SubOp {
	return &SubOp{a: a, b: b, out: out}
}

// Chain propagates the output adjoint to both operands.
func (op *SubOp) Chain(adj []float64) error {
	g := adj[op.out]
	adj[op.a] += g
	adj[op.b] -= g
	return nil
}

// Inputs returns the operand indices [a, b].
func (op *SubOp) Inputs() []int {
	return []int{op.a, op.b}
}

// Output returns the index of a - b.
func (op *SubOp) Output() int {
	return op.out
}
