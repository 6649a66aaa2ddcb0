package ops

// AddOp represents a scalar addition: output = a + b.
//
// Reverse pass:
//   - d(a+b)/da = 1, so adj_a += adj_out
//   - d(a+b)/db = 1, so adj_b += adj_out
type AddOp struct {
	a, b int
	out  int
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, out int) *AddOp {
	return &AddOp{a: a, b: b, out: out}
}

// Chain propagates the output adjoint to both operands.
func (op *AddOp) Chain(adj []float64) error {
	g := adj[op.out]
	adj[op.a] += g
	adj[op.b] += g
	return nil
}

// Inputs returns the operand indices [a, b].
func (op *AddOp) Inputs() []int {
	return []int{op.a, op.b}
}

// Output returns the index of a + b.
func (op *AddOp) Output() int {
	return op.out
}
