package ops

// MulOp represents a scalar multiplication: output = a * b.
//
// Reverse pass:
//   - d(a*b)/da = b, so adj_a += adj_out * b
//   - d(a*b)/db = a, so adj_b += adj_out * a
//
// Operand values are captured when the node is created.
type MulOp struct {
	a, b   int
	av, bv float64
	out    int
}

// NewMulOp creates a new MulOp from operand indices and their values.
func NewMulOp(a, b int, av, bv float64, out int) *MulOp {
	return &MulOp{a: a, b: b, av: av, bv: bv, out: out}
}

// Chain propagates the output adjoint to both operands.
func (op *MulOp) Chain(adj []float64) error {
	g := adj[op.out]
	adj[op.a] += g * op.bv
	adj[op.b] += g * op.av
	return nil
}

// Inputs returns the operand indices [a, b].
func (op *MulOp) Inputs() []int {
	return []int{op.a, op.b}
}

// Output returns the index of a * b.
func (op *MulOp) Output() int {
	return op.out
}
