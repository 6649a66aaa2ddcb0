package ops

// DivOp represents a scalar division: output = a / b.
//
// Reverse pass:
//   - d(a/b)/da = 1/b, so adj_a += adj_out / b
//   - d(a/b)/db = -a/b², so adj_b -= adj_out * a / b²
type DivOp struct {
	a, b   int
	av, bv float64
	out    int
}

// NewDivOp creates a new DivOp from operand indices and their values.
func NewDivOp(a, b int, av, bv float64, out int) *DivOp {
	return &DivOp{a: a, b: b, av: av, bv: bv, out: out}
}

// Chain propagates the output adjoint to both operands.
func (op *DivOp) Chain(adj []float64) error {
	g := adj[op.out]
	adj[op.a] += g / op.bv
	adj[op.b] -= g * op.av / (op.bv * op.bv)
	return nil
}

// Inputs returns the operand indices [a, b].
func (op *DivOp) Inputs() []int {
	return []int{op.a, op.b}
}

// Output returns the index of a / b.
func (op *DivOp) Output() int {
	return op.out
}
