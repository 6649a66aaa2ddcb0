package ops

// LinearOp represents an affine map of one operand: output = slope*x + c.
// Scaling, shifting by a constant and negation are all LinearOps; only the
// slope matters for the reverse pass.
type LinearOp struct {
	x     int
	slope float64
	out   int
}

// NewLinearOp creates a new LinearOp.
func NewLinearOp(x int, slope float64, out int) *LinearOp {
	return &LinearOp{x: x, slope: slope, out: out}
}

// Chain propagates adj_out * slope to x.
func (op *LinearOp) Chain(adj []float64) error {
	adj[op.x] += adj[op.out] * op.slope
	return nil
}

// Inputs returns the operand index [x].
func (op *LinearOp) Inputs() []int {
	return []int{op.x}
}

// Output returns the index of slope*x + c.
func (op *LinearOp) Output() int {
	return op.out
}
