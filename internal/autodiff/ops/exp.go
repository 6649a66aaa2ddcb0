package ops

// ExpOp represents the exponential: y = exp(x).
//
// Reverse pass:
//   - d(exp(x))/dx = exp(x) = y
//   - adj_x += adj_y * y
type ExpOp struct {
	x   int
	y   float64 // exp(x), the forward value
	out int
}

// NewExpOp creates a new ExpOp. y is the already computed exp(x).
func NewExpOp(x int, y float64, out int) *ExpOp {
	return &ExpOp{x: x, y: y, out: out}
}

// Chain computes the operand adjoint for exp.
func (op *ExpOp) Chain(adj []float64) error {
	adj[op.x] += adj[op.out] * op.y
	return nil
}

// Inputs returns the operand index [x].
func (op *ExpOp) Inputs() []int {
	return []int{op.x}
}

// Output returns the index of exp(x).
func (op *ExpOp) Output() int {
	return op.out
}
