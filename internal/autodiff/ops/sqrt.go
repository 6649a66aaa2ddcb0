package ops

// SqrtOp represents the square root: y = sqrt(x).
//
// Reverse pass:
//   - d(sqrt(x))/dx = 0.5 / y
//   - adj_x += adj_y * 0.5 / y
type SqrtOp struct {
	x   int
	y   float64 // sqrt(x)
	out int
}

// NewSqrtOp creates a new SqrtOp. y is the already computed sqrt(x).
func NewSqrtOp(x int, y float64, out int) *SqrtOp {
	return &SqrtOp{x: x, y: y, out: out}
}

// Chain computes the operand adjoint for sqrt.
func (op *SqrtOp) Chain(adj []float64) error {
	adj[op.x] += adj[op.out] * 0.5 / op.y
	return nil
}

// Inputs returns the operand index [x].
func (op *SqrtOp) Inputs() []int {
	return []int{op.x}
}

// Output returns the index of sqrt(x).
func (op *SqrtOp) Output() int {
	return op.out
}
