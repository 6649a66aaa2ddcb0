package ops

// DotOp represents a linear combination with constant weights:
//
//	output = Σ w_i * x_i
//
// Reverse pass: adj_x_i += adj_out * w_i.
type DotOp struct {
	xs  []int
	w   []float64
	out int
}

// NewDotOp creates a new DotOp. xs and w must have the same length and are
// retained, not copied.
func NewDotOp(xs []int, w []float64, out int) *DotOp {
	if len(xs) != len(w) {
		panic("ops: DotOp operand and weight lengths differ")
	}
	return &DotOp{xs: xs, w: w, out: out}
}

// Chain propagates the weighted output adjoint to every operand.
func (op *DotOp) Chain(adj []float64) error {
	g := adj[op.out]
	for i, x := range op.xs {
		adj[x] += g * op.w[i]
	}
	return nil
}

// Inputs returns the operand indices.
func (op *DotOp) Inputs() []int {
	return op.xs
}

// Output returns the index of the linear combination.
func (op *DotOp) Output() int {
	return op.out
}
