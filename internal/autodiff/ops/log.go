package ops

// LogOp represents the natural logarithm: y = log(x).
//
// Reverse pass:
//
//	adj_x += adj_y / x
//
// This assumes x > 0. Non-positive inputs produce a NaN or -Inf forward
// value and an infinite or NaN adjoint; no error is raised.
type LogOp struct {
	x   int
	xv  float64
	out int
}

// NewLogOp creates a new LogOp from the operand index and its value.
func NewLogOp(x int, xv float64, out int) *LogOp {
	return &LogOp{x: x, xv: xv, out: out}
}

// Chain computes the operand adjoint for log.
func (op *LogOp) Chain(adj []float64) error {
	adj[op.x] += adj[op.out] / op.xv
	return nil
}

// Inputs returns the operand index [x].
func (op *LogOp) Inputs() []int {
	return []int{op.x}
}

// Output returns the index of log(x).
func (op *LogOp) Output() int {
	return op.out
}
