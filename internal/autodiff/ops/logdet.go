package ops

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogDetOp represents the log absolute determinant of a square matrix:
//
//	output = log(|det(A)|)
//
// Reverse pass:
//
//	d(log|det A|)/dA = A^-T, so adj_A[i,j] += adj_out * inv(A)[j,i]
//
// The node keeps a row-major snapshot of A's values taken at construction
// time, so the reverse pass is independent of anything that happens to the
// original matrix afterwards. snapshot and operands are parallel: operands[k]
// is the tape index of the variable whose value is snapshot[k].
type LogDetOp struct {
	rows, cols int
	snapshot   *mat.Dense
	operands   []int
	out        int
}

// NewLogDetOp creates a new LogDetOp. snapshot is wrapped without copying and
// must not be modified afterwards; both slices must have length rows*cols.
func NewLogDetOp(rows, cols int, snapshot []float64, operands []int, out int) *LogDetOp {
	if rows != cols {
		panic(fmt.Sprintf("ops: LogDetOp needs a square matrix, got %dx%d", rows, cols))
	}
	if len(snapshot) != rows*cols || len(operands) != rows*cols {
		panic("ops: LogDetOp snapshot and operands must have rows*cols entries")
	}
	return &LogDetOp{
		rows:     rows,
		cols:     cols,
		snapshot: mat.NewDense(rows, cols, snapshot),
		operands: operands,
		out:      out,
	}
}

// LogAbsDet returns log(|det(a)|) using an LU factorization with partial
// pivoting. An exactly singular matrix gives -Inf.
func LogAbsDet(a mat.Matrix) float64 {
	var lu mat.LU
	lu.Factorize(a)
	logDet, _ := lu.LogDet()
	return logDet
}

// Chain scatters adj_out * inv(A)^T into the operand adjoints.
//
// Returns an error wrapping ErrSingularMatrix when the snapshot cannot be
// inverted. A finite condition-number warning from the solver is not an
// error; the computed inverse is used as is.
func (op *LogDetOp) Chain(adj []float64) error {
	inv, err := op.inverse()
	if err != nil {
		return err
	}

	g := adj[op.out]
	pos := 0
	for i := 0; i < op.rows; i++ {
		for j := 0; j < op.cols; j++ {
			adj[op.operands[pos]] += g * inv.At(j, i)
			pos++
		}
	}
	return nil
}

// inverse solves A X = I against the snapshot.
func (op *LogDetOp) inverse() (*mat.Dense, error) {
	n := op.rows
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}

	var lu mat.LU
	lu.Factorize(op.snapshot)

	var inv mat.Dense
	err := lu.SolveTo(&inv, false, mat.NewDiagDense(n, ones))
	if err == nil {
		return &inv, nil
	}

	var cond mat.Condition
	if errors.As(err, &cond) && !math.IsInf(float64(cond), 1) {
		return &inv, nil
	}
	return nil, fmt.Errorf("%w: log-determinant of %dx%d matrix: %v", ErrSingularMatrix, op.rows, op.cols, err)
}

// Dims returns the matrix dimensions.
func (op *LogDetOp) Dims() (rows, cols int) {
	return op.rows, op.cols
}

// Inputs returns the operand indices in snapshot (row-major) order.
func (op *LogDetOp) Inputs() []int {
	return op.operands
}

// Output returns the index of log|det A|.
func (op *LogDetOp) Output() int {
	return op.out
}
