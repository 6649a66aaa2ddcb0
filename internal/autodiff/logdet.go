package autodiff

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/KaiKogure/stan/internal/autodiff/ops"
)

// LogDeterminant returns log(|det(m)|) as a differentiable scalar.
//
// The matrix must be square; otherwise an error wrapping ErrDimensionMismatch
// is returned and nothing is recorded or allocated on the tape. The forward
// value comes from an LU factorization with partial pivoting, so an exactly
// singular matrix yields -Inf rather than an error. A singular matrix only
// fails later, in the reverse pass, where the inverse is needed.
//
// The values of m are copied into the node when it is created. Replacing
// entries of m afterwards does not change the node, and gradients still flow
// to the variables that were in m at construction time.
func LogDeterminant(m *Matrix) (Var, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return Var{}, fmt.Errorf("autodiff: log-determinant of %dx%d matrix: %w", rows, cols, ErrDimensionMismatch)
	}

	t := m.tape
	n := rows
	if n == 0 {
		return t.Constant(0), nil
	}

	snapshot := t.Alloc(n * n)
	operands := t.AllocIndex(n * n)
	for k, v := range m.data {
		if v.tape != t {
			panic("autodiff: matrix entries live on different tapes")
		}
		snapshot[k] = v.Value()
		operands[k] = v.idx
	}

	out := t.Var(ops.LogAbsDet(mat.NewDense(n, n, snapshot)))
	t.Record(ops.NewLogDetOp(n, n, snapshot, operands, out.idx))
	return out, nil
}
