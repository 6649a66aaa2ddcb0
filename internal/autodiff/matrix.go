package autodiff

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows x cols grid of differentiable scalars stored in
// row-major order, the layout gonum uses. A Matrix only holds handles; the
// values live on the tape.
type Matrix struct {
	tape       *Tape
	rows, cols int
	data       []Var
}

// NewMatrix creates a Matrix over existing variables. data is row-major and
// is retained, not copied. NewMatrix panics if len(data) != rows*cols.
func (t *Tape) NewMatrix(rows, cols int, data []Var) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("autodiff: negative matrix dimensions %dx%d", rows, cols))
	}
	if len(data) != rows*cols {
		panic(fmt.Sprintf("autodiff: matrix %dx%d needs %d entries, got %d", rows, cols, rows*cols, len(data)))
	}
	return &Matrix{tape: t, rows: rows, cols: cols, data: data}
}

// NewMatrixFromValues creates a Matrix of fresh leaves from row-major values.
func (t *Tape) NewMatrixFromValues(rows, cols int, vals []float64) *Matrix {
	if len(vals) != rows*cols {
		panic(fmt.Sprintf("autodiff: matrix %dx%d needs %d values, got %d", rows, cols, rows*cols, len(vals)))
	}
	return t.NewMatrix(rows, cols, t.Vars(vals))
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the variable at row i, column j.
func (m *Matrix) At(i, j int) Var {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set replaces the variable at row i, column j. Nodes already built from the
// matrix are unaffected.
func (m *Matrix) Set(i, j int, v Var) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("autodiff: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Vars returns the row-major backing slice.
func (m *Matrix) Vars() []Var {
	return m.data
}

// Tape returns the tape the matrix's variables live on.
func (m *Matrix) Tape() *Tape {
	return m.tape
}

// Values copies the forward values into a new gonum matrix.
// It returns nil for an empty matrix, which gonum cannot represent.
func (m *Matrix) Values() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.cols, Values(m.data))
}
