// Package model provides log densities written on the autodiff tape, used
// to drive the Hamiltonians and the integrators.
package model

import (
	"errors"
	"fmt"

	"github.com/KaiKogure/stan/internal/autodiff"
)

// ErrDimension reports a position vector of the wrong length.
var ErrDimension = errors.New("model: wrong number of parameters")

// Model is an unnormalized log density over an unconstrained position.
type Model interface {
	// Dim returns the number of position coordinates.
	Dim() int

	// LogDensity builds log π(q) on q's tape.
	LogDensity(q []autodiff.Var) (autodiff.Var, error)
}

// MetricModel is a Model that also supplies a position-dependent metric
// tensor for Riemannian-manifold HMC.
type MetricModel interface {
	Model

	// Metric builds the symmetric positive definite metric G(q) on q's tape.
	Metric(q []autodiff.Var) (*autodiff.Matrix, error)
}

func checkDim(m Model, q []autodiff.Var) error {
	if len(q) == 0 {
		return fmt.Errorf("%w: empty position", ErrDimension)
	}
	if len(q) != m.Dim() {
		return fmt.Errorf("%w: got %d, want %d", ErrDimension, len(q), m.Dim())
	}
	return nil
}

// diagonal builds an n x n matrix with d on the diagonal and constant zeros
// elsewhere.
func diagonal(t *autodiff.Tape, d []autodiff.Var) *autodiff.Matrix {
	n := len(d)
	data := make([]autodiff.Var, n*n)
	zero := t.Constant(0)
	for i := range data {
		data[i] = zero
	}
	for i, v := range d {
		data[i*n+i] = v
	}
	return t.NewMatrix(n, n, data)
}
