package model

import "github.com/KaiKogure/stan/internal/autodiff"

// StdNormal is the N-dimensional standard normal, log π(q) = -½ Σ q².
// Its metric is the identity, which makes a Riemannian Hamiltonian over it
// separable.
type StdNormal struct {
	N int
}

// Dim implements Model.
func (m StdNormal) Dim() int {
	return m.N
}

// LogDensity implements Model.
func (m StdNormal) LogDensity(q []autodiff.Var) (autodiff.Var, error) {
	if err := checkDim(m, q); err != nil {
		return autodiff.Var{}, err
	}
	sq := make([]autodiff.Var, len(q))
	for i, x := range q {
		sq[i] = autodiff.Square(x)
	}
	return autodiff.Scale(autodiff.Sum(sq), -0.5), nil
}

// Metric implements MetricModel.
func (m StdNormal) Metric(q []autodiff.Var) (*autodiff.Matrix, error) {
	if err := checkDim(m, q); err != nil {
		return nil, err
	}
	t := q[0].Tape()
	one := t.Constant(1)
	d := make([]autodiff.Var, len(q))
	for i := range d {
		d[i] = one
	}
	return diagonal(t, d), nil
}
