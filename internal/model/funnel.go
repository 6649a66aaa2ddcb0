package model

import (
	"fmt"

	"github.com/KaiKogure/stan/internal/autodiff"
)

// Funnel is Neal's funnel in N dimensions:
//
//	v ~ N(0, 3²),  x_i | v ~ N(0, exp(v)),  i = 1..N-1
//
// with q = (v, x_1, ..., x_{N-1}). The scale of x depends strongly on v,
// which is what makes a position-dependent metric worthwhile.
type Funnel struct {
	N int
}

// Dim implements Model.
func (m Funnel) Dim() int {
	return m.N
}

// LogDensity implements Model. Additive constants are dropped:
//
//	log π(v, x) = -v²/18 - Σ (½ x_i² exp(-v) + v/2)
func (m Funnel) LogDensity(q []autodiff.Var) (autodiff.Var, error) {
	if err := checkDim(m, q); err != nil {
		return autodiff.Var{}, err
	}
	if m.N < 2 {
		return autodiff.Var{}, fmt.Errorf("model: funnel needs at least 2 dimensions, got %d", m.N)
	}

	v := q[0]
	terms := make([]autodiff.Var, 0, len(q))
	terms = append(terms, autodiff.Scale(autodiff.Square(v), -1.0/18))

	precision := autodiff.Exp(autodiff.Neg(v))
	halfV := autodiff.Scale(v, 0.5)
	for _, x := range q[1:] {
		quad := autodiff.Scale(autodiff.Mul(autodiff.Square(x), precision), 0.5)
		terms = append(terms, autodiff.Neg(autodiff.Add(quad, halfV)))
	}
	return autodiff.Sum(terms), nil
}

// Metric implements MetricModel with the expected Fisher information:
//
//	G = diag(1/9 + (N-1)/2, exp(-v), ..., exp(-v))
func (m Funnel) Metric(q []autodiff.Var) (*autodiff.Matrix, error) {
	if err := checkDim(m, q); err != nil {
		return nil, err
	}
	t := q[0].Tape()
	d := make([]autodiff.Var, len(q))
	d[0] = t.Constant(1.0/9 + float64(m.N-1)/2)
	precision := autodiff.Exp(autodiff.Neg(q[0]))
	for i := 1; i < len(q); i++ {
		d[i] = precision
	}
	return diagonal(t, d), nil
}
