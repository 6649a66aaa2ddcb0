// Package hamiltonian implements phase-space points and Hamiltonians whose
// potential and metric are written on the autodiff tape.
//
// Every Hamiltonian here satisfies integrator.Hamiltonian for its point type:
//   - DiagEuclidean: separable, constant diagonal metric (*PSPoint)
//   - Riemannian: dense position-dependent metric (*RiemannianPoint)
package hamiltonian

import (
	"gonum.org/v1/gonum/mat"
)

// PSPoint is a phase-space point.
//
// Q and P are updated in place by integrators. V caches the potential energy
// at Q and G its gradient; both are refreshed by UpdateGradients.
type PSPoint struct {
	Q []float64 // position
	P []float64 // momentum
	G []float64 // gradient of the potential at Q
	V float64   // potential at Q
}

// NewPSPoint creates a zero point of dimension n.
func NewPSPoint(n int) *PSPoint {
	return &PSPoint{
		Q: make([]float64, n),
		P: make([]float64, n),
		G: make([]float64, n),
	}
}

// Position returns the live position slice.
func (z *PSPoint) Position() []float64 {
	return z.Q
}

// Momentum returns the live momentum slice.
func (z *PSPoint) Momentum() []float64 {
	return z.P
}

// Dim returns the dimension of the point.
func (z *PSPoint) Dim() int {
	return len(z.Q)
}

// CopyFrom overwrites z with the contents of o. Both must have the same
// dimension.
func (z *PSPoint) CopyFrom(o *PSPoint) {
	copy(z.Q, o.Q)
	copy(z.P, o.P)
	copy(z.G, o.G)
	z.V = o.V
}

// RiemannianPoint is a phase-space point that also caches the metric at Q.
type RiemannianPoint struct {
	PSPoint

	metric *mat.SymDense
	chol   mat.Cholesky
	valid  bool // chol holds a factorization of the metric at Q
}

// NewRiemannianPoint creates a zero point of dimension n.
func NewRiemannianPoint(n int) *RiemannianPoint {
	return &RiemannianPoint{PSPoint: *NewPSPoint(n)}
}

// Metric returns the cached metric, or nil before the first UpdateMetric.
func (z *RiemannianPoint) Metric() *mat.SymDense {
	return z.metric
}

// MetricValid reports whether the cached metric is positive definite.
func (z *RiemannianPoint) MetricValid() bool {
	return z.valid
}
