package integrator

import (
	"gonum.org/v1/gonum/floats"

	"github.com/KaiKogure/stan/internal/callbacks"
)

// Explicit is the standard leapfrog. It is exact only for separable
// Hamiltonians, where tau does not depend on q.
type Explicit[Z Point] struct{}

// NewExplicit creates an explicit leapfrog integrator.
func NewExplicit[Z Point]() *Explicit[Z] {
	return &Explicit[Z]{}
}

// BeginUpdateP sets p -= eps * ∂phi/∂q.
func (e *Explicit[Z]) BeginUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	floats.AddScaled(z.Momentum(), -eps, h.DphiDq(z, info, errw))
}

// UpdateQ sets q += eps * ∂tau/∂p and refreshes the gradients.
func (e *Explicit[Z]) UpdateQ(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	floats.AddScaled(z.Position(), eps, h.DtauDp(z))
	h.UpdateGradients(z, info, errw)
}

// EndUpdateP sets p -= eps * ∂phi/∂q.
func (e *Explicit[Z]) EndUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	floats.AddScaled(z.Momentum(), -eps, h.DphiDq(z, info, errw))
}

// Evolve advances z by one leapfrog step.
func (e *Explicit[Z]) Evolve(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	Evolve[Z](e, z, h, eps, info, errw)
}
