// Package integrator implements leapfrog integrators for Hamiltonian
// dynamics.
//
// Two schemes are provided:
//   - Explicit: the standard Störmer-Verlet leapfrog for separable
//     Hamiltonians.
//   - Implicit: the generalized leapfrog, which solves its implicit
//     half-steps by fixed-point iteration so that non-separable Hamiltonians
//     such as Riemannian-manifold HMC can be simulated.
//
// Both operate on any point type and Hamiltonian through the Point and
// Hamiltonian interfaces, and update the point in place.
package integrator

import (
	"github.com/KaiKogure/stan/internal/callbacks"
)

// Point is a phase-space point whose position and momentum are updated in
// place.
type Point interface {
	// Position returns the live position slice.
	Position() []float64

	// Momentum returns the live momentum slice.
	Momentum() []float64
}

// Hamiltonian supplies the partial derivatives of H(q, p) = tau(q, p) +
// phi(q) at a point, and refreshes the point's cached quantities.
//
// Implementations report non-fatal problems through the errw sink and may
// return NaN derivatives when they cannot be computed.
type Hamiltonian[Z Point] interface {
	// DphiDq returns ∂phi/∂q from the point's cached gradient.
	DphiDq(z Z, info, errw callbacks.Writer) []float64

	// DtauDp returns ∂tau/∂p at the point.
	DtauDp(z Z) []float64

	// DtauDq returns ∂tau/∂q at the point.
	DtauDq(z Z, info, errw callbacks.Writer) []float64

	// UpdateMetric refreshes any position-dependent metric after q changed.
	UpdateMetric(z Z, info, errw callbacks.Writer)

	// UpdateGradients refreshes the cached potential and its gradient.
	UpdateGradients(z Z, info, errw callbacks.Writer)
}

// Stepper is the three-stage decomposition of a leapfrog step.
type Stepper[Z Point] interface {
	BeginUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer)
	UpdateQ(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer)
	EndUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer)
}

// Integrator advances a point by one leapfrog step.
type Integrator[Z Point] interface {
	Stepper[Z]
	Evolve(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer)
}

// Evolve advances z by one step of size eps: a half momentum update, a full
// position update and a second half momentum update.
func Evolve[Z Point](s Stepper[Z], z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	s.BeginUpdateP(z, h, 0.5*eps, info, errw)
	s.UpdateQ(z, h, eps, info, errw)
	s.EndUpdateP(z, h, 0.5*eps, info, errw)
}
