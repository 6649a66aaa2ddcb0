// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package integrator provides leapfrog integrators for Hamiltonian dynamics,
// including the implicit generalized leapfrog used by Riemannian-manifold
// HMC.
//
// Example:
//
//	h := hamiltonian.NewRiemannian(model.Funnel{N: 3})
//	z := h.NewPoint()
//	h.Init(z, info, errw)
//
//	in := integrator.NewImplicit[*hamiltonian.RiemannianPoint](integrator.ImplicitConfig{})
//	for range 20 {
//	    in.Evolve(z, h, 0.05, info, errw)
//	}
package integrator

import (
	"github.com/KaiKogure/stan/internal/integrator"
)

// Point is a phase-space point updated in place.
type Point = integrator.Point

// Hamiltonian supplies the derivatives an integrator needs.
type Hamiltonian[Z Point] = integrator.Hamiltonian[Z]

// Stepper is the three-stage decomposition of a leapfrog step.
type Stepper[Z Point] = integrator.Stepper[Z]

// Integrator advances a point by one leapfrog step.
type Integrator[Z Point] = integrator.Integrator[Z]

// Implicit is the generalized leapfrog for non-separable Hamiltonians.
type Implicit[Z Point] = integrator.Implicit[Z]

// ImplicitConfig configures an Implicit integrator.
type ImplicitConfig = integrator.ImplicitConfig

// FixedPointStats describes the most recent fixed-point solves.
type FixedPointStats = integrator.FixedPointStats

// Explicit is the standard leapfrog for separable Hamiltonians.
type Explicit[Z Point] = integrator.Explicit[Z]

// Default fixed-point parameters.
const (
	DefaultMaxNumFixedPoint    = integrator.DefaultMaxNumFixedPoint
	DefaultFixedPointThreshold = integrator.DefaultFixedPointThreshold
)

// NewImplicit creates an implicit leapfrog integrator. Zero config fields
// select the defaults.
func NewImplicit[Z Point](config ImplicitConfig) *Implicit[Z] {
	return integrator.NewImplicit[Z](config)
}

// NewExplicit creates an explicit leapfrog integrator.
func NewExplicit[Z Point]() *Explicit[Z] {
	return integrator.NewExplicit[Z]()
}
