// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package hamiltonian provides phase-space points and Hamiltonians for
// Euclidean and Riemannian-manifold HMC.
package hamiltonian

import (
	"github.com/KaiKogure/stan/internal/hamiltonian"
	"github.com/KaiKogure/stan/model"
)

// PSPoint is a phase-space point.
type PSPoint = hamiltonian.PSPoint

// RiemannianPoint is a phase-space point that caches the metric at Q.
type RiemannianPoint = hamiltonian.RiemannianPoint

// DiagEuclidean is the separable Hamiltonian with a constant diagonal
// inverse metric.
type DiagEuclidean = hamiltonian.DiagEuclidean

// Riemannian is the Hamiltonian with a position-dependent dense metric.
type Riemannian = hamiltonian.Riemannian

// ErrNotPositiveDefinite reports a metric without a Cholesky factorization.
var ErrNotPositiveDefinite = hamiltonian.ErrNotPositiveDefinite

// NewDiagEuclidean creates a DiagEuclidean Hamiltonian. A nil invMetric
// means the identity.
func NewDiagEuclidean(m model.Model, invMetric []float64) (*DiagEuclidean, error) {
	return hamiltonian.NewDiagEuclidean(m, invMetric)
}

// NewRiemannian creates a Riemannian Hamiltonian for m.
func NewRiemannian(m model.MetricModel) *Riemannian {
	return hamiltonian.NewRiemannian(m)
}
