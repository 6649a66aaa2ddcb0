// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integrator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiKogure/stan/callbacks"
	"github.com/KaiKogure/stan/hamiltonian"
	"github.com/KaiKogure/stan/integrator"
	"github.com/KaiKogure/stan/model"
)

func TestPublicAPI(t *testing.T) {
	h := hamiltonian.NewRiemannian(model.Funnel{N: 3})
	z := h.NewPoint()
	copy(z.Q, []float64{0.2, 0.5, -0.5})
	copy(z.P, []float64{0.1, 0.2, -0.3})

	var errw callbacks.BufferWriter
	h.Init(z, callbacks.NoopWriter{}, &errw)
	h0 := h.H(z)

	in := integrator.NewImplicit[*hamiltonian.RiemannianPoint](integrator.ImplicitConfig{})
	assert.Equal(t, integrator.DefaultMaxNumFixedPoint, in.MaxNumFixedPoint())
	for range 5 {
		in.Evolve(z, h, 0.05, callbacks.NoopWriter{}, &errw)
	}

	require.Empty(t, errw.Messages())
	assert.True(t, in.LastStats().QConverged)
	assert.InDelta(t, h0, h.H(z), 0.05)
}
