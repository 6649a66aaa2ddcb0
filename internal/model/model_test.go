package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiKogure/stan/internal/autodiff"
)

func TestStdNormal(t *testing.T) {
	m := StdNormal{N: 3}
	tape := autodiff.NewTape()

	v, g, err := autodiff.Gradient(tape, m.LogDensity, []float64{1, -2, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, -0.5*(1+4+0.25), v, 1e-15)
	assert.InDeltaSlice(t, []float64{-1, 2, -0.5}, g, 1e-15)
}

func TestStdNormal_Metric(t *testing.T) {
	m := StdNormal{N: 2}
	tape := autodiff.NewTape()
	g, err := m.Metric(tape.Vars([]float64{0.3, 7}))
	require.NoError(t, err)

	d := g.Values()
	assert.Equal(t, 1.0, d.At(0, 0))
	assert.Equal(t, 0.0, d.At(0, 1))
	assert.Equal(t, 1.0, d.At(1, 1))
}

func TestFunnel_LogDensity(t *testing.T) {
	m := Funnel{N: 3}
	q := []float64{0.5, 1, -2}

	v, g, err := autodiff.Gradient(autodiff.NewTape(), m.LogDensity, q)
	require.NoError(t, err)

	e := math.Exp(-q[0])
	want := -q[0]*q[0]/18 - (0.5*q[1]*q[1]*e + q[0]/2) - (0.5*q[2]*q[2]*e + q[0]/2)
	assert.InDelta(t, want, v, 1e-14)

	// d/dv = -v/9 + ½ Σ x² e^-v - (N-1)/2, d/dx_i = -x_i e^-v
	dv := -q[0]/9 + 0.5*(q[1]*q[1]+q[2]*q[2])*e - 1
	assert.InDeltaSlice(t, []float64{dv, -q[1] * e, -q[2] * e}, g, 1e-14)
}

func TestFunnel_Metric(t *testing.T) {
	m := Funnel{N: 3}
	tape := autodiff.NewTape()
	q := tape.Vars([]float64{0.5, 1, -2})

	g, err := m.Metric(q)
	require.NoError(t, err)
	d := g.Values()
	assert.InDelta(t, 1.0/9+1, d.At(0, 0), 1e-15)
	assert.InDelta(t, math.Exp(-0.5), d.At(1, 1), 1e-15)
	assert.InDelta(t, math.Exp(-0.5), d.At(2, 2), 1e-15)
	assert.Equal(t, 0.0, d.At(1, 2))

	// The metric is differentiable in v: d G[1,1] / dv = -exp(-v).
	require.NoError(t, tape.Backward(g.At(1, 1)))
	assert.InDelta(t, -math.Exp(-0.5), q[0].Adjoint(), 1e-15)
}

func TestDimensionErrors(t *testing.T) {
	tape := autodiff.NewTape()

	_, err := Funnel{N: 3}.LogDensity(tape.Vars([]float64{1, 2}))
	assert.ErrorIs(t, err, ErrDimension)

	_, err = StdNormal{N: 2}.Metric(nil)
	assert.ErrorIs(t, err, ErrDimension)

	_, err = Funnel{N: 1}.LogDensity(tape.Vars([]float64{1}))
	assert.Error(t, err)
}
