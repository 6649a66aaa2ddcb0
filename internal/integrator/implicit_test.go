package integrator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiKogure/stan/internal/callbacks"
	"github.com/KaiKogure/stan/internal/hamiltonian"
	"github.com/KaiKogure/stan/internal/integrator"
	"github.com/KaiKogure/stan/internal/model"
)

type point struct {
	q, p []float64
}

func (z *point) Position() []float64 { return z.q }
func (z *point) Momentum() []float64 { return z.p }

// linearTau is a Hamiltonian with ∂tau/∂q = -k p, ∂tau/∂p = p and phi = 0.
// With eps*k < 1 the momentum fixed point is pInit / (1 - eps*k).
type linearTau struct {
	k float64

	metricUpdates   int
	gradientUpdates int
	dtauDqCalls     int
}

func (h *linearTau) DphiDq(z *point, _, _ callbacks.Writer) []float64 {
	return make([]float64, len(z.q))
}

func (h *linearTau) DtauDp(z *point) []float64 {
	return append([]float64(nil), z.p...)
}

func (h *linearTau) DtauDq(z *point, _, errw callbacks.Writer) []float64 {
	h.dtauDqCalls++
	errw.Write("dtau_dq")
	out := make([]float64, len(z.p))
	for i, p := range z.p {
		out[i] = -h.k * p
	}
	return out
}

func (h *linearTau) UpdateMetric(*point, callbacks.Writer, callbacks.Writer) {
	h.metricUpdates++
}

func (h *linearTau) UpdateGradients(*point, callbacks.Writer, callbacks.Writer) {
	h.gradientUpdates++
}

func TestNewImplicit_Defaults(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{})
	assert.Equal(t, 10, in.MaxNumFixedPoint())
	assert.Equal(t, 1e-8, in.FixedPointThreshold())

	in = integrator.NewImplicit[*point](integrator.ImplicitConfig{
		MaxNumFixedPoint:    25,
		FixedPointThreshold: 1e-10,
	})
	assert.Equal(t, 25, in.MaxNumFixedPoint())
	assert.Equal(t, 1e-10, in.FixedPointThreshold())
}

func TestImplicit_Setters(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{})

	in.SetMaxNumFixedPoint(3)
	in.SetMaxNumFixedPoint(0)
	in.SetMaxNumFixedPoint(-4)
	assert.Equal(t, 3, in.MaxNumFixedPoint(), "non-positive limits are ignored")

	in.SetFixedPointThreshold(1e-6)
	in.SetFixedPointThreshold(0)
	in.SetFixedPointThreshold(-1.0)
	in.SetFixedPointThreshold(math.NaN())
	assert.Equal(t, 1e-6, in.FixedPointThreshold(), "non-positive thresholds are ignored")
}

func TestImplicit_HatTauTruncated(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{})
	in.SetMaxNumFixedPoint(5)
	h := &linearTau{k: 1}
	z := &point{q: []float64{0}, p: []float64{1}}

	in.HatTau(z, h, 0.9, in.MaxNumFixedPoint(), callbacks.NoopWriter{}, callbacks.NoopWriter{})

	stats := in.LastStats()
	assert.Equal(t, 5, stats.TauIterations)
	assert.False(t, stats.TauConverged)
	assert.Equal(t, 5, h.dtauDqCalls)
	assert.InDelta(t, (1-math.Pow(0.9, 6))/0.1, z.p[0], 1e-12)
}

func TestImplicit_HatTauConverges(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{MaxNumFixedPoint: 1000})
	h := &linearTau{k: 1}
	z := &point{q: []float64{0, 0}, p: []float64{1, -2}}

	in.HatTau(z, h, 0.9, in.MaxNumFixedPoint(), callbacks.NoopWriter{}, callbacks.NoopWriter{})

	stats := in.LastStats()
	assert.True(t, stats.TauConverged)
	assert.Less(t, stats.TauIterations, 1000)
	assert.InDeltaSlice(t, []float64{10, -20}, z.p, 1e-6)
}

func TestImplicit_HatTauOneIterationWhenSeparable(t *testing.T) {
	h, err := hamiltonian.NewDiagEuclidean(model.StdNormal{N: 2}, nil)
	require.NoError(t, err)
	z := h.NewPoint()
	copy(z.Q, []float64{0.3, -1})
	copy(z.P, []float64{1, 2})
	h.Init(z, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	in := integrator.NewImplicit[*hamiltonian.PSPoint](integrator.ImplicitConfig{})
	in.HatTau(z, h, 0.1, in.MaxNumFixedPoint(), callbacks.NoopWriter{}, callbacks.NoopWriter{})

	assert.Equal(t, 1, in.LastStats().TauIterations)
	assert.True(t, in.LastStats().TauConverged)
	assert.Equal(t, []float64{1, 2}, z.P)
}

func TestImplicit_HatPhi(t *testing.T) {
	h, err := hamiltonian.NewDiagEuclidean(model.StdNormal{N: 2}, nil)
	require.NoError(t, err)
	z := h.NewPoint()
	copy(z.Q, []float64{0.5, -1})
	h.Init(z, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	in := integrator.NewImplicit[*hamiltonian.PSPoint](integrator.ImplicitConfig{})
	in.HatPhi(z, h, 0.2, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	// ∂phi/∂q = q for the standard normal.
	assert.InDeltaSlice(t, []float64{-0.1, 0.2}, z.P, 1e-15)
}

func TestImplicit_UpdateQ(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{})
	h := &linearTau{k: 1}
	z := &point{q: []float64{1, 2}, p: []float64{0.5, -1}}

	in.UpdateQ(z, h, 0.2, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	// ∂tau/∂p does not depend on q: the first iterate is exact and the second
	// confirms it.
	assert.InDeltaSlice(t, []float64{1.1, 1.8}, z.q, 1e-15)
	assert.Equal(t, 2, in.LastStats().QIterations)
	assert.True(t, in.LastStats().QConverged)
	assert.Equal(t, 2, h.metricUpdates, "metric refreshed after every iterate")
	assert.Equal(t, 1, h.gradientUpdates, "gradients refreshed once at the end")
}

func TestImplicit_EndUpdatePSingleIteration(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{MaxNumFixedPoint: 50})
	h := &linearTau{k: 1}
	z := &point{q: []float64{0}, p: []float64{1}}

	in.EndUpdateP(z, h, 0.5, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	assert.Equal(t, 1, h.dtauDqCalls)
	assert.Equal(t, 1, in.LastStats().TauIterations)
	assert.InDelta(t, 1.5, z.p[0], 1e-15)
}

func TestImplicit_ForwardsSinks(t *testing.T) {
	in := integrator.NewImplicit[*point](integrator.ImplicitConfig{MaxNumFixedPoint: 3})
	h := &linearTau{k: 1}
	z := &point{q: []float64{0}, p: []float64{1}}

	var info, errw callbacks.BufferWriter
	in.Evolve(z, h, 0.1, &info, &errw)

	assert.Empty(t, info.Messages())
	assert.Len(t, errw.Messages(), h.dtauDqCalls, "only the Hamiltonian writes")
}

// TestImplicit_Reversible integrates a Riemannian funnel forward one step,
// flips the momentum and integrates again.
func TestImplicit_Reversible(t *testing.T) {
	h := hamiltonian.NewRiemannian(model.Funnel{N: 3})
	in := integrator.NewImplicit[*hamiltonian.RiemannianPoint](integrator.ImplicitConfig{
		MaxNumFixedPoint:    100,
		FixedPointThreshold: 1e-12,
	})

	q0 := []float64{0.5, 1, -0.5}
	p0 := []float64{0.3, -0.2, 0.4}
	z := h.NewPoint()
	copy(z.Q, q0)
	copy(z.P, p0)
	var errw callbacks.BufferWriter
	h.Init(z, callbacks.NoopWriter{}, &errw)

	in.Evolve(z, h, 0.05, callbacks.NoopWriter{}, &errw)
	assert.NotEqual(t, q0, z.Q)
	for i := range z.P {
		z.P[i] = -z.P[i]
	}
	in.Evolve(z, h, 0.05, callbacks.NoopWriter{}, &errw)
	for i := range z.P {
		z.P[i] = -z.P[i]
	}

	require.Empty(t, errw.Messages())
	assert.InDeltaSlice(t, q0, z.Q, 1e-8)
	assert.InDeltaSlice(t, p0, z.P, 1e-8)
}

// TestImplicit_NegativeStepInverts checks that a step of -eps undoes a step
// of eps.
func TestImplicit_NegativeStepInverts(t *testing.T) {
	h := hamiltonian.NewRiemannian(model.Funnel{N: 3})
	in := integrator.NewImplicit[*hamiltonian.RiemannianPoint](integrator.ImplicitConfig{
		MaxNumFixedPoint:    100,
		FixedPointThreshold: 1e-12,
	})

	q0 := []float64{-0.4, 0.7, 1.2}
	p0 := []float64{-0.5, 0.1, 0.3}
	z := h.NewPoint()
	copy(z.Q, q0)
	copy(z.P, p0)
	h.Init(z, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	in.BeginUpdateP(z, h, 0.04, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	in.UpdateQ(z, h, 0.08, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	in.EndUpdateP(z, h, 0.04, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	in.BeginUpdateP(z, h, -0.04, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	in.UpdateQ(z, h, -0.08, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	in.EndUpdateP(z, h, -0.04, callbacks.NoopWriter{}, callbacks.NoopWriter{})

	assert.InDeltaSlice(t, q0, z.Q, 1e-8)
	assert.InDeltaSlice(t, p0, z.P, 1e-8)
}

func TestImplicit_EnergyConservation(t *testing.T) {
	h := hamiltonian.NewRiemannian(model.Funnel{N: 3})
	in := integrator.NewImplicit[*hamiltonian.RiemannianPoint](integrator.ImplicitConfig{})

	z := h.NewPoint()
	copy(z.Q, []float64{0.5, 1, -0.5})
	copy(z.P, []float64{0.3, -0.2, 0.4})
	h.Init(z, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	h0 := h.H(z)

	for range 20 {
		in.Evolve(z, h, 0.05, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	}

	assert.False(t, math.IsNaN(h.H(z)))
	assert.InDelta(t, h0, h.H(z), 0.05)
}

// TestImplicit_MatchesExplicit checks that both schemes agree on a separable
// Hamiltonian.
func TestImplicit_MatchesExplicit(t *testing.T) {
	h, err := hamiltonian.NewDiagEuclidean(model.StdNormal{N: 3}, []float64{1, 0.5, 2})
	require.NoError(t, err)

	start := func() *hamiltonian.PSPoint {
		z := h.NewPoint()
		copy(z.Q, []float64{1, -0.5, 0.25})
		copy(z.P, []float64{0.2, 1, -0.7})
		h.Init(z, callbacks.NoopWriter{}, callbacks.NoopWriter{})
		return z
	}

	var implicit, explicit integrator.Integrator[*hamiltonian.PSPoint]
	implicit = integrator.NewImplicit[*hamiltonian.PSPoint](integrator.ImplicitConfig{})
	explicit = integrator.NewExplicit[*hamiltonian.PSPoint]()

	zi, ze := start(), start()
	for range 10 {
		implicit.Evolve(zi, h, 0.1, callbacks.NoopWriter{}, callbacks.NoopWriter{})
		explicit.Evolve(ze, h, 0.1, callbacks.NoopWriter{}, callbacks.NoopWriter{})
	}

	assert.InDeltaSlice(t, ze.Q, zi.Q, 1e-12)
	assert.InDeltaSlice(t, ze.P, zi.P, 1e-12)
	assert.InDelta(t, ze.V, zi.V, 1e-12)
}
