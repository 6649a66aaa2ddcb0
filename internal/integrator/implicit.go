package integrator

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"

	"github.com/KaiKogure/stan/internal/callbacks"
)

// Default fixed-point parameters.
const (
	DefaultMaxNumFixedPoint    = 10
	DefaultFixedPointThreshold = 1e-8
)

// ImplicitConfig configures an Implicit integrator. Zero values select the
// defaults.
type ImplicitConfig struct {
	MaxNumFixedPoint    int     // iteration limit per implicit solve (default: 10)
	FixedPointThreshold float64 // max-abs change that ends a solve (default: 1e-8)
}

// FixedPointStats describes the most recent fixed-point solves.
type FixedPointStats struct {
	TauIterations int  // iterations of the last HatTau
	QIterations   int  // iterations of the last UpdateQ
	TauConverged  bool // last HatTau stopped below the threshold
	QConverged    bool // last UpdateQ stopped below the threshold
}

// Implicit is the generalized leapfrog for non-separable Hamiltonians.
//
// The momentum half-step at the start and the position step are implicit
// and solved by fixed-point iteration; each solve stops early once the
// largest absolute change of an iterate falls below the threshold, and
// otherwise after MaxNumFixedPoint iterations. Hitting the limit is not an
// error: the last iterate is kept.
type Implicit[Z Point] struct {
	maxNumFixedPoint    int
	fixedPointThreshold float64
	stats               FixedPointStats
}

// NewImplicit creates an implicit leapfrog integrator.
func NewImplicit[Z Point](config ImplicitConfig) *Implicit[Z] {
	in := &Implicit[Z]{
		maxNumFixedPoint:    DefaultMaxNumFixedPoint,
		fixedPointThreshold: DefaultFixedPointThreshold,
	}
	in.SetMaxNumFixedPoint(config.MaxNumFixedPoint)
	in.SetFixedPointThreshold(config.FixedPointThreshold)
	return in
}

// MaxNumFixedPoint returns the iteration limit per implicit solve.
func (in *Implicit[Z]) MaxNumFixedPoint() int {
	return in.maxNumFixedPoint
}

// SetMaxNumFixedPoint sets the iteration limit. Non-positive values are
// ignored.
func (in *Implicit[Z]) SetMaxNumFixedPoint(n int) {
	if n > 0 {
		in.maxNumFixedPoint = n
	}
}

// FixedPointThreshold returns the convergence threshold.
func (in *Implicit[Z]) FixedPointThreshold() float64 {
	return in.fixedPointThreshold
}

// SetFixedPointThreshold sets the convergence threshold. Non-positive values
// (and NaN) are ignored.
func (in *Implicit[Z]) SetFixedPointThreshold(t float64) {
	if t > 0 {
		in.fixedPointThreshold = t
	}
}

// LastStats returns the statistics of the most recent HatTau and UpdateQ.
func (in *Implicit[Z]) LastStats() FixedPointStats {
	return in.stats
}

// BeginUpdateP applies the explicit potential kick followed by the implicit
// kinetic kick.
func (in *Implicit[Z]) BeginUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	in.HatPhi(z, h, eps, info, errw)
	in.HatTau(z, h, eps, in.maxNumFixedPoint, info, errw)
}

// UpdateQ solves q = q0 + ½ε(∂tau/∂p(q0, p) + ∂tau/∂p(q, p)) by fixed-point
// iteration, refreshing the metric after every iterate and the gradients at
// the end.
func (in *Implicit[Z]) UpdateQ(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	q := z.Position()
	qInit := append([]float64(nil), q...)
	floats.AddScaled(qInit, 0.5*eps, h.DtauDp(z))

	n, ok := in.iterate(q, func() {
		d := h.DtauDp(z)
		copy(q, qInit)
		floats.AddScaled(q, 0.5*eps, d)
		h.UpdateMetric(z, info, errw)
	})
	in.stats.QIterations, in.stats.QConverged = n, ok
	in.observe(stageUpdateQ, n, ok, true)

	h.UpdateGradients(z, info, errw)
}

// EndUpdateP applies a single kinetic kick followed by the potential kick.
// The new momentum appears explicitly at the end of the step, so one
// iteration is exact.
func (in *Implicit[Z]) EndUpdateP(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	in.HatTau(z, h, eps, 1, info, errw)
	in.HatPhi(z, h, eps, info, errw)
}

// HatPhi sets p -= eps * ∂phi/∂q.
func (in *Implicit[Z]) HatPhi(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	floats.AddScaled(z.Momentum(), -eps, h.DphiDq(z, info, errw))
}

// HatTau solves p = p0 - eps * ∂tau/∂q(q, p) with at most n iterations.
func (in *Implicit[Z]) HatTau(z Z, h Hamiltonian[Z], eps float64, n int, info, errw callbacks.Writer) {
	p := z.Momentum()
	pInit := append([]float64(nil), p...)

	iters, ok := in.iterateN(p, n, func() {
		d := h.DtauDq(z, info, errw)
		copy(p, pInit)
		floats.AddScaled(p, -eps, d)
	})
	in.stats.TauIterations, in.stats.TauConverged = iters, ok
	in.observe(stageHatTau, iters, ok, n > 1)
}

// Evolve advances z by one generalized leapfrog step.
func (in *Implicit[Z]) Evolve(z Z, h Hamiltonian[Z], eps float64, info, errw callbacks.Writer) {
	Evolve[Z](in, z, h, eps, info, errw)
}

func (in *Implicit[Z]) iterate(x []float64, step func()) (int, bool) {
	return in.iterateN(x, in.maxNumFixedPoint, step)
}

// iterateN runs step, which updates x in place, until the largest absolute
// change of x is below the threshold or n iterations have run. It returns
// the number of iterations and whether the threshold was reached. A NaN
// iterate ends the solve unconverged.
func (in *Implicit[Z]) iterateN(x []float64, n int, step func()) (int, bool) {
	prev := make([]float64, len(x))
	for i := 1; i <= n; i++ {
		copy(prev, x)
		step()
		if floats.HasNaN(x) {
			return i, false
		}
		if floats.Distance(prev, x, math.Inf(1)) < in.fixedPointThreshold {
			return i, true
		}
	}
	return n, false
}

// observe records a solve. Single explicit iterations are counted but never
// reported as non-converged.
func (in *Implicit[Z]) observe(stage string, n int, converged, solve bool) {
	fixedPointIterations.WithLabelValues(stage).Observe(float64(n))
	if converged || !solve {
		return
	}
	fixedPointNotConverged.WithLabelValues(stage).Inc()
	log.Debug().
		Str("stage", stage).
		Int("iterations", n).
		Float64("threshold", in.fixedPointThreshold).
		Msg("fixed-point iteration did not converge")
}
