package hamiltonian

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaiKogure/stan/internal/autodiff"
	"github.com/KaiKogure/stan/internal/callbacks"
	"github.com/KaiKogure/stan/internal/model"
)

// DiagEuclidean is the separable Hamiltonian
//
//	H(q, p) = -log π(q) + 0.5 Σ invM_i p_i²
//
// with a constant diagonal inverse metric. It is not safe for concurrent use.
type DiagEuclidean struct {
	model     model.Model
	invMetric []float64
	tape      *autodiff.Tape
}

// NewDiagEuclidean creates a DiagEuclidean Hamiltonian. A nil invMetric
// means the identity.
func NewDiagEuclidean(m model.Model, invMetric []float64) (*DiagEuclidean, error) {
	n := m.Dim()
	if invMetric == nil {
		invMetric = make([]float64, n)
		for i := range invMetric {
			invMetric[i] = 1
		}
	}
	if len(invMetric) != n {
		return nil, fmt.Errorf("hamiltonian: inverse metric has %d entries, model has %d: %w",
			len(invMetric), n, autodiff.ErrDimensionMismatch)
	}
	for i, v := range invMetric {
		if !(v > 0) || math.IsInf(v, 1) {
			return nil, fmt.Errorf("hamiltonian: inverse metric entry %d is %v, want positive", i, v)
		}
	}

	return &DiagEuclidean{
		model:     m,
		invMetric: append([]float64(nil), invMetric...),
		tape:      autodiff.NewTape(),
	}, nil
}

// NewPoint creates a zero point of the model's dimension.
func (h *DiagEuclidean) NewPoint() *PSPoint {
	return NewPSPoint(h.model.Dim())
}

// Tau returns the kinetic energy 0.5 Σ invM_i p_i².
func (h *DiagEuclidean) Tau(z *PSPoint) float64 {
	var t float64
	for i, p := range z.P {
		t += h.invMetric[i] * p * p
	}
	return 0.5 * t
}

// Phi returns the cached potential.
func (h *DiagEuclidean) Phi(z *PSPoint) float64 {
	return z.V
}

// H returns the total energy.
func (h *DiagEuclidean) H(z *PSPoint) float64 {
	return h.Tau(z) + h.Phi(z)
}

// DtauDq is identically zero.
func (h *DiagEuclidean) DtauDq(z *PSPoint, _, _ callbacks.Writer) []float64 {
	return make([]float64, len(z.Q))
}

// DtauDp returns invM ⊙ p.
func (h *DiagEuclidean) DtauDp(z *PSPoint) []float64 {
	out := make([]float64, len(z.P))
	floats.MulTo(out, h.invMetric, z.P)
	return out
}

// DphiDq returns a copy of the cached potential gradient.
func (h *DiagEuclidean) DphiDq(z *PSPoint, _, _ callbacks.Writer) []float64 {
	return append([]float64(nil), z.G...)
}

// UpdateMetric does nothing; the metric is constant.
func (h *DiagEuclidean) UpdateMetric(*PSPoint, callbacks.Writer, callbacks.Writer) {}

// UpdateGradients recomputes V and G at the current position.
func (h *DiagEuclidean) UpdateGradients(z *PSPoint, _, errw callbacks.Writer) {
	potentialGradient("diag_e", h.tape, h.potential, z, errw)
}

// Init prepares a point whose position was set by the caller.
func (h *DiagEuclidean) Init(z *PSPoint, info, errw callbacks.Writer) {
	h.UpdateGradients(z, info, errw)
}

// SampleP draws p ~ N(0, M) using src.
func (h *DiagEuclidean) SampleP(z *PSPoint, src rand.Source) {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	for i := range z.P {
		z.P[i] = std.Rand() / math.Sqrt(h.invMetric[i])
	}
}

func (h *DiagEuclidean) potential(q []autodiff.Var) (autodiff.Var, error) {
	logp, err := h.model.LogDensity(q)
	if err != nil {
		return autodiff.Var{}, err
	}
	return autodiff.Neg(logp), nil
}
