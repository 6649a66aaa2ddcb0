package hamiltonian

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaiKogure/stan/internal/autodiff"
	"github.com/KaiKogure/stan/internal/callbacks"
	"github.com/KaiKogure/stan/internal/model"
)

// ErrNotPositiveDefinite reports a metric without a Cholesky factorization.
var ErrNotPositiveDefinite = errors.New("hamiltonian: metric is not positive definite")

// Riemannian is the non-separable Hamiltonian of Riemannian-manifold HMC
//
//	phi(q)    = -log π(q) + 0.5 log|G(q)|
//	tau(q, p) = 0.5 pᵀ G(q)⁻¹ p
//
// where G(q) is the metric supplied by the model. It is not safe for
// concurrent use.
type Riemannian struct {
	model model.MetricModel
	tape  *autodiff.Tape
}

// NewRiemannian creates a Riemannian Hamiltonian for m.
func NewRiemannian(m model.MetricModel) *Riemannian {
	return &Riemannian{model: m, tape: autodiff.NewTape()}
}

// NewPoint creates a zero point of the model's dimension.
func (h *Riemannian) NewPoint() *RiemannianPoint {
	return NewRiemannianPoint(h.model.Dim())
}

// Tau returns the kinetic energy 0.5 pᵀG⁻¹p, or +Inf when the cached metric
// is not positive definite.
func (h *Riemannian) Tau(z *RiemannianPoint) float64 {
	a, err := solve(z)
	if err != nil {
		return math.Inf(1)
	}
	return 0.5 * floats.Dot(z.P, a)
}

// Phi returns the cached potential.
func (h *Riemannian) Phi(z *RiemannianPoint) float64 {
	return z.V
}

// H returns the total energy.
func (h *Riemannian) H(z *RiemannianPoint) float64 {
	return h.Tau(z) + h.Phi(z)
}

// DtauDp returns G⁻¹p, or NaN everywhere when the cached metric is not
// positive definite.
func (h *Riemannian) DtauDp(z *RiemannianPoint) []float64 {
	a, err := solve(z)
	if err != nil {
		return nans(len(z.P))
	}
	return a
}

// DtauDq returns ∂tau/∂q_k = -0.5 aᵀ(∂G/∂q_k)a with a = G⁻¹p. The
// contraction with ∂G is taken on the tape as the gradient of Σ G_ij a_i a_j.
func (h *Riemannian) DtauDq(z *RiemannianPoint, _, errw callbacks.Writer) []float64 {
	n := len(z.Q)
	a, err := solve(z)
	if err != nil {
		errw.Write(fmt.Sprintf("riemannian: dtau/dq: %v", err))
		return nans(n)
	}

	outer := make([]float64, n*n)
	for i := range n {
		for j := range n {
			outer[i*n+j] = a[i] * a[j]
		}
	}

	gradientEvaluations.WithLabelValues("riemannian_dtau_dq").Inc()
	_, g, err := autodiff.Gradient(h.tape, func(q []autodiff.Var) (autodiff.Var, error) {
		metric, err := h.model.Metric(q)
		if err != nil {
			return autodiff.Var{}, err
		}
		return autodiff.Dot(metric.Vars(), outer), nil
	}, z.Q)
	if err != nil {
		gradientFailures.WithLabelValues("riemannian_dtau_dq").Inc()
		errw.Write(fmt.Sprintf("riemannian: dtau/dq: %v", err))
		return nans(n)
	}

	floats.Scale(-0.5, g)
	return g
}

// DphiDq returns a copy of the cached potential gradient.
func (h *Riemannian) DphiDq(z *RiemannianPoint, _, _ callbacks.Writer) []float64 {
	return append([]float64(nil), z.G...)
}

// UpdateMetric evaluates and factorizes G at the current position. A metric
// that cannot be evaluated or is not positive definite is reported to errw
// and marks the point invalid.
func (h *Riemannian) UpdateMetric(z *RiemannianPoint, _, errw callbacks.Writer) {
	z.valid = false

	g, err := h.metricAt(z.Q)
	if err != nil {
		errw.Write(fmt.Sprintf("riemannian: metric: %v", err))
		return
	}

	n := len(z.Q)
	if z.metric == nil {
		z.metric = mat.NewSymDense(n, nil)
	}
	for i := range n {
		for j := i; j < n; j++ {
			z.metric.SetSym(i, j, 0.5*(g.At(i, j)+g.At(j, i)))
		}
	}

	if ok := z.chol.Factorize(z.metric); !ok {
		metricFailures.Inc()
		errw.Write(fmt.Sprintf("riemannian: metric: %v", ErrNotPositiveDefinite))
		return
	}
	z.valid = true
}

// UpdateGradients recomputes V and G at the current position.
func (h *Riemannian) UpdateGradients(z *RiemannianPoint, _, errw callbacks.Writer) {
	potentialGradient("riemannian", h.tape, h.potential, &z.PSPoint, errw)
}

// Init prepares a point whose position was set by the caller.
func (h *Riemannian) Init(z *RiemannianPoint, info, errw callbacks.Writer) {
	h.UpdateMetric(z, info, errw)
	h.UpdateGradients(z, info, errw)
}

// SampleP draws p ~ N(0, G(q)) as p = Lξ, where G = LLᵀ. The metric must
// have been updated at the current position.
func (h *Riemannian) SampleP(z *RiemannianPoint, src rand.Source) error {
	if !z.valid {
		return ErrNotPositiveDefinite
	}

	n := len(z.P)
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	xi := mat.NewVecDense(n, nil)
	for i := range n {
		xi.SetVec(i, std.Rand())
	}

	var l mat.TriDense
	z.chol.LTo(&l)
	p := mat.NewVecDense(n, z.P)
	p.MulVec(&l, xi)
	return nil
}

func (h *Riemannian) potential(q []autodiff.Var) (autodiff.Var, error) {
	logp, err := h.model.LogDensity(q)
	if err != nil {
		return autodiff.Var{}, err
	}
	metric, err := h.model.Metric(q)
	if err != nil {
		return autodiff.Var{}, err
	}
	logDet, err := autodiff.LogDeterminant(metric)
	if err != nil {
		return autodiff.Var{}, err
	}
	return autodiff.Sub(autodiff.Scale(logDet, 0.5), logp), nil
}

// metricAt evaluates the model metric at q without a reverse pass.
func (h *Riemannian) metricAt(q []float64) (*mat.Dense, error) {
	h.tape.Clear()
	defer h.tape.Clear()

	metric, err := h.model.Metric(h.tape.Vars(q))
	if err != nil {
		return nil, err
	}
	rows, cols := metric.Dims()
	if rows != len(q) || cols != len(q) {
		return nil, fmt.Errorf("metric is %dx%d, want %dx%d: %w",
			rows, cols, len(q), len(q), autodiff.ErrDimensionMismatch)
	}
	return metric.Values(), nil
}

// solve returns G⁻¹p from the cached factorization.
func solve(z *RiemannianPoint) ([]float64, error) {
	if !z.valid {
		return nil, ErrNotPositiveDefinite
	}

	n := len(z.P)
	a := mat.NewVecDense(n, nil)
	err := z.chol.SolveVecTo(a, mat.NewVecDense(n, append([]float64(nil), z.P...)))
	var cond mat.Condition
	if err != nil && !(errors.As(err, &cond) && !math.IsInf(float64(cond), 1)) {
		return nil, err
	}
	return a.RawVector().Data, nil
}
