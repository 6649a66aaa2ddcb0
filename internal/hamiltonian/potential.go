package hamiltonian

import (
	"fmt"
	"math"

	"github.com/KaiKogure/stan/internal/autodiff"
	"github.com/KaiKogure/stan/internal/callbacks"
)

// potentialGradient evaluates f at q on tape and stores f(q) and ∇f(q) in
// z. On failure, or when the value or gradient is not finite, the message
// goes to errw, V becomes +Inf and G is filled with NaN.
func potentialGradient(name string, tape *autodiff.Tape, f autodiff.Func, z *PSPoint, errw callbacks.Writer) {
	gradientEvaluations.WithLabelValues(name).Inc()

	v, g, err := autodiff.Gradient(tape, f, z.Q)
	if err == nil && !finite(v, g) {
		err = fmt.Errorf("non-finite potential %v", v)
	}
	if err != nil {
		gradientFailures.WithLabelValues(name).Inc()
		errw.Write(fmt.Sprintf("%s: gradient of potential: %v", name, err))
		z.V = math.Inf(1)
		for i := range z.G {
			z.G[i] = math.NaN()
		}
		return
	}

	z.V = v
	copy(z.G, g)
}

func finite(v float64, g []float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	for _, x := range g {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
