package autodiff_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/KaiKogure/stan/internal/autodiff"
)

// numericalGradient estimates the gradient of f at x with central
// differences.
func numericalGradient(f autodiff.Func, x []float64) []float64 {
	tape := autodiff.NewTape()
	value := func(x []float64) float64 {
		v, err := autodiff.Evaluate(tape, f, x)
		if err != nil {
			panic(err)
		}
		return v
	}
	return fd.Gradient(nil, value, x, &fd.Settings{Formula: fd.Central})
}

// checkGradient compares the tape gradient of f at x with central
// differences.
func checkGradient(t *testing.T, name string, f autodiff.Func, x []float64, tol float64) {
	t.Helper()

	_, got, err := autodiff.Gradient(autodiff.NewTape(), f, x)
	if err != nil {
		t.Fatalf("%s: Gradient: %v", name, err)
	}
	want := numericalGradient(f, x)

	for i := range want {
		scale := math.Max(1, math.Abs(want[i]))
		if math.Abs(got[i]-want[i]) > tol*scale {
			t.Errorf("%s: grad[%d] = %.10g, numerical %.10g", name, i, got[i], want[i])
		}
	}
}

// TestNumericalGradient_Elementary tests every elementary node against
// finite differences.
func TestNumericalGradient_Elementary(t *testing.T) {
	tests := []struct {
		name string
		f    autodiff.Func
		x    []float64
	}{
		{"add", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Add(x[0], x[1]), nil }, []float64{1.5, -2}},
		{"sub", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Sub(x[0], x[1]), nil }, []float64{1.5, -2}},
		{"mul", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Mul(x[0], x[1]), nil }, []float64{1.5, -2}},
		{"div", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Div(x[0], x[1]), nil }, []float64{1.5, -2}},
		{"neg", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Neg(x[0]), nil }, []float64{0.3}},
		{"scale", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Scale(x[0], -3.5), nil }, []float64{0.3}},
		{"shift", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Shift(x[0], 10), nil }, []float64{0.3}},
		{"exp", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Exp(x[0]), nil }, []float64{0.7}},
		{"log", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Log(x[0]), nil }, []float64{0.7}},
		{"sqrt", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Sqrt(x[0]), nil }, []float64{2.5}},
		{"sum", func(x []autodiff.Var) (autodiff.Var, error) { return autodiff.Sum(x), nil }, []float64{1, 2, 3}},
		{"dot", func(x []autodiff.Var) (autodiff.Var, error) {
			return autodiff.Dot(x, []float64{0.5, -1, 2}), nil
		}, []float64{1, 2, 3}},
		{"composite", func(x []autodiff.Var) (autodiff.Var, error) {
			// exp(-x0) * x1² + log(x0) / x1
			a := autodiff.Mul(autodiff.Exp(autodiff.Neg(x[0])), autodiff.Square(x[1]))
			b := autodiff.Div(autodiff.Log(x[0]), x[1])
			return autodiff.Add(a, b), nil
		}, []float64{0.8, 1.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradient(t, tt.name, tt.f, tt.x, 1e-6)
		})
	}
}

// logDetOf builds log|det| of an n x n matrix from flattened inputs.
func logDetOf(n int) autodiff.Func {
	return func(x []autodiff.Var) (autodiff.Var, error) {
		m := x[0].Tape().NewMatrix(n, n, x)
		return autodiff.LogDeterminant(m)
	}
}

// TestNumericalGradient_LogDeterminant tests the log-determinant node
// against finite differences.
func TestNumericalGradient_LogDeterminant(t *testing.T) {
	tests := []struct {
		name string
		n    int
		x    []float64
	}{
		{"2x2", 2, []float64{4, 1, 2, 3}},
		{"2x2 negative det", 2, []float64{1, 3, 2, 1}},
		{"3x3", 3, []float64{2, -1, 0.5, 0.3, 1.7, -2, 1, 0.2, 3}},
		{"4x4", 4, []float64{
			5, 1, 0, 2,
			1, 4, -1, 0,
			0, -1, 3, 1,
			2, 0, 1, 6,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGradient(t, tt.name, logDetOf(tt.n), tt.x, 1e-6)
		})
	}
}

// TestNumericalGradient_LogDeterminantComposite tests gradients flowing
// through elementary nodes into a log-determinant and out again.
func TestNumericalGradient_LogDeterminantComposite(t *testing.T) {
	// f(a, b) = log|det [[exp(a), a*b], [b, 1 + b²]]| * a
	f := func(x []autodiff.Var) (autodiff.Var, error) {
		a, b := x[0], x[1]
		tape := a.Tape()
		m := tape.NewMatrix(2, 2, []autodiff.Var{
			autodiff.Exp(a), autodiff.Mul(a, b),
			b, autodiff.Shift(autodiff.Square(b), 1),
		})
		ld, err := autodiff.LogDeterminant(m)
		if err != nil {
			return autodiff.Var{}, err
		}
		return autodiff.Mul(ld, a), nil
	}
	checkGradient(t, "composite", f, []float64{0.4, -0.9}, 1e-6)
}
