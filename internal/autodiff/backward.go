package autodiff

import "fmt"

// Func is a scalar function written on the tape.
type Func func(x []Var) (Var, error)

// Gradient evaluates f at x and returns f(x) and its gradient.
//
// Gradient clears t before and after the evaluation, so t must not hold
// variables the caller still needs. Errors from f and from the reverse pass
// are returned wrapped; the value is still reported when only the reverse
// pass fails.
//
// Example:
//
//	tape := autodiff.NewTape()
//	v, g, err := autodiff.Gradient(tape, func(x []autodiff.Var) (autodiff.Var, error) {
//	    return autodiff.Mul(x[0], x[1]), nil
//	}, []float64{2, 3})
//	// v = 6, g = [3, 2]
func Gradient(t *Tape, f Func, x []float64) (float64, []float64, error) {
	t.Clear()
	defer t.Clear()

	vars := t.Vars(x)
	out, err := f(vars)
	if err != nil {
		return 0, nil, fmt.Errorf("autodiff: evaluate: %w", err)
	}

	if err := t.owns(out); err != nil {
		return 0, nil, err
	}
	value := out.Value()
	if err := t.Backward(out); err != nil {
		return value, nil, err
	}
	return value, Adjoints(vars), nil
}

// Evaluate runs f at x without a reverse pass and clears t afterwards.
func Evaluate(t *Tape, f Func, x []float64) (float64, error) {
	t.Clear()
	defer t.Clear()

	out, err := f(t.Vars(x))
	if err != nil {
		return 0, fmt.Errorf("autodiff: evaluate: %w", err)
	}
	if err := t.owns(out); err != nil {
		return 0, err
	}
	return out.Value(), nil
}
