package autodiff

import (
	"math"

	"github.com/KaiKogure/stan/internal/autodiff/ops"
)

// tapeOf returns the tape shared by a and b, panicking on a mix of tapes.
func tapeOf(a, b Var) *Tape {
	if a.tape != b.tape {
		panic("autodiff: operands live on different tapes")
	}
	return a.tape
}

// Add returns a + b and records an AddOp.
func Add(a, b Var) Var {
	t := tapeOf(a, b)
	out := t.Var(a.Value() + b.Value())
	t.Record(ops.NewAddOp(a.idx, b.idx, out.idx))
	return out
}

// Sub returns a - b and records a SubOp.
func Sub(a, b Var) Var {
	t := tapeOf(a, b)
	out := t.Var(a.Value() - b.Value())
	t.Record(ops.NewSubOp(a.idx, b.idx, out.idx))
	return out
}

// Mul returns a * b and records a MulOp.
func Mul(a, b Var) Var {
	t := tapeOf(a, b)
	av, bv := a.Value(), b.Value()
	out := t.Var(av * bv)
	t.Record(ops.NewMulOp(a.idx, b.idx, av, bv, out.idx))
	return out
}

// Div returns a / b and records a DivOp.
func Div(a, b Var) Var {
	t := tapeOf(a, b)
	av, bv := a.Value(), b.Value()
	out := t.Var(av / bv)
	t.Record(ops.NewDivOp(a.idx, b.idx, av, bv, out.idx))
	return out
}

// Square returns x * x.
func Square(x Var) Var {
	return Mul(x, x)
}

// Scale returns c * x.
func Scale(x Var, c float64) Var {
	return linear(x, c, 0)
}

// Shift returns x + c.
func Shift(x Var, c float64) Var {
	return linear(x, 1, c)
}

// Neg returns -x.
func Neg(x Var) Var {
	return linear(x, -1, 0)
}

func linear(x Var, slope, intercept float64) Var {
	t := x.tape
	out := t.Var(slope*x.Value() + intercept)
	t.Record(ops.NewLinearOp(x.idx, slope, out.idx))
	return out
}

// Exp returns exp(x) and records an ExpOp.
func Exp(x Var) Var {
	t := x.tape
	y := math.Exp(x.Value())
	out := t.Var(y)
	t.Record(ops.NewExpOp(x.idx, y, out.idx))
	return out
}

// Log returns log(x) and records a LogOp.
func Log(x Var) Var {
	t := x.tape
	xv := x.Value()
	out := t.Var(math.Log(xv))
	t.Record(ops.NewLogOp(x.idx, xv, out.idx))
	return out
}

// Sqrt returns sqrt(x) and records a SqrtOp.
func Sqrt(x Var) Var {
	t := x.tape
	y := math.Sqrt(x.Value())
	out := t.Var(y)
	t.Record(ops.NewSqrtOp(x.idx, y, out.idx))
	return out
}

// Sum returns the sum of xs as a single SumOp. xs must not be empty.
func Sum(xs []Var) Var {
	t := tapeOfAll(xs)
	idx := t.AllocIndex(len(xs))
	var s float64
	for i, x := range xs {
		idx[i] = x.idx
		s += x.Value()
	}
	out := t.Var(s)
	t.Record(ops.NewSumOp(idx, out.idx))
	return out
}

// Dot returns Σ w[i]*xs[i] for constant weights w as a single DotOp.
// xs must not be empty and must have the same length as w.
func Dot(xs []Var, w []float64) Var {
	if len(xs) != len(w) {
		panic("autodiff: Dot operand and weight lengths differ")
	}
	t := tapeOfAll(xs)
	idx := t.AllocIndex(len(xs))
	weights := t.Alloc(len(w))
	copy(weights, w)
	var s float64
	for i, x := range xs {
		idx[i] = x.idx
		s += w[i] * x.Value()
	}
	out := t.Var(s)
	t.Record(ops.NewDotOp(idx, weights, out.idx))
	return out
}

func tapeOfAll(xs []Var) *Tape {
	if len(xs) == 0 {
		panic("autodiff: empty operand list")
	}
	t := xs[0].tape
	for _, x := range xs[1:] {
		if x.tape != t {
			panic("autodiff: operands live on different tapes")
		}
	}
	return t
}
