package autodiff

import (
	"fmt"

	"github.com/KaiKogure/stan/internal/autodiff/ops"
)

// Tape records scalar operations during the forward pass and computes
// adjoints during the reverse pass.
//
// The tape owns all storage: forward values and adjoints live in parallel
// slices indexed by variable, nodes refer to their operands by index, and
// node-private buffers come from the tape's arenas. Nothing is freed
// individually; Clear reclaims everything in bulk.
//
// Usage:
//
//	tape := NewTape()
//	x := tape.Var(2)
//	y := Mul(x, x)
//	if err := tape.Backward(y); err != nil { ... }
//	dydx := x.Adjoint() // 4
//
// A Tape is not safe for concurrent use.
type Tape struct {
	vals  []float64  // forward values, by variable index
	adjs  []float64  // adjoints, by variable index
	nodes []ops.Node // recorded nodes (in creation order)
	gen   uint64     // incremented by Clear

	floats  arena[float64]
	indices arena[int]
}

// NewTape creates a new empty tape.
func NewTape() *Tape {
	return &Tape{
		vals:  make([]float64, 0, 256),
		adjs:  make([]float64, 0, 256),
		nodes: make([]ops.Node, 0, 64),
	}
}

// Var creates an independent variable (a leaf) with the given value.
func (t *Tape) Var(v float64) Var {
	return Var{tape: t, idx: t.push(v), gen: t.gen}
}

// Vars creates one independent variable per value.
func (t *Tape) Vars(vs []float64) []Var {
	out := make([]Var, len(vs))
	for i, v := range vs {
		out[i] = t.Var(v)
	}
	return out
}

// Constant creates a leaf whose adjoint is never read. It is a Var like any
// other; the distinction only documents intent at the call site.
func (t *Tape) Constant(v float64) Var {
	return t.Var(v)
}

// push appends a new variable slot and returns its index.
func (t *Tape) push(v float64) int {
	t.vals = append(t.vals, v)
	t.adjs = append(t.adjs, 0)
	return len(t.vals) - 1
}

// Record adds a node to the tape. The node's output index must have been
// allocated on this tape after all of its operands.
func (t *Tape) Record(node ops.Node) {
	t.nodes = append(t.nodes, node)
}

// Alloc returns a zeroed node-private float64 buffer owned by the tape.
func (t *Tape) Alloc(n int) []float64 {
	return t.floats.alloc(n)
}

// AllocIndex returns a zeroed node-private index buffer owned by the tape.
func (t *Tape) AllocIndex(n int) []int {
	return t.indices.alloc(n)
}

// Backward runs the reverse pass from out.
//
// The adjoint of out is set to 1 and every node created at or before out is
// chained in reverse creation order. Adjoints accumulate across calls; use
// ZeroAdjoints between independent reverse passes on the same tape.
//
// The first node that fails aborts the traversal; its error is returned
// wrapped, and adjoints are left partially accumulated.
func (t *Tape) Backward(out Var) error {
	if err := t.owns(out); err != nil {
		return err
	}

	t.adjs[out.idx] = 1

	for i := len(t.nodes) - 1; i >= 0; i-- {
		node := t.nodes[i]
		if node.Output() > out.idx {
			continue
		}
		if err := node.Chain(t.adjs); err != nil {
			return fmt.Errorf("autodiff: backward through node %d (%T): %w", i, node, err)
		}
	}
	return nil
}

// owns checks that v was created on this tape since the last Clear.
func (t *Tape) owns(v Var) error {
	if v.tape != t || v.gen != t.gen || v.idx < 0 || v.idx >= len(t.vals) {
		return fmt.Errorf("autodiff: index %d: %w", v.idx, ErrForeignVar)
	}
	return nil
}

// ZeroAdjoints resets every adjoint to zero, keeping values and nodes.
func (t *Tape) ZeroAdjoints() {
	clear(t.adjs)
}

// Clear resets the tape, dropping every variable, node and arena buffer.
// Variables created before Clear must not be used afterwards.
func (t *Tape) Clear() {
	clear(t.nodes) // release node references for the GC
	t.nodes = t.nodes[:0]
	t.vals = t.vals[:0]
	t.adjs = t.adjs[:0]
	t.floats.reset()
	t.indices.reset()
	t.gen++
}

// NumOps returns the number of recorded nodes.
func (t *Tape) NumOps() int {
	return len(t.nodes)
}

// Len returns the number of variables on the tape.
func (t *Tape) Len() int {
	return len(t.vals)
}

// ArenaCapacity returns the number of float64 and int elements currently
// reserved by the tape's arenas.
func (t *Tape) ArenaCapacity() (floats, indices int) {
	return t.floats.capacity(), t.indices.capacity()
}
