package autodiff

// defaultBlockSize is the number of elements in a fresh arena block.
const defaultBlockSize = 4096

// arena hands out node-private buffers carved from large blocks.
//
// Buffers are never freed individually. reset makes every block available
// again at once; buffers handed out before a reset must no longer be used.
type arena[T any] struct {
	blocks    [][]T // blocks[:next+1] are in use
	next      int
	blockSize int
}

// alloc returns a zeroed slice of length n whose capacity is also n, so
// appending to it never spills into a neighbouring buffer.
func (a *arena[T]) alloc(n int) []T {
	if n == 0 {
		return nil
	}
	for a.next < len(a.blocks) {
		b := a.blocks[a.next]
		if cap(b)-len(b) >= n {
			s := b[len(b) : len(b)+n : len(b)+n]
			a.blocks[a.next] = b[:len(b)+n]
			clear(s)
			return s
		}
		a.next++
	}

	size := a.blockSize
	if size == 0 {
		size = defaultBlockSize
	}
	b := make([]T, n, max(size, n))
	a.blocks = append(a.blocks, b)
	a.next = len(a.blocks) - 1
	return b[:n:n]
}

// reset releases every buffer in bulk and keeps the blocks for reuse.
func (a *arena[T]) reset() {
	for i := range a.blocks {
		a.blocks[i] = a.blocks[i][:0]
	}
	a.next = 0
}

// capacity returns the total number of elements held by the arena's blocks.
func (a *arena[T]) capacity() int {
	n := 0
	for _, b := range a.blocks {
		n += cap(b)
	}
	return n
}
