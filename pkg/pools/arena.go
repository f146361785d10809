package pools

import (
	"fmt"
	"sync"
)

// DefaultSlabSize is the slab size used by NewArena when none is given.
const DefaultSlabSize = 64 * 1024

// Arena carves allocations out of large slabs and releases them all at once
// with Reset. Free is a no-op. The most recent allocation can grow in place
// while its slab has room, which makes a single builder appending into an
// arena nearly copy-free.
//
// An Arena with a slab limit returns ErrOutOfMemory once the limit is
// reached, which gives a hard memory ceiling for a batch of builders.
type Arena struct {
	mu       sync.Mutex
	slabSize int
	maxSlabs int // 0 means unlimited

	slabs [][]byte
	cur   []byte // current slab; len is the used portion
	used  int    // bytes handed out across all slabs
}

// NewArena creates an arena. slabSize <= 0 selects DefaultSlabSize and
// maxSlabs <= 0 lifts the slab limit.
func NewArena(slabSize, maxSlabs int) *Arena {
	if slabSize <= 0 {
		slabSize = DefaultSlabSize
	}
	if maxSlabs < 0 {
		maxSlabs = 0
	}
	return &Arena{slabSize: slabSize, maxSlabs: maxSlabs}
}

// newSlab must be called with a.mu held.
func (a *Arena) newSlab(size int) error {
	if a.maxSlabs > 0 && len(a.slabs) >= a.maxSlabs {
		return fmt.Errorf("%w: arena limit of %d slabs reached", ErrOutOfMemory, a.maxSlabs)
	}
	if size < a.slabSize {
		size = a.slabSize
	}
	a.cur = make([]byte, 0, size)
	a.slabs = append(a.slabs, a.cur)
	return nil
}

// carve must be called with a.mu held.
func (a *Arena) carve(size int) ([]byte, error) {
	if cap(a.cur)-len(a.cur) < size {
		if err := a.newSlab(size); err != nil {
			return nil, err
		}
	}
	off := len(a.cur)
	a.cur = a.cur[:off+size]
	a.used += size
	// Three-index slice so appends past size can never spill into a neighbour.
	return a.cur[off:off:off+size], nil
}

// Alloc implements Allocator.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.carve(size)
}

// Resize implements Allocator.
func (a *Arena) Resize(buf []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if cap(buf) >= size {
		return buf, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isLast(buf) && cap(a.cur)-len(a.cur) >= size-cap(buf) {
		start := len(a.cur) - cap(buf)
		extra := size - cap(buf)
		a.cur = a.cur[:len(a.cur)+extra]
		a.used += extra
		return a.cur[start : start+len(buf) : start+size], nil
	}

	nb, err := a.carve(size)
	if err != nil {
		return nil, err
	}
	return append(nb, buf...), nil
}

// isLast reports whether buf ends exactly where the current slab's used
// region ends. Must be called with a.mu held.
func (a *Arena) isLast(buf []byte) bool {
	c := cap(buf)
	if c == 0 || len(a.cur) < c {
		return false
	}
	return &buf[:c][c-1] == &a.cur[len(a.cur)-1]
}

// Free implements Allocator. Arena memory is only reclaimed by Reset.
func (a *Arena) Free([]byte) {}

// Reset releases every allocation at once. The first slab is kept for reuse;
// slices handed out before Reset must no longer be used.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.slabs) == 0 {
		return
	}
	first := a.slabs[0]
	clear(a.slabs)
	a.slabs = append(a.slabs[:0], first[:0])
	a.cur = a.slabs[0]
	a.used = 0
}

// Used returns the number of bytes handed out since the last Reset.
func (a *Arena) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Slabs returns the number of slabs currently held.
func (a *Arena) Slabs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slabs)
}
