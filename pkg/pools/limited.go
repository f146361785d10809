package pools

import (
	"fmt"
	"sync"
)

// limited enforces a byte budget on top of another Allocator.
// The budget is charged by capacity, since that is what the parent hands out.
type limited struct {
	parent Allocator
	max    int

	mu   sync.Mutex
	live int
}

// Limited wraps a so that at most max bytes of capacity are live at once.
// Requests that would exceed the budget fail with ErrOutOfMemory, including
// requests the parent rounds up past it.
func Limited(a Allocator, max int) Allocator {
	if a == nil {
		a = Heap
	}
	return &limited{parent: a, max: max}
}

// Live returns the capacity currently charged against a Limited allocator,
// or -1 if a was not created by Limited.
func Live(a Allocator) int {
	l, ok := a.(*limited)
	if !ok {
		return -1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

func (l *limited) Alloc(size int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.live+size > l.max {
		return nil, fmt.Errorf("%w: requested %d bytes with %d of %d in use", ErrOutOfMemory, size, l.live, l.max)
	}
	b, err := l.parent.Alloc(size)
	if err != nil {
		return nil, err
	}
	// The parent may round up, so charge what it actually handed out.
	if l.live+cap(b) > l.max {
		l.parent.Free(b)
		return nil, fmt.Errorf("%w: %d bytes rounded up to %d with %d of %d in use", ErrOutOfMemory, size, cap(b), l.live, l.max)
	}
	l.live += cap(b)
	return b, nil
}

// Resize always moves through a fresh parent allocation so that a rounded-up
// result can be handed back without disturbing buf. Limited arenas therefore
// never grow in place.
func (l *limited) Resize(buf []byte, size int) ([]byte, error) {
	if cap(buf) >= size {
		return buf, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	old := cap(buf)
	if l.live-old+size > l.max {
		return nil, fmt.Errorf("%w: resize to %d bytes with %d of %d in use", ErrOutOfMemory, size, l.live, l.max)
	}
	nb, err := l.parent.Alloc(size)
	if err != nil {
		return nil, err
	}
	if l.live-old+cap(nb) > l.max {
		l.parent.Free(nb)
		return nil, fmt.Errorf("%w: resize to %d bytes rounded up to %d with %d of %d in use", ErrOutOfMemory, size, cap(nb), l.live, l.max)
	}
	nb = append(nb[:0], buf...)
	if buf != nil {
		l.parent.Free(buf)
	}
	l.live += cap(nb) - old
	return nb, nil
}

func (l *limited) Free(buf []byte) {
	if buf == nil {
		return
	}
	l.mu.Lock()
	l.live -= cap(buf)
	l.mu.Unlock()
	l.parent.Free(buf)
}
