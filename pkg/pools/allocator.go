package pools

import "fmt"

// Allocator supplies and reclaims the storage of growable buffers.
//
// A failed Alloc or Resize must leave the caller's existing buffer untouched
// and usable.
type Allocator interface {
	// Alloc returns a zero-length slice with capacity of at least size.
	Alloc(size int) ([]byte, error)
	// Resize returns a slice holding the contents of buf with capacity of at
	// least size. On success buf belongs to the allocator again and must not
	// be used by the caller.
	Resize(buf []byte, size int) ([]byte, error)
	// Free hands buf back to the allocator. Nil slices are ignored.
	Free(buf []byte)
}

// Heap is the default Allocator. It allocates with make and leaves freed
// memory to the garbage collector.
var Heap Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return make([]byte, 0, size), nil
}

func (heapAllocator) Resize(buf []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if cap(buf) >= size {
		return buf, nil
	}
	nb := make([]byte, len(buf), size)
	copy(nb, buf)
	return nb, nil
}

func (heapAllocator) Free([]byte) {}

// Name returns the label used for a in logs and metrics.
func Name(a Allocator) string {
	switch a.(type) {
	case nil, heapAllocator:
		return "heap"
	case *BytePool:
		return "pool"
	case *Arena:
		return "arena"
	case *limited:
		return "limited"
	default:
		return fmt.Sprintf("%T", a)
	}
}
