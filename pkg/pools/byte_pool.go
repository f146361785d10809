package pools

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Buffer size classes for efficient reuse
const (
	TinySize   = 16    // Default builder capacity
	SmallSize  = 64    // Short strings, keys
	MediumSize = 256   // Log lines, small documents
	LargeSize  = 1024  // Formatted records
	HugeSize   = 4096  // Batch output
	MaxPool    = 65536 // Don't pool buffers larger than this
)

var classSizes = [...]int{TinySize, SmallSize, MediumSize, LargeSize, HugeSize}

// sizeClass manages a single size class of buffers
type sizeClass struct {
	size int
	pool sync.Pool

	gets     atomic.Uint64
	misses   atomic.Uint64 // New() calls
	puts     atomic.Uint64
	discards atomic.Uint64 // Put with a slice too small for any class
}

func newSizeClass(size int) *sizeClass {
	sc := &sizeClass{size: size}
	sc.pool.New = func() any {
		sc.misses.Add(1)
		b := make([]byte, 0, sc.size)
		return &b
	}
	return sc
}

// BytePool provides size-class based pooling for byte slices.
// It implements Allocator, so builders can recycle their storage through it.
type BytePool struct {
	classes   [len(classSizes)]*sizeClass
	oversized atomic.Uint64 // requests above HugeSize, allocated directly
}

// NewBytePool creates a new byte pool.
func NewBytePool() *BytePool {
	p := &BytePool{}
	for i, size := range classSizes {
		p.classes[i] = newSizeClass(size)
	}
	return p
}

// classFor returns the smallest class that can hold size bytes.
func (p *BytePool) classFor(size int) *sizeClass {
	for _, sc := range p.classes {
		if size <= sc.size {
			return sc
		}
	}
	return nil
}

// Get returns a byte slice with at least the requested capacity.
// The returned slice has length 0.
func (p *BytePool) Get(size int) []byte {
	sc := p.classFor(size)
	if sc == nil {
		// Too large to pool, allocate directly
		p.oversized.Add(1)
		return make([]byte, 0, size)
	}
	sc.gets.Add(1)

	bp, ok := sc.pool.Get().(*[]byte)
	if !ok || cap(*bp) < size {
		return make([]byte, 0, sc.size)
	}
	return (*bp)[:0]
}

// GetSized returns a byte slice with exactly the requested length.
func (p *BytePool) GetSized(size int) []byte {
	b := p.Get(size)
	return b[:size]
}

// Put returns a byte slice to the pool for reuse.
// A slice is filed under the largest class its capacity can serve;
// slices larger than MaxPool are dropped.
func (p *BytePool) Put(b []byte) {
	c := cap(b)
	if b == nil || c > MaxPool {
		return
	}

	var sc *sizeClass
	for i := len(p.classes) - 1; i >= 0; i-- {
		if c >= p.classes[i].size {
			sc = p.classes[i]
			break
		}
	}
	if sc == nil {
		p.classes[0].discards.Add(1)
		return
	}

	sc.puts.Add(1)
	b = b[:0]
	sc.pool.Put(&b)
}

// Alloc implements Allocator.
func (p *BytePool) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return p.Get(size), nil
}

// Resize implements Allocator. The old slice goes back to the pool.
func (p *BytePool) Resize(buf []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if cap(buf) >= size {
		return buf, nil
	}
	nb := append(p.Get(size), buf...)
	p.Put(buf)
	return nb, nil
}

// Free implements Allocator.
func (p *BytePool) Free(buf []byte) {
	p.Put(buf)
}

// ClassStats contains metrics for a single size class
type ClassStats struct {
	Size     int
	Gets     uint64
	Puts     uint64
	Hits     uint64
	Misses   uint64
	Discards uint64
	HitRate  float64 // percentage
}

// PoolStats is a snapshot of a BytePool's counters.
type PoolStats struct {
	Classes   []ClassStats
	Oversized uint64
}

// Stats returns a snapshot of the pool's counters.
func (p *BytePool) Stats() PoolStats {
	stats := PoolStats{
		Classes:   make([]ClassStats, 0, len(p.classes)),
		Oversized: p.oversized.Load(),
	}
	for _, sc := range p.classes {
		gets := sc.gets.Load()
		misses := sc.misses.Load()

		// New() increments misses, so hits are whatever Get served from the pool
		var hits uint64
		if gets >= misses {
			hits = gets - misses
		}
		var hitRate float64
		if gets > 0 {
			hitRate = float64(hits) / float64(gets) * 100.0
		}

		stats.Classes = append(stats.Classes, ClassStats{
			Size:     sc.size,
			Gets:     gets,
			Puts:     sc.puts.Load(),
			Hits:     hits,
			Misses:   misses,
			Discards: sc.discards.Load(),
			HitRate:  hitRate,
		})
	}
	return stats
}

// Default global byte pool
var defaultBytePool = NewBytePool()

// Default returns the process-wide BytePool.
func Default() *BytePool {
	return defaultBytePool
}
