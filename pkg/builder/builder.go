// Package builder provides Builder, a byte buffer that accumulates text and
// binary output.
//
// A Builder works in one of two modes:
//
//   - owned: storage comes from a pools.Allocator and grows as needed, so
//     every append succeeds unless the allocator itself fails
//   - fixed: storage is a caller-supplied slice that is never reallocated;
//     appends that do not fit are truncated and report a short count
//
// The zero Builder is an empty owned builder backed by pools.Heap.
//
// A Builder is not safe for concurrent use. Slices returned by Bytes are
// invalidated by any call that grows or releases the storage.
package builder

import (
	"github.com/dd0wney/bytebuilder/pkg/pools"
)

// DefaultCapacity is the capacity of a builder created without a size.
const DefaultCapacity = pools.TinySize

type mode uint8

const (
	modeOwned mode = iota
	modeFixed
)

// Builder accumulates bytes. len(buf) is the length, cap(buf) the capacity.
type Builder struct {
	buf   []byte
	alloc pools.Allocator
	mode  mode
	err   error // last allocation failure seen by a count-returning append
}

// New returns an empty owned builder with DefaultCapacity bytes of storage
// from a. A nil a selects pools.Heap.
func New(a pools.Allocator) (*Builder, error) {
	return NewLenCap(0, DefaultCapacity, a)
}

// NewLen returns an owned builder holding n zero bytes.
func NewLen(n int, a pools.Allocator) (*Builder, error) {
	return NewLenCap(n, DefaultCapacity, a)
}

// NewLenCap returns an owned builder holding n zero bytes with capacity of
// at least max(n, c).
func NewLenCap(n, c int, a pools.Allocator) (*Builder, error) {
	b := &Builder{}
	if err := b.Init(n, c, a); err != nil {
		return nil, err
	}
	return b, nil
}

// Init prepares b as an owned builder holding n zero bytes with capacity of
// at least max(n, c), releasing whatever b held before. On error b is left
// empty.
func (b *Builder) Init(n, c int, a pools.Allocator) error {
	if n < 0 || c < 0 {
		return newSizeError("init", min(n, c))
	}
	b.Release()
	if a == nil {
		a = pools.Heap
	}
	b.alloc = a
	b.mode = modeOwned

	buf, err := a.Alloc(max(n, c))
	if err != nil {
		return err
	}
	buf = buf[:n]
	clear(buf)
	b.buf = buf
	return nil
}

// FromBytes returns a fixed builder that writes into backing. The builder
// starts empty with capacity len(backing) and never allocates; the caller
// keeps ownership of backing and must keep it alive while the builder is in
// use.
func FromBytes(backing []byte) *Builder {
	return &Builder{
		buf:  backing[:0:len(backing)],
		mode: modeFixed,
	}
}

func (b *Builder) allocator() pools.Allocator {
	if b.alloc == nil {
		return pools.Heap
	}
	return b.alloc
}

// Len returns the number of bytes held.
func (b *Builder) Len() int { return len(b.buf) }

// Cap returns the number of bytes b can hold before it must grow (owned)
// or starts truncating (fixed).
func (b *Builder) Cap() int { return cap(b.buf) }

// Space returns Cap() - Len().
func (b *Builder) Space() int { return cap(b.buf) - len(b.buf) }

// Fixed reports whether b writes into borrowed, fixed-size memory.
func (b *Builder) Fixed() bool { return b.mode == modeFixed }

// Bytes returns the accumulated bytes. The slice aliases b's storage.
func (b *Builder) Bytes() []byte { return b.buf }

// String returns a copy of the accumulated bytes as a string.
func (b *Builder) String() string { return string(b.buf) }

// Err returns the last allocation failure hit by one of the count-returning
// Append methods, or nil. Reset clears it.
func (b *Builder) Err() error { return b.err }

// Reset empties b but keeps its storage.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.err = nil
}

// Truncate discards all but the first n bytes. n outside [0, Len()] is
// clamped.
func (b *Builder) Truncate(n int) {
	b.buf = b.buf[:min(max(n, 0), len(b.buf))]
}

// Release gives owned storage back to the allocator and leaves b empty and
// owning nothing. For a fixed builder it only drops the reference to the
// caller's memory. Release is safe to call more than once.
func (b *Builder) Release() {
	if b.mode == modeOwned && b.buf != nil {
		b.allocator().Free(b.buf)
	}
	b.buf = nil
	b.err = nil
}

// AppendBytes appends as much of p as b can take and returns the count.
// Owned builders take all of p, or nothing if the allocator fails (see
// Err); fixed builders take min(len(p), Space()).
func (b *Builder) AppendBytes(p []byte) int {
	n, err := b.append(p)
	if err != nil {
		b.err = err
	}
	return n
}

// AppendString is AppendBytes for a string.
func (b *Builder) AppendString(s string) int {
	n, err := b.appendString(s)
	if err != nil {
		b.err = err
	}
	return n
}

// AppendByte appends c and returns 1, or 0 if there was no room.
func (b *Builder) AppendByte(c byte) int {
	n, err := b.appendByte(c)
	if err != nil {
		b.err = err
	}
	return n
}

// PopByte removes and returns the last byte. ok is false if b is empty.
func (b *Builder) PopByte() (c byte, ok bool) {
	n := len(b.buf)
	if n == 0 {
		return 0, false
	}
	c = b.buf[n-1]
	b.buf = b.buf[:n-1]
	return c, true
}

func (b *Builder) append(p []byte) (int, error) {
	if err := b.ensure(len(p)); err != nil {
		return 0, err
	}
	n := min(len(p), b.Space())
	b.buf = append(b.buf, p[:n]...)
	return n, nil
}

func (b *Builder) appendByte(c byte) (int, error) {
	if err := b.ensure(1); err != nil {
		return 0, err
	}
	if b.Space() == 0 {
		return 0, nil
	}
	b.buf = append(b.buf, c)
	return 1, nil
}

func (b *Builder) appendString(s string) (int, error) {
	if err := b.ensure(len(s)); err != nil {
		return 0, err
	}
	n := min(len(s), b.Space())
	b.buf = append(b.buf, s[:n]...)
	return n, nil
}
