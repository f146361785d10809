package metrics

import (
	"errors"

	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

// instrumentedAllocator reports every call on the wrapped allocator.
type instrumentedAllocator struct {
	a    pools.Allocator
	name string
	r    *Registry
}

// Instrument wraps a so that its calls are counted under the given label.
// An empty name uses pools.Name(a).
func (r *Registry) Instrument(a pools.Allocator, name string) pools.Allocator {
	if a == nil {
		a = pools.Heap
	}
	if name == "" {
		name = pools.Name(a)
	}
	return &instrumentedAllocator{a: a, name: name, r: r}
}

func (i *instrumentedAllocator) Alloc(size int) ([]byte, error) {
	b, err := i.a.Alloc(size)
	if err != nil {
		i.r.RecordAllocationFailure(i.name)
		return nil, err
	}
	i.r.RecordAllocation(i.name, "alloc", cap(b), cap(b))
	return b, nil
}

func (i *instrumentedAllocator) Resize(buf []byte, size int) ([]byte, error) {
	old := cap(buf)
	nb, err := i.a.Resize(buf, size)
	if err != nil {
		i.r.RecordAllocationFailure(i.name)
		return nil, err
	}
	delta := cap(nb) - old
	i.r.RecordAllocation(i.name, "resize", max(delta, 0), delta)
	return nb, nil
}

func (i *instrumentedAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	i.r.RecordAllocation(i.name, "free", 0, -cap(buf))
	i.a.Free(buf)
}

// countingStream reports the bytes written through the wrapped stream.
type countingStream struct {
	s stream.Stream
	r *Registry
}

// Stream wraps s so that accepted bytes and short writes are counted.
func (r *Registry) Stream(s stream.Stream) stream.Stream {
	return &countingStream{s: s, r: r}
}

func (c *countingStream) Write(p []byte) (int, error) {
	n, err := c.s.Write(p)
	c.r.RecordWrite(n, errors.Is(err, stream.ErrFull))
	return n, err
}

func (c *countingStream) WriteString(s string) (int, error) {
	n, err := stream.WriteString(c.s, s)
	c.r.RecordWrite(n, errors.Is(err, stream.ErrFull))
	return n, err
}

func (c *countingStream) WriteByte(b byte) error {
	err := c.s.WriteByte(b)
	n := 0
	if err == nil {
		n = 1
	}
	c.r.RecordWrite(n, errors.Is(err, stream.ErrFull))
	return err
}

func (c *countingStream) Size() int64 { return c.s.Size() }

func (c *countingStream) Destroy() error { return c.s.Destroy() }
