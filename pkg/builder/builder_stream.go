package builder

import (
	"io"

	"github.com/dd0wney/bytebuilder/pkg/stream"
)

var (
	_ stream.Stream   = (*Builder)(nil)
	_ io.Writer       = (*Builder)(nil)
	_ io.ByteWriter   = (*Builder)(nil)
	_ io.StringWriter = (*Builder)(nil)
)

// Write appends p. A short count is reported with the allocator's error if
// growth failed, or stream.ErrFull if a fixed builder ran out of room.
func (b *Builder) Write(p []byte) (int, error) {
	n, err := b.append(p)
	return n, shortWrite(n, len(p), err)
}

// WriteString appends s with the same error reporting as Write.
func (b *Builder) WriteString(s string) (int, error) {
	n, err := b.appendString(s)
	return n, shortWrite(n, len(s), err)
}

// WriteByte appends c, returning stream.ErrFull if there was no room.
func (b *Builder) WriteByte(c byte) error {
	n, err := b.appendByte(c)
	return shortWrite(n, 1, err)
}

// WriteRune appends the UTF-8 encoding of r.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.appendRune(r)
	if n == 0 {
		return 0, shortWrite(0, 1, err)
	}
	return n, nil
}

// Size returns Len() as an int64.
func (b *Builder) Size() int64 { return int64(len(b.buf)) }

// Destroy releases b. It always returns nil.
func (b *Builder) Destroy() error {
	b.Release()
	return nil
}

func shortWrite(n, want int, err error) error {
	if n == want {
		return nil
	}
	if err != nil {
		return err
	}
	return stream.ErrFull
}
