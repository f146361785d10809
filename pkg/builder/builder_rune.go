package builder

import (
	"unicode/utf8"

	"github.com/dd0wney/bytebuilder/pkg/textenc"
)

// AppendRune appends the UTF-8 encoding of r and returns the number of bytes
// written. A fixed builder without room for the whole encoding writes
// nothing, so a rune is never split.
func (b *Builder) AppendRune(r rune) int {
	n, err := b.appendRune(r)
	if err != nil {
		b.err = err
	}
	return n
}

func (b *Builder) appendRune(r rune) (int, error) {
	if r >= 0 && r < utf8.RuneSelf {
		return b.appendByte(byte(r))
	}
	var scratch [utf8.UTFMax]byte
	enc := utf8.AppendRune(scratch[:0], r)
	if err := b.ensure(len(enc)); err != nil {
		return 0, err
	}
	if b.Space() < len(enc) {
		return 0, nil
	}
	b.buf = append(b.buf, enc...)
	return len(enc), nil
}

// PopRune removes the last UTF-8 encoded rune and returns it with its width
// in bytes. An empty builder returns (utf8.RuneError, 0). Trailing bytes that
// are not valid UTF-8 are removed one at a time as (utf8.RuneError, 1).
func (b *Builder) PopRune() (r rune, width int) {
	if len(b.buf) == 0 {
		return utf8.RuneError, 0
	}
	r, width = textenc.DecodeLastRune(b.buf)
	b.buf = b.buf[:max(len(b.buf)-width, 0)]
	return r, width
}
