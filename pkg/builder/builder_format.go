package builder

import (
	"github.com/dd0wney/bytebuilder/pkg/numconv"
	"github.com/dd0wney/bytebuilder/pkg/textenc"
)

// AppendInt appends i in the given base (2 to 36). An invalid base writes
// nothing and is reported by Err.
func (b *Builder) AppendInt(i int64, base int) int {
	var scratch [numconv.IntScratchSize]byte
	s, err := numconv.AppendInt(scratch[:0], i, base)
	if err != nil {
		b.err = err
		return 0
	}
	return b.AppendBytes(s)
}

// AppendUint appends u in the given base (2 to 36).
func (b *Builder) AppendUint(u uint64, base int) int {
	var scratch [numconv.IntScratchSize]byte
	s, err := numconv.AppendUint(scratch[:0], u, base)
	if err != nil {
		b.err = err
		return 0
	}
	return b.AppendBytes(s)
}

// AppendFloat appends f using strconv's format verbs ('f', 'e', 'g', ...),
// precision and bit size. Positive values get a leading '+' only when
// alwaysSigned is set; +Inf always keeps its sign.
func (b *Builder) AppendFloat(f float64, format byte, prec, bitSize int, alwaysSigned bool) int {
	var scratch [numconv.FloatScratchSize]byte
	s := numconv.AppendFloat(scratch[:0], f, format, prec, bitSize)
	if !alwaysSigned && len(s) > 1 && s[0] == '+' && s[1] != 'I' {
		s = s[1:]
	}
	return b.AppendBytes(s)
}

// AppendF32 appends f with the shortest precision that round-trips.
func (b *Builder) AppendF32(f float32, format byte, alwaysSigned bool) int {
	return b.AppendFloat(float64(f), format, -1, 32, alwaysSigned)
}

// AppendF64 appends f with the shortest precision that round-trips.
func (b *Builder) AppendF64(f float64, format byte, alwaysSigned bool) int {
	return b.AppendFloat(f, format, -1, 64, alwaysSigned)
}

// AppendQuotedRune appends r in single quotes with Go-style escapes.
func (b *Builder) AppendQuotedRune(r rune) int {
	var scratch [textenc.MaxQuotedRuneLen]byte
	return b.AppendBytes(textenc.AppendQuotedRune(scratch[:0], r))
}

// AppendEscapedRune appends r escaped for use between quote characters.
// With htmlSafe set, '<', '>' and '&' are escaped too.
func (b *Builder) AppendEscapedRune(r rune, quote byte, htmlSafe bool) int {
	var scratch [textenc.MaxQuotedRuneLen]byte
	return b.AppendBytes(textenc.AppendEscapedRune(scratch[:0], r, quote, htmlSafe))
}

// AppendEncodedRune appends r with only control characters escaped,
// optionally wrapped in single quotes.
func (b *Builder) AppendEncodedRune(r rune, writeQuote bool) int {
	var scratch [textenc.MaxQuotedRuneLen]byte
	return b.AppendBytes(textenc.AppendEncodedRune(scratch[:0], r, writeQuote))
}

// AppendQuotedString appends s surrounded by quote with every rune escaped.
//
// A fixed builder keeps whatever prefix of the quoted form fits, so the
// result may stop inside an escape sequence or before the closing quote.
// Compare the returned count with Space beforehand, or reserve
// len(s)*textenc.MaxQuotedRuneLen+2 bytes, when a well-formed literal is required.
func (b *Builder) AppendQuotedString(s string, quote byte) int {
	n := b.AppendByte(quote)
	var scratch [textenc.MaxQuotedRuneLen]byte
	for len(s) > 0 {
		esc, width := textenc.AppendEscapedPrefix(scratch[:0], s, quote, false)
		n += b.AppendBytes(esc)
		s = s[width:]
	}
	return n + b.AppendByte(quote)
}
