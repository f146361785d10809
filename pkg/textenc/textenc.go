// Package textenc holds the UTF-8 decoding and quoting rules used when
// writing runes as text.
//
// All functions are pure: they append to dst and return the extended slice.
package textenc

import (
	"unicode"
	"unicode/utf8"
)

const lowerhex = "0123456789abcdef"

// MaxQuotedRuneLen is the longest output of AppendQuotedRune: two quotes
// around a `\UXXXXXXXX` escape.
const MaxQuotedRuneLen = 12

// DecodeLastRune decodes the last rune in p and returns it with its width.
//
// An empty p yields (utf8.RuneError, 0). Trailing bytes that do not form a
// valid encoding yield (utf8.RuneError, 1), so callers always make progress
// one byte at a time through malformed input.
func DecodeLastRune(p []byte) (rune, int) {
	return utf8.DecodeLastRune(p)
}

// AppendQuotedRune appends r surrounded by single quotes, escaping it as
// AppendEscapedRune does.
func AppendQuotedRune(dst []byte, r rune) []byte {
	dst = append(dst, '\'')
	dst = AppendEscapedRune(dst, r, '\'', false)
	return append(dst, '\'')
}

// AppendQuotedString appends s surrounded by quote, escaping each rune.
// Bytes that are not valid UTF-8 are written as \xNN.
func AppendQuotedString(dst []byte, s string, quote byte) []byte {
	dst = append(dst, quote)
	for len(s) > 0 {
		var n int
		dst, n = AppendEscapedPrefix(dst, s, quote, false)
		s = s[n:]
	}
	return append(dst, quote)
}

// AppendEscapedPrefix escapes the first rune of s, or its first byte as \xNN
// if s does not start with valid UTF-8, and returns how many bytes of s were
// consumed. An empty s consumes nothing.
func AppendEscapedPrefix(dst []byte, s string, quote byte, htmlSafe bool) ([]byte, int) {
	if len(s) == 0 {
		return dst, 0
	}
	r, width := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && width == 1 {
		return appendHexByte(dst, s[0]), 1
	}
	return AppendEscapedRune(dst, r, quote, htmlSafe), width
}

// AppendEscapedRune appends r as it would appear between quote characters.
//
// The quote character and backslash are backslash-escaped, printable runes
// are written as-is, the usual control characters use their short escapes
// and everything else becomes \xNN, \uNNNN or \UNNNNNNNN. With htmlSafe set,
// '<', '>' and '&' are written as \u003c, \u003e and \u0026. Runes that
// are not valid code points are written as \ufffd.
//
// Only an ASCII quote is escaped. A quote byte of 0x80 or above is not a
// rune by itself, so no rune matches it.
func AppendEscapedRune(dst []byte, r rune, quote byte, htmlSafe bool) []byte {
	if htmlSafe {
		switch r {
		case '<', '>', '&':
			return appendHex(dst, 'u', r, 4)
		}
	}
	if (quote < utf8.RuneSelf && r == rune(quote)) || r == '\\' {
		return append(dst, '\\', byte(r))
	}
	if r < utf8.RuneSelf && r >= ' ' && r != 0x7f {
		return append(dst, byte(r))
	}
	if r >= utf8.RuneSelf && utf8.ValidRune(r) && unicode.IsPrint(r) {
		return utf8.AppendRune(dst, r)
	}

	if esc, ok := shortEscape(r); ok {
		return append(dst, '\\', esc)
	}
	switch {
	case !utf8.ValidRune(r):
		return appendHex(dst, 'u', utf8.RuneError, 4)
	case r < ' ' || r == 0x7f:
		return appendHexByte(dst, byte(r))
	case r < 0x10000:
		return appendHex(dst, 'u', r, 4)
	default:
		return appendHex(dst, 'U', r, 8)
	}
}

// AppendEncodedRune appends r with only control characters escaped, the
// lighter-weight form used for character literals in diagnostics. With
// writeQuote set the result is wrapped in single quotes and a single quote
// rune is escaped.
func AppendEncodedRune(dst []byte, r rune, writeQuote bool) []byte {
	if writeQuote {
		dst = append(dst, '\'')
	}
	switch {
	case r == '\'' && writeQuote:
		dst = append(dst, '\\', '\'')
	case r == '\\':
		dst = append(dst, '\\', '\\')
	case r >= 0 && r < ' ':
		if esc, ok := shortEscape(r); ok {
			dst = append(dst, '\\', esc)
		} else {
			dst = appendHexByte(dst, byte(r))
		}
	default:
		dst = utf8.AppendRune(dst, r)
	}
	if writeQuote {
		dst = append(dst, '\'')
	}
	return dst
}

func shortEscape(r rune) (byte, bool) {
	switch r {
	case '\a':
		return 'a', true
	case '\b':
		return 'b', true
	case '\f':
		return 'f', true
	case '\n':
		return 'n', true
	case '\r':
		return 'r', true
	case '\t':
		return 't', true
	case '\v':
		return 'v', true
	}
	return 0, false
}

func appendHexByte(dst []byte, c byte) []byte {
	return append(dst, '\\', 'x', lowerhex[c>>4], lowerhex[c&0xf])
}

func appendHex(dst []byte, prefix byte, r rune, digits int) []byte {
	dst = append(dst, '\\', prefix)
	for s := (digits - 1) * 4; s >= 0; s -= 4 {
		dst = append(dst, lowerhex[(r>>uint(s))&0xf])
	}
	return dst
}
