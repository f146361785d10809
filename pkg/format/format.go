// Package format writes common encodings to any stream.Stream.
//
// Every function returns the number of bytes the stream accepted. A fixed
// capacity stream that fills up returns stream.ErrFull with a short count.
package format

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dd0wney/bytebuilder/pkg/stream"
	"github.com/dd0wney/bytebuilder/pkg/textenc"
)

// quoteChunk is how much escaped text Quote buffers before writing.
const quoteChunk = 256

// JSON writes the JSON encoding of v with no trailing newline.
func JSON(s stream.Stream, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("format json: %w", err)
	}
	return s.Write(data)
}

// UUID writes id in its canonical 36 character form.
func UUID(s stream.Stream, id uuid.UUID) (int, error) {
	return stream.WriteString(s, id.String())
}

// Quote writes str between quote characters with Go-style escapes. Invalid
// UTF-8 is written as \xNN. With htmlSafe set, '<', '>' and '&' are
// escaped as well.
func Quote(s stream.Stream, str string, quote byte, htmlSafe bool) (int, error) {
	return escape(s, str, quote, htmlSafe, true)
}

// Escape writes str with the escapes Quote uses but without the
// surrounding quote characters.
func Escape(s stream.Stream, str string, quote byte, htmlSafe bool) (int, error) {
	return escape(s, str, quote, htmlSafe, false)
}

func escape(s stream.Stream, str string, quote byte, htmlSafe, wrap bool) (int, error) {
	var scratch [quoteChunk + textenc.MaxQuotedRuneLen]byte
	buf := scratch[:0]
	if wrap {
		buf = append(buf, quote)
	}

	written := 0
	flush := func() error {
		n, err := s.Write(buf)
		written += n
		buf = buf[:0]
		return err
	}

	for len(str) > 0 {
		var width int
		buf, width = textenc.AppendEscapedPrefix(buf, str, quote, htmlSafe)
		str = str[width:]
		if len(buf) >= quoteChunk {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if wrap {
		buf = append(buf, quote)
	}
	if len(buf) == 0 {
		return written, nil
	}
	err := flush()
	return written, err
}
