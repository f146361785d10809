// Package stream defines the generic byte-sink capability that buffers
// expose to the rest of the system.
//
// Consumers that only need somewhere to put bytes should accept a Stream
// rather than a concrete buffer type.
package stream

import (
	"fmt"
	"io"
)

// ErrFull reports that a sink accepted fewer bytes than were offered because
// its fixed capacity ran out. It matches io.ErrShortWrite with errors.Is.
var ErrFull = fmt.Errorf("end of capacity reached: %w", io.ErrShortWrite)

// Stream is a byte sink with a known size and an explicit release step.
type Stream interface {
	// Write appends p and returns how many bytes were accepted. A short
	// count comes with a non-nil error, ErrFull for a full fixed sink.
	Write(p []byte) (int, error)
	// WriteByte appends a single byte.
	WriteByte(c byte) error
	// Size returns the number of bytes held.
	Size() int64
	// Destroy releases the sink's resources. It always succeeds for
	// in-memory sinks.
	Destroy() error
}

// WriteString writes s to w, using w's own WriteString when it has one.
func WriteString(w Stream, s string) (int, error) {
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(s)
	}
	return w.Write([]byte(s))
}

// Copy reads src until EOF and writes everything to dst. It stops at the
// first write error, which for a fixed-capacity dst is ErrFull.
func Copy(dst Stream, src io.Reader) (int64, error) {
	return io.Copy(writerOnly{dst}, src)
}

// writerOnly hides any ReadFrom on dst so io.Copy goes through Write.
type writerOnly struct{ s Stream }

func (w writerOnly) Write(p []byte) (int, error) { return w.s.Write(p) }
