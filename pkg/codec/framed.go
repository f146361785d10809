package codec

import (
	"io"

	"github.com/golang/snappy"

	"github.com/dd0wney/bytebuilder/pkg/stream"
)

var _ stream.Stream = (*FramedWriter)(nil)

// FramedWriter compresses everything written to it in the snappy framing
// format and forwards the frames to another stream. It is itself a Stream,
// so it can sit anywhere a builder can.
type FramedWriter struct {
	w    *snappy.Writer
	dst  stream.Stream
	size int64 // uncompressed bytes accepted
}

// NewFramedWriter returns a FramedWriter that writes frames to dst. Call
// Close (or Destroy) to flush the final frame.
func NewFramedWriter(dst stream.Stream) *FramedWriter {
	return &FramedWriter{
		w:   snappy.NewBufferedWriter(dst),
		dst: dst,
	}
}

// Write compresses p. Frames reach dst as the internal buffer fills.
func (f *FramedWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	f.size += int64(n)
	return n, err
}

// WriteByte compresses a single byte.
func (f *FramedWriter) WriteByte(c byte) error {
	_, err := f.Write([]byte{c})
	return err
}

// Size returns the number of uncompressed bytes accepted so far.
func (f *FramedWriter) Size() int64 { return f.size }

// Flush writes any buffered data to dst as a frame.
func (f *FramedWriter) Flush() error { return f.w.Flush() }

// Close flushes buffered data. It does not destroy dst.
func (f *FramedWriter) Close() error { return f.w.Close() }

// Destroy closes f and then destroys dst.
func (f *FramedWriter) Destroy() error {
	if err := f.Close(); err != nil {
		return err
	}
	return f.dst.Destroy()
}

// NewFramedReader returns a reader that decompresses the snappy framing
// format produced by FramedWriter.
func NewFramedReader(r io.Reader) io.Reader {
	return snappy.NewReader(r)
}
