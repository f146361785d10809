package stream

import "io"

// writer adapts an io.Writer to Stream.
type writer struct {
	w io.Writer
	n int64
}

// FromWriter returns a Stream that forwards to w and counts what w
// accepted. Destroy closes w if it is an io.Closer.
func FromWriter(w io.Writer) Stream {
	return &writer{w: w}
}

func (s *writer) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.n += int64(n)
	return n, err
}

func (s *writer) WriteString(str string) (int, error) {
	n, err := io.WriteString(s.w, str)
	s.n += int64(n)
	return n, err
}

func (s *writer) WriteByte(c byte) error {
	if bw, ok := s.w.(io.ByteWriter); ok {
		if err := bw.WriteByte(c); err != nil {
			return err
		}
		s.n++
		return nil
	}
	_, err := s.Write([]byte{c})
	return err
}

func (s *writer) Size() int64 { return s.n }

func (s *writer) Destroy() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
