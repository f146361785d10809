package stream

// limited caps the number of bytes that reach the underlying Stream.
type limited struct {
	s    Stream
	left int64
}

// Limit returns a Stream that passes at most n bytes to s and reports
// ErrFull for the rest, giving a growable sink the behaviour of a fixed one.
func Limit(s Stream, n int64) Stream {
	if n < 0 {
		n = 0
	}
	return &limited{s: s, left: n}
}

func (l *limited) Write(p []byte) (int, error) {
	var short bool
	if int64(len(p)) > l.left {
		p = p[:l.left]
		short = true
	}
	n, err := l.s.Write(p)
	l.left -= int64(n)
	if err == nil && short {
		err = ErrFull
	}
	return n, err
}

func (l *limited) WriteByte(c byte) error {
	if l.left <= 0 {
		return ErrFull
	}
	if err := l.s.WriteByte(c); err != nil {
		return err
	}
	l.left--
	return nil
}

func (l *limited) Size() int64 { return l.s.Size() }

func (l *limited) Destroy() error { return l.s.Destroy() }
