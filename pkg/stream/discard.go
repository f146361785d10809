package stream

// Discard is a Stream that accepts and counts everything written to it.
type Discard struct {
	n int64
}

func (d *Discard) Write(p []byte) (int, error) {
	d.n += int64(len(p))
	return len(p), nil
}

func (d *Discard) WriteByte(byte) error {
	d.n++
	return nil
}

func (d *Discard) WriteString(s string) (int, error) {
	d.n += int64(len(s))
	return len(s), nil
}

func (d *Discard) Size() int64 { return d.n }

func (d *Discard) Destroy() error {
	d.n = 0
	return nil
}
