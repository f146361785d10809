package builder

// growthSlack is added on every reallocation so tiny builders do not
// reallocate on each byte.
const growthSlack = 8

// Reserve makes sure an owned builder's capacity is at least target. It is a
// no-op for fixed builders, whose capacity never changes. If the allocator
// fails, b keeps its current storage and the error is returned.
func (b *Builder) Reserve(target int) error {
	if target < 0 {
		return newSizeError("reserve", target)
	}
	if b.mode == modeFixed || cap(b.buf) >= target {
		return nil
	}
	return b.realloc(max(target, 2*cap(b.buf)+growthSlack))
}

// Grow makes room for n more bytes, so that the next n bytes appended to an
// owned builder do not reallocate.
func (b *Builder) Grow(n int) error {
	if n < 0 {
		return newSizeError("grow", n)
	}
	return b.ensure(n)
}

// ensure is Grow without the argument check.
func (b *Builder) ensure(n int) error {
	if b.mode == modeFixed || b.Space() >= n {
		return nil
	}
	need := len(b.buf) + n
	return b.realloc(max(need, 2*cap(b.buf)+growthSlack))
}

func (b *Builder) realloc(size int) error {
	a := b.allocator()
	var (
		nb  []byte
		err error
	)
	if b.buf == nil {
		nb, err = a.Alloc(size)
	} else {
		nb, err = a.Resize(b.buf, size)
	}
	if err != nil {
		return err
	}
	b.alloc = a
	b.buf = nb
	return nil
}
