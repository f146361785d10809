package builder

// AppendUint16BE appends v in big-endian order.
func (b *Builder) AppendUint16BE(v uint16) int {
	return b.AppendBytes([]byte{byte(v >> 8), byte(v)})
}

// AppendUint32BE appends v in big-endian order.
func (b *Builder) AppendUint32BE(v uint32) int {
	return b.AppendBytes([]byte{
		byte(v >> 24),
		byte(v >> 16),
		byte(v >> 8),
		byte(v),
	})
}

// AppendUint64BE appends v in big-endian order.
func (b *Builder) AppendUint64BE(v uint64) int {
	return b.AppendBytes([]byte{
		byte(v >> 56),
		byte(v >> 48),
		byte(v >> 40),
		byte(v >> 32),
		byte(v >> 24),
		byte(v >> 16),
		byte(v >> 8),
		byte(v),
	})
}

// AppendUint16LE appends v in little-endian order.
func (b *Builder) AppendUint16LE(v uint16) int {
	return b.AppendBytes([]byte{byte(v), byte(v >> 8)})
}

// AppendUint32LE appends v in little-endian order.
func (b *Builder) AppendUint32LE(v uint32) int {
	return b.AppendBytes([]byte{
		byte(v),
		byte(v >> 8),
		byte(v >> 16),
		byte(v >> 24),
	})
}

// AppendUint64LE appends v in little-endian order.
func (b *Builder) AppendUint64LE(v uint64) int {
	return b.AppendBytes([]byte{
		byte(v),
		byte(v >> 8),
		byte(v >> 16),
		byte(v >> 24),
		byte(v >> 32),
		byte(v >> 40),
		byte(v >> 48),
		byte(v >> 56),
	})
}
