package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

// RecordHeaderLen is the size of the length and checksum prefix.
const RecordHeaderLen = 8

// AppendRecord appends data to b as a compressed record:
//
//	[Len:4][CRC32:4][snappy block:Len]
//
// Integers are big-endian and the checksum covers the compressed block. A
// record is written whole or not at all: if b cannot take all of it, b is
// restored to its previous length and stream.ErrFull (or the allocator's
// error) is returned.
func AppendRecord(b *builder.Builder, data []byte) (int, error) {
	enc, err := encode(data)
	if err != nil {
		return 0, err
	}
	defer pools.Default().Put(enc)

	size := RecordHeaderLen + len(enc)
	if err := b.Grow(size); err != nil {
		return 0, err
	}
	if b.Space() < size {
		return 0, stream.ErrFull
	}

	n := b.AppendUint32BE(uint32(len(enc)))
	n += b.AppendUint32BE(crc32.ChecksumIEEE(enc))
	n += b.AppendBytes(enc)
	return n, nil
}

// ReadRecord decodes the first record in p and returns its payload along
// with the bytes that follow it.
func ReadRecord(p []byte) (data, rest []byte, err error) {
	if len(p) < RecordHeaderLen {
		return nil, p, fmt.Errorf("%w: short header (%d bytes)", ErrCorrupt, len(p))
	}
	n := int(binary.BigEndian.Uint32(p[0:4]))
	sum := binary.BigEndian.Uint32(p[4:8])
	if len(p)-RecordHeaderLen < n {
		return nil, p, fmt.Errorf("%w: record of %d bytes truncated to %d", ErrCorrupt, n, len(p)-RecordHeaderLen)
	}

	block := p[RecordHeaderLen : RecordHeaderLen+n]
	if crc32.ChecksumIEEE(block) != sum {
		return nil, p, ErrChecksum
	}

	var out builder.Builder
	if _, err := DecodeSnappy(&out, block); err != nil {
		return nil, p, err
	}
	return out.Bytes(), p[RecordHeaderLen+n:], nil
}
