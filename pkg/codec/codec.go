// Package codec compresses data with snappy into builders and streams.
package codec

import (
	"errors"
	"fmt"

	"github.com/golang/snappy"

	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

var (
	// ErrCorrupt reports input that is not a valid block or record.
	ErrCorrupt = errors.New("codec: corrupt input")
	// ErrChecksum reports a record whose payload does not match its CRC.
	ErrChecksum = errors.New("codec: checksum mismatch")
	// ErrTooLarge reports input too large to encode as one block.
	ErrTooLarge = errors.New("codec: input too large")
)

// encode compresses src into a buffer from the default pool. The caller
// must hand the result back with pools.Default().Put.
func encode(src []byte) ([]byte, error) {
	n := snappy.MaxEncodedLen(len(src))
	if n < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(src))
	}
	return snappy.Encode(pools.Default().GetSized(n), src), nil
}

// AppendSnappy writes src to dst as a single snappy block.
func AppendSnappy(dst stream.Stream, src []byte) (int, error) {
	enc, err := encode(src)
	if err != nil {
		return 0, err
	}
	defer pools.Default().Put(enc)
	return dst.Write(enc)
}

// DecodeSnappy decompresses the snappy block src and writes the result to
// dst.
func DecodeSnappy(dst stream.Stream, src []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	buf := pools.Default().GetSized(n)
	defer pools.Default().Put(buf)

	out, err := snappy.Decode(buf, src)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return dst.Write(out)
}
