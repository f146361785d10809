package pools

import "errors"

var (
	// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrInvalidSize is returned for negative allocation sizes.
	ErrInvalidSize = errors.New("invalid allocation size")
)
