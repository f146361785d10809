package builder

import (
	"errors"
	"fmt"
)

// ErrNegativeSize is returned when a size or capacity argument is negative.
var ErrNegativeSize = errors.New("negative size")

func newSizeError(op string, n int) error {
	return fmt.Errorf("builder: %s %d: %w", op, n, ErrNegativeSize)
}
