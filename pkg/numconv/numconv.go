// Package numconv renders numbers as text into caller-provided scratch space.
package numconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Scratch sizes for callers rendering into stack arrays. They cover every
// int64 in base 8 and above and every float in 'e', 'g' and shortest 'f'
// form; anything longer (base 2 integers, huge 'f' precisions) spills into
// a heap allocation and is still rendered in full.
const (
	IntScratchSize   = 32
	FloatScratchSize = 384
)

// ErrInvalidBase is returned for bases outside [2, 36].
var ErrInvalidBase = errors.New("invalid base")

func checkBase(base int) error {
	if base < 2 || base > 36 {
		return fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}
	return nil
}

// AppendInt appends the text form of v in the given base to dst.
func AppendInt[T constraints.Signed](dst []byte, v T, base int) ([]byte, error) {
	if err := checkBase(base); err != nil {
		return dst, err
	}
	return strconv.AppendInt(dst, int64(v), base), nil
}

// AppendUint appends the text form of v in the given base to dst.
func AppendUint[T constraints.Unsigned](dst []byte, v T, base int) ([]byte, error) {
	if err := checkBase(base); err != nil {
		return dst, err
	}
	return strconv.AppendUint(dst, uint64(v), base), nil
}

// AppendFloat appends f formatted as strconv.FormatFloat would, but always
// with an explicit sign: "+1.5", "-0", "+Inf". NaN carries no sign.
func AppendFloat(dst []byte, f float64, format byte, prec, bitSize int) []byte {
	if !math.IsNaN(f) && !math.Signbit(f) {
		dst = append(dst, '+')
	}
	return strconv.AppendFloat(dst, f, format, prec, bitSize)
}
