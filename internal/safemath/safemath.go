package safemath

import (
	"errors"
	"math/bits"
)

var (
	ErrOverflow  = errors.New("number overflow")
	ErrUnderflow = errors.New("number underflow")
)

func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

func Sub64(a, b uint64) (uint64, bool) {
	v, borrow := bits.Sub64(a, b, 0)
	return v, borrow == 0
}

// SaturatingSub64 returns a-b, or zero when b exceeds a.
func SaturatingSub64(a, b uint64) uint64 {
	v, ok := Sub64(a, b)
	if !ok {
		return 0
	}
	return v
}
