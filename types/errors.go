package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks construction time problems the caller can fix: mismatched bound
	// lengths, empty bound spans, non-positive logical dimensions, bad degree limits.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrOutOfRange marks an element, side, face or basis number outside of its valid range.
	ErrOutOfRange = errors.New("index out of range")
)

// InvalidConfigf wraps ErrInvalidConfig with a formatted explanation.
func InvalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// CheckRange returns an ErrOutOfRange error when i is not in [0, n).
func CheckRange(kind string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %d not in [0,%d)", ErrOutOfRange, kind, i, n)
	}
	return nil
}

// MustBeInRange panics with an ErrOutOfRange error when i is not in [0, n).
func MustBeInRange(kind string, i, n int) {
	if err := CheckRange(kind, i, n); err != nil {
		panic(err)
	}
}
