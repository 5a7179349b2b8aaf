package kinematics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLength indicates a link length that is zero, negative or not finite.
var ErrInvalidLength = errors.New("kinematics: link length must be positive")

// ValidateLengths reports whether both link lengths are usable.
func ValidateLengths(l1, l2 float64) error {
	if !validLength(l1) {
		return fmt.Errorf("L1=%g: %w", l1, ErrInvalidLength)
	}
	if !validLength(l2) {
		return fmt.Errorf("L2=%g: %w", l2, ErrInvalidLength)
	}
	if math.IsInf(l1+l2, 0) {
		return fmt.Errorf("L1+L2 overflows: %w", ErrInvalidLength)
	}
	return nil
}

func validLength(l float64) bool {
	return l > 0 && !math.IsInf(l, 0)
}
