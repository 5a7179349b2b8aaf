package arm

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMode = errors.New("arm: unknown mode")

// Mode selects who drives the joint angles.
type Mode int

const (
	// ModeInverse solves the angles from a target each tick.
	ModeInverse Mode = iota
	// ModeForward leaves the angles to direct input.
	ModeForward
)

func (m Mode) String() string {
	switch m {
	case ModeInverse:
		return "ik"
	case ModeForward:
		return "fk"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "ik"/"inverse" and "fk"/"forward", case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ik", "inverse":
		return ModeInverse, nil
	case "fk", "forward":
		return ModeForward, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidMode)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeForward {
		return ModeInverse
	}
	return ModeForward
}
