package sweep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrInvalidPath  = errors.New("sweep: unknown path")
	ErrInvalidTicks = errors.New("sweep: ticks must be positive")
	ErrRejected     = errors.New("sweep: solve produced non-finite angles")
)

// StepError wraps an error with the tick and target that caused it.
type StepError struct {
	Tick    int
	Target  r2.Vec
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d (%.1f, %.1f): %v", e.Tick, e.Target.X, e.Target.Y, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
