package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
)

// TrackingError is the mean distance between the requested target and the
// end-effector over inverse solves. It is zero while every target is
// reachable and grows with how far targets fall outside the workspace.
type TrackingError struct {
	name    string
	sum     float64
	max     float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{name: "tracking_error"}
}

func (e *TrackingError) Name() string { return e.name }

func (e *TrackingError) Observe(s arm.Sample) {
	if !s.Solved {
		return
	}
	d := r2.Norm(r2.Sub(s.Target, s.Pose.EndEffector))
	e.sum += d
	e.max = math.Max(e.max, d)
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

// Max is the largest single-tick error seen.
func (e *TrackingError) Max() float64 { return e.max }

func (e *TrackingError) Reset() {
	e.sum = 0
	e.max = 0
	e.samples = 0
}
