package metrics

import "github.com/san-kum/twolink/internal/arm"

// Metric accumulates a scalar over arm ticks. Every Metric is an
// arm.Observer and can be attached with Arm.AddObserver.
type Metric interface {
	Name() string
	Observe(s arm.Sample)
	Value() float64
	Reset()
}

// Default returns the standard metric set.
func Default() []Metric {
	return []Metric{
		NewTrackingError(),
		NewClampRate(),
		NewJointTravel(),
		NewPathLength(),
	}
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
