package metrics

import (
	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
)

// ClampRate is the fraction of inverse solves whose target had to be moved
// onto the workspace boundary.
type ClampRate struct {
	name    string
	clamped int
	counts  map[kinematics.Clamp]int
	samples int
}

func NewClampRate() *ClampRate {
	return &ClampRate{
		name:   "clamp_rate",
		counts: make(map[kinematics.Clamp]int),
	}
}

func (c *ClampRate) Name() string { return c.name }

func (c *ClampRate) Observe(s arm.Sample) {
	if !s.Solved {
		return
	}
	c.samples++
	c.counts[s.Clamp]++
	if s.Clamp != kinematics.ClampNone {
		c.clamped++
	}
}

func (c *ClampRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.clamped) / float64(c.samples)
}

// Count returns how many solves ended with the given clamp kind.
func (c *ClampRate) Count(k kinematics.Clamp) int { return c.counts[k] }

func (c *ClampRate) Reset() {
	c.clamped = 0
	c.samples = 0
	c.counts = make(map[kinematics.Clamp]int)
}
