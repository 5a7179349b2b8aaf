package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
)

// PathLength is the distance travelled by the end-effector in math space.
type PathLength struct {
	name   string
	sum    float64
	prev   r2.Vec
	primed bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s arm.Sample) {
	ee := s.Pose.EndEffector
	if p.primed {
		p.sum += r2.Norm(r2.Sub(ee, p.prev))
	}
	p.prev = ee
	p.primed = true
}

func (p *PathLength) Value() float64 { return p.sum }

func (p *PathLength) Reset() {
	p.sum = 0
	p.prev = r2.Vec{}
	p.primed = false
}
