package metrics

import (
	"math"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
)

// JointTravel is the total absolute joint rotation in radians, summed over
// both joints. Branch flips show up as large jumps.
type JointTravel struct {
	name   string
	sum    float64
	prev   [2]float64
	primed bool
}

func NewJointTravel() *JointTravel {
	return &JointTravel{name: "joint_travel"}
}

func (j *JointTravel) Name() string { return j.name }

func (j *JointTravel) Observe(s arm.Sample) {
	if j.primed {
		j.sum += math.Abs(kinematics.NormalizeAngle(s.Theta1 - j.prev[0]))
		j.sum += math.Abs(kinematics.NormalizeAngle(s.Theta2 - j.prev[1]))
	}
	j.prev = [2]float64{s.Theta1, s.Theta2}
	j.primed = true
}

func (j *JointTravel) Value() float64 { return j.sum }

func (j *JointTravel) Reset() {
	j.sum = 0
	j.prev = [2]float64{}
	j.primed = false
}
