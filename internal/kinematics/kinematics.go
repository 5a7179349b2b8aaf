package kinematics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pose holds joint positions relative to the arm base, in math space.
type Pose struct {
	Elbow       r2.Vec
	EndEffector r2.Vec
}

// Clamp describes how a target was moved before solving.
type Clamp int

const (
	ClampNone Clamp = iota
	// ClampOuter: target was beyond L1+L2 and pulled in along its ray.
	ClampOuter
	// ClampInner: target was inside |L1-L2| and pushed out along its ray.
	ClampInner
	// ClampDegenerate: target had no direction (base or NaN) and +x was used.
	ClampDegenerate
)

func (c Clamp) String() string {
	switch c {
	case ClampNone:
		return "none"
	case ClampOuter:
		return "outer"
	case ClampInner:
		return "inner"
	case ClampDegenerate:
		return "degenerate"
	}
	return "unknown"
}

// Solution is the result of an inverse solve.
type Solution struct {
	Theta1, Theta2 float64
	// Target is the point actually solved for, after clamping.
	Target r2.Vec
	Clamp  Clamp
}

// Clamped reports whether the requested target had to be moved.
func (s Solution) Clamped() bool { return s.Clamp != ClampNone }

// Valid reports whether both angles are finite.
func (s Solution) Valid() bool {
	return finite(s.Theta1) && finite(s.Theta2)
}

// Forward computes elbow and end-effector positions for the given joint
// angles. theta2 is relative to link 1.
func Forward(theta1, theta2, l1, l2 float64) Pose {
	s1, c1 := math.Sincos(theta1)
	s12, c12 := math.Sincos(theta1 + theta2)
	elbow := r2.Vec{X: l1 * c1, Y: l1 * s1}
	return Pose{
		Elbow:       elbow,
		EndEffector: r2.Add(elbow, r2.Vec{X: l2 * c12, Y: l2 * s12}),
	}
}

// Inverse solves for joint angles that place the end-effector at (x, y).
// Targets outside the annulus [|L1-L2|, L1+L2] are moved onto the nearest
// boundary along the same ray, so a solution always exists. A target with no
// direction is placed along +x. Invalid link lengths yield zero angles with
// ClampDegenerate.
func Inverse(x, y, l1, l2 float64, elbowUp bool) Solution {
	if ValidateLengths(l1, l2) != nil {
		return Solution{Target: r2.Vec{X: x, Y: y}, Clamp: ClampDegenerate}
	}

	target, dist, heading, clamp := clampTarget(r2.Vec{X: x, Y: y}, l1, l2)

	// Law of cosines scaled by 1/(L1*L2).
	cosTheta2 := ((dist/l1)*(dist/l2) - l1/l2 - l2/l1) / 2
	switch {
	case math.IsNaN(cosTheta2):
		cosTheta2 = 1
	case cosTheta2 > 1:
		cosTheta2 = 1
	case cosTheta2 < -1:
		cosTheta2 = -1
	}

	theta2 := math.Acos(cosTheta2)
	if elbowUp {
		theta2 = -theta2
	}

	k1 := l1 + l2*math.Cos(theta2)
	k2 := l2 * math.Sin(theta2)
	theta1 := heading - math.Atan2(k2, k1)

	return Solution{
		Theta1: theta1,
		Theta2: theta2,
		Target: target,
		Clamp:  clamp,
	}
}

// ClampTarget returns the nearest reachable point on the ray from the base
// through p, and how it was moved.
func ClampTarget(p r2.Vec, l1, l2 float64) (r2.Vec, Clamp) {
	q, _, _, c := clampTarget(p, l1, l2)
	return q, c
}

// clampTarget returns the point to solve for, its distance from the base,
// the heading of the ray it lies on and how it was moved. The heading is
// taken from p itself, so it survives when |p| underflows or overflows.
func clampTarget(p r2.Vec, l1, l2 float64) (r2.Vec, float64, float64, Clamp) {
	ws := Reach(l1, l2)

	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return r2.Vec{X: ws.Inner}, ws.Inner, 0, ClampDegenerate
	}

	heading := math.Atan2(p.Y, p.X)
	onRay := func(d float64) r2.Vec {
		s, c := math.Sincos(heading)
		return r2.Vec{X: d * c, Y: d * s}
	}

	dist := math.Hypot(p.X, p.Y)
	switch {
	case dist > ws.Outer:
		return onRay(ws.Outer), ws.Outer, heading, ClampOuter
	case dist == 0 && ws.Inner > 0:
		return r2.Vec{X: ws.Inner}, ws.Inner, 0, ClampDegenerate
	case dist < ws.Inner:
		return onRay(ws.Inner), ws.Inner, heading, ClampInner
	}
	return p, dist, heading, ClampNone
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
