package kinematics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Workspace is the annulus of points the end-effector can reach.
type Workspace struct {
	Inner, Outer float64
}

// Reach returns the workspace of an arm with the given link lengths.
func Reach(l1, l2 float64) Workspace {
	return Workspace{Inner: math.Abs(l1 - l2), Outer: l1 + l2}
}

// Contains reports whether p lies within the workspace, boundaries included.
func (w Workspace) Contains(p r2.Vec) bool {
	d := r2.Norm(p)
	return d >= w.Inner && d <= w.Outer
}

// Frame converts between math space and screen space for an arm whose base
// sits at Base in screen coordinates.
type Frame struct {
	Base r2.Vec
}

// NewFrame centres the base on a canvas of the given size.
func NewFrame(width, height float64) Frame {
	return Frame{Base: r2.Vec{X: width / 2, Y: height / 2}}
}

// ScreenToMath maps a y-down screen point to y-up coordinates relative to the base.
func (f Frame) ScreenToMath(s r2.Vec) r2.Vec {
	return r2.Vec{X: s.X - f.Base.X, Y: -(s.Y - f.Base.Y)}
}

// MathToScreen is the inverse of ScreenToMath.
func (f Frame) MathToScreen(m r2.Vec) r2.Vec {
	return r2.Vec{X: f.Base.X + m.X, Y: f.Base.Y - m.Y}
}

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// NormalizeAngle wraps a to (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
