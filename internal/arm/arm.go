// Package arm owns the mutable state of a 2-link arm and advances it one
// render tick at a time.
//
// An [Arm] is driven by an external loop: each tick the caller passes the
// pointer position in screen space to [Arm.Update], then reads [Arm.Snapshot]
// to draw. Arms share no state, so any number may run side by side. An Arm is
// not safe for concurrent use.
package arm

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/kinematics"
)

const (
	DefaultL1     = 120.0
	DefaultL2     = 100.0
	DefaultTheta1 = math.Pi / 4
	DefaultTheta2 = -math.Pi / 6
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Config is the initial configuration of an Arm. Angles are in radians.
type Config struct {
	L1, L2         float64
	Theta1, Theta2 float64
	Mode           Mode
	ElbowUp        bool
	TrailEnabled   bool
	MaxTrail       int
	Width, Height  float64
}

func DefaultConfig() Config {
	return Config{
		L1:           DefaultL1,
		L2:           DefaultL2,
		Theta1:       DefaultTheta1,
		Theta2:       DefaultTheta2,
		Mode:         ModeInverse,
		ElbowUp:      true,
		TrailEnabled: true,
		MaxTrail:     DefaultMaxTrail,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
	}
}

// Sample describes one tick.
type Sample struct {
	Tick int
	Mode Mode
	// Solved is set when an inverse solve ran this tick.
	Solved bool
	// Target is the requested target in math space; Reached is the point
	// actually solved for after clamping.
	Target  r2.Vec
	Reached r2.Vec
	Clamp   kinematics.Clamp
	Theta1  float64
	Theta2  float64
	// Pose is in math space, EndEffector in screen space.
	Pose        kinematics.Pose
	EndEffector r2.Vec
}

// Observer is notified after every tick.
type Observer interface {
	Observe(s Sample)
}

type Arm struct {
	frame          kinematics.Frame
	width, height  float64
	l1, l2         float64
	theta1, theta2 float64
	mode           Mode
	elbowUp        bool
	target         r2.Vec
	trail          *Trail
	trailEnabled   bool
	ticks          int
	rejected       int
	observers      []Observer
}

// New builds an Arm from cfg, centred on a cfg.Width x cfg.Height canvas.
func New(cfg Config) (*Arm, error) {
	if err := kinematics.ValidateLengths(cfg.L1, cfg.L2); err != nil {
		return nil, err
	}
	a := &Arm{
		l1:           cfg.L1,
		l2:           cfg.L2,
		theta1:       kinematics.NormalizeAngle(finiteOr(cfg.Theta1, DefaultTheta1)),
		theta2:       kinematics.NormalizeAngle(finiteOr(cfg.Theta2, DefaultTheta2)),
		mode:         cfg.Mode,
		elbowUp:      cfg.ElbowUp,
		trail:        NewTrail(cfg.MaxTrail),
		trailEnabled: cfg.TrailEnabled,
	}
	a.Init(cfg.Width, cfg.Height)
	return a, nil
}

// Init re-centres the base on a canvas of the given size and drops the trail.
func (a *Arm) Init(width, height float64) {
	a.width, a.height = width, height
	a.frame = kinematics.NewFrame(width, height)
	a.trail.Clear()
}

func (a *Arm) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// Update advances the arm by one tick. In inverse mode, unless the pointer
// is over a UI control, the pointer becomes the new target and the angles
// are solved for it. Forward kinematics always runs afterwards and, when
// enabled, the end-effector is appended to the trail.
func (a *Arm) Update(pointer r2.Vec, overUI bool) Sample {
	s := Sample{Tick: a.ticks, Mode: a.mode}

	if a.mode == ModeInverse && !overUI {
		m := a.frame.ScreenToMath(pointer)
		a.target = m
		sol := kinematics.Inverse(m.X, m.Y, a.l1, a.l2, a.elbowUp)
		if sol.Valid() {
			a.theta1, a.theta2 = sol.Theta1, sol.Theta2
		} else {
			a.rejected++
		}
		s.Solved = true
		s.Target = m
		s.Reached = sol.Target
		s.Clamp = sol.Clamp
	}

	pose := kinematics.Forward(a.theta1, a.theta2, a.l1, a.l2)
	ee := a.frame.MathToScreen(pose.EndEffector)
	if a.trailEnabled {
		a.trail.Push(ee)
	}

	s.Theta1, s.Theta2 = a.theta1, a.theta2
	s.Pose = pose
	s.EndEffector = ee
	a.ticks++

	for _, o := range a.observers {
		o.Observe(s)
	}
	return s
}

// SetLengths changes both links and drops the trail.
func (a *Arm) SetLengths(l1, l2 float64) error {
	if err := kinematics.ValidateLengths(l1, l2); err != nil {
		return err
	}
	a.l1, a.l2 = l1, l2
	a.trail.Clear()
	return nil
}

func (a *Arm) SetL1(l float64) error { return a.SetLengths(l, a.l2) }
func (a *Arm) SetL2(l float64) error { return a.SetLengths(a.l1, l) }

// SetTheta1 sets the base joint angle, wrapped to (-π, π]. It only applies
// in forward mode and reports whether the value was taken.
func (a *Arm) SetTheta1(rad float64) bool {
	if a.mode != ModeForward || !finite(rad) {
		return false
	}
	a.theta1 = kinematics.NormalizeAngle(rad)
	return true
}

// SetTheta2 sets the elbow angle relative to link 1, under the same rules as
// SetTheta1.
func (a *Arm) SetTheta2(rad float64) bool {
	if a.mode != ModeForward || !finite(rad) {
		return false
	}
	a.theta2 = kinematics.NormalizeAngle(rad)
	return true
}

// SetMode switches the driving mode and drops the trail.
func (a *Arm) SetMode(m Mode) {
	a.mode = m
	a.trail.Clear()
}

// SetElbowUp picks the branch used by the next inverse solve.
func (a *Arm) SetElbowUp(up bool) { a.elbowUp = up }

// SetTrailEnabled turns recording on or off. Turning it off drops the trail.
func (a *Arm) SetTrailEnabled(on bool) {
	a.trailEnabled = on
	if !on {
		a.trail.Clear()
	}
}

func (a *Arm) ClearTrail() { a.trail.Clear() }

func (a *Arm) L1() float64                     { return a.l1 }
func (a *Arm) L2() float64                     { return a.l2 }
func (a *Arm) Theta1() float64                 { return a.theta1 }
func (a *Arm) Theta2() float64                 { return a.theta2 }
func (a *Arm) Mode() Mode                      { return a.mode }
func (a *Arm) ElbowUp() bool                   { return a.elbowUp }
func (a *Arm) TrailEnabled() bool              { return a.trailEnabled }
func (a *Arm) Target() r2.Vec                  { return a.target }
func (a *Arm) Frame() kinematics.Frame         { return a.frame }
func (a *Arm) Size() (w, h float64)            { return a.width, a.height }
func (a *Arm) Trail() []r2.Vec                 { return a.trail.Points() }
func (a *Arm) MaxTrail() int                   { return a.trail.Cap() }
func (a *Arm) Ticks() int                      { return a.ticks }
func (a *Arm) Workspace() kinematics.Workspace { return kinematics.Reach(a.l1, a.l2) }

// Rejected counts solves whose result was discarded for being non-finite.
func (a *Arm) Rejected() int { return a.rejected }

// Pose is the current pose in math space.
func (a *Arm) Pose() kinematics.Pose {
	return kinematics.Forward(a.theta1, a.theta2, a.l1, a.l2)
}

// ScreenPose holds joint positions in screen space.
type ScreenPose struct {
	Base, Elbow, EndEffector r2.Vec
}

func (a *Arm) ScreenPose() ScreenPose {
	p := a.Pose()
	return ScreenPose{
		Base:        a.frame.Base,
		Elbow:       a.frame.MathToScreen(p.Elbow),
		EndEffector: a.frame.MathToScreen(p.EndEffector),
	}
}

// Snapshot is a read-only copy of everything a drawing layer needs.
type Snapshot struct {
	Width, Height  float64
	L1, L2         float64
	Theta1, Theta2 float64
	Mode           Mode
	ElbowUp        bool
	TrailEnabled   bool
	Target         r2.Vec
	// TargetScreen is Target mapped to screen space.
	TargetScreen r2.Vec
	Pose         kinematics.Pose
	Screen       ScreenPose
	Trail        []r2.Vec
	Workspace    kinematics.Workspace
}

func (a *Arm) Snapshot() Snapshot {
	return Snapshot{
		Width:        a.width,
		Height:       a.height,
		L1:           a.l1,
		L2:           a.l2,
		Theta1:       a.theta1,
		Theta2:       a.theta2,
		Mode:         a.mode,
		ElbowUp:      a.elbowUp,
		TrailEnabled: a.trailEnabled,
		Target:       a.target,
		TargetScreen: a.frame.MathToScreen(a.target),
		Pose:         a.Pose(),
		Screen:       a.ScreenPose(),
		Trail:        a.trail.Points(),
		Workspace:    a.Workspace(),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOr(v, fallback float64) float64 {
	if finite(v) {
		return v
	}
	return fallback
}
