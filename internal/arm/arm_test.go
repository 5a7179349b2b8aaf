package arm

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/kinematics"
)

func newTestArm(t *testing.T) *Arm {
	t.Helper()
	cfg := DefaultConfig()
	cfg.L1, cfg.L2 = 100, 80
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new arm: %v", err)
	}
	return a
}

// screenFor returns the screen point that maps to math point (x, y).
func screenFor(a *Arm, x, y float64) r2.Vec {
	return a.Frame().MathToScreen(r2.Vec{X: x, Y: y})
}

func TestNewRejectsBadLengths(t *testing.T) {
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.L2 = 0
	_, err := New(cfg)
	g.Expect(errors.Is(err, kinematics.ErrInvalidLength)).To(BeTrue())
}

func TestNewCentresBase(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)

	g.Expect(a.Frame().Base).To(Equal(r2.Vec{X: 400, Y: 300}))
	g.Expect(a.Mode()).To(Equal(ModeInverse))
	g.Expect(a.MaxTrail()).To(Equal(DefaultMaxTrail))
}

func TestUpdateInverseTracksPointer(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)

	s := a.Update(screenFor(a, 180, 0), false)

	g.Expect(s.Solved).To(BeTrue())
	g.Expect(s.Clamp).To(Equal(kinematics.ClampNone))
	g.Expect(a.Target()).To(Equal(r2.Vec{X: 180, Y: 0}))
	g.Expect(a.Theta1()).To(BeNumerically("~", 0, 1e-6))
	g.Expect(a.Theta2()).To(BeNumerically("~", 0, 1e-6))
	g.Expect(s.EndEffector.X).To(BeNumerically("~", 580, 1e-6))
	g.Expect(s.EndEffector.Y).To(BeNumerically("~", 300, 1e-6))
}

func TestUpdateOutOfReachClamps(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)

	s := a.Update(screenFor(a, 0, 1000), false)

	g.Expect(s.Clamp).To(Equal(kinematics.ClampOuter))
	g.Expect(s.Target).To(Equal(r2.Vec{X: 0, Y: 1000}))
	g.Expect(r2.Norm(s.Pose.EndEffector)).To(BeNumerically("~", 180, 1e-6))
	g.Expect(s.Pose.EndEffector.Y).To(BeNumerically(">", 0))
}

func TestUpdateOverUIKeepsAngles(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	a.Update(screenFor(a, 100, 50), false)
	t1, t2, target := a.Theta1(), a.Theta2(), a.Target()

	s := a.Update(screenFor(a, -60, -60), true)

	g.Expect(s.Solved).To(BeFalse())
	g.Expect(a.Theta1()).To(Equal(t1))
	g.Expect(a.Theta2()).To(Equal(t2))
	g.Expect(a.Target()).To(Equal(target))
}

func TestUpdateAtBaseNeverProducesNaN(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)

	for _, up := range []bool{true, false} {
		a.SetElbowUp(up)
		s := a.Update(a.Frame().Base, false)

		g.Expect(s.Clamp).To(Equal(kinematics.ClampDegenerate))
		g.Expect(math.IsNaN(a.Theta1())).To(BeFalse())
		g.Expect(math.IsNaN(a.Theta2())).To(BeFalse())
		for _, p := range a.Trail() {
			g.Expect(math.IsNaN(p.X) || math.IsNaN(p.Y)).To(BeFalse())
		}
	}
	g.Expect(a.Rejected()).To(Equal(0))
}

func TestUpdateForwardIgnoresPointer(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	a.SetMode(ModeForward)
	g.Expect(a.SetTheta1(0)).To(BeTrue())
	g.Expect(a.SetTheta2(0)).To(BeTrue())

	s := a.Update(screenFor(a, -50, 20), false)

	g.Expect(s.Solved).To(BeFalse())
	g.Expect(s.Pose.EndEffector.X).To(BeNumerically("~", 180, 1e-9))
	g.Expect(s.Pose.Elbow.X).To(BeNumerically("~", 100, 1e-9))
}

func TestSetThetaOnlyInForwardMode(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	before := a.Theta1()

	g.Expect(a.SetTheta1(1.0)).To(BeFalse())
	g.Expect(a.SetTheta2(1.0)).To(BeFalse())
	g.Expect(a.Theta1()).To(Equal(before))

	a.SetMode(ModeForward)
	g.Expect(a.SetTheta1(math.NaN())).To(BeFalse())
	g.Expect(a.SetTheta2(math.Inf(1))).To(BeFalse())
	g.Expect(a.SetTheta1(1.0)).To(BeTrue())
	g.Expect(a.Theta1()).To(Equal(1.0))
}

func TestAnglesAreWrapped(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	cfg.Mode = ModeForward
	cfg.Theta1 = 5e8
	cfg.Theta2 = 5 * math.Pi / 2
	a, err := New(cfg)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(a.Theta1()).To(BeNumerically(">", -math.Pi))
	g.Expect(a.Theta1()).To(BeNumerically("<=", math.Pi))
	g.Expect(a.Theta2()).To(BeNumerically("~", math.Pi/2, 1e-9))

	g.Expect(a.SetTheta1(-7 * math.Pi / 2)).To(BeTrue())
	g.Expect(a.Theta1()).To(BeNumerically("~", math.Pi/2, 1e-9))
	g.Expect(a.SetTheta2(1e12)).To(BeTrue())
	g.Expect(math.Abs(a.Theta2())).To(BeNumerically("<=", math.Pi))
}

func TestTrailBoundedAndChronological(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	cfg.MaxTrail = 5
	a, err := New(cfg)
	g.Expect(err).NotTo(HaveOccurred())

	var recorded []r2.Vec
	for i := 0; i < 12; i++ {
		s := a.Update(screenFor(a, 50+float64(i)*5, 40), false)
		recorded = append(recorded, s.EndEffector)
		g.Expect(len(a.Trail())).To(BeNumerically("<=", 5))
	}

	g.Expect(a.Trail()).To(Equal(recorded[len(recorded)-5:]))
}

func TestTransitionsClearTrail(t *testing.T) {
	tests := []struct {
		name  string
		apply func(a *Arm)
		clear bool
	}{
		{"mode switch", func(a *Arm) { a.SetMode(ModeForward) }, true},
		{"length L1", func(a *Arm) { _ = a.SetL1(90) }, true},
		{"length L2", func(a *Arm) { _ = a.SetL2(90) }, true},
		{"trail off", func(a *Arm) { a.SetTrailEnabled(false) }, true},
		{"resize", func(a *Arm) { a.Init(1024, 768) }, true},
		{"elbow toggle", func(a *Arm) { a.SetElbowUp(false) }, false},
		{"rejected length", func(a *Arm) { _ = a.SetL1(-5) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			a := newTestArm(t)
			for i := 0; i < 3; i++ {
				a.Update(screenFor(a, 90, float64(i)*10), false)
			}
			g.Expect(a.Trail()).To(HaveLen(3))

			tt.apply(a)

			if tt.clear {
				g.Expect(a.Trail()).To(BeEmpty())
			} else {
				g.Expect(a.Trail()).To(HaveLen(3))
			}
		})
	}
}

func TestTrailDisabledRecordsNothing(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	a.SetTrailEnabled(false)

	for i := 0; i < 4; i++ {
		a.Update(screenFor(a, 100, 10), false)
	}
	g.Expect(a.Trail()).To(BeEmpty())
}

func TestSetLengthsRejectsNonPositive(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)

	err := a.SetLengths(0, 50)
	g.Expect(errors.Is(err, kinematics.ErrInvalidLength)).To(BeTrue())
	g.Expect(a.L1()).To(Equal(100.0))
	g.Expect(a.L2()).To(Equal(80.0))
}

func TestElbowToggleAppliesOnNextSolve(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	p := screenFor(a, 120, 60)

	a.Update(p, false)
	g.Expect(a.Theta2()).To(BeNumerically("<", 0))

	a.SetElbowUp(false)
	g.Expect(a.Theta2()).To(BeNumerically("<", 0))

	a.Update(p, false)
	g.Expect(a.Theta2()).To(BeNumerically(">", 0))
}

func TestArmsAreIndependent(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	b := newTestArm(t)

	a.Update(screenFor(a, 120, 60), false)
	a.SetMode(ModeForward)

	g.Expect(b.Mode()).To(Equal(ModeInverse))
	g.Expect(b.Ticks()).To(Equal(0))
	g.Expect(b.Trail()).To(BeEmpty())
}

type countingObserver struct {
	samples []Sample
}

func (c *countingObserver) Observe(s Sample) { c.samples = append(c.samples, s) }

func TestObserversSeeEveryTick(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	obs := &countingObserver{}
	a.AddObserver(obs)

	for i := 0; i < 3; i++ {
		a.Update(screenFor(a, 100, 0), false)
	}

	g.Expect(obs.samples).To(HaveLen(3))
	g.Expect(obs.samples[2].Tick).To(Equal(2))
}

func TestSnapshot(t *testing.T) {
	g := NewWithT(t)
	a := newTestArm(t)
	a.Update(screenFor(a, 100, 100), false)

	snap := a.Snapshot()

	g.Expect(snap.L1).To(Equal(100.0))
	g.Expect(snap.Workspace).To(Equal(kinematics.Workspace{Inner: 20, Outer: 180}))
	g.Expect(snap.TargetScreen).To(Equal(screenFor(a, 100, 100)))
	g.Expect(snap.Screen.Base).To(Equal(a.Frame().Base))
	g.Expect(snap.Trail).To(HaveLen(1))

	snap.Trail[0] = r2.Vec{}
	g.Expect(a.Trail()[0]).NotTo(Equal(r2.Vec{}))
}
