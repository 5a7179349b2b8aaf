package kinematics_test

import (
	"fmt"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/kinematics"
)

const roundTripTol = 1e-6

var linkPairs = [][2]float64{
	{100, 80},
	{80, 100},
	{120, 100},
	{100, 100},
	{1, 3.5},
	{1e200, 5e199},
}

// angleGrid samples [-π, π] while staying clear of the fold lines θ2 = 0 and
// θ2 = ±π, where both branches coincide.
func angleGrid(lo, hi float64, n int) []float64 {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, lo+(hi-lo)*float64(i)/float64(n-1))
	}
	return out
}

func angleDiff(a, b float64) float64 {
	return math.Abs(kinematics.NormalizeAngle(a - b))
}

var _ = Describe("Inverse", func() {
	Context("round trip through Forward", func() {
		theta1s := angleGrid(-math.Pi, math.Pi, 13)
		theta2s := append(angleGrid(-math.Pi+0.1, -0.1, 7), angleGrid(0.1, math.Pi-0.1, 7)...)

		for _, links := range linkPairs {
			l1, l2 := links[0], links[1]
			It(fmt.Sprintf("reproduces the joint angles for L=(%g, %g)", l1, l2), func() {
				for _, t1 := range theta1s {
					for _, t2 := range theta2s {
						ee := kinematics.Forward(t1, t2, l1, l2).EndEffector
						sol := kinematics.Inverse(ee.X, ee.Y, l1, l2, t2 < 0)

						Expect(sol.Valid()).To(BeTrue())
						Expect(angleDiff(sol.Theta1, t1)).To(BeNumerically("<", roundTripTol),
							"theta1 for L=(%g,%g) angles=(%g,%g)", l1, l2, t1, t2)
						Expect(sol.Theta2).To(BeNumerically("~", t2, roundTripTol),
							"theta2 for L=(%g,%g) angles=(%g,%g)", l1, l2, t1, t2)
					}
				}
			})
		}
	})

	Context("beyond the outer boundary", func() {
		DescribeTable("clamps onto L1+L2 along the same ray",
			func(x, y, l1, l2 float64) {
				sol := kinematics.Inverse(x, y, l1, l2, true)

				Expect(sol.Clamp).To(Equal(kinematics.ClampOuter))
				Expect(r2.Norm(sol.Target)).To(BeNumerically("~", l1+l2, 1e-9))
				Expect(angleDiff(math.Atan2(sol.Target.Y, sol.Target.X), math.Atan2(y, x))).
					To(BeNumerically("<", 1e-12))

				ee := kinematics.Forward(sol.Theta1, sol.Theta2, l1, l2).EndEffector
				Expect(r2.Norm(r2.Sub(ee, sol.Target))).To(BeNumerically("<", 1e-6))
			},
			Entry("along +x", 1000.0, 0.0, 100.0, 80.0),
			Entry("second quadrant", -300.0, 250.0, 100.0, 80.0),
			Entry("just outside", 0.0, -180.5, 100.0, 80.0),
			Entry("equal links", 150.0, 150.0, 100.0, 100.0),
			Entry("norm overflows", math.MaxFloat64, math.MaxFloat64, 100.0, 80.0),
			Entry("infinite target", math.Inf(-1), 1.0, 100.0, 80.0),
		)
	})

	Context("inside the inner boundary", func() {
		DescribeTable("clamps onto |L1-L2| along the same ray",
			func(x, y, l1, l2 float64) {
				sol := kinematics.Inverse(x, y, l1, l2, false)

				Expect(sol.Clamp).To(Equal(kinematics.ClampInner))
				Expect(r2.Norm(sol.Target)).To(BeNumerically("~", math.Abs(l1-l2), 1e-9))
				Expect(angleDiff(math.Atan2(sol.Target.Y, sol.Target.X), math.Atan2(y, x))).
					To(BeNumerically("<", 1e-12))

				ee := kinematics.Forward(sol.Theta1, sol.Theta2, l1, l2).EndEffector
				Expect(r2.Norm(r2.Sub(ee, sol.Target))).To(BeNumerically("<", 1e-6))
			},
			Entry("near base", 3.0, 4.0, 100.0, 80.0),
			Entry("shorter first link", -1.0, -1.0, 80.0, 100.0),
			Entry("tiny offset", 0.0, 1e-9, 120.0, 100.0),
			Entry("subnormal offset", 1e-320, 0.0, 100.0, 80.0),
			Entry("smallest subnormal", -5e-324, 5e-324, 100.0, 80.0),
		)
	})

	Context("with both elbow branches", func() {
		DescribeTable("reaches the same point with mirrored theta2",
			func(x, y float64) {
				up := kinematics.Inverse(x, y, 100, 80, true)
				down := kinematics.Inverse(x, y, 100, 80, false)

				Expect(up.Theta2).To(BeNumerically("<=", 0))
				Expect(down.Theta2).To(BeNumerically(">=", 0))
				Expect(up.Theta2).To(BeNumerically("~", -down.Theta2, 1e-12))

				target := r2.Vec{X: x, Y: y}
				for _, sol := range []kinematics.Solution{up, down} {
					ee := kinematics.Forward(sol.Theta1, sol.Theta2, 100, 80).EndEffector
					Expect(r2.Norm(r2.Sub(ee, target))).To(BeNumerically("<", 1e-6))
				}
			},
			Entry("first quadrant", 120.0, 60.0),
			Entry("below base", 10.0, -150.0),
			Entry("behind base", -90.0, 30.0),
		)
	})

	Context("at the base", func() {
		It("returns a defined pair when the links differ", func() {
			for _, elbowUp := range []bool{true, false} {
				sol := kinematics.Inverse(0, 0, 100, 80, elbowUp)
				Expect(sol.Valid()).To(BeTrue())
				Expect(sol.Clamp).To(Equal(kinematics.ClampDegenerate))
				Expect(sol.Target).To(Equal(r2.Vec{X: 20}))
			}
		})

		It("folds the arm back when the links are equal", func() {
			sol := kinematics.Inverse(0, 0, 100, 100, false)
			Expect(sol.Valid()).To(BeTrue())
			Expect(sol.Theta2).To(BeNumerically("~", math.Pi, 1e-12))

			ee := kinematics.Forward(sol.Theta1, sol.Theta2, 100, 100).EndEffector
			Expect(r2.Norm(ee)).To(BeNumerically("<", 1e-6))
		})
	})
})
