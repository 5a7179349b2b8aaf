// Package kinematics provides closed-form kinematics for a planar 2-link arm.
//
// All geometry is expressed in math space: y-up, origin at the arm base,
// angles in radians, counter-clockwise positive.
//
//   - [Forward]: joint angles to elbow and end-effector positions
//   - [Inverse]: target point to joint angles, with workspace clamping
//   - [ClampTarget]: nearest reachable point along the ray from the base
//   - [Frame]: conversion between math space and y-down screen space
//
// # Example
//
//	pose := kinematics.Forward(0, 0, 100, 80)      // ee = (180, 0)
//	sol := kinematics.Inverse(1000, 0, 100, 80, true)
//	// sol.Clamp == kinematics.ClampOuter, sol.Theta1 ≈ 0, sol.Theta2 ≈ 0
//
// # Branches
//
// For a reachable target there are two solutions. The elbowUp flag selects
// the sign of the arccos term: elbowUp yields θ2 in [-π, 0], otherwise θ2 is
// in [0, π]. Whether that elbow is visually "up" depends on where the target
// lies relative to the base.
//
// Every function is pure and safe for concurrent use.
package kinematics
