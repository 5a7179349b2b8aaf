// Package viz renders a 2-link arm in the terminal.
//
// The view is a Bubble Tea program: a Braille [Canvas] per colour layer,
// composed into one grid, next to a sidebar with live readouts and a joint
// angle history. The mouse drives the target in inverse mode.
//
// # Key Bindings
//
//	m     - Toggle forward/inverse mode
//	e     - Toggle elbow up/down
//	t     - Toggle trail (off drops it)
//	x     - Clear trail
//	1/2   - Select link for length keys
//	+/-   - Lengthen/shorten selected link
//	←/→   - Adjust θ1 (forward mode)
//	↑/↓   - Adjust θ2 (forward mode)
//	i     - Info panel (equations and current values)
//	s     - Settings panel
//	c     - Cycle color themes
//	q     - Quit
package viz
