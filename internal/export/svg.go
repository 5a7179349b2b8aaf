// Package export writes arm poses and end-effector paths as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
)

const background = "#1a1a2e"

// TrajectoryToSVG draws a math-space path (y up) scaled to fit width x height
// with 10% padding. Fewer than two points yield an empty string.
func TrajectoryToSVG(points []r2.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	writeHeader(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ArmToSVG draws a snapshot in its own screen space: workspace rings, trail,
// target cross (inverse mode), links and joints.
func ArmToSVG(s arm.Snapshot) string {
	w, h := int(math.Round(s.Width)), int(math.Round(s.Height))
	base := s.Screen.Base

	var sb strings.Builder
	writeHeader(&sb, w, h)

	sb.WriteString(`<g fill="none" stroke="#ffffff" stroke-opacity="0.15" stroke-dasharray="4 4">` + "\n")
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", base.X, base.Y, s.Workspace.Outer)
	if s.Workspace.Inner > 0 {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", base.X, base.Y, s.Workspace.Inner)
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#ffffff" stroke-opacity="0.14"/>`+"\n", base.Y, w, base.Y)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#ffffff" stroke-opacity="0.14"/>`+"\n", base.X, base.X, h)

	if s.TrailEnabled && len(s.Trail) > 1 {
		sb.WriteString(`<polyline fill="none" stroke="#ffc864" stroke-opacity="0.5" stroke-width="2" points="`)
		for i, p := range s.Trail {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
		}
		sb.WriteString(`"/>` + "\n")
	}

	if s.Mode == arm.ModeInverse {
		t := s.TargetScreen
		sb.WriteString(`<g fill="none" stroke="#ff6464" stroke-opacity="0.5">` + "\n")
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", t.X-12, t.Y, t.X+12, t.Y)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", t.X, t.Y-12, t.X, t.Y+12)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="10"/>`+"\n", t.X, t.Y)
		sb.WriteString("</g>\n")
	}

	el, ee := s.Screen.Elbow, s.Screen.EndEffector
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#64c8ff" stroke-width="6" stroke-linecap="round"/>`+"\n", base.X, base.Y, el.X, el.Y)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#96e6b4" stroke-width="5" stroke-linecap="round"/>`+"\n", el.X, el.Y, ee.X, ee.Y)

	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="8" fill="#c8c8dc"/>`+"\n", base.X, base.Y)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="6" fill="#b4c8dc"/>`+"\n", el.X, el.Y)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#ffc864"/>`+"\n", ee.X, ee.Y)

	p := s.Pose.EndEffector
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="#ffc864" font-size="10" font-family="monospace">(%.0f, %.0f)</text>`+"\n", ee.X+10, ee.Y-10, p.X, p.Y)

	sb.WriteString("</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
