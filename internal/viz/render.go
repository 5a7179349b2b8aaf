package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
)

// Layers are drawn bottom to top. Each cell takes the colour of the highest
// layer with a dot in it.
const (
	layerGrid = iota
	layerTrail
	layerTarget
	layerLink1
	layerLink2
	layerJoint
	numLayers
)

const (
	gridSpacing = 50.0
	arc1Radius  = 30.0
	arc2Radius  = 24.0
	targetSize  = 12.0
	targetRing  = 10.0
	arcMinAngle = 0.05
)

type label struct {
	col, row int
	text     string
}

// dot maps a screen-space point onto the sub-pixel grid.
func (m *Model) dot(p r2.Vec) (int, int) {
	return int(math.Round(p.X * m.scale)), int(math.Round(p.Y * m.scale))
}

func (m *Model) dotRadius(r float64) int {
	return max(int(math.Round(r*m.scale)), 0)
}

// draw renders the arm onto the layers and returns the text labels.
func (m *Model) draw(s arm.Snapshot) []label {
	for _, l := range m.layers {
		l.Clear()
	}

	m.drawGrid(s)
	if s.TrailEnabled && len(s.Trail) > 1 {
		m.drawTrail(s.Trail)
	}
	if s.Mode == arm.ModeInverse {
		m.drawTarget(s.TargetScreen)
	}

	bx, by := m.dot(s.Screen.Base)
	ex, ey := m.dot(s.Screen.Elbow)
	tx, ty := m.dot(s.Screen.EndEffector)
	m.layers[layerLink1].DrawLine(bx, by, ex, ey)
	m.layers[layerLink2].DrawLine(ex, ey, tx, ty)
	m.drawAngleArcs(s)

	joints := m.layers[layerJoint]
	joints.Dot(bx, by, max(m.dotRadius(8)/2, 1))
	joints.Dot(ex, ey, max(m.dotRadius(6)/2, 1))
	joints.Dot(tx, ty, max(m.dotRadius(5)/2, 1))

	ee := s.Pose.EndEffector
	return []label{
		{col: bx/2 + 2, row: by/4 - 1, text: fmt.Sprintf("θ1: %.1f°", kinematics.Degrees(s.Theta1))},
		{col: ex/2 + 2, row: ey/4 - 1, text: fmt.Sprintf("θ2: %.1f°", kinematics.Degrees(s.Theta2))},
		{col: tx/2 + 2, row: ty/4 - 1, text: fmt.Sprintf("(%.0f, %.0f)", ee.X, ee.Y)},
	}
}

func (m *Model) drawGrid(s arm.Snapshot) {
	g := m.layers[layerGrid]
	w, h := g.SubSize()
	base := s.Screen.Base
	step := gridSpacing * m.scale
	if step < 4 {
		step *= math.Ceil(4 / step)
	}

	// Grid lines are dotted, axes solid.
	for x := math.Mod(base.X*m.scale, step); x < float64(w); x += step {
		for y := 0; y < h; y += 3 {
			g.Set(int(x), y)
		}
	}
	for y := math.Mod(base.Y*m.scale, step); y < float64(h); y += step {
		for x := 0; x < w; x += 3 {
			g.Set(x, int(y))
		}
	}
	bx, by := m.dot(base)
	g.DrawLine(0, by, w-1, by)
	g.DrawLine(bx, 0, bx, h-1)

	g.DrawDottedCircle(float64(bx), float64(by), s.Workspace.Outer*m.scale, 4)
	if s.Workspace.Inner > 0 {
		g.DrawDottedCircle(float64(bx), float64(by), s.Workspace.Inner*m.scale, 4)
	}
}

func (m *Model) drawTrail(trail []r2.Vec) {
	t := m.layers[layerTrail]
	px, py := m.dot(trail[0])
	for _, p := range trail[1:] {
		x, y := m.dot(p)
		t.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (m *Model) drawTarget(target r2.Vec) {
	t := m.layers[layerTarget]
	x, y := m.dot(target)
	s := max(m.dotRadius(targetSize), 2)
	t.DrawLine(x-s, y, x+s, y)
	t.DrawLine(x, y-s, x, y+s)
	t.DrawCircle(float64(x), float64(y), math.Max(targetRing*m.scale, 1.5))
}

func (m *Model) drawAngleArcs(s arm.Snapshot) {
	bx, by := m.dot(s.Screen.Base)
	ex, ey := m.dot(s.Screen.Elbow)
	if math.Abs(s.Theta1) > arcMinAngle {
		m.layers[layerLink1].DrawArc(float64(bx), float64(by), math.Max(arc1Radius*m.scale, 3), 0, s.Theta1)
	}
	if math.Abs(s.Theta2) > arcMinAngle {
		m.layers[layerLink2].DrawArc(float64(ex), float64(ey), math.Max(arc2Radius*m.scale, 2), s.Theta1, s.Theta1+s.Theta2)
	}
}

// compose merges the layers into one coloured string and prints labels over
// them. Runs of cells sharing a layer are styled together.
func compose(layers [numLayers]*Canvas, st [numLayers]lipgloss.Style, text lipgloss.Style, labels []label) string {
	base := layers[0]
	const textLayer = -2

	runes := make([][]rune, base.Height)
	owner := make([][]int, base.Height)
	for row := range runes {
		runes[row] = make([]rune, base.Width)
		owner[row] = make([]int, base.Width)
		for col := range runes[row] {
			r := rune(0x2800)
			o := -1
			for i, l := range layers {
				cell := l.Grid[row][col]
				if cell != 0x2800 {
					r |= cell
					o = i
				}
			}
			runes[row][col] = r
			owner[row][col] = o
		}
	}

	for _, lb := range labels {
		if lb.row < 0 || lb.row >= base.Height {
			continue
		}
		for i, c := range []rune(lb.text) {
			col := lb.col + i
			if col < 0 || col >= base.Width {
				continue
			}
			runes[lb.row][col] = c
			owner[lb.row][col] = textLayer
		}
	}

	style := func(o int) lipgloss.Style {
		switch {
		case o == textLayer:
			return text
		case o >= 0:
			return st[o]
		}
		return lipgloss.NewStyle()
	}

	var b strings.Builder
	for row := range runes {
		start := 0
		for col := 1; col <= base.Width; col++ {
			if col < base.Width && owner[row][col] == owner[row][start] {
				continue
			}
			b.WriteString(style(owner[row][start]).Render(string(runes[row][start:col])))
			start = col
		}
		if row < base.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
