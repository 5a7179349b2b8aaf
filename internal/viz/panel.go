package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
)

// Panel is the side panel currently open.
type Panel int

const (
	PanelNone Panel = iota
	PanelInfo
	PanelSettings
)

func (p Panel) String() string {
	switch p {
	case PanelInfo:
		return "info"
	case PanelSettings:
		return "settings"
	}
	return "none"
}

// Toggle returns the panel state after the button for q is pressed: the
// open panel closes, any other replaces it.
func (p Panel) Toggle(q Panel) Panel {
	if p == q {
		return PanelNone
	}
	return q
}

var (
	forwardEquations = []string{
		"x_elbow = L1·cos θ1",
		"y_elbow = L1·sin θ1",
		"x_ee = L1·cos θ1 + L2·cos(θ1+θ2)",
		"y_ee = L1·sin θ1 + L2·sin(θ1+θ2)",
	}
	inverseEquations = []string{
		"cos θ2 = (x²+y²−L1²−L2²) / (2·L1·L2)",
		"θ2 = ±arccos(cos θ2)",
		"θ1 = atan2(y,x) − atan2(k2,k1)",
		"k1 = L1 + L2·cos θ2, k2 = L2·sin θ2",
	}
)

// currentValues is the live readout shown in the info panel.
func currentValues(s arm.Snapshot) []string {
	ee := s.Pose.EndEffector
	return []string{
		fmt.Sprintf("θ1 = %.1f°", kinematics.Degrees(s.Theta1)),
		fmt.Sprintf("θ2 = %.1f°", kinematics.Degrees(s.Theta2)),
		fmt.Sprintf("L1 = %g", s.L1),
		fmt.Sprintf("L2 = %g", s.L2),
		fmt.Sprintf("End-effector = (%.1f, %.1f)", ee.X, ee.Y),
	}
}

func (m Model) infoPanel(s arm.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("FORWARD") + "\n")
	for _, eq := range forwardEquations {
		b.WriteString(m.styles.eq.Render(eq) + "\n")
	}
	b.WriteString("\n" + m.styles.header.Render("INVERSE") + "\n")
	for _, eq := range inverseEquations {
		b.WriteString(m.styles.eq.Render(eq) + "\n")
	}
	b.WriteString("\n" + m.styles.header.Render("CURRENT") + "\n")
	for _, line := range currentValues(s) {
		b.WriteString(m.styles.value.Render(line) + "\n")
	}
	return m.styles.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) settingsPanel(s arm.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("SETTINGS") + "\n")

	row := func(label, value string, active, dimmed bool) {
		marker := "  "
		l, v := m.styles.label, m.styles.value
		switch {
		case dimmed:
			l, v = m.styles.dim, m.styles.dim
		case active:
			marker = m.styles.active.Render("▸ ")
			v = m.styles.active
		}
		b.WriteString(marker + l.Width(8).Render(label) + v.Render(value) + "\n")
	}

	ik := s.Mode == arm.ModeInverse
	row("mode", s.Mode.String(), false, false)
	row("L1", fmt.Sprintf("%g", s.L1), m.link == 1, false)
	row("L2", fmt.Sprintf("%g", s.L2), m.link == 2, false)
	row("θ1", fmt.Sprintf("%.0f°", kinematics.Degrees(s.Theta1)), false, ik)
	row("θ2", fmt.Sprintf("%.0f°", kinematics.Degrees(s.Theta2)), false, ik)
	row("elbow", onOff(s.ElbowUp, "up", "down"), false, false)
	row("trail", onOff(s.TrailEnabled, "on", "off"), false, false)

	if s.TrailEnabled {
		frac := float64(len(s.Trail)) / float64(m.arm.MaxTrail())
		b.WriteString("  " + ProgressBar(frac, sidebarWidth-8, m.styles.active, m.styles.dim) + "\n")
	}
	return m.styles.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func onOff(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}
