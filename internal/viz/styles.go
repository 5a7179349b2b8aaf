package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from a Theme.
type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	dim    lipgloss.Style
	key    lipgloss.Style
	warn   lipgloss.Style
	eq     lipgloss.Style
	layers [numLayers]lipgloss.Style
}

func newStyles(t Theme) styles {
	s := styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(sidebarWidth - 2),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Link2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Link1).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(t.Muted).Faint(true),
		key:    lipgloss.NewStyle().Foreground(t.Link2).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		eq:     lipgloss.NewStyle().Foreground(t.Target).Italic(true),
	}
	colors := [numLayers]lipgloss.Color{
		layerGrid:   t.Grid,
		layerTrail:  t.Trail,
		layerTarget: t.Target,
		layerLink1:  t.Link1,
		layerLink2:  t.Link2,
		layerJoint:  t.Joint,
	}
	for i, c := range colors {
		s.layers[i] = lipgloss.NewStyle().Foreground(c)
	}
	return s
}

// GradientText colours each rune of text along a linear gradient.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	runes := []rune(text)
	n := len(runes)
	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b))).Bold(true)
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a fill bar for fraction in [0, 1].
func ProgressBar(fraction float64, width int, fill, empty lipgloss.Style) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return fill.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", width-filled))
}

func Separator(width int, s lipgloss.Style) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.Render(left + " ◆ " + right)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(255, v))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
