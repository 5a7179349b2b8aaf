package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the arm view.
type Theme struct {
	Name   string
	Link1  lipgloss.Color
	Link2  lipgloss.Color
	Joint  lipgloss.Color
	Target lipgloss.Color
	Trail  lipgloss.Color
	Grid   lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Link1:  lipgloss.Color("#ff00ff"), // Magenta
		Link2:  lipgloss.Color("#00ffff"), // Cyan
		Joint:  lipgloss.Color("#ffffff"),
		Target: lipgloss.Color("#ffff00"),
		Trail:  lipgloss.Color("#00ff00"),
		Grid:   lipgloss.Color("#333344"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Warn:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Link1:  lipgloss.Color("#00ff00"), // Green phosphor
		Link2:  lipgloss.Color("#00cc00"),
		Joint:  lipgloss.Color("#ccffcc"),
		Target: lipgloss.Color("#88ff88"),
		Trail:  lipgloss.Color("#008800"),
		Grid:   lipgloss.Color("#003300"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Link1:  lipgloss.Color("#ffffff"),
		Link2:  lipgloss.Color("#cccccc"),
		Joint:  lipgloss.Color("#ffffff"),
		Target: lipgloss.Color("#0088ff"),
		Trail:  lipgloss.Color("#888888"),
		Grid:   lipgloss.Color("#333333"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Link1:  lipgloss.Color("#0077be"), // Ocean blue
		Link2:  lipgloss.Color("#00a8cc"),
		Joint:  lipgloss.Color("#e0f0ff"),
		Target: lipgloss.Color("#ffd700"),
		Trail:  lipgloss.Color("#00ff88"),
		Grid:   lipgloss.Color("#113355"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Warn:   lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Link1:  lipgloss.Color("#ff6b6b"), // Coral
		Link2:  lipgloss.Color("#feca57"),
		Joint:  lipgloss.Color("#fff5f5"),
		Target: lipgloss.Color("#ff9ff3"),
		Trail:  lipgloss.Color("#5fd068"),
		Grid:   lipgloss.Color("#4a2f4b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Warn:   lipgloss.Color("#ffc048"),
	}

	// All available themes, in cycling order.
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name in cycling order.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
