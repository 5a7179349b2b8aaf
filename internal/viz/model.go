package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/config"
	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/metrics"
)

const (
	sidebarWidth    = 40
	headerRows      = 1
	footerRows      = 1
	minCols         = 10
	minRows         = 5
	historyCapacity = 120
	lengthStep      = 5.0
	angleStep       = 1.0

	defaultTermWidth  = 120
	defaultTermHeight = 36
)

type TickMsg time.Time

// Model is the interactive arm view. The canvas fills the terminal left of
// a fixed-width sidebar; the sidebar and the header and footer rows count as
// UI, so the pointer over them does not move the target.
type Model struct {
	arm       *arm.Arm
	virtualW  float64
	virtualH  float64
	fps       int
	theme     Theme
	styles    styles
	layers    [numLayers]*Canvas
	width     int
	height    int
	cols      int
	rows      int
	scale     float64
	pointer   r2.Vec
	overUI    bool
	panel     Panel
	link      int
	theta1    []float64
	theta2    []float64
	last      arm.Sample
	tracking  *metrics.TrackingError
	clampRate *metrics.ClampRate
}

// NewModel builds the view and its arm from cfg. The canvas size in cfg is
// the virtual area the arm lives in; it is scaled to fit the terminal.
func NewModel(cfg *config.Config) (Model, error) {
	armCfg, err := cfg.ArmConfig()
	if err != nil {
		return Model{}, err
	}
	a, err := arm.New(armCfg)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		arm:       a,
		virtualW:  cfg.Canvas.Width,
		virtualH:  cfg.Canvas.Height,
		fps:       cfg.View.FPS,
		theme:     GetTheme(cfg.View.Theme),
		link:      1,
		theta1:    make([]float64, 0, historyCapacity),
		theta2:    make([]float64, 0, historyCapacity),
		tracking:  metrics.NewTrackingError(),
		clampRate: metrics.NewClampRate(),
	}
	if m.fps < 1 {
		m.fps = config.DefaultFPS
	}
	m.styles = newStyles(m.theme)
	a.AddObserver(m.tracking)
	a.AddObserver(m.clampRate)

	m.resize(defaultTermWidth, defaultTermHeight)
	return m, nil
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func (m Model) Arm() *arm.Arm    { return m.arm }
func (m Model) Panel() Panel     { return m.panel }
func (m Model) Theme() Theme     { return m.theme }
func (m Model) Pointer() r2.Vec  { return m.pointer }
func (m Model) OverUI() bool     { return m.overUI }
func (m Model) Scale() float64   { return m.scale }
func (m Model) CanvasCells() int { return m.cols * m.rows }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.setPointer(msg.X, msg.Y)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m":
		m.arm.SetMode(m.arm.Mode().Toggle())
	case "e":
		m.arm.SetElbowUp(!m.arm.ElbowUp())
	case "t":
		m.arm.SetTrailEnabled(!m.arm.TrailEnabled())
	case "x":
		m.arm.ClearTrail()
	case "1":
		m.link = 1
	case "2":
		m.link = 2
	case "+", "=":
		m.adjustLength(lengthStep)
	case "-", "_":
		m.adjustLength(-lengthStep)
	case "left":
		m.adjustAngle(1, -angleStep)
	case "right":
		m.adjustAngle(1, angleStep)
	case "down":
		m.adjustAngle(2, -angleStep)
	case "up":
		m.adjustAngle(2, angleStep)
	case "i":
		m.panel = m.panel.Toggle(PanelInfo)
	case "s":
		m.panel = m.panel.Toggle(PanelSettings)
	case "c":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	}
	return m, nil
}

func (m *Model) adjustLength(delta float64) {
	if m.link == 1 {
		_ = m.arm.SetL1(config.ClampLength(m.arm.L1() + delta))
		return
	}
	_ = m.arm.SetL2(config.ClampLength(m.arm.L2() + delta))
}

// adjustAngle nudges a joint by deg degrees. The arm ignores it outside
// forward mode.
func (m *Model) adjustAngle(joint int, deg float64) {
	d := kinematics.Radians(deg)
	if joint == 1 {
		m.arm.SetTheta1(kinematics.NormalizeAngle(m.arm.Theta1() + d))
		return
	}
	m.arm.SetTheta2(kinematics.NormalizeAngle(m.arm.Theta2() + d))
}

// resize lays out the canvas for a terminal of w x h cells and re-centres
// the arm, which drops its trail.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.cols = max(w-sidebarWidth, minCols)
	m.rows = max(h-headerRows-footerRows, minRows)
	for i := range m.layers {
		m.layers[i] = NewCanvas(m.cols, m.rows)
	}

	subW, subH := float64(m.cols*2), float64(m.rows*4)
	m.scale = min(subW/m.virtualW, subH/m.virtualH)
	m.arm.Init(subW/m.scale, subH/m.scale)
	m.pointer = m.arm.ScreenPose().EndEffector
}

// setPointer converts a mouse cell to arm screen space.
func (m *Model) setPointer(x, y int) {
	row := y - headerRows
	m.overUI = x < 0 || x >= m.cols || row < 0 || row >= m.rows
	m.pointer = r2.Vec{
		X: (float64(x*2) + 1) / m.scale,
		Y: (float64(row*4) + 2) / m.scale,
	}
}

func (m *Model) step() {
	m.last = m.arm.Update(m.pointer, m.overUI)
	m.theta1 = pushHistory(m.theta1, kinematics.Degrees(m.last.Theta1))
	m.theta2 = pushHistory(m.theta2, kinematics.Degrees(m.last.Theta2))
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m Model) View() string {
	s := m.arm.Snapshot()
	labels := m.draw(s)
	canvas := compose(m.layers, m.styles.layers, m.styles.value, labels)

	header := GradientText("TWOLINK", m.theme.Link1, m.theme.Link2) + "  " +
		m.styles.active.Render(strings.ToUpper(s.Mode.String())) + "  " +
		m.styles.dim.Render(fmt.Sprintf("elbow %s · trail %s · theme %s",
			onOff(s.ElbowUp, "up", "down"), onOff(s.TrailEnabled, "on", "off"), m.theme.Name))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.sidebar(s))
	return header + "\n" + main + "\n" + m.footer()
}

func (m Model) sidebar(s arm.Snapshot) string {
	var b strings.Builder

	ee := s.Pose.EndEffector
	b.WriteString(m.styles.label.Render("ee") + m.styles.value.Render(fmt.Sprintf("(%.1f, %.1f)", ee.X, ee.Y)) + "\n")
	if s.Mode == arm.ModeInverse {
		b.WriteString(m.styles.label.Render("target") + m.styles.value.Render(fmt.Sprintf("(%.1f, %.1f)", s.Target.X, s.Target.Y)) + "\n")
		clamp := m.last.Clamp.String()
		if m.last.Clamp != kinematics.ClampNone {
			clamp = m.styles.warn.Render(clamp)
		} else {
			clamp = m.styles.value.Render(clamp)
		}
		b.WriteString(m.styles.label.Render("clamp") + clamp + "\n")
		b.WriteString(m.styles.label.Render("error") + m.styles.value.Render(fmt.Sprintf("%.1f avg %.0f%% clamped", m.tracking.Value(), 100*m.clampRate.Value())) + "\n")
	}
	b.WriteString(m.styles.label.Render("reach") + m.styles.value.Render(fmt.Sprintf("[%g, %g]", s.Workspace.Inner, s.Workspace.Outer)) + "\n")

	if len(m.theta1) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.theta1, m.theta2},
			asciigraph.Height(5),
			asciigraph.Width(sidebarWidth-12),
			asciigraph.Precision(0),
			asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
			asciigraph.Caption("θ1 θ2 (deg)"))
		b.WriteString("\n" + chart + "\n")
	}

	switch m.panel {
	case PanelInfo:
		b.WriteString("\n" + m.infoPanel(s))
	case PanelSettings:
		b.WriteString("\n" + m.settingsPanel(s))
	}

	return lipgloss.NewStyle().Width(sidebarWidth).PaddingLeft(1).Render(b.String())
}

func (m Model) footer() string {
	keys := []struct{ k, d string }{
		{"m", "mode"}, {"e", "elbow"}, {"t", "trail"}, {"1/2", "link"}, {"+/-", "length"},
		{"←→↑↓", "angles"}, {"i", "info"}, {"s", "settings"}, {"c", "theme"}, {"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = m.styles.key.Render(k.k) + " " + m.styles.dim.Render(k.d)
	}
	return strings.Join(parts, "  ")
}
