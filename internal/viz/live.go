package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/metrics"
	"github.com/san-kum/fern/internal/render"
)

const (
	panelWidth      = 36
	historyCapacity = 120

	// Terminal cells are roughly 8x16 px; host thresholds are scaled by
	// this before being compared with cell counts.
	cellWidthPx  = 8
	cellHeightPx = 16
)

// TickMsg fires once per display frame.
type TickMsg time.Time

// resizeMsg asks the model to re-check a debounced resize.
type resizeMsg time.Time

// Options configures a Model.
type Options struct {
	// FPS is the frame rate; 60 when zero.
	FPS int
	// Resize thresholds are in host pixels.
	Resize render.ResizePolicy
	// AutoStart starts drawing as soon as the welcome overlay closes.
	AutoStart bool
}

// Model hosts a render.Controller in the terminal.
type Model struct {
	ctrl      *render.Controller
	queue     *frame.Queue
	canvas    *Canvas
	filter    *render.ResizeFilter
	series    *metrics.TickSeries
	interval  time.Duration
	autoStart bool

	width, height int
	showHelp      bool
	welcome       bool
	status        string
}

// NewModel wires ctrl, which must paint on canvas and schedule on queue,
// into a Bubble Tea model. The welcome overlay is shown first.
func NewModel(ctrl *render.Controller, queue *frame.Queue, canvas *Canvas, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	policy := opts.Resize
	policy.MinDX /= cellWidthPx
	policy.MinDY /= cellHeightPx

	series := metrics.NewTickSeries(historyCapacity)
	ctrl.AddObserver(metrics.NewSet(series))

	return Model{
		ctrl:      ctrl,
		queue:     queue,
		canvas:    canvas,
		filter:    render.NewResizeFilter(policy),
		series:    series,
		interval:  time.Second / time.Duration(fps),
		autoStart: opts.AutoStart,
		showHelp:  true,
		welcome:   true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and fires queued frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			if m.welcome {
				m.welcome = false
				if m.autoStart {
					m.ctrl.Start()
				}
			}
			return m, nil
		}
		return m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := m.canvasCells()
		if m.filter.Observe(cols, rows, time.Now()) {
			m.ctrl.OnViewportChange(cols*2, rows*4)
			return m, nil
		}
		if !m.filter.Pending() {
			return m, nil
		}
		return m, tea.Tick(m.filter.Policy().Debounce, func(t time.Time) tea.Msg { return resizeMsg(t) })

	case resizeMsg:
		if cols, rows, ok := m.filter.Due(time.Time(msg)); ok {
			m.ctrl.OnViewportChange(cols*2, rows*4)
		}
		return m, nil

	case TickMsg:
		m.queue.Fire()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key {
	case "q":
		return m, tea.Quit
	case " ":
		m.ctrl.Toggle()
	case "s":
		m.ctrl.Start()
	case "x":
		m.ctrl.Stop()
	case "r":
		m.ctrl.Reset()
		m.series.Reset()
	case "t":
		next := render.NextThemeName(m.ctrl.Theme().Name)
		if err := m.ctrl.SetTheme(next); err != nil {
			m.status = err.Error()
		}
	case "+", "=":
		m.setThroughput(m.ctrl.Throughput() * 2)
	case "-", "_":
		m.setThroughput(max(1, m.ctrl.Throughput()/2))
	case "?":
		m.showHelp = true
	}
	return m, nil
}

func (m *Model) setThroughput(n int) {
	if err := m.ctrl.SetThroughput(n); err != nil {
		m.status = err.Error()
	}
}

// canvasCells is the cell area left for the canvas beside the stats panel.
func (m Model) canvasCells() (int, int) {
	cols := m.width - panelWidth - canvasStyle.GetHorizontalFrameSize() - 1
	rows := m.height - canvasStyle.GetVerticalFrameSize()
	return max(1, cols), max(1, rows)
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.showHelp {
		box := helpView(m.welcome)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	canvasView := canvasStyle.Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(m.statsView()))
	if m.width > 0 && m.height > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(mainView)
	}
	return mainView
}

func (m Model) statsView() string {
	theme := m.ctrl.Theme()
	var s strings.Builder

	s.WriteString(GradientText("BARNSLEY FERN", theme.Color, lipgloss.Color("#ffffff")) + "\n\n")
	if m.ctrl.Running() {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	history := m.series.Values()
	if len(history) > 1 {
		chart := asciigraph.Plot(history, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption("points/frame"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	} else {
		s.WriteString(SparklineChart(history, panelWidth-6) + "\n\n")
	}

	vp := m.ctrl.Viewport()
	rows := []struct{ label, value string }{
		{"Points", fmt.Sprintf("%d", m.ctrl.PointCount())},
		{"Generated", fmt.Sprintf("%d", m.ctrl.Generated())},
		{"Per frame", fmt.Sprintf("%d", m.ctrl.Throughput())},
		{"Theme", Swatch(theme.Color) + " " + theme.Name},
		{"Scale", fmt.Sprintf("%.1f", vp.Scale)},
		{"Canvas", fmt.Sprintf("%dx%d", vp.Width, vp.Height)},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + StatusPaused.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Start/Stop R:Reset\nT:Theme +/-:Speed\n?:Help Q:Quit"))
	return s.String()
}

var keyHelp = []struct{ key, desc string }{
	{"Space", "Start or stop drawing"},
	{"S / X", "Start / stop"},
	{"R", "Reset the fern"},
	{"T", "Cycle color themes"},
	{"+ / -", "Double / halve points per frame"},
	{"?", "Show this help"},
	{"Q", "Quit"},
}

func helpView(welcome bool) string {
	var s strings.Builder
	if welcome {
		s.WriteString(GradientText("Barnsley Fern", render.ThemeClassic.Color, render.ThemeOcean.Color) + "\n\n")
		s.WriteString("Four affine maps, picked at random with\n")
		s.WriteString("fixed odds, grow a fern one point at a time.\n\n")
	} else {
		s.WriteString(GradientText("Keyboard Shortcuts", render.ThemeClassic.Color, render.ThemeOcean.Color) + "\n\n")
	}
	for _, k := range keyHelp {
		s.WriteString(KeyName.Render(k.key) + " " + k.desc + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("press any key to continue"))
	return overlayStyle.Render(s.String())
}

// Controller exposes the hosted controller, for tests and embedding hosts.
func (m Model) Controller() *render.Controller { return m.ctrl }
