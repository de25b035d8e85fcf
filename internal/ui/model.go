package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stared/fourious/internal/config"
	"github.com/stared/fourious/internal/pipeline"
	"github.com/stared/fourious/internal/spectral"
)

// chromeRows is the number of terminal rows used by header, status and help.
const chromeRows = 3

// statusTTL is how long transient status messages stay visible.
const statusTTL = 3 * time.Second

type tickMsg time.Time

type playbackEndedMsg struct{}

// trackedSource is implemented by sources with a playback position (the
// file source); the status row shows a progress bar for these.
type trackedSource interface {
	Position() time.Duration
	Duration() time.Duration
	Done() <-chan struct{}
}

// Model is the bubbletea model driving the visualization loop: one pipeline
// tick per timer message, rasterized into half-block rows.
type Model struct {
	pipe     *pipeline.Pipeline
	interval time.Duration
	prog     progress.Model

	width    int
	height   int
	raster   string
	status   string
	statusAt time.Time
	ended    bool
	quitting bool
}

// New creates the TUI model for a started pipeline.
func New(p *pipeline.Pipeline, cfg config.Config) Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	return Model{
		pipe:     p,
		interval: cfg.TickInterval.Std(),
		prog:     prog,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.interval), tea.SetWindowTitle("fourious")}
	if ts, ok := m.pipe.Source().(trackedSource); ok && ts.Done() != nil {
		cmds = append(cmds, checkDone(ts))
	}
	return tea.Batch(cmds...)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func checkDone(ts trackedSource) tea.Cmd {
	return func() tea.Msg {
		<-ts.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = msg.Width - 16
		if m.prog.Width < 10 {
			m.prog.Width = 10
		}
		// Two raster pixels per terminal row.
		m.pipe.Resize(msg.Width, m.bodyRows()*2)
		m.raster = renderRaster(m.pipe.Surface().Image(), currentColorProfile())
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.pipe.Tick()
		m.raster = renderRaster(m.pipe.Surface().Image(), currentColorProfile())
		if m.status != "" && time.Since(m.statusAt) > statusTTL {
			m.status = ""
		}
		return m, tickCmd(m.interval)

	case playbackEndedMsg:
		m.ended = true
		m.pipe.Stop()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		m.pipe.Stop()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch msg.String() {
	case " ":
		m.pipe.TogglePause()
	case "v":
		m.pipe.CycleMode()
	case "1":
		m.pipe.SetMode(spectral.ModeBars)
	case "2":
		m.pipe.SetMode(spectral.ModeLine)
	case "3":
		m.pipe.SetMode(spectral.ModeSpectrogram)
	case "l":
		opts := m.pipe.Options()
		opts.LogScale = !opts.LogScale
		m.pipe.SetOptions(opts)
	case "p":
		opts := m.pipe.Options()
		opts.ShowPeaks = !opts.ShowPeaks
		m.pipe.SetOptions(opts)
	case "s":
		path := fmt.Sprintf("fourious-%s.png", time.Now().Format("20060102-150405"))
		if err := m.pipe.Snapshot(path); err != nil {
			m.status = "snapshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		m.statusAt = time.Now()
	}
	return m, nil
}

func (m Model) bodyRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(" ")
	sb.WriteString(titleStyle.Render(m.pipe.Source().Describe()))
	sb.WriteString("  ")
	sb.WriteString(modeStyle.Render("[" + m.pipe.Mode().String() + "]"))
	sb.WriteString("\n")

	body := m.raster
	if body == "" {
		body = strings.Repeat("\n", m.bodyRows()-1)
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(" " + helpText()))
	return sb.String()
}

func (m Model) statusLine() string {
	if m.status != "" {
		return statusStyle.Render(" " + m.status)
	}
	switch {
	case m.ended:
		return statusStyle.Render(" playback finished")
	case m.pipe.State() == pipeline.Paused:
		return pausedStyle.Render(" ⏸ paused")
	}
	if ts, ok := m.pipe.Source().(trackedSource); ok && ts.Duration() > 0 {
		ratio := float64(ts.Position()) / float64(ts.Duration())
		if ratio > 1 {
			ratio = 1
		}
		times := fmt.Sprintf(" %s/%s ", formatDuration(ts.Position()), formatDuration(ts.Duration()))
		return statusStyle.Render(times) + m.prog.ViewAs(ratio)
	}
	return statusStyle.Render(" " + m.pipe.State().String())
}

// formatDuration formats a duration as m:ss.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
