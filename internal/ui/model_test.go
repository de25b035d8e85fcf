package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stared/fourious/internal/config"
	"github.com/stared/fourious/internal/pipeline"
	"github.com/stared/fourious/internal/source"
	"github.com/stared/fourious/internal/spectral"
)

type fakeSource struct{}

func (fakeSource) Start() error        { return nil }
func (fakeSource) Stop() error         { return nil }
func (fakeSource) Frame() []float64    { return []float64{10, 200, 90, 40} }
func (fakeSource) Range() source.Range { return source.RangeByte }
func (fakeSource) Describe() string    { return "test signal" }

func newTestModel(t *testing.T) Model {
	t.Helper()
	p, err := pipeline.New(fakeSource{}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	return New(p, config.Default())
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestWindowSizeResizesSurface(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 13})

	w, h := m.pipe.Surface().Size()
	if w != 40 {
		t.Fatalf("expected surface width 40, got %d", w)
	}
	// 13 rows minus 3 chrome rows, two pixels per row.
	if h != 20 {
		t.Fatalf("expected surface height 20, got %d", h)
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if m.pipe.State() != pipeline.Paused {
		t.Fatalf("expected Paused, got %v", m.pipe.State())
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if m.pipe.State() != pipeline.Running {
		t.Fatalf("expected Running, got %v", m.pipe.State())
	}
}

func TestModeKeys(t *testing.T) {
	m := newTestModel(t)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if m.pipe.Mode() != spectral.ModeSpectrogram {
		t.Fatalf("expected spectrogram, got %v", m.pipe.Mode())
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	if m.pipe.Mode() != spectral.ModeBars {
		t.Fatalf("expected cycle back to bars, got %v", m.pipe.Mode())
	}
}

func TestOptionToggles(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	opts := m.pipe.Options()
	if !opts.LogScale || !opts.ShowPeaks {
		t.Fatalf("expected both options on, got %+v", opts)
	}
}

func TestQuitStopsPipeline(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if m.pipe.State() != pipeline.Stopped {
		t.Fatalf("expected Stopped, got %v", m.pipe.State())
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestTickAfterQuitDoesNotReschedule(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	next, cmd := m.Update(tickMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Fatal("expected no tick rescheduled after quit")
	}
	_ = m
}

func TestTickUpdatesRaster(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	m = update(m, tickMsg{})

	if m.raster == "" {
		t.Fatal("expected raster content after a tick")
	}
}

func TestViewContainsSourceAndHelp(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	m = update(m, tickMsg{})

	view := m.View()
	if !strings.Contains(view, "test signal") {
		t.Fatal("expected source description in view")
	}
	if !strings.Contains(view, "snapshot") {
		t.Fatal("expected help line in view")
	}
}
