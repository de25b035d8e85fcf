// Package pipeline wires a frame source, the magnitude processor, history
// and the renderers into a tick-driven visualization loop.
package pipeline

import (
	"fmt"
	"image/png"
	"os"

	"github.com/stared/fourious/internal/config"
	"github.com/stared/fourious/internal/source"
	"github.com/stared/fourious/internal/spectral"
)

// State is the pipeline lifecycle state.
type State int

const (
	// Idle: created, source not started, no frames processed.
	Idle State = iota
	// Running: one source→processor→renderer cycle per tick.
	Running
	// Paused: ticks keep arriving but processing is skipped; the raster
	// stays frozen.
	Paused
	// Stopped: source stopped, per-session state discarded. Start begins
	// a fresh session from empty.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Pipeline owns all per-session visualization state. It is not safe for
// concurrent use: ticks, option changes and resizes must all happen on the
// same goroutine (the TUI update loop).
type Pipeline struct {
	src  source.Source
	cfg  config.Config
	proc spectral.Processor

	history   *spectral.HistoryBuffer
	renderers map[spectral.Mode]spectral.Renderer
	surface   *spectral.Surface

	mode      spectral.Mode
	opts      spectral.Options
	state     State
	binCount  int
	lastFrame spectral.Frame
}

// New creates an idle pipeline for the given source.
func New(src source.Source, cfg config.Config) (*Pipeline, error) {
	mode, err := spectral.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	proc := spectral.Processor{
		BinCap:  cfg.BinCap,
		LogGain: src.Range().LogGain(),
	}
	return &Pipeline{
		src:       src,
		cfg:       cfg,
		proc:      proc,
		history:   spectral.NewHistoryBuffer(cfg.HistoryCap),
		renderers: make(map[spectral.Mode]spectral.Renderer),
		surface:   spectral.NewSurface(0, 0),
		mode:      mode,
		opts:      spectral.Options{LogScale: cfg.LogScale, ShowPeaks: cfg.ShowPeaks},
		state:     Idle,
	}, nil
}

// Start begins a session. On source failure the pipeline stays where it
// was (Idle or Stopped) and the error is returned; retrying is the
// caller's business.
func (p *Pipeline) Start() error {
	if p.state == Running || p.state == Paused {
		return fmt.Errorf("pipeline already started")
	}
	if err := p.src.Start(); err != nil {
		return err
	}
	p.state = Running
	return nil
}

// TogglePause switches between Running and Paused.
func (p *Pipeline) TogglePause() {
	switch p.state {
	case Running:
		p.state = Paused
	case Paused:
		p.state = Running
	}
}

// Stop ends the session and discards all per-session state. The frozen
// raster survives until the surface is resized or a new session renders.
func (p *Pipeline) Stop() error {
	if p.state != Running && p.state != Paused {
		return nil
	}
	p.state = Stopped
	err := p.src.Stop()
	p.history.Clear()
	for _, r := range p.renderers {
		r.Reset()
	}
	p.lastFrame = nil
	p.binCount = 0
	return err
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Surface exposes the raster the renderers draw into.
func (p *Pipeline) Surface() *spectral.Surface { return p.surface }

// Source returns the pipeline's frame source.
func (p *Pipeline) Source() source.Source { return p.src }

// Mode returns the active visualization mode.
func (p *Pipeline) Mode() spectral.Mode { return p.mode }

// SetMode switches the visualization; it takes effect on the next tick.
func (p *Pipeline) SetMode(m spectral.Mode) { p.mode = m }

// CycleMode advances to the next visualization mode.
func (p *Pipeline) CycleMode() { p.mode = p.mode.Next() }

// Options returns the current render options.
func (p *Pipeline) Options() spectral.Options { return p.opts }

// SetOptions replaces the render options; they apply on the next tick.
func (p *Pipeline) SetOptions(opts spectral.Options) { p.opts = opts }

// Tick runs one acquire→process→render cycle. Outside Running it does
// nothing, so a straggling tick after Stop can never touch freed state.
func (p *Pipeline) Tick() {
	if p.state != Running {
		return
	}

	raw := p.src.Frame()
	if raw == nil {
		return // source has no data this tick; keep the last raster
	}

	p.proc.LogScale = p.opts.LogScale
	frame := p.proc.Process(raw)
	if len(frame) == 0 {
		return
	}

	// A bin-count change invalidates everything sized per bin.
	if p.binCount != 0 && p.binCount != len(frame) {
		p.history.Clear()
		for _, r := range p.renderers {
			r.Reset()
		}
	}
	p.binCount = len(frame)

	p.history.Push(frame)
	p.lastFrame = frame
	p.render()
}

// Resize reallocates the surface and redraws the last frame. It must be
// called from the same goroutine as Tick.
func (p *Pipeline) Resize(w, h int) {
	if !p.surface.Resize(w, h) {
		return
	}
	if p.lastFrame != nil {
		p.render()
	}
}

// Snapshot writes the current raster to path as PNG.
func (p *Pipeline) Snapshot(path string) error {
	w, h := p.surface.Size()
	if w == 0 || h == 0 {
		return fmt.Errorf("nothing to snapshot yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, p.surface.Image()); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

func (p *Pipeline) render() {
	r, ok := p.renderers[p.mode]
	if !ok {
		r = spectral.NewRenderer(p.mode, p.cfg.PeakHold, p.cfg.PeakDecay)
		p.renderers[p.mode] = r
	}
	r.Render(p.lastFrame, p.history, p.opts, p.surface)
}
