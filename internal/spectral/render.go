package spectral

import "fmt"

// Mode selects which visualization renders the spectral data.
type Mode int

const (
	ModeBars Mode = iota
	ModeLine
	ModeSpectrogram
)

var modeNames = [...]string{"bars", "line", "spectrogram"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Next cycles to the following mode, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeBars, fmt.Errorf("unknown visualization mode %q (want bars, line or spectrogram)", name)
}

// Options is the per-frame render configuration. It may change between
// frames; renderers observe the new value on the next render call.
type Options struct {
	LogScale  bool
	ShowPeaks bool
}

// Renderer draws one tick of spectral data onto a surface. Render is a pure
// function of the renderer's accumulated state, the inputs and the surface
// size: calling it twice with the same frame and options yields the same
// raster. Reset discards accumulated per-session state.
type Renderer interface {
	Render(frame Frame, history *HistoryBuffer, opts Options, surface *Surface)
	Reset()
}

// NewRenderer constructs the renderer for a mode with the given peak-hold
// parameters (used by the bars and line variants).
func NewRenderer(mode Mode, peakHold int, peakDecay float64) Renderer {
	switch mode {
	case ModeLine:
		return NewLineRenderer(peakHold, peakDecay)
	case ModeSpectrogram:
		return NewSpectrogramRenderer()
	default:
		return NewBarsRenderer(peakHold, peakDecay)
	}
}
