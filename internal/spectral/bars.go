package spectral

// BarsRenderer draws one vertical bar per bin, heat-colored by magnitude,
// with an optional bright peak-hold marker above each bar.
type BarsRenderer struct {
	peaks *PeakTracker

	lastFrame Frame
	held      []float64
}

// NewBarsRenderer creates a bars renderer with the given peak-hold settings.
func NewBarsRenderer(peakHold int, peakDecay float64) *BarsRenderer {
	return &BarsRenderer{peaks: NewPeakTracker(peakHold, peakDecay)}
}

func (r *BarsRenderer) Render(frame Frame, _ *HistoryBuffer, opts Options, surface *Surface) {
	w, h := surface.Size()
	surface.Clear()
	if len(frame) == 0 || w == 0 || h == 0 {
		return
	}

	max := frame.Max()
	if max < 1 {
		max = 1
	}

	// Peak state advances once per frame in normalized units, so a
	// re-render of the same frame (after a resize, say) is idempotent.
	if !sameFrame(r.lastFrame, frame) {
		levels := make([]float64, len(frame))
		for i, m := range frame {
			levels[i] = m / max
		}
		r.held = r.peaks.Update(levels)
		r.lastFrame = frame
	}

	slot := float64(w) / float64(len(frame))
	inset := slot * 0.1

	for i, m := range frame {
		barH := int(m / max * float64(h))
		x0 := int(float64(i)*slot + inset)
		x1 := int(float64(i+1)*slot - inset)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		surface.fillRect(x0, h-barH, x1, h, HeatColor(m, max))

		if opts.ShowPeaks && i < len(r.held) {
			peakY := h - int(r.held[i]*float64(h))
			if peakY >= h {
				peakY = h - 1
			}
			surface.fillRect(x0, peakY-1, x1, peakY+1, lighten(HeatColor(r.held[i]*max, max), 0.5))
		}
	}
}

func (r *BarsRenderer) Reset() {
	r.peaks.Reset()
	r.lastFrame = nil
	r.held = nil
}

// sameFrame reports whether two frames are the same produced instance.
// Frames are immutable and produced once per tick, so slice identity is
// enough to tell a new tick from a re-render.
func sameFrame(a, b Frame) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
