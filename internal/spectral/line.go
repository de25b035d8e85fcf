package spectral

// LineRenderer draws a continuous path through one point per bin, with a
// vertical gradient fading toward the baseline underneath. With peaks
// enabled it overlays a lighter held-peak path and marks local maxima.
type LineRenderer struct {
	peaks *PeakTracker

	lastFrame Frame
	held      []float64
}

// NewLineRenderer creates a line renderer with the given peak-hold settings.
func NewLineRenderer(peakHold int, peakDecay float64) *LineRenderer {
	return &LineRenderer{peaks: NewPeakTracker(peakHold, peakDecay)}
}

func (r *LineRenderer) Render(frame Frame, _ *HistoryBuffer, opts Options, surface *Surface) {
	w, h := surface.Size()
	surface.Clear()
	if len(frame) == 0 || w == 0 || h == 0 {
		return
	}

	max := frame.Max()
	if max < 1 {
		max = 1
	}
	n := len(frame)

	if !sameFrame(r.lastFrame, frame) {
		levels := make([]float64, n)
		for i, m := range frame {
			levels[i] = m / max
		}
		r.held = r.peaks.Update(levels)
		r.lastFrame = frame
	}

	// Gradient fill under the path, column by column: full opacity at the
	// path, transparent at the baseline.
	for x := 0; x < w; x++ {
		m := r.sampleAt(frame, x, w)
		top := h - int(m/max*float64(h))
		if top >= h {
			continue
		}
		c := HeatColor(m, max)
		span := float64(h - top)
		for y := top; y < h; y++ {
			a := 1 - float64(y-top)/span
			surface.setPixel(x, y, blend(Background, c, a))
		}
	}

	// Stroke the path itself on top of the fill.
	px, py := r.pointAt(frame, 0, max, w, h)
	for i := 1; i < n; i++ {
		x, y := r.pointAt(frame, i, max, w, h)
		surface.drawLine(px, py, x, y, HeatColor(frame[i], max))
		px, py = x, y
	}

	if !opts.ShowPeaks {
		return
	}

	// Held-peak overlay, lighter than the live path.
	if len(r.held) == n {
		px, py = peakPoint(r.held, 0, w, h)
		for i := 1; i < n; i++ {
			x, y := peakPoint(r.held, i, w, h)
			surface.drawLine(px, py, x, y, lighten(HeatColor(r.held[i]*max, max), 0.6))
			px, py = x, y
		}
	}

	// Point markers on strict local maxima.
	for i := 1; i < n-1; i++ {
		if frame[i] > frame[i-1] && frame[i] > frame[i+1] {
			x, y := r.pointAt(frame, i, max, w, h)
			marker := lighten(HeatColor(frame[i], max), 0.4)
			surface.fillRect(x-1, y-1, x+2, y+2, marker)
		}
	}
}

func (r *LineRenderer) Reset() {
	r.peaks.Reset()
	r.lastFrame = nil
	r.held = nil
}

// sampleAt linearly interpolates the frame magnitude at pixel column x.
func (r *LineRenderer) sampleAt(frame Frame, x, w int) float64 {
	if len(frame) == 1 {
		return frame[0]
	}
	pos := float64(x) / float64(w) * float64(len(frame))
	lo := int(pos)
	if lo >= len(frame)-1 {
		lo = len(frame) - 2
	}
	t := pos - float64(lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return frame[lo]*(1-t) + frame[lo+1]*t
}

func (r *LineRenderer) pointAt(frame Frame, i int, max float64, w, h int) (int, int) {
	x := int(float64(i) / float64(len(frame)) * float64(w))
	y := h - int(frame[i]/max*float64(h))
	return clampCoord(x, w), clampCoord(y, h)
}

func peakPoint(held []float64, i, w, h int) (int, int) {
	x := int(float64(i) / float64(len(held)) * float64(w))
	y := h - int(held[i]*float64(h))
	return clampCoord(x, w), clampCoord(y, h)
}

func clampCoord(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}
