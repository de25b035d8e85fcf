package spectral

// SpectrogramRenderer scrolls a heatmap of the retained history: time on the
// horizontal axis with the newest frame at the right edge, frequency on the
// vertical axis with low bins at the bottom. Each tick the raster shifts one
// column into the past and the new frame is painted into the rightmost
// column, normalized against the maximum across the whole history window.
type SpectrogramRenderer struct {
	lastFrame Frame
	lastGen   uint64
	seen      bool
}

// NewSpectrogramRenderer creates a spectrogram renderer.
func NewSpectrogramRenderer() *SpectrogramRenderer {
	return &SpectrogramRenderer{}
}

func (r *SpectrogramRenderer) Render(frame Frame, history *HistoryBuffer, _ Options, surface *Surface) {
	w, h := surface.Size()
	if w == 0 || h == 0 || len(frame) == 0 {
		return
	}

	max := 0.0
	if history != nil {
		max = history.Max()
	}
	if m := frame.Max(); m > max {
		max = m
	}
	if max < 1 {
		max = 1
	}

	// A fresh or reallocated surface holds no pixels worth scrolling;
	// repaint whatever history still fits instead.
	if !r.seen || surface.Generation() != r.lastGen {
		r.repaint(history, frame, max, surface)
		r.lastGen = surface.Generation()
		r.lastFrame = frame
		r.seen = true
		return
	}

	// Re-render of the same tick: the column is already on the raster.
	if sameFrame(r.lastFrame, frame) {
		return
	}

	// Shift the raster one column toward the past with row-wise copies on
	// the pixel buffer; a per-pixel loop is too slow at large sizes.
	img := surface.Image()
	stride := img.Stride
	for y := 0; y < h; y++ {
		row := img.Pix[y*stride : y*stride+w*4]
		copy(row[:(w-1)*4], row[4:])
	}
	r.paintColumn(surface, w-1, frame, max)
	r.lastFrame = frame
}

// Reset discards scroll state; the next render repaints from history.
func (r *SpectrogramRenderer) Reset() {
	r.lastFrame = nil
	r.seen = false
}

// repaint redraws the full raster from the history window, newest frame in
// the rightmost column. The frame argument is the current tick's frame,
// which is already the newest history entry by the time renderers run.
func (r *SpectrogramRenderer) repaint(history *HistoryBuffer, frame Frame, max float64, surface *Surface) {
	surface.Clear()
	w, _ := surface.Size()

	if history == nil || history.Len() == 0 {
		r.paintColumn(surface, w-1, frame, max)
		return
	}

	n := history.Len()
	if n > w {
		n = w
	}
	for i := 0; i < n; i++ {
		f := history.At(history.Len() - n + i)
		r.paintColumn(surface, w-n+i, f, max)
	}
}

// paintColumn maps frame bins onto one pixel column, low frequency at the
// bottom row.
func (r *SpectrogramRenderer) paintColumn(surface *Surface, x int, frame Frame, max float64) {
	_, h := surface.Size()
	for y := 0; y < h; y++ {
		bin := (h - 1 - y) * len(frame) / h
		if bin >= len(frame) {
			bin = len(frame) - 1
		}
		surface.setPixel(x, y, HeatColor(frame[bin], max))
	}
}
