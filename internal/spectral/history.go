package spectral

// DefaultHistoryCap is the default number of frames retained for
// time-axis visualizations.
const DefaultHistoryCap = 200

// HistoryBuffer is a fixed-capacity sliding window of frames, oldest first.
// Pushing beyond capacity evicts the oldest entry. The buffer accepts frames
// of any bin count; the owner is expected to Clear it when the bin count
// changes so time-axis renderers never mix widths.
type HistoryBuffer struct {
	frames []Frame
	cap    int
}

// NewHistoryBuffer creates a buffer retaining at most capacity frames.
// Non-positive capacities fall back to the default.
func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &HistoryBuffer{
		frames: make([]Frame, 0, capacity),
		cap:    capacity,
	}
}

// Push appends a frame, evicting oldest entries to stay within capacity.
func (h *HistoryBuffer) Push(f Frame) {
	if len(h.frames) < h.cap {
		h.frames = append(h.frames, f)
		return
	}
	drop := len(h.frames) - h.cap + 1
	copy(h.frames, h.frames[drop:])
	h.frames = h.frames[:h.cap-1]
	h.frames = append(h.frames, f)
}

// Clear empties the buffer.
func (h *HistoryBuffer) Clear() {
	h.frames = h.frames[:0]
}

// Len returns the number of retained frames.
func (h *HistoryBuffer) Len() int { return len(h.frames) }

// Cap returns the buffer capacity.
func (h *HistoryBuffer) Cap() int { return h.cap }

// At returns the i-th retained frame, oldest first.
func (h *HistoryBuffer) At(i int) Frame { return h.frames[i] }

// Latest returns the newest frame, or nil when empty.
func (h *HistoryBuffer) Latest() Frame {
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

// Max returns the largest magnitude across all retained frames. The
// spectrogram normalizes against this so color intensity stays stable over
// the visible time window.
func (h *HistoryBuffer) Max() float64 {
	max := 0.0
	for _, f := range h.frames {
		if m := f.Max(); m > max {
			max = m
		}
	}
	return max
}
