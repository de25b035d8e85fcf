package spectral

const (
	// DefaultPeakHold is how many ticks a peak stays frozen before decaying.
	DefaultPeakHold = 30
	// DefaultPeakDecay is the per-tick decay factor once the hold expires.
	DefaultPeakDecay = 0.8
)

// PeakTracker keeps one decaying peak-hold value per bin, VU-meter style:
// a new maximum is tracked immediately, held for Hold ticks, then falls off
// geometrically by Decay per tick. A bin-count change discards all state.
type PeakTracker struct {
	Hold  int
	Decay float64

	peaks []float64
	hold  []int
}

// NewPeakTracker creates a tracker with the given hold tick count and
// decay factor. Per-bin state is allocated lazily on the first update.
func NewPeakTracker(hold int, decay float64) *PeakTracker {
	if hold < 0 {
		hold = DefaultPeakHold
	}
	if decay <= 0 || decay >= 1 {
		decay = DefaultPeakDecay
	}
	return &PeakTracker{Hold: hold, Decay: decay}
}

// Update advances the tracker one tick with the current per-bin heights and
// returns the held peak per bin. The returned slice is owned by the tracker
// and valid until the next call. Heights of a different length than the
// previous call reset all per-bin state first.
func (t *PeakTracker) Update(heights []float64) []float64 {
	if len(t.peaks) != len(heights) {
		t.peaks = make([]float64, len(heights))
		t.hold = make([]int, len(heights))
	}
	for i, h := range heights {
		switch {
		case h > t.peaks[i]:
			t.peaks[i] = h
			t.hold[i] = t.Hold
		case t.hold[i] > 0:
			t.hold[i]--
		default:
			t.peaks[i] *= t.Decay
		}
	}
	return t.peaks
}

// Reset discards all per-bin state.
func (t *PeakTracker) Reset() {
	t.peaks = nil
	t.hold = nil
}
