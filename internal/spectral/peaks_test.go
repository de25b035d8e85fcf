package spectral

import (
	"math"
	"testing"
)

func TestPeakTrackerSpikeHoldsThenDecays(t *testing.T) {
	const hold = 5
	const decay = 0.8
	tr := NewPeakTracker(hold, decay)

	held := tr.Update([]float64{100})
	if held[0] != 100 {
		t.Fatalf("expected peak to jump to 100, got %v", held[0])
	}

	// Silence: the peak stays fixed for exactly hold ticks.
	for i := 0; i < hold; i++ {
		held = tr.Update([]float64{0})
		if held[0] != 100 {
			t.Fatalf("tick %d of hold phase: expected 100, got %v", i, held[0])
		}
	}

	// Then it decays geometrically, never increasing again.
	want := 100.0
	for i := 0; i < 20; i++ {
		want *= decay
		held = tr.Update([]float64{0})
		if math.Abs(held[0]-want) > 1e-9 {
			t.Fatalf("decay tick %d: expected %v, got %v", i, want, held[0])
		}
	}
}

func TestPeakTrackerNewMaximumResetsHold(t *testing.T) {
	tr := NewPeakTracker(3, 0.5)
	tr.Update([]float64{10})
	tr.Update([]float64{0})
	tr.Update([]float64{0})

	// A higher input mid-hold takes over immediately with a fresh hold.
	held := tr.Update([]float64{50})
	if held[0] != 50 {
		t.Fatalf("expected new peak 50, got %v", held[0])
	}
	for i := 0; i < 3; i++ {
		held = tr.Update([]float64{0})
		if held[0] != 50 {
			t.Fatalf("expected full hold after new peak, got %v at tick %d", held[0], i)
		}
	}
	held = tr.Update([]float64{0})
	if held[0] != 25 {
		t.Fatalf("expected first decay step to 25, got %v", held[0])
	}
}

func TestPeakTrackerBinCountChangeResetsState(t *testing.T) {
	tr := NewPeakTracker(10, 0.8)
	tr.Update([]float64{100, 100})

	held := tr.Update([]float64{1, 1, 1})
	if len(held) != 3 {
		t.Fatalf("expected 3 bins after resize, got %d", len(held))
	}
	for i, v := range held {
		if v != 1 {
			t.Fatalf("bin %d: stale peak survived resize: %v", i, v)
		}
	}
}

func TestPeakTrackerReset(t *testing.T) {
	tr := NewPeakTracker(10, 0.8)
	tr.Update([]float64{100})
	tr.Reset()
	held := tr.Update([]float64{2})
	if held[0] != 2 {
		t.Fatalf("expected fresh peak after reset, got %v", held[0])
	}
}
