package spectral

import (
	"math"
	"testing"
)

func TestProcessCapsBinCount(t *testing.T) {
	raw := make([]float64, 1025)
	for i := range raw {
		raw[i] = float64(i % 256)
	}

	f := NewProcessor(ByteLogGain).Process(raw)
	if len(f) != DefaultBinCap {
		t.Fatalf("expected %d bins, got %d", DefaultBinCap, len(f))
	}
}

func TestProcessShortInputKeepsLength(t *testing.T) {
	f := NewProcessor(ByteLogGain).Process([]float64{1, 2, 3})
	if len(f) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(f))
	}
}

func TestProcessEmptyInputYieldsEmptyFrame(t *testing.T) {
	if f := NewProcessor(ByteLogGain).Process(nil); len(f) != 0 {
		t.Fatalf("expected empty frame, got %d bins", len(f))
	}
}

func TestProcessOutputNeverNegative(t *testing.T) {
	p := Processor{BinCap: 256, LogScale: true, LogGain: UnitLogGain}
	// Values below 1 log-compress to negative magnitudes; they must clamp.
	f := p.Process([]float64{0.001, 0.5, 0.9, 1, 200})
	for i, v := range f {
		if v < 0 {
			t.Fatalf("bin %d is negative: %v", i, v)
		}
	}
}

func TestProcessLogScaleSkipsNonPositive(t *testing.T) {
	p := Processor{BinCap: 256, LogScale: true, LogGain: ByteLogGain}
	f := p.Process([]float64{0, 100})
	if f[0] != 0 {
		t.Fatalf("expected zero magnitude for zero input, got %v", f[0])
	}
	want := math.Log10(100+logEpsilon) * ByteLogGain
	if math.Abs(f[1]-want) > 1e-9 {
		t.Fatalf("expected %v for bin 1, got %v", want, f[1])
	}
}

func TestProcessWithoutLogScalePassesThrough(t *testing.T) {
	f := NewProcessor(ByteLogGain).Process([]float64{0, 42, 255})
	want := []float64{0, 42, 255}
	for i, v := range want {
		if f[i] != v {
			t.Fatalf("bin %d: expected %v, got %v", i, v, f[i])
		}
	}
}

func TestFrameMax(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  float64
	}{
		{"empty", nil, 0},
		{"single", Frame{7}, 7},
		{"middle", Frame{1, 9, 3}, 9},
	}
	for _, tt := range tests {
		if got := tt.frame.Max(); got != tt.want {
			t.Errorf("%s: expected max %v, got %v", tt.name, tt.want, got)
		}
	}
}
