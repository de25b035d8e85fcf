package spectral

import "math"

const (
	// DefaultBinCap caps the number of frequency bins kept per frame,
	// regardless of the resolution of the underlying transform.
	DefaultBinCap = 256

	// Log-compression gains, matched to the dynamic range of the source.
	ByteLogGain = 50 // raw values in 0-255
	UnitLogGain = 10 // raw values in 0-1

	logEpsilon = 1e-6
)

// Frame holds one tick's worth of per-bin magnitudes, low frequency first.
// Values are non-negative. A frame is never mutated after it is produced.
type Frame []float64

// Max returns the largest magnitude in the frame, or 0 for an empty frame.
func (f Frame) Max() float64 {
	max := 0.0
	for _, v := range f {
		if v > max {
			max = v
		}
	}
	return max
}

// Processor converts raw per-bin amplitudes into display-ready magnitudes.
// LogGain must match the source's value range so log-compressed output stays
// visually comparable across sources.
type Processor struct {
	BinCap   int
	LogScale bool
	LogGain  float64
}

// NewProcessor returns a Processor with the default bin cap and the given
// log-compression gain.
func NewProcessor(logGain float64) Processor {
	return Processor{BinCap: DefaultBinCap, LogGain: logGain}
}

// Process produces a frame of at most BinCap magnitudes from raw amplitudes.
// Nil or empty input yields an empty frame; renderers skip those.
func (p Processor) Process(raw []float64) Frame {
	if len(raw) == 0 {
		return nil
	}
	cap := p.BinCap
	if cap <= 0 {
		cap = DefaultBinCap
	}
	n := len(raw)
	if n > cap {
		n = cap
	}

	out := make(Frame, n)
	for i := 0; i < n; i++ {
		v := raw[i]
		if p.LogScale && v > 0 {
			v = math.Log10(v+logEpsilon) * p.LogGain
		}
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}
