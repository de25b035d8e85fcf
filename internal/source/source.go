// Package source provides the frame sources feeding the spectral pipeline:
// a synthetic signal generator, local audio file playback and live
// microphone capture.
package source

import "github.com/stared/fourious/internal/spectral"

// Range describes the value range of the raw amplitudes a source produces.
// The magnitude processor's log-compression gain must match it.
type Range int

const (
	// RangeByte covers sources emitting 0-255 values.
	RangeByte Range = iota
	// RangeUnit covers sources emitting 0-1 values.
	RangeUnit
)

// LogGain returns the log-compression gain matched to the range.
func (r Range) LogGain() float64 {
	if r == RangeByte {
		return spectral.ByteLogGain
	}
	return spectral.UnitLogGain
}

// Source produces one raw amplitude array per tick. Start must be called
// before the first Frame; Stop releases whatever the source holds. Frame
// returns nil when no data is available this tick, which the pipeline
// treats as a skipped frame rather than an error.
type Source interface {
	Start() error
	Stop() error
	Frame() []float64
	Range() Range
	Describe() string
}
