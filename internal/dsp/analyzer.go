// Package dsp turns raw PCM sample windows into frequency-bin amplitudes
// for the spectral pipeline.
package dsp

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// DefaultFFTSize is the transform length used when none is configured.
const DefaultFFTSize = 1024

// Analyzer converts windows of interleaved stereo int16 PCM into amplitude
// bins in the 0-1 range. Buffers are allocated once and reused; Amplitudes
// is not safe for concurrent use.
type Analyzer struct {
	size   int
	fft    *fourier.FFT
	input  []float64
	coeffs []complex128
	amps   []float64
}

// NewAnalyzer creates an analyzer with the given transform size, which must
// be a power of two.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", size)
	}
	return &Analyzer{
		size:   size,
		fft:    fourier.NewFFT(size),
		input:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
		amps:   make([]float64, size/2+1),
	}, nil
}

// Bins returns the number of amplitude bins produced per window.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// WindowSamples returns how many interleaved stereo samples one transform
// window consumes.
func (a *Analyzer) WindowSamples() int { return a.size * 2 }

// Amplitudes runs one transform over the most recent samples: mono mix,
// Hann window, FFT, magnitude. It returns nil when there are not enough
// samples for a full window. The returned slice is reused between calls.
func (a *Analyzer) Amplitudes(samples []int16) []float64 {
	if len(samples) < a.size {
		return nil
	}

	for i := 0; i < a.size; i++ {
		idx := i * 2
		if idx+1 < len(samples) {
			a.input[i] = (float64(samples[idx]) + float64(samples[idx+1])) / 65536.0
		} else if idx < len(samples) {
			a.input[i] = float64(samples[idx]) / 32768.0
		} else {
			a.input[i] = 0
		}
	}
	window.Hann(a.input)

	a.fft.Coefficients(a.coeffs, a.input)
	// Scale so a full-scale sine lands near 1.0 rather than size/2.
	norm := 2.0 / float64(a.size)
	for i, c := range a.coeffs {
		a.amps[i] = cmplx.Abs(c) * norm
	}
	return a.amps
}
