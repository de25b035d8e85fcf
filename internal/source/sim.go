package source

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/harmonica"
)

const (
	simControlPoints = 16
	simRetargetTicks = 24
)

// springField smooths a row of values toward their targets with a shared
// spring, one position/velocity pair per entry.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(n, fps int, frequency, damping float64) springField {
	return springField{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

func (s *springField) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// Sim is a synthetic frame source: spring-smoothed random band envelopes
// with a slow travelling sweep, emitting byte-range amplitudes. It needs no
// audio hardware and never fails to produce a frame.
type Sim struct {
	bins    int
	field   springField
	targets []float64
	rng     *rand.Rand
	tick    int
}

// NewSim creates a simulated source emitting frames of the given bin count.
func NewSim(bins int) *Sim {
	if bins <= 0 {
		bins = 256
	}
	return &Sim{
		bins:    bins,
		field:   newSpringField(simControlPoints, 20, 4.5, 0.6),
		targets: make([]float64, simControlPoints),
		rng:     rand.New(rand.NewSource(1)),
	}
}

func (s *Sim) Start() error { return nil }
func (s *Sim) Stop() error  { return nil }

func (s *Sim) Range() Range     { return RangeByte }
func (s *Sim) Describe() string { return "simulated signal" }

// Frame advances the simulation one tick and returns byte-range amplitudes.
func (s *Sim) Frame() []float64 {
	if s.tick%simRetargetTicks == 0 {
		for i := range s.targets {
			// Bias the low end louder, like real program material.
			rolloff := 1 - 0.7*float64(i)/float64(simControlPoints-1)
			s.targets[i] = s.rng.Float64() * 255 * rolloff
		}
	}
	for i, t := range s.targets {
		s.field.step(i, t)
	}

	sweep := float64(s.tick%200) / 200 * float64(s.bins)
	out := make([]float64, s.bins)
	for i := range out {
		// Interpolate the spring-smoothed control points across all bins.
		pos := float64(i) / float64(s.bins) * float64(simControlPoints-1)
		lo := int(pos)
		hi := lo + 1
		if hi >= simControlPoints {
			hi = simControlPoints - 1
		}
		t := pos - float64(lo)
		v := s.field.pos[lo]*(1-t) + s.field.pos[hi]*t

		// A travelling bump sweeping the frequency axis.
		d := float64(i) - sweep
		v += 90 * math.Exp(-d*d/72)

		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out[i] = v
	}
	s.tick++
	return out
}
