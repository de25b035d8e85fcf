package ui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

type rgb struct {
	R uint8
	G uint8
	B uint8
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

func currentColorProfile() colorProfile {
	profileOnce.Do(func() {
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			profile = colorNone
			return
		}
		term := strings.ToLower(os.Getenv("TERM"))
		colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
		switch {
		case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
			profile = colorTrueColor
		case strings.Contains(term, "256color"):
			profile = colorANSI256
		case term == "", term == "dumb":
			profile = colorNone
		default:
			profile = colorANSI16
		}
	})
	return profile
}

// ansiState tracks the active foreground and background so repeated colors
// emit no redundant escape sequences.
type ansiState struct {
	profile colorProfile
	fg      uint32
	bg      uint32
}

const noColor = ^uint32(0)

func newANSIState(p colorProfile) ansiState {
	return ansiState{profile: p, fg: noColor, bg: noColor}
}

func (s *ansiState) setFg(sb *strings.Builder, c rgb) {
	if s.profile == colorNone {
		return
	}
	key := colorKey(c)
	if key == s.fg {
		return
	}
	sb.WriteString(colorSequence(s.profile, c, false))
	s.fg = key
}

func (s *ansiState) setBg(sb *strings.Builder, c rgb) {
	if s.profile == colorNone {
		return
	}
	key := colorKey(c)
	if key == s.bg {
		return
	}
	sb.WriteString(colorSequence(s.profile, c, true))
	s.bg = key
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || (s.fg == noColor && s.bg == noColor) {
		return
	}
	sb.WriteString("\x1b[0m")
	s.fg = noColor
	s.bg = noColor
}

func colorKey(c rgb) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func colorSequence(profile colorProfile, c rgb, background bool) string {
	key := uint64(profile)<<33 | uint64(colorKey(c))<<1
	if background {
		key |= 1
	}
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	layer := 38
	if background {
		layer = 48
	}

	var seq string
	switch profile {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, c.R, c.G, c.B)
	case colorANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		idx := 16 + 36*r + 6*g + b
		seq = fmt.Sprintf("\x1b[%d;5;%dm", layer, idx)
	case colorANSI16:
		pal := []rgb{
			{R: 0, G: 0, B: 0},
			{R: 205, G: 49, B: 49},
			{R: 13, G: 188, B: 121},
			{R: 229, G: 229, B: 16},
			{R: 36, G: 114, B: 200},
			{R: 188, G: 63, B: 188},
			{R: 17, G: 168, B: 205},
			{R: 229, G: 229, B: 229},
		}
		best := 0
		bestDist := math.MaxFloat64
		for i, p := range pal {
			dr := float64(c.R) - float64(p.R)
			dg := float64(c.G) - float64(p.G)
			db := float64(c.B) - float64(p.B)
			d := dr*dr + dg*dg + db*db
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		base := 30
		if background {
			base = 40
		}
		seq = fmt.Sprintf("\x1b[%dm", base+best)
	default:
		seq = ""
	}

	seqCache.Store(key, seq)
	return seq
}
