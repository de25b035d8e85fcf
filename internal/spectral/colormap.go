package spectral

import "image/color"

// HeatColor maps a magnitude against its reference maximum to a color on a
// fixed blue → cyan → green → yellow → red ramp. Each fifth of the normalized
// range ramps exactly one channel, so the gradient is continuous at segment
// boundaries. Out-of-range magnitudes are clamped; the denominator is floored
// at 1 so a silent frame maps to the cold end instead of dividing by zero.
func HeatColor(m, max float64) color.RGBA {
	if max < 1 {
		max = 1
	}
	if m < 0 {
		m = 0
	}
	if m > max {
		m = max
	}
	r := m / max

	switch {
	case r < 0.2:
		return color.RGBA{0, channel(r / 0.2), 255, 255}
	case r < 0.4:
		return color.RGBA{0, 255, channel(1 - (r-0.2)/0.2), 255}
	case r < 0.6:
		return color.RGBA{channel((r - 0.4) / 0.2), 255, 0, 255}
	case r < 0.8:
		return color.RGBA{255, channel(1 - (r-0.6)/0.2), 0, 255}
	default:
		return color.RGBA{255, 0, 0, 255}
	}
}

func channel(t float64) uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(t * 255)
}

// lighten moves a color toward white by t in [0,1]. Used for peak overlays.
func lighten(c color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*t),
		G: uint8(float64(c.G) + (255-float64(c.G))*t),
		B: uint8(float64(c.B) + (255-float64(c.B))*t),
		A: 255,
	}
}

// blend mixes fg over bg with opacity a in [0,1].
func blend(bg, fg color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(bg.R) + (float64(fg.R)-float64(bg.R))*a),
		G: uint8(float64(bg.G) + (float64(fg.G)-float64(bg.G))*a),
		B: uint8(float64(bg.B) + (float64(fg.B)-float64(bg.B))*a),
		A: 255,
	}
}
