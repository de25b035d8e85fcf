package ui

import (
	"image"
	"strings"
)

// Luminance ramp for terminals without color support.
var shadeChars = []rune{' ', '.', ':', '-', '=', '+', '*', '#', '%', '@'}

// renderRaster converts an RGBA raster into terminal rows using half-block
// cells: each character carries two vertically stacked pixels, the top one
// as foreground of '▀' and the bottom one as background. On colorless
// terminals it falls back to a luminance character ramp.
func renderRaster(img *image.RGBA, profile colorProfile) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ""
	}
	rows := h / 2

	var out strings.Builder
	out.Grow(rows * w * 24)
	state := newANSIState(profile)

	for r := 0; r < rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := img.RGBAAt(b.Min.X+x, b.Min.Y+r*2)
			bot := img.RGBAAt(b.Min.X+x, b.Min.Y+r*2+1)

			if profile == colorNone {
				lum := (luminance(top.R, top.G, top.B) + luminance(bot.R, bot.G, bot.B)) / 2
				idx := int(lum * float64(len(shadeChars)-1))
				out.WriteRune(shadeChars[idx])
				continue
			}

			state.setFg(&out, rgb{top.R, top.G, top.B})
			state.setBg(&out, rgb{bot.R, bot.G, bot.B})
			out.WriteRune('▀')
		}
		state.reset(&out)
	}
	return out.String()
}

func luminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}
