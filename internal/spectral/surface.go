package spectral

import (
	"image"
	"image/color"
	"image/draw"
)

// Background is the raster clear color shared by all renderers.
var Background = color.RGBA{18, 22, 32, 255}

// Surface is a resizable RGBA raster that renderers draw into. Resizing
// reallocates the pixel buffer; renderers that accumulate pixels (the
// spectrogram) repaint from history afterwards.
type Surface struct {
	img *image.RGBA
	gen uint64 // bumped on every reallocation
}

// NewSurface allocates a surface of the given pixel dimensions, cleared to
// the background color. Dimensions below 1x1 are clamped to zero-size.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the raster to w by h pixels and clears it. It reports
// whether the dimensions actually changed.
func (s *Surface) Resize(w, h int) bool {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cw, ch := s.Size()
	if s.img != nil && cw == w && ch == h {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.gen++
	s.Clear()
	return true
}

// Size returns the raster dimensions in pixels.
func (s *Surface) Size() (w, h int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the underlying raster.
func (s *Surface) Image() *image.RGBA { return s.img }

// Generation identifies the current pixel buffer; it changes whenever the
// surface is reallocated, letting renderers detect a resize between ticks.
func (s *Surface) Generation() uint64 { return s.gen }

// Clear fills the raster with the background color.
func (s *Surface) Clear() {
	if s.img != nil {
		draw.Draw(s.img, s.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	}
}

// fillRect paints the half-open pixel rectangle [x0,x1)x[y0,y1), clipped to
// the surface.
func (s *Surface) fillRect(x0, y0, x1, y1 int, c color.RGBA) {
	if s.img == nil {
		return
	}
	r := image.Rect(x0, y0, x1, y1).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// setPixel writes one pixel, ignoring out-of-bounds coordinates.
func (s *Surface) setPixel(x, y int, c color.RGBA) {
	if s.img == nil {
		return
	}
	if (image.Point{x, y}).In(s.img.Bounds()) {
		s.img.SetRGBA(x, y, c)
	}
}

// drawLine strokes a 1px line between two points with Bresenham stepping.
func (s *Surface) drawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		s.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
