// Package asset turns source images into grid bitmaps and builds the textures
// the renderer draws.
package asset

import (
	"image"
	"image/color"
)

var (
	// Light and Dark are the two classes produced by Quantize. Pixels that
	// already equal one of them are kept as-is.
	Light = color.NRGBA{R: 255, G: 255, B: 255, A: 0}
	Dark  = color.NRGBA{R: 0, G: 0, B: 0, A: 0}
)

// lightSum is the minimum R+G+B for a pixel to count as light: 255 × 1.75,
// truncated.
const lightSum = 255 * 7 / 4

// markerTolerance is the maximum summed per-channel distance to a marker colour.
const markerTolerance = 24

// Binary is a light/dark classified image with optional marker colours on
// light pixels. It satisfies tile.Bitmap.
type Binary struct {
	w, h    int
	dark    []bool
	markers []color.RGBA // zero value = no marker
}

// NewBinary returns an all-light w x h bitmap.
func NewBinary(w, h int) *Binary {
	return &Binary{w: w, h: h, dark: make([]bool, w*h), markers: make([]color.RGBA, w*h)}
}

// Size returns the pixel dimensions.
func (b *Binary) Size() (int, int) { return b.w, b.h }

// Dark reports whether (x, y) classified as dark. Out of range is light.
func (b *Binary) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.dark[y*b.w+x]
}

// Marker returns the marker colour at (x, y), if any.
func (b *Binary) Marker(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return color.RGBA{}, false
	}
	m := b.markers[y*b.w+x]
	return m, m != (color.RGBA{})
}

// SetDark marks (x, y) as dark and drops any marker.
func (b *Binary) SetDark(x, y int, dark bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.dark[y*b.w+x] = dark
	if dark {
		b.markers[y*b.w+x] = color.RGBA{}
	}
}

// SetMarker tags a light pixel with a marker colour.
func (b *Binary) SetMarker(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.dark[y*b.w+x] = false
	b.markers[y*b.w+x] = c
}

// Quantize classifies every pixel of img as light or dark. Pixels close to one
// of markers are light and tagged with that marker instead.
func Quantize(img image.Image, markers []color.RGBA) *Binary {
	bounds := img.Bounds()
	out := NewBinary(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			switch c {
			case Light:
				continue
			case Dark:
				out.SetDark(x, y, true)
				continue
			}
			if m, ok := matchMarker(c, markers); ok {
				out.SetMarker(x, y, m)
				continue
			}
			sum := uint32(c.R) + uint32(c.G) + uint32(c.B)
			out.SetDark(x, y, sum < lightSum)
		}
	}
	return out
}

func matchMarker(c color.NRGBA, markers []color.RGBA) (color.RGBA, bool) {
	if c.A < 128 {
		return color.RGBA{}, false
	}
	for _, m := range markers {
		d := absDiff(c.R, m.R) + absDiff(c.G, m.G) + absDiff(c.B, m.B)
		if d <= markerTolerance {
			return m, true
		}
	}
	return color.RGBA{}, false
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
