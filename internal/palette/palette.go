// Package palette holds the colours shared by the grid, renderer and game rules.
package palette

import "image/color"

var (
	// Default is the neutral blend colour; tinting with it leaves a texture unchanged.
	Default = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// Objective marks tiles the avatar still has to reach.
	Objective = color.RGBA{R: 228, G: 140, B: 53, A: 255}

	// Threat marks threat origins and their visible wavefronts.
	Threat = color.RGBA{R: 81, G: 156, B: 160, A: 255}

	// Completed marks objectives and checkpoint lines already reached.
	Completed = color.RGBA{R: 204, G: 116, B: 167, A: 255}

	// Background clears the screen behind the grid.
	Background = color.RGBA{R: 38, G: 38, B: 34, A: 255}

	// Ghost is premultiplied white at about 10% opacity. Floor on a layer
	// the avatar has left is faded to it.
	Ghost = color.RGBA{R: 26, G: 26, B: 26, A: 26}

	// Hint is the muted text colour of the controls legend.
	Hint = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Premultiply returns opaque c at opacity (clamped to 0..1) with its colour
// channels premultiplied, the form ebiten's vector and ColorScale APIs expect.
func Premultiply(c color.RGBA, opacity float64) color.RGBA {
	opacity = max(0, min(opacity, 1))
	a := uint16(opacity * 255)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: uint8(a),
	}
}

// NearWhite reports whether every colour channel of c is at least 230.
func NearWhite(c color.RGBA) bool {
	return c.R >= 230 && c.G >= 230 && c.B >= 230
}
