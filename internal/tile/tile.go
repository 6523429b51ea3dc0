// Package tile is the layered grid store and the geometric queries that run over it.
package tile

import (
	"image"
	"image/color"
)

// Kind identifies what a tile is for gameplay purposes, independent of how it looks.
type Kind uint8

const (
	KindEmpty      Kind = iota // no tile; the zero value
	KindBackground             // decorative backdrop, never blocks
	KindFloor                  // walkable, can carry objective/threat tints
	KindWall                   // blocks movement, lines of sight and flood fills
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBackground:
		return "background"
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Layer is a signed draw-depth index. Lower layers draw first (behind).
type Layer int8

const (
	Background Layer = -1
	Foreground Layer = 0
)

// Texture is an opaque handle to a renderable image. Handles compare by identity,
// so many cells may share one. *ebiten.Image and *image.RGBA both satisfy it.
type Texture interface {
	Bounds() image.Rectangle
}

// Tile is one cell of one layer.
type Tile struct {
	Kind    Kind
	Texture Texture
	Height  float64    // vertical render nudge in tile heights (0 = none)
	Blend   color.RGBA // tint over the texture; the zero value means untinted
}

// Filled returns a tile of the given kind and texture with no nudge or tint.
func Filled(k Kind, tex Texture) Tile {
	return Tile{Kind: k, Texture: tex}
}

// IsEmpty reports whether t is the empty tile.
func (t Tile) IsEmpty() bool { return t.Kind == KindEmpty }

// Tinted reports whether t carries a blend colour.
func (t Tile) Tinted() bool { return t.Blend != (color.RGBA{}) }

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }
