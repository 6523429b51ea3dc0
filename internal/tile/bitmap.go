package tile

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrDimensionMismatch is wrapped by every *DimensionError.
	ErrDimensionMismatch = errors.New("tile: bitmap size does not match grid")

	// ErrNoSpawn is returned when an imported bitmap contains no floor cell.
	ErrNoSpawn = errors.New("tile: bitmap has no floor cell")
)

// DimensionError reports a bitmap whose pixel size differs from the grid.
type DimensionError struct {
	GridW, GridH     int
	BitmapW, BitmapH int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("tile: bitmap is %dx%d, grid is %dx%d", e.BitmapW, e.BitmapH, e.GridW, e.GridH)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// Bitmap is a binary-classified image: every pixel is either dark or light, and
// light pixels may carry a marker colour (objective or threat seeds).
type Bitmap interface {
	Size() (w, h int)
	Dark(x, y int) bool
	Marker(x, y int) (color.RGBA, bool)
}

// HoledBitmap is a Bitmap with pixels that import as empty cells.
type HoledBitmap interface {
	Bitmap
	Hole(x, y int) bool
}

// ImportBitmap overwrites every cell of layer from b: dark pixels become wall
// tiles using wall, light pixels become floor tiles using floor, and marker
// pixels become floor tiles tinted with the marker colour. Holes of a
// HoledBitmap become empty cells and are never the spawn.
//
// It returns the first floor cell in row-major order, used as the spawn point.
// A size mismatch returns a *DimensionError and leaves the grid untouched.
// threshold is accepted for compatibility and does not affect classification.
func (g *Grid) ImportBitmap(b Bitmap, layer Layer, wall, floor Texture, threshold float64) (Point, error) {
	_ = threshold
	bw, bh := b.Size()
	if bw != g.width || bh != g.height {
		return Point{}, &DimensionError{GridW: g.width, GridH: g.height, BitmapW: bw, BitmapH: bh}
	}

	hb, _ := b.(HoledBitmap)
	spawn, found := Point{}, false
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if hb != nil && hb.Hole(x, y) {
				g.Set(x, y, layer, Tile{})
				continue
			}
			if b.Dark(x, y) {
				g.Set(x, y, layer, Filled(KindWall, wall))
				continue
			}
			t := Filled(KindFloor, floor)
			if c, ok := b.Marker(x, y); ok {
				t.Blend = c
			}
			g.Set(x, y, layer, t)
			if !found {
				spawn, found = Pt(x, y), true
			}
		}
	}
	if !found {
		return Point{}, ErrNoSpawn
	}
	return spawn, nil
}
