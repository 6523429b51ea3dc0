// Package view maps between screen pixels and dimetric grid coordinates.
package view

import (
	"math"

	"github.com/Garsondee/layered/internal/tile"
)

const (
	// TileW and TileH are the on-screen footprint of one cell at zoom 1 (2:1 dimetric).
	TileW = 32.0
	TileH = 16.0

	// LayerLift is the vertical screen distance between adjacent layers at zoom 1.
	LayerLift = 8.0

	MinZoom = 1.0
	MaxZoom = 5.0

	// WheelStep is the zoom change per wheel notch.
	WheelStep = 0.01
)

// Viewport is the pan and zoom state shared by rendering and cursor tooling.
// PanX/PanY are screen-space pixels; Zoom is clamped to [MinZoom, MaxZoom].
type Viewport struct {
	PanX, PanY float64
	Zoom       float64
}

// New returns a viewport with no pan at zoom 1.
func New() *Viewport {
	return &Viewport{Zoom: MinZoom}
}

// GridToView returns the screen position of grid coordinate (gx, gy) on layer.
// The point lands on the top corner of the cell's diamond.
func (v *Viewport) GridToView(gx, gy float64, layer tile.Layer) (sx, sy float64) {
	u := (gx - gy) * TileW / 2
	w := (gx+gy)*TileH/2 - float64(layer)*LayerLift
	return u*v.Zoom + v.PanX, w*v.Zoom + v.PanY
}

// ViewToGrid is the inverse of GridToView: it removes the pan, then the zoom,
// then the layer lift and the dimetric projection.
func (v *Viewport) ViewToGrid(sx, sy float64, layer tile.Layer) (gx, gy float64) {
	u := (sx - v.PanX) / v.Zoom
	w := (sy-v.PanY)/v.Zoom + float64(layer)*LayerLift
	a := u / (TileW / 2) // gx - gy
	b := w / (TileH / 2) // gx + gy
	return (a + b) / 2, (b - a) / 2
}

// PanBy moves the viewport by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// ZoomBy adds delta to the zoom and clamps it.
func (v *Viewport) ZoomBy(delta float64) {
	v.SetZoom(v.Zoom + delta)
}

// Wheel applies one frame of mouse wheel input.
func (v *Viewport) Wheel(dy float64) {
	if dy != 0 {
		v.ZoomBy(WheelStep * dy)
	}
}

// Center pans so the middle of a gridW x gridH grid sits at the middle of a
// screenW x screenH screen.
func (v *Viewport) Center(screenW, screenH, gridW, gridH int) {
	v.PanX, v.PanY = 0, 0
	cx, cy := v.GridToView(float64(gridW)/2, float64(gridH)/2, tile.Foreground)
	v.PanX = float64(screenW)/2 - cx
	v.PanY = float64(screenH)/2 - cy
}

// CursorCell returns the grid cell under screen point (sx, sy) on layer, and
// false when that cell is off the grid.
func (v *Viewport) CursorCell(sx, sy float64, layer tile.Layer, grid *tile.Grid) (tile.Point, bool) {
	gx, gy := v.ViewToGrid(sx, sy, layer)
	x, y := int(math.Floor(gx)), int(math.Floor(gy))
	if !grid.InBounds(x, y) {
		return tile.Point{}, false
	}
	return tile.Pt(x, y), true
}
