// Package render draws the layered grid and sprites through the viewport.
package render

import (
	"image/color"

	"github.com/Garsondee/layered/internal/tile"
	"github.com/Garsondee/layered/internal/view"
)

// Op is one textured quad: the texture's top-left corner lands on (X, Y) after
// a uniform Scale, optionally mirrored horizontally and multiplied by Tint.
type Op struct {
	Texture tile.Texture
	X, Y    float64
	Scale   float64
	Flip    bool
	Tint    color.RGBA // zero value = untinted
	Layer   tile.Layer
}

// Canvas receives draw operations in back-to-front order.
type Canvas interface {
	Draw(op Op)
}

// Renderer draws a grid through a viewport. It holds no per-frame state.
type Renderer struct {
	grid *tile.Grid
	view *view.Viewport
}

// New creates a renderer over grid and v.
func New(grid *tile.Grid, v *view.Viewport) *Renderer {
	return &Renderer{grid: grid, view: v}
}

// textureScale returns the scale that fits tex to one tile width at the current zoom.
func (r *Renderer) textureScale(tex tile.Texture) float64 {
	w := tex.Bounds().Dx()
	if w <= 0 {
		return r.view.Zoom
	}
	return view.TileW * r.view.Zoom / float64(w)
}

// DrawTiles draws every filled tile, lower layers first and row-major within a
// layer. Height nudges the tile up the screen; Blend tints it.
func (r *Renderer) DrawTiles(dst Canvas) {
	zoom := r.view.Zoom
	for _, layer := range r.grid.Layers() {
		r.grid.Each(layer, func(x, y int, t tile.Tile) {
			if t.Texture == nil {
				return
			}
			sx, sy := r.view.GridToView(float64(x), float64(y), layer)
			dst.Draw(Op{
				Texture: t.Texture,
				X:       sx - view.TileW*zoom/2,
				Y:       sy - t.Height*view.TileH*zoom,
				Scale:   r.textureScale(t.Texture),
				Tint:    t.Blend,
				Layer:   layer,
			})
		})
	}
}

// DrawSprite draws tex standing on grid position (gx, gy) of layer: centred on
// the cell, feet on the cell's middle, raised by height tile heights and
// mirrored when flip is set.
func (r *Renderer) DrawSprite(dst Canvas, tex tile.Texture, gx, gy, height float64, layer tile.Layer, flip bool) {
	if tex == nil {
		return
	}
	zoom := r.view.Zoom
	scale := r.textureScale(tex)
	b := tex.Bounds()
	sx, sy := r.view.GridToView(gx+0.5, gy+0.5, layer)
	dst.Draw(Op{
		Texture: tex,
		X:       sx - float64(b.Dx())*scale/2,
		Y:       sy - float64(b.Dy())*scale - height*view.TileH*zoom,
		Scale:   scale,
		Flip:    flip,
		Layer:   layer,
	})
}

// Recorder is a Canvas that keeps every op, for headless frames and tests.
type Recorder struct {
	Ops []Op
}

// Draw records op.
func (r *Recorder) Draw(op Op) { r.Ops = append(r.Ops, op) }

// Reset drops recorded ops, keeping capacity.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
