package render

import (
	"image/color"

	"github.com/Garsondee/layered/internal/palette"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Screen draws ops onto an ebiten image. Textures that are not *ebiten.Image
// are skipped.
type Screen struct {
	Dst *ebiten.Image
}

// Draw implements Canvas.
func (s Screen) Draw(op Op) {
	img, ok := op.Texture.(*ebiten.Image)
	if !ok || s.Dst == nil {
		return
	}
	var o ebiten.DrawImageOptions
	if op.Flip {
		o.GeoM.Scale(-1, 1)
		o.GeoM.Translate(float64(img.Bounds().Dx()), 0)
	}
	o.GeoM.Scale(op.Scale, op.Scale)
	o.GeoM.Translate(op.X, op.Y)
	if op.Tint != (color.RGBA{}) {
		o.ColorScale.ScaleWithColor(op.Tint)
	}
	o.Filter = ebiten.FilterNearest
	s.Dst.DrawImage(img, &o)
}

// Overlay fills dst with c at the given opacity (0..1). Used for fades.
func Overlay(dst *ebiten.Image, c color.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	c = palette.Premultiply(c, opacity)
	b := dst.Bounds()
	vector.FillRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

// Splash fills dst with bg and draws img as large as fits, centred, keeping its
// aspect ratio.
func Splash(dst, img *ebiten.Image, bg color.Color) {
	dst.Fill(bg)
	if img == nil {
		return
	}
	db, ib := dst.Bounds(), img.Bounds()
	x, y, scale := FitCentered(db.Dx(), db.Dy(), ib.Dx(), ib.Dy())
	var o ebiten.DrawImageOptions
	o.GeoM.Scale(scale, scale)
	o.GeoM.Translate(x, y)
	o.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &o)
}

// FitCentered returns the offset and uniform scale that fit a w x h image
// inside a screenW x screenH area, centred.
func FitCentered(screenW, screenH, w, h int) (x, y, scale float64) {
	if w <= 0 || h <= 0 {
		return 0, 0, 1
	}
	rw := float64(w) / float64(screenW)
	rh := float64(h) / float64(screenH)
	if rw > rh {
		scale = 1 / rw
	} else {
		scale = 1 / rh
	}
	x = (float64(screenW) - float64(w)*scale) / 2
	y = (float64(screenH) - float64(h)*scale) / 2
	return x, y, scale
}
