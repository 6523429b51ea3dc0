package asset

import (
	"image"
	"image/color"
	"math"

	"github.com/Garsondee/layered/internal/palette"
	xvector "golang.org/x/image/vector"
)

const (
	// BlockSize is the pixel size of a tile texture: a 2:1 diamond top over two side faces.
	BlockSize = 32

	SpriteW = 16
	SpriteH = 24
)

// Block colours one tile texture. A zero face colour leaves that face empty.
type Block struct {
	Top, Left, Right color.RGBA
}

var (
	FloorBlock      = Block{Top: color.RGBA{R: 236, G: 230, B: 214, A: 255}, Left: color.RGBA{R: 196, G: 188, B: 170, A: 255}, Right: color.RGBA{R: 170, G: 162, B: 146, A: 255}}
	WallBlock       = Block{Top: color.RGBA{R: 92, G: 88, B: 80, A: 255}, Left: color.RGBA{R: 70, G: 66, B: 60, A: 255}, Right: color.RGBA{R: 56, G: 52, B: 48, A: 255}}
	BackgroundBlock = Block{Top: color.RGBA{R: 54, G: 54, B: 48, A: 255}}
)

type pt struct{ x, y float32 }

// fillPoly rasterizes a closed polygon onto dst with c.
func fillPoly(dst *image.RGBA, c color.RGBA, pts ...pt) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	b := dst.Bounds()
	r := xvector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		r.LineTo(p.x, p.y)
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func circle(cx, cy, radius float32, segments int) []pt {
	pts := make([]pt, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = pt{cx + radius*float32(math.Cos(a)), cy + radius*float32(math.Sin(a))}
	}
	return pts
}

// BlockImage draws a BlockSize x BlockSize tile texture. The top diamond fills
// the upper half, matching the grid's dimetric footprint.
func BlockImage(b Block) *image.RGBA {
	const s, half, quarter = BlockSize, BlockSize / 2, BlockSize / 4
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	fillPoly(img, b.Left, pt{0, quarter}, pt{half, half}, pt{half, s}, pt{0, s - quarter})
	fillPoly(img, b.Right, pt{s, quarter}, pt{half, half}, pt{half, s}, pt{s, s - quarter})
	fillPoly(img, b.Top, pt{half, 0}, pt{s, quarter}, pt{half, half}, pt{0, quarter})
	return img
}

// SpriteImage draws the avatar facing the viewer, or away from it when back is set.
func SpriteImage(back bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteW, SpriteH))
	body := color.RGBA{R: 240, G: 236, B: 226, A: 255}
	shade := color.RGBA{R: 200, G: 194, B: 180, A: 255}
	ink := color.RGBA{R: 40, G: 38, B: 34, A: 255}

	fillPoly(img, shade, pt{5, 18}, pt{7, 18}, pt{7, 24}, pt{5, 24})
	fillPoly(img, shade, pt{9, 18}, pt{11, 18}, pt{11, 24}, pt{9, 24})
	fillPoly(img, body, pt{3, 10}, pt{13, 10}, pt{14, 19}, pt{2, 19})
	fillPoly(img, body, circle(8, 6, 5, 16)...)
	if back {
		fillPoly(img, palette.Completed, circle(8, 5, 3, 12)...)
		return img
	}
	fillPoly(img, ink, circle(6, 6, 0.9, 8)...)
	fillPoly(img, ink, circle(10, 6, 0.9, 8)...)
	fillPoly(img, palette.Objective, pt{6, 12}, pt{10, 12}, pt{8, 15})
	return img
}

// SplashImage draws the title card: three stacked tiles in the accent colours.
func SplashImage() *image.RGBA {
	const w, h = 320, 180
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPoly(img, palette.Background, pt{0, 0}, pt{w, 0}, pt{w, h}, pt{0, h})
	accents := []color.RGBA{palette.Threat, palette.Completed, palette.Objective}
	for i, c := range accents {
		y := float32(120 - i*28)
		fillPoly(img, c, pt{160, y - 24}, pt{208, y}, pt{160, y + 24}, pt{112, y})
	}
	return img
}
