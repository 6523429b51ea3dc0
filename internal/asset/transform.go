package asset

import (
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder
	"io"

	xdraw "golang.org/x/image/draw"
)

// Decode reads a PNG (or any registered format) image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Rotate270 rotates img 270 degrees clockwise.
func Rotate270(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// Resize scales img to exactly w x h with nearest-neighbour sampling, so
// classified colours never blend.
func Resize(img image.Image, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// Dimetric projects img onto a 2:1 dimetric plane twice as wide. Pixels that
// land outside the output wrap around.
func Dimetric(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*2, b.Dy()))
	ow, oh := out.Bounds().Dx(), out.Bounds().Dy()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			nx := (x - y) + ow/2
			ny := (x + y) / 2
			nx = ((nx % ow) + ow) % ow
			ny = ((ny % oh) + oh) % oh
			out.Set(nx, ny, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
