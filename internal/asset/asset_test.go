package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/layered/internal/palette"
)

func nrgba(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

func TestQuantizeThreshold(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, nrgba(200, 200, 200))
	img.SetNRGBA(1, 0, nrgba(100, 100, 100))
	img.SetNRGBA(2, 0, Light)
	img.SetNRGBA(3, 0, Dark)

	b := Quantize(img, nil)
	want := []bool{false, true, false, true}
	for x, dark := range want {
		if got := b.Dark(x, 0); got != dark {
			t.Fatalf("pixel %d: dark=%v, want %v", x, got, dark)
		}
	}
}

func TestQuantizeLightBoundary(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, nrgba(255, 191, 0)) // sum 446
	img.SetNRGBA(1, 0, nrgba(255, 190, 0)) // sum 445

	b := Quantize(img, nil)
	if b.Dark(0, 0) {
		t.Fatal("RGB sum 446 should be light")
	}
	if !b.Dark(1, 0) {
		t.Fatal("RGB sum 445 should be dark")
	}
}

func TestQuantizeMarkers(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	o := palette.Objective
	img.SetNRGBA(0, 0, nrgba(o.R, o.G, o.B))
	img.SetNRGBA(1, 0, nrgba(o.R+5, o.G-5, o.B))
	img.SetNRGBA(2, 0, nrgba(o.R, o.G+60, o.B))

	b := Quantize(img, Markers)
	for x := 0; x < 2; x++ {
		m, ok := b.Marker(x, 0)
		if !ok || m != palette.Objective {
			t.Fatalf("pixel %d: marker=%v ok=%v, want objective", x, m, ok)
		}
		if b.Dark(x, 0) {
			t.Fatalf("marker pixel %d classified dark", x)
		}
	}
	if _, ok := b.Marker(2, 0); ok {
		t.Fatal("distant colour should not match a marker")
	}
}

func TestBinaryOutOfRange(t *testing.T) {
	b := NewBinary(2, 2)
	b.SetDark(5, 5, true)
	if b.Dark(5, 5) || b.Dark(-1, 0) {
		t.Fatal("out of range pixels must read light")
	}
	b.SetMarker(1, 1, palette.Threat)
	b.SetDark(1, 1, true)
	if _, ok := b.Marker(1, 1); ok {
		t.Fatal("darkening a pixel should drop its marker")
	}
}

func TestRotate270(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	red, blue := nrgba(255, 0, 0), nrgba(0, 0, 255)
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)

	out := Rotate270(img)
	if got := out.Bounds().Size(); got != image.Pt(1, 2) {
		t.Fatalf("size = %v, want (1,2)", got)
	}
	if out.NRGBAAt(0, 1) != red || out.NRGBAAt(0, 0) != blue {
		t.Fatalf("rotation misplaced pixels: %v %v", out.NRGBAAt(0, 0), out.NRGBAAt(0, 1))
	}
}

func TestResizeKeepsColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, nrgba(0, 0, 0))
	img.SetNRGBA(1, 0, nrgba(255, 255, 255))
	img.SetNRGBA(0, 1, nrgba(255, 255, 255))
	img.SetNRGBA(1, 1, nrgba(0, 0, 0))

	out := Resize(img, 8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := out.NRGBAAt(x, y)
			if c != nrgba(0, 0, 0) && c != nrgba(255, 255, 255) {
				t.Fatalf("(%d,%d) blended to %v", x, y, c)
			}
		}
	}
	if out.NRGBAAt(7, 0) != nrgba(255, 255, 255) {
		t.Fatal("top-right quadrant should be white")
	}
}

func TestDimetricWidth(t *testing.T) {
	out := Dimetric(image.NewNRGBA(image.Rect(0, 0, 10, 6)))
	if got := out.Bounds().Size(); got != image.Pt(20, 6) {
		t.Fatalf("size = %v, want (20,6)", got)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	cases := map[string]string{
		"empty":   "\n\n",
		"ragged":  "###\n##\n",
		"unknown": "#x#\n",
	}
	for name, src := range cases {
		if _, err := ParseLayout(src); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuiltinLevels(t *testing.T) {
	levels, err := BuiltinLevels()
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 5 {
		t.Fatalf("got %d built-in levels, want 5", len(levels))
	}
	for i, img := range levels {
		if got := img.Bounds().Size(); got != image.Pt(24, 24) {
			t.Fatalf("level %d size = %v", i, got)
		}
	}
}

func TestLevelsClassifyToGrid(t *testing.T) {
	bins, err := Levels("", 48, 48)
	if err != nil {
		t.Fatal(err)
	}
	first := bins[0]
	if w, h := first.Size(); w != 48 || h != 48 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if !first.Dark(0, 0) || !first.Dark(47, 47) {
		t.Fatal("border should be dark")
	}
	if first.Dark(2, 2) {
		t.Fatal("interior should be light")
	}
	if m, ok := first.Marker(34, 8); !ok || m != palette.Objective {
		t.Fatalf("expected objective marker at (34,8), got %v %v", m, ok)
	}
}

func TestLoadLevelsFromDir(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 0, nrgba(255, 255, 255))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	levels, err := LoadLevels(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := levels[0].Bounds().Size(); got != image.Pt(2, 3) {
		t.Fatalf("loaded level should be rotated, size = %v", got)
	}
	if _, err := LoadLevels(t.TempDir()); err == nil {
		t.Fatal("empty directory should fail")
	}
}

func TestBlockImageFaces(t *testing.T) {
	img := BlockImage(FloorBlock)
	if got := img.RGBAAt(BlockSize/2, BlockSize/4); got != FloorBlock.Top {
		t.Fatalf("top centre = %v, want %v", got, FloorBlock.Top)
	}
	if got := img.RGBAAt(4, BlockSize*3/4); got != FloorBlock.Left {
		t.Fatalf("left face = %v, want %v", got, FloorBlock.Left)
	}
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("corner should be transparent, got %v", got)
	}

	bg := BlockImage(BackgroundBlock)
	if got := bg.RGBAAt(4, BlockSize*3/4); got.A != 0 {
		t.Fatalf("background tile should have no sides, got %v", got)
	}
}

func TestSpriteImages(t *testing.T) {
	front, back := SpriteImage(false), SpriteImage(true)
	if front.Bounds().Size() != image.Pt(SpriteW, SpriteH) {
		t.Fatalf("sprite size = %v", front.Bounds().Size())
	}
	if bytes.Equal(front.Pix, back.Pix) {
		t.Fatal("front and back sprites should differ")
	}
}
