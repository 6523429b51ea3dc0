package palette

import (
	"image/color"
	"testing"
)

func TestPremultiply(t *testing.T) {
	if got := Premultiply(Default, 1); got != Default {
		t.Fatalf("full opacity should keep the colour, got %v", got)
	}
	if got := Premultiply(Objective, 0); got != (color.RGBA{}) {
		t.Fatalf("zero opacity should be transparent, got %v", got)
	}
	if got := Premultiply(Default, 2); got != Default {
		t.Fatalf("opacity should clamp to 1, got %v", got)
	}
	got := Premultiply(color.RGBA{R: 255, G: 100, B: 0, A: 255}, 0.5)
	if got.A != 127 || got.R != 127 || got.G != 49 || got.B != 0 {
		t.Fatalf("unexpected half-opacity colour %v", got)
	}
	if got.R > got.A || got.G > got.A {
		t.Fatal("premultiplied channels must not exceed alpha")
	}
}

func TestNearWhite(t *testing.T) {
	if !NearWhite(Default) {
		t.Fatal("white should be near-white")
	}
	if NearWhite(Objective) || NearWhite(Ghost) {
		t.Fatal("accent and ghost colours are not near-white")
	}
}
