package main

import (
	"errors"
	"flag"
	"image"
	"log"

	"github.com/Garsondee/layered/internal/asset"
	"github.com/Garsondee/layered/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := game.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Layered")
	ebiten.SetWindowSize(cfg.WindowSize())
	ebiten.SetWindowIcon(windowIcons())

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// windowIcons scales the front-facing avatar to the usual icon sizes.
func windowIcons() []image.Image {
	sprite := asset.SpriteImage(false)
	icons := make([]image.Image, 0, 3)
	for _, size := range []int{16, 32, 64} {
		icons = append(icons, asset.Resize(sprite, size, size))
	}
	return icons
}
