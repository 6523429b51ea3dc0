package asset

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Garsondee/layered/internal/palette"
)

//go:embed levels/*.txt
var levelFS embed.FS

// Markers are the colours Classify tags instead of quantizing.
var Markers = []color.RGBA{palette.Objective, palette.Threat}

// layoutColours maps layout characters to source pixel colours.
var layoutColours = map[rune]color.NRGBA{
	'#': {R: 0, G: 0, B: 0, A: 255},
	'.': {R: 255, G: 255, B: 255, A: 255},
	'o': {R: palette.Objective.R, G: palette.Objective.G, B: palette.Objective.B, A: 255},
	't': {R: palette.Threat.R, G: palette.Threat.G, B: palette.Threat.B, A: 255},
}

// ParseLayout renders a text layout ('#' wall, '.' floor, 'o' objective,
// 't' threat; one row per line) into a source image.
func ParseLayout(src string) (*image.NRGBA, error) {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if line = strings.TrimRight(line, " \t"); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout: no rows")
	}
	w := len([]rune(rows[0]))
	img := image.NewNRGBA(image.Rect(0, 0, w, len(rows)))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("layout: row %d has %d cells, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			c, ok := layoutColours[r]
			if !ok {
				return nil, fmt.Errorf("layout: unknown cell %q at (%d,%d)", r, x, y)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// BuiltinLevels returns the embedded level layouts in order.
func BuiltinLevels() ([]image.Image, error) {
	names, err := fs.Glob(levelFS, "levels/*.txt")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	sort.Strings(names)
	levels := make([]image.Image, 0, len(names))
	for _, name := range names {
		data, err := levelFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		img, err := ParseLayout(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		levels = append(levels, img)
	}
	return levels, nil
}

// LoadLevels decodes every *.png in dir, sorted by name. Painted maps are
// stored rotated a quarter turn, so each is rotated back 270 degrees.
func LoadLevels(dir string) ([]image.Image, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no .png levels in %s", dir)
	}
	sort.Strings(names)
	levels := make([]image.Image, 0, len(names))
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		img, err := Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		levels = append(levels, Rotate270(img))
	}
	return levels, nil
}

// Classify resizes img to w x h and quantizes it with the gameplay markers.
func Classify(img image.Image, w, h int) *Binary {
	return Quantize(Resize(img, w, h), Markers)
}

// Levels loads the levels from dir, or the built-in ones when dir is empty, and
// classifies each to a w x h bitmap.
func Levels(dir string, w, h int) ([]*Binary, error) {
	var (
		imgs []image.Image
		err  error
	)
	if dir == "" {
		imgs, err = BuiltinLevels()
	} else {
		imgs, err = LoadLevels(dir)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*Binary, len(imgs))
	for i, img := range imgs {
		out[i] = Classify(img, w, h)
	}
	return out, nil
}
