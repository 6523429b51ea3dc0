package tile

import (
	"image/color"
	"sort"
)

// Grid is the authoritative per-cell, per-layer tile store. Each layer is a
// row-major slice of width*height tiles, allocated the first time it is written.
type Grid struct {
	width  int
	height int
	layers map[Layer][]Tile
	order  []Layer // ascending draw order

	// gen advances whenever a cell's Kind or Texture changes. Tints and
	// height nudges do not count.
	gen uint64
}

// NewGrid creates an empty grid. Dimensions below 1 are raised to 1.
func NewGrid(width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Grid{width: width, height: height, layers: make(map[Layer][]Tile)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Generation returns the structural change counter.
func (g *Grid) Generation() uint64 { return g.gen }

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Layers returns the allocated layers in draw order.
func (g *Grid) Layers() []Layer {
	out := make([]Layer, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Grid) cells(layer Layer, alloc bool) []Tile {
	cells, ok := g.layers[layer]
	if ok || !alloc {
		return cells
	}
	cells = make([]Tile, g.width*g.height)
	g.layers[layer] = cells
	g.order = append(g.order, layer)
	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	return cells
}

// cell returns a pointer into the layer, or nil if out of bounds or unallocated.
func (g *Grid) cell(x, y int, layer Layer) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	cells := g.cells(layer, false)
	if cells == nil {
		return nil
	}
	return &cells[y*g.width+x]
}

// Set replaces the tile at (x, y, layer). Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, layer Layer, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	if t.IsEmpty() && g.cells(layer, false) == nil {
		return
	}
	c := &g.cells(layer, true)[y*g.width+x]
	if c.Kind != t.Kind || c.Texture != t.Texture {
		g.gen++
	}
	*c = t
}

// Get returns a copy of the tile at (x, y, layer). The bool is false when the
// coordinate is out of range or the cell is empty.
func (g *Grid) Get(x, y int, layer Layer) (Tile, bool) {
	c := g.cell(x, y, layer)
	if c == nil || c.IsEmpty() {
		return Tile{}, false
	}
	return *c, true
}

// Kind returns the kind of the tile at (x, y, layer), KindEmpty when absent.
func (g *Grid) Kind(x, y int, layer Layer) Kind {
	c := g.cell(x, y, layer)
	if c == nil {
		return KindEmpty
	}
	return c.Kind
}

// IsWall returns true if (x, y, layer) holds a wall tile.
func (g *Grid) IsWall(x, y int, layer Layer) bool {
	return g.Kind(x, y, layer) == KindWall
}

// Update applies fn to the stored tile at (x, y, layer) in place. Empty and
// out-of-range cells are skipped and Update returns false. fn must not retain
// the pointer it is given.
func (g *Grid) Update(x, y int, layer Layer, fn func(*Tile)) bool {
	c := g.cell(x, y, layer)
	if c == nil || c.IsEmpty() {
		return false
	}
	kind, tex := c.Kind, c.Texture
	fn(c)
	if c.Kind != kind || c.Texture != tex {
		g.gen++
	}
	return true
}

// Tint sets the blend colour of a filled tile.
func (g *Grid) Tint(x, y int, layer Layer, c color.RGBA) bool {
	return g.Update(x, y, layer, func(t *Tile) { t.Blend = c })
}

// Lift sets the height nudge of a filled tile.
func (g *Grid) Lift(x, y int, layer Layer, h float64) bool {
	return g.Update(x, y, layer, func(t *Tile) { t.Height = h })
}

// HasColor returns true if the tile at (x, y, layer) is filled and tinted with
// c. An untinted tile matches no colour, not even the zero value.
func (g *Grid) HasColor(x, y int, layer Layer, c color.RGBA) bool {
	t, ok := g.Get(x, y, layer)
	return ok && t.Tinted() && t.Blend == c
}

// Count returns the number of filled tiles on layer for which pred holds.
// A nil pred counts every filled tile.
func (g *Grid) Count(layer Layer, pred func(Tile) bool) int {
	n := 0
	for _, t := range g.cells(layer, false) {
		if t.IsEmpty() {
			continue
		}
		if pred == nil || pred(t) {
			n++
		}
	}
	return n
}

// Each calls fn for every filled tile on layer in row-major order.
func (g *Grid) Each(layer Layer, fn func(x, y int, t Tile)) {
	cells := g.cells(layer, false)
	for i, t := range cells {
		if t.IsEmpty() {
			continue
		}
		fn(i%g.width, i/g.width, t)
	}
}

// Clear resets every cell on every layer to empty.
func (g *Grid) Clear() {
	for _, cells := range g.layers {
		for i := range cells {
			cells[i] = Tile{}
		}
	}
	g.gen++
}
