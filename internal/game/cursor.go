package game

import (
	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/tile"
)

// Cursor highlight heights, in tile heights.
const (
	selectingLift = 0.05
	selectedLift  = 0.1
	hoverLift     = 0.2
)

// Cursor is the debug selection tool: left click picks the corners of a
// rectangle, right click carves the selection or the hovered cell, and the
// hovered cell is lifted and tinted.
type Cursor struct {
	a, b   *tile.Point
	hover  tile.Point
	onGrid bool
}

// Hover records the cell under the mouse.
func (c *Cursor) Hover(p tile.Point, onGrid bool) {
	c.hover, c.onGrid = p, onGrid
}

// Click handles a left-button release. Off the grid it clears the selection.
func (c *Cursor) Click() {
	if !c.onGrid {
		c.a, c.b = nil, nil
		return
	}
	p := c.hover
	if c.a == nil || c.b != nil {
		c.a, c.b = &p, nil
		return
	}
	lo, hi := rectCorners(*c.a, p)
	c.a, c.b = &lo, &hi
}

// Delete handles a right-button release and returns the cells to carve: the
// whole selection if one is complete, otherwise the hovered cell.
func (c *Cursor) Delete() []tile.Point {
	if c.a != nil && c.b != nil {
		pts := rectCells(*c.a, *c.b)
		c.a, c.b = nil, nil
		return pts
	}
	if c.onGrid {
		return []tile.Point{c.hover}
	}
	return nil
}

// Selection returns the current rectangle, if any, and whether it is complete.
func (c *Cursor) Selection() (lo, hi tile.Point, ok, complete bool) {
	switch {
	case c.a != nil && c.b != nil:
		return *c.a, *c.b, true, true
	case c.a != nil && c.onGrid:
		lo, hi = rectCorners(*c.a, c.hover)
		return lo, hi, true, false
	}
	return tile.Point{}, tile.Point{}, false, false
}

// Highlight lifts and tints the selection and the hovered cell on layer.
func (c *Cursor) Highlight(g *tile.Grid, layer tile.Layer) {
	if lo, hi, ok, complete := c.Selection(); ok {
		lift, tint := selectingLift, palette.Threat
		if complete {
			lift, tint = selectedLift, palette.Objective
		}
		for _, p := range rectCells(lo, hi) {
			g.Update(p.X, p.Y, layer, func(t *tile.Tile) {
				t.Height = lift
				t.Blend = tint
			})
		}
	}
	if c.onGrid {
		g.Update(c.hover.X, c.hover.Y, layer, func(t *tile.Tile) {
			t.Height = hoverLift
			t.Blend = palette.Objective
		})
	}
}

func rectCorners(a, b tile.Point) (lo, hi tile.Point) {
	return tile.Pt(min(a.X, b.X), min(a.Y, b.Y)), tile.Pt(max(a.X, b.X), max(a.Y, b.Y))
}

func rectCells(lo, hi tile.Point) []tile.Point {
	var pts []tile.Point
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			pts = append(pts, tile.Pt(x, y))
		}
	}
	return pts
}
