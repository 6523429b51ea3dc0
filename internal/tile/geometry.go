package tile

import (
	"image/color"
	"math"

	"github.com/zyedidia/generic/mapset"
)

// Line returns the cells of a Bresenham line from the rounded start point to the
// rounded end point, in order, each cell once. A zero-length line yields one
// cell. Cells are not clipped to any grid; lookups outside a grid are absent.
func Line(x0, y0, x1, y1 float64) []Point {
	col, row := int(math.Round(x0)), int(math.Round(y0))
	ec, er := int(math.Round(x1)), int(math.Round(y1))

	dc := absInt(ec - col)
	dr := absInt(er - row)
	xStep := 1
	if ec < col {
		xStep = -1
	}
	yStep := 1
	if er < row {
		yStep = -1
	}
	err := dc - dr

	pts := make([]Point, 0, max(dc, dr)+1)
	for {
		pts = append(pts, Pt(col, row))
		if col == ec && row == er {
			return pts
		}
		e2 := err * 2
		if e2 > -dr {
			err -= dr
			col += xStep
		}
		if e2 < dc {
			err += dc
			row += yStep
		}
	}
}

// LineClear returns true if no wall on layer sits strictly between the two
// endpoints. The endpoint cells themselves are assumed clear.
func (g *Grid) LineClear(x0, y0, x1, y1 float64, layer Layer) bool {
	pts := Line(x0, y0, x1, y1)
	for i := 1; i < len(pts)-1; i++ {
		if g.IsWall(pts[i].X, pts[i].Y, layer) {
			return false
		}
	}
	return true
}

// Radius returns the on-grid cells within euclidean distance r of (ox, oy), in
// row-major order. A negative r yields nothing.
func (g *Grid) Radius(ox, oy, r int) []Point {
	if r < 0 {
		return nil
	}
	var pts []Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := ox+dx, oy+dy
			if g.InBounds(x, y) {
				pts = append(pts, Pt(x, y))
			}
		}
	}
	return pts
}

var neighbours4 = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FloodFill recolours the 4-connected region of non-wall tiles on layer whose
// blend colour equals match, starting at (x, y), to replacement. Untinted
// tiles never match. It returns the
// number of tiles recoloured; 0 if the start cell does not match.
func (g *Grid) FloodFill(x, y int, layer Layer, match, replacement color.RGBA) int {
	matches := func(p Point) bool {
		t, ok := g.Get(p.X, p.Y, layer)
		return ok && t.Kind != KindWall && t.Tinted() && t.Blend == match
	}

	start := Pt(x, y)
	if !matches(start) {
		return 0
	}

	visited := mapset.New[Point]()
	visited.Put(start)
	queue := []Point{start}
	filled := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		g.Tint(p.X, p.Y, layer, replacement)
		filled++

		for _, d := range neighbours4 {
			n := Pt(p.X+d.X, p.Y+d.Y)
			if visited.Has(n) || !matches(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return filled
}

// Region returns the 4-connected non-wall filled cells reachable from (x, y)
// on layer, ignoring colour. It is empty when the start cell is a wall or Empty.
func (g *Grid) Region(x, y int, layer Layer) mapset.Set[Point] {
	region := mapset.New[Point]()
	open := func(p Point) bool {
		k := g.Kind(p.X, p.Y, layer)
		return k != KindEmpty && k != KindWall
	}
	start := Pt(x, y)
	if !open(start) {
		return region
	}
	region.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbours4 {
			n := Pt(p.X+d.X, p.Y+d.Y)
			if region.Has(n) || !open(n) {
				continue
			}
			region.Put(n)
			queue = append(queue, n)
		}
	}
	return region
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
