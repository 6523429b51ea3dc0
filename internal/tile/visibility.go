package tile

// visKey identifies one cached wavefront.
type visKey struct {
	origin Point
	radius int
	layer  Layer
}

// Visibility caches, per origin and radius, the floor cells that have a clear
// line to the origin. The whole cache is dropped when the grid's generation
// moves, so tint-only updates keep it warm and wall changes invalidate it.
type Visibility struct {
	grid    *Grid
	gen     uint64
	entries map[visKey][]Point

	hits, misses int
}

// NewVisibility creates an empty cache over grid.
func NewVisibility(grid *Grid) *Visibility {
	return &Visibility{grid: grid, gen: grid.Generation(), entries: make(map[visKey][]Point)}
}

// Visible returns the floor cells within radius r of origin on layer that are
// not occluded by a wall. The returned slice is shared; do not modify it.
func (v *Visibility) Visible(origin Point, r int, layer Layer) []Point {
	if g := v.grid.Generation(); g != v.gen {
		v.Reset()
		v.gen = g
	}
	key := visKey{origin: origin, radius: r, layer: layer}
	if pts, ok := v.entries[key]; ok {
		v.hits++
		return pts
	}
	v.misses++

	var pts []Point
	for _, p := range v.grid.Radius(origin.X, origin.Y, r) {
		if v.grid.Kind(p.X, p.Y, layer) != KindFloor {
			continue
		}
		if !v.grid.LineClear(float64(origin.X), float64(origin.Y), float64(p.X), float64(p.Y), layer) {
			continue
		}
		pts = append(pts, p)
	}
	v.entries[key] = pts
	return pts
}

// Reset drops every cached entry.
func (v *Visibility) Reset() {
	clear(v.entries)
}

// Len returns the number of cached wavefronts.
func (v *Visibility) Len() int { return len(v.entries) }

// Stats returns the cache hit and miss counters.
func (v *Visibility) Stats() (hits, misses int) { return v.hits, v.misses }
