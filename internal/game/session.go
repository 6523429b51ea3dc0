package game

import (
	"errors"
	"fmt"

	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/tile"
	"github.com/zyedidia/generic/mapset"
)

// Textures are the tile resources a session places on the grid.
type Textures struct {
	Wall       tile.Texture
	Floor      tile.Texture
	Background tile.Texture
}

// Input is the per-frame movement and reset state.
type Input struct {
	Up, Down, Left, Right bool
	Reset                 bool
}

// Vec is a floating grid position.
type Vec struct{ X, Y float64 }

// Cell returns the grid cell containing v.
func (v Vec) Cell() tile.Point { return tile.Pt(int(v.X), int(v.Y)) }

// Facing selects the avatar sprite.
type Facing struct {
	Back bool
	Flip bool
}

// StepResult reports what happened during one Step.
type StepResult struct {
	// Next is the level to transition to, valid when Advance is set.
	Next    int
	Advance bool

	Credited bool
}

// Session owns the grid and every per-frame gameplay rule. It has no window
// or audio dependency; Game drives it once per tick.
type Session struct {
	grid   *tile.Grid
	vis    *tile.Visibility
	levels []tile.Bitmap
	tex    Textures
	log    *EventLog

	level  int
	layer  tile.Layer
	active bool
	tick   int

	pos        Vec
	facing     Facing
	checkpoint Vec
	completed  [][]tile.Point
	remaining  bool
	pending    bool
	carved     mapset.Set[tile.Point]

	maxThreat    int
	threatEvery  float64
	threatRadius int
	threatClock  float64
	threatened   bool
}

// NewSession creates a session over levels, each of which must match the grid size.
func NewSession(width, height int, levels []tile.Bitmap, tex Textures, log *EventLog) (*Session, error) {
	if len(levels) == 0 {
		return nil, errors.New("session: no levels")
	}
	for i, l := range levels {
		if w, h := l.Size(); w != width || h != height {
			return nil, fmt.Errorf("level %d: %w", i, &tile.DimensionError{GridW: width, GridH: height, BitmapW: w, BitmapH: h})
		}
	}
	if log == nil {
		log = NewEventLog(eventLogCapacity)
	}
	grid := tile.NewGrid(width, height)
	maxThreat := int(float64(max(grid.Width(), grid.Height())) * threatReach)
	return &Session{
		grid:        grid,
		vis:         tile.NewVisibility(grid),
		levels:      levels,
		tex:         tex,
		log:         log,
		carved:      mapset.New[tile.Point](),
		remaining:   true,
		maxThreat:   maxThreat,
		threatEvery: threatCycle / float64(maxThreat),
	}, nil
}

// LayerFor maps a level index to the render layer it is drawn on. Each level
// stacks one layer above the previous, starting at the foreground.
func LayerFor(level int) tile.Layer {
	return tile.Foreground + tile.Layer(level)
}

func (s *Session) Grid() *tile.Grid             { return s.grid }
func (s *Session) Visibility() *tile.Visibility { return s.vis }
func (s *Session) Level() int                   { return s.level }
func (s *Session) Levels() int                  { return len(s.levels) }
func (s *Session) Layer() tile.Layer            { return s.layer }
func (s *Session) Active() bool                 { return s.active }
func (s *Session) Pos() Vec                     { return s.pos }
func (s *Session) Facing() Facing               { return s.facing }
func (s *Session) Checkpoint() Vec              { return s.checkpoint }
func (s *Session) Threatened() bool             { return s.threatened }
func (s *Session) RemainingObjectives() bool    { return s.remaining }
func (s *Session) ThreatRadius() int            { return s.threatRadius }
func (s *Session) MaxThreatRadius() int         { return s.maxThreat }
func (s *Session) CompletedLines() int          { return len(s.completed) }
func (s *Session) Tick() int                    { return s.tick }
func (s *Session) Log() *EventLog               { return s.log }

// Activate switches to level. Near-white floor on the layer being left fades
// to a ghost. Level 0 clears the grid and lays the background. The avatar and
// checkpoint move to the level's spawn and the threat state resets.
func (s *Session) Activate(level int) error {
	level %= len(s.levels)
	layer := LayerFor(level)
	if s.active && layer != s.layer {
		s.fadeLayer(s.layer)
	}
	s.level = level
	s.layer = layer
	s.active = true

	if level == 0 {
		s.grid.Clear()
		for y := 0; y < s.grid.Height(); y++ {
			for x := 0; x < s.grid.Width(); x++ {
				s.grid.Set(x, y, tile.Background, tile.Filled(tile.KindBackground, s.tex.Background))
			}
		}
	}

	s.carved = mapset.New[tile.Point]()
	spawn, err := s.importLevel()
	s.pos = Vec{X: float64(spawn.X), Y: float64(spawn.Y)}
	s.checkpoint = s.pos
	s.completed = nil
	s.remaining = true
	s.pending = false
	s.threatRadius = 0
	s.threatClock = 0
	s.threatened = false

	s.log.Add(s.tick, s.level, CatLayer, "activate", fmt.Sprintf("layer=%d spawn=(%d,%d)", s.layer, spawn.X, spawn.Y), float64(s.layer))
	if err != nil {
		return fmt.Errorf("activate level %d: %w", level, err)
	}
	return nil
}

func (s *Session) fadeLayer(layer tile.Layer) {
	s.grid.Each(layer, func(x, y int, t tile.Tile) {
		if t.Kind == tile.KindFloor && (!t.Tinted() || palette.NearWhite(t.Blend)) {
			s.grid.Tint(x, y, layer, palette.Ghost)
		}
	})
}

// carvedLevel imports carved cells as holes.
type carvedLevel struct {
	tile.Bitmap
	carved mapset.Set[tile.Point]
}

func (c carvedLevel) Hole(x, y int) bool { return c.carved.Has(tile.Pt(x, y)) }

// importLevel re-imports the active bitmap with carved cells left empty,
// resetting per-frame tints.
func (s *Session) importLevel() (tile.Point, error) {
	level := carvedLevel{Bitmap: s.levels[s.level], carved: s.carved}
	return s.grid.ImportBitmap(level, s.layer, s.tex.Wall, s.tex.Floor, 0.75)
}

// Carve empties cells on the active layer until the next activation.
func (s *Session) Carve(pts ...tile.Point) {
	for _, p := range pts {
		if !s.grid.InBounds(p.X, p.Y) {
			continue
		}
		s.carved.Put(p)
		s.grid.Set(p.X, p.Y, s.layer, tile.Tile{})
		s.log.Add(s.tick, s.level, CatCursor, "carve", fmt.Sprintf("(%d,%d)", p.X, p.Y), 0)
	}
}

// Step runs one frame of gameplay: reset detection, tint reset, movement and
// collision, objective completion, checkpoint line, threat wavefronts.
func (s *Session) Step(dt float64, in Input) StepResult {
	var res StepResult
	if !s.active {
		return res
	}
	s.tick++

	if !s.remaining || in.Reset || s.threatened {
		res.Advance = true
		res.Next = s.level
		if !s.remaining {
			res.Next = (s.level + 1) % len(s.levels)
		}
		if !s.pending {
			s.pending = true
			switch {
			case !s.remaining:
				s.log.Add(s.tick, s.level, CatLayer, "cleared", fmt.Sprintf("next=%d", res.Next), float64(res.Next))
			case s.threatened:
				s.log.Add(s.tick, s.level, CatLayer, "caught", "reload", float64(s.level))
			default:
				s.log.Add(s.tick, s.level, CatInput, "reset", "reload", float64(s.level))
			}
		}
	}

	// Sizes were checked by NewSession, so only ErrNoSpawn can come back here,
	// when every floor cell has been carved. The spawn only matters on activation.
	if _, err := s.importLevel(); err != nil && !errors.Is(err, tile.ErrNoSpawn) {
		s.log.Add(s.tick, s.level, CatLayer, "import_error", err.Error(), 0)
	}

	s.move(dt, in)
	s.markCompleted()
	s.remaining = s.grid.Count(s.layer, func(t tile.Tile) bool { return t.Blend == palette.Objective }) > 0

	line, unbroken := s.checkpointLine()
	if unbroken && s.grid.HasColor(int(s.pos.X), int(s.pos.Y), s.layer, palette.Objective) {
		s.completed = append(s.completed, line)
		s.checkpoint = s.pos
		res.Credited = true
		c := s.pos.Cell()
		s.log.Add(s.tick, s.level, CatObjective, "credited", fmt.Sprintf("(%d,%d)", c.X, c.Y), float64(len(s.completed)))
	}

	s.advanceThreat(dt)
	s.spreadThreats()
	if !s.threatened && s.grid.HasColor(int(s.pos.X), int(s.pos.Y), s.layer, palette.Threat) {
		s.threatened = true
		c := s.pos.Cell()
		s.log.Add(s.tick, s.level, CatThreat, "contact", fmt.Sprintf("(%d,%d) r=%d", c.X, c.Y, s.threatRadius), float64(s.threatRadius))
	}
	return res
}

// move applies viewport-relative movement and reverts moves that leave the
// grid or overlap a wall in the 2x2 footprint.
func (s *Session) move(dt float64, in Input) {
	last := s.pos
	v := moveSpeed * dt
	if in.Up {
		s.pos.X -= v
		s.pos.Y -= v
		s.facing = Facing{Back: true, Flip: true}
	}
	if in.Down {
		s.pos.X += v
		s.pos.Y += v
		s.facing.Back = false
	}
	if in.Left {
		s.pos.Y += v / 2
		s.pos.X -= v / 2
		s.facing = Facing{}
	}
	if in.Right {
		s.pos.Y -= v / 2
		s.pos.X += v / 2
		s.facing = Facing{Flip: true}
	}

	maxX, maxY := float64(s.grid.Width()-1), float64(s.grid.Height()-1)
	if s.pos.X < 0 || s.pos.X > maxX || s.pos.Y < 0 || s.pos.Y > maxY {
		s.pos = last
		return
	}
	x, y := int(s.pos.X), int(s.pos.Y)
	for _, p := range [4]tile.Point{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}} {
		if s.grid.IsWall(p.X, p.Y, s.layer) {
			s.pos = last
			return
		}
	}
}

// markCompleted recolours every objective region touched by a credited line.
func (s *Session) markCompleted() {
	for _, line := range s.completed {
		for _, p := range line {
			s.grid.FloodFill(p.X, p.Y, s.layer, palette.Objective, palette.Completed)
			s.grid.Tint(p.X, p.Y, s.layer, palette.Completed)
		}
	}
}

// checkpointLine rasterizes checkpoint to avatar, tinting inner cells until a
// wall breaks the line.
func (s *Session) checkpointLine() ([]tile.Point, bool) {
	line := tile.Line(s.checkpoint.X, s.checkpoint.Y, s.pos.X, s.pos.Y)
	if len(line) < 3 {
		return line, true
	}
	for _, p := range line[1 : len(line)-1] {
		if s.grid.IsWall(p.X, p.Y, s.layer) {
			return line, false
		}
		s.grid.Tint(p.X, p.Y, s.layer, palette.Completed)
	}
	return line, true
}

func (s *Session) advanceThreat(dt float64) {
	s.threatClock += dt
	if s.threatClock <= s.threatEvery {
		return
	}
	s.threatClock = 0
	s.threatRadius = (s.threatRadius + 1) % s.maxThreat
}

// spreadThreats tints the unoccluded floor around every threat origin. Origins
// are collected before any tint so a wavefront never seeds another.
func (s *Session) spreadThreats() {
	var origins []tile.Point
	s.grid.Each(s.layer, func(x, y int, t tile.Tile) {
		if t.Blend == palette.Threat {
			origins = append(origins, tile.Pt(x, y))
		}
	})
	r := threatBaseRadius + s.threatRadius
	for _, o := range origins {
		for _, p := range s.vis.Visible(o, r, s.layer) {
			s.grid.Tint(p.X, p.Y, s.layer, palette.Threat)
		}
	}
}
