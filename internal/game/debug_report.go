package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/tile"
)

// Glyphs used by the ASCII layer dumps.
const (
	GlyphEmpty     = ' '
	GlyphWall      = '#'
	GlyphFloor     = '.'
	GlyphObjective = 'o'
	GlyphCompleted = 'x'
	GlyphThreat    = 't'
	GlyphGhost     = ','
	GlyphAvatar    = '@'
)

// Glyph classifies one cell for the ASCII dumps.
func Glyph(t tile.Tile) rune {
	switch t.Kind {
	case tile.KindEmpty:
		return GlyphEmpty
	case tile.KindWall:
		return GlyphWall
	}
	switch t.Blend {
	case palette.Objective:
		return GlyphObjective
	case palette.Completed:
		return GlyphCompleted
	case palette.Threat:
		return GlyphThreat
	case palette.Ghost:
		return GlyphGhost
	}
	return GlyphFloor
}

// ASCII renders layer as one string per row. A non-nil avatar is drawn over its cell.
func ASCII(g *tile.Grid, layer tile.Layer, avatar *tile.Point) []string {
	rows := make([]string, g.Height())
	line := make([]rune, g.Width())
	for y := range rows {
		for x := range line {
			t, _ := g.Get(x, y, layer)
			line[x] = Glyph(t)
		}
		if avatar != nil && avatar.Y == y && g.InBounds(avatar.X, avatar.Y) {
			line[avatar.X] = GlyphAvatar
		}
		rows[y] = string(line)
	}
	return rows
}

// LevelStats summarises one imported level.
type LevelStats struct {
	Index      int
	Spawn      tile.Point
	NoSpawn    bool
	Walls      int
	Floors     int
	Objectives int
	Threats    int

	// Reachable counts the cells connected to the spawn; ReachableObjectives
	// counts the objective cells among them.
	Reachable           int
	ReachableObjectives int
}

// Survey imports level into a fresh grid and summarises it. The grid is
// returned for rendering.
func Survey(index int, level tile.Bitmap) (LevelStats, *tile.Grid, error) {
	w, h := level.Size()
	g := tile.NewGrid(w, h)
	st := LevelStats{Index: index}
	spawn, err := g.ImportBitmap(level, tile.Foreground, nil, nil, 0)
	switch {
	case errors.Is(err, tile.ErrNoSpawn):
		st.NoSpawn = true
	case err != nil:
		return st, nil, fmt.Errorf("level %d: %w", index, err)
	}
	st.Spawn = spawn

	g.Each(tile.Foreground, func(x, y int, t tile.Tile) {
		switch Glyph(t) {
		case GlyphWall:
			st.Walls++
		case GlyphObjective:
			st.Objectives++
			st.Floors++
		case GlyphThreat:
			st.Threats++
			st.Floors++
		default:
			st.Floors++
		}
	})
	if !st.NoSpawn {
		region := g.Region(spawn.X, spawn.Y, tile.Foreground)
		st.Reachable = region.Size()
		region.Each(func(p tile.Point) {
			if g.HasColor(p.X, p.Y, tile.Foreground, palette.Objective) {
				st.ReachableObjectives++
			}
		})
	}
	return st, g, nil
}

// Snapshot is a plain-text dump of the active layer with the avatar marked,
// followed by the most recent events.
func (s *Session) Snapshot() string {
	var b strings.Builder
	c := s.pos.Cell()
	fmt.Fprintf(&b, "--- layered snapshot ---\n")
	fmt.Fprintf(&b, "level=%d/%d layer=%d tick=%d pos=(%.2f,%.2f) checkpoint=(%.2f,%.2f)\n",
		s.level+1, len(s.levels), s.layer, s.tick, s.pos.X, s.pos.Y, s.checkpoint.X, s.checkpoint.Y)
	fmt.Fprintf(&b, "completed=%d remaining=%v threat_radius=%d/%d threatened=%v\n\n",
		len(s.completed), s.remaining, threatBaseRadius+s.threatRadius, threatBaseRadius+s.maxThreat-1, s.threatened)
	for _, row := range ASCII(s.grid, s.layer, &c) {
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteByte('\n')
	}
	if tail := s.log.Tail(10); len(tail) > 0 {
		b.WriteString("\nevents:\n")
		for _, e := range tail {
			b.WriteString("  ")
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
