package game

import (
	"errors"
	"testing"

	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/tile"
)

const roomWithObjective = `
########
#......#
#.o....#
#......#
########
`

// threatRoom has a threat origin at (7,1) and a wall at (5,1) shadowing the
// cells west of it.
const threatRoom = `
#########
#....#.t#
#o......#
#########
`

func newActiveSession(t *testing.T, layouts ...string) *TestSession {
	t.Helper()
	ts, err := NewTestSession(WithLayouts(layouts...))
	if err != nil {
		t.Fatal(err)
	}
	if err := ts.Activate(0); err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestSession_ActivatePlacesAvatarAtSpawn(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective)
	if got := ts.Pos(); got != (Vec{X: 1, Y: 1}) {
		t.Fatalf("spawn = %+v, want (1,1)", got)
	}
	if ts.Checkpoint() != ts.Pos() {
		t.Fatal("checkpoint should start at the spawn")
	}
	if ts.Layer() != tile.Foreground {
		t.Fatalf("level 0 should draw on the foreground, got %d", ts.Layer())
	}
	if k := ts.Grid().Kind(0, 0, tile.Background); k != tile.KindBackground {
		t.Fatalf("background layer = %v, want background", k)
	}
	if !ts.Log.HasEntry(CatLayer, "activate", "spawn=(1,1)") {
		t.Fatalf("missing activation event:\n%s", ts.Log.Format())
	}
}

func TestSession_ReachingObjectiveCreditsAndCompletes(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective)

	res := ts.StepFor(3, Input{Down: true})
	if !res[2].Credited {
		t.Fatalf("expected credit on the third step, pos=%+v", ts.Pos())
	}
	if ts.CompletedLines() != 1 {
		t.Fatalf("completed lines = %d, want 1", ts.CompletedLines())
	}
	if ts.Checkpoint() != ts.Pos() {
		t.Fatal("checkpoint should move to the avatar on credit")
	}

	ts.StepFor(1, Input{})
	if !ts.Grid().HasColor(2, 2, tile.Foreground, palette.Completed) {
		t.Fatal("objective region should be recoloured as completed")
	}
	if ts.RemainingObjectives() {
		t.Fatal("no objectives should remain")
	}

	next := ts.StepFor(1, Input{})[0]
	if !next.Advance || next.Next != 0 {
		t.Fatalf("cleared level should advance, got %+v", next)
	}
	if ts.Log.CountCategory(CatObjective, "credited") != 1 {
		t.Fatalf("expected one credit event:\n%s", ts.Log.Format())
	}
}

func TestSession_WallBreaksCheckpointLine(t *testing.T) {
	const blocked = `
#######
#..#o.#
#######
`
	ts := newActiveSession(t, blocked)
	ts.pos = Vec{X: 4, Y: 1}
	if res := ts.Step(1.0/TestTPS, Input{}); res.Credited {
		t.Fatal("a wall on the line should prevent credit")
	}
	if ts.CompletedLines() != 0 {
		t.Fatal("no line should be recorded")
	}

	const open = `
#######
#...o.#
#######
`
	ts = newActiveSession(t, open)
	ts.pos = Vec{X: 4, Y: 1}
	if res := ts.Step(1.0/TestTPS, Input{}); !res.Credited {
		t.Fatal("a clear line should credit the objective")
	}
	for x := 2; x <= 3; x++ {
		if !ts.Grid().HasColor(x, 1, tile.Foreground, palette.Completed) {
			t.Fatalf("inner line cell (%d,1) should be tinted", x)
		}
	}
}

func TestSession_ThreatWavefrontIsOccluded(t *testing.T) {
	ts := newActiveSession(t, threatRoom)
	ts.Step(1.0/TestTPS, Input{})

	g := ts.Grid()
	if !g.HasColor(6, 1, tile.Foreground, palette.Threat) {
		t.Fatal("cell next to the origin should be in the wavefront")
	}
	if !g.HasColor(5, 2, tile.Foreground, palette.Threat) {
		t.Fatal("unoccluded cell within radius should be in the wavefront")
	}
	if g.HasColor(4, 1, tile.Foreground, palette.Threat) {
		t.Fatal("cell behind the wall should be occluded")
	}
	if ts.Threatened() {
		t.Fatal("avatar at the spawn should be safe")
	}
}

func TestSession_StandingInWavefrontThreatens(t *testing.T) {
	ts := newActiveSession(t, threatRoom)
	ts.pos = Vec{X: 6, Y: 2}
	ts.Step(1.0/TestTPS, Input{})
	if !ts.Threatened() {
		t.Fatal("avatar inside the wavefront should be threatened")
	}
	res := ts.Step(1.0/TestTPS, Input{})
	if !res.Advance || res.Next != 0 {
		t.Fatalf("threatened avatar should reload the level, got %+v", res)
	}
	ts.StepFor(5, Input{})
	if n := ts.Log.CountCategory(CatLayer, "caught"); n != 1 {
		t.Fatalf("caught logged %d times, want 1", n)
	}
	if n := ts.Log.CountCategory(CatThreat, "contact"); n != 1 {
		t.Fatalf("contact logged %d times, want 1", n)
	}
}

func TestSession_ThreatRadiusWraps(t *testing.T) {
	ts := newActiveSession(t, threatRoom)
	maxR := ts.MaxThreatRadius()
	if maxR != 11 {
		t.Fatalf("max radius = %d, want 11 for a 9x4 grid", maxR)
	}
	for i := 1; i < maxR; i++ {
		ts.advanceThreat(ts.threatEvery + 0.001)
		if ts.ThreatRadius() != i {
			t.Fatalf("radius = %d after %d advances", ts.ThreatRadius(), i)
		}
	}
	ts.advanceThreat(ts.threatEvery + 0.001)
	if ts.ThreatRadius() != 0 {
		t.Fatalf("radius should wrap to 0, got %d", ts.ThreatRadius())
	}
	ts.advanceThreat(ts.threatEvery / 2)
	if ts.ThreatRadius() != 0 {
		t.Fatal("radius should hold until the interval elapses")
	}
}

func TestSession_ResetKeyReloadsLevel(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective, roomWithObjective)
	res := ts.Step(1.0/TestTPS, Input{Reset: true})
	if !res.Advance || res.Next != 0 {
		t.Fatalf("reset should reload level 0, got %+v", res)
	}
	if !ts.Log.HasEntry(CatInput, "reset", "") {
		t.Fatal("reset should be logged")
	}
}

func TestSession_MovementAndFacing(t *testing.T) {
	const open = `
......
......
......
......
......
......
`
	ts := newActiveSession(t, open)
	ts.pos = Vec{X: 2, Y: 2}

	ts.Step(1.0/TestTPS, Input{Right: true})
	if p := ts.Pos(); !(p.X > 2 && p.Y < 2) {
		t.Fatalf("right should move +x -y, got %+v", p)
	}
	if f := ts.Facing(); f.Back || !f.Flip {
		t.Fatalf("right facing = %+v", f)
	}

	ts.Step(1.0/TestTPS, Input{Up: true})
	if f := ts.Facing(); !f.Back || !f.Flip {
		t.Fatalf("up facing = %+v", f)
	}
	ts.Step(1.0/TestTPS, Input{Left: true})
	if f := ts.Facing(); f.Back || f.Flip {
		t.Fatalf("left facing = %+v", f)
	}

	ts.pos = Vec{X: 0, Y: 0}
	ts.Step(1.0/TestTPS, Input{Up: true})
	if ts.Pos() != (Vec{}) {
		t.Fatalf("move off the grid should be reverted, got %+v", ts.Pos())
	}
}

func TestSession_WallCollisionReverts(t *testing.T) {
	const room = `
######
#....#
#....#
######
`
	ts := newActiveSession(t, room)
	start := ts.Pos()
	ts.Step(1.0/TestTPS, Input{Up: true})
	if ts.Pos() != start {
		t.Fatalf("move into a wall should be reverted, got %+v", ts.Pos())
	}
}

func TestSession_NextLevelStacksAndFades(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective, roomWithObjective)
	ts.StepFor(4, Input{Down: true})

	if err := ts.Activate(1); err != nil {
		t.Fatal(err)
	}
	if ts.Layer() != LayerFor(1) || ts.Level() != 1 {
		t.Fatalf("level 1 should draw on layer %d, got level %d layer %d", LayerFor(1), ts.Level(), ts.Layer())
	}
	g := ts.Grid()
	if !g.HasColor(5, 1, tile.Foreground, palette.Ghost) {
		t.Fatal("untinted floor on the old layer should fade to a ghost")
	}
	if !g.HasColor(2, 2, tile.Foreground, palette.Completed) {
		t.Fatal("completed tiles on the old layer should keep their colour")
	}
	if !g.IsWall(0, 0, tile.Foreground) {
		t.Fatal("walls on the old layer should remain")
	}

	if err := ts.Activate(2); err != nil {
		t.Fatal(err)
	}
	if ts.Level() != 0 {
		t.Fatalf("level index should wrap, got %d", ts.Level())
	}
	if g.Kind(1, 1, LayerFor(1)) != tile.KindEmpty {
		t.Fatal("returning to level 0 should clear the stacked layers")
	}
}

func TestSession_CarvePersistsUntilActivation(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective)
	ts.Carve(tile.Pt(4, 2), tile.Pt(-1, 0))
	ts.StepFor(2, Input{})
	if ts.Grid().Kind(4, 2, tile.Foreground) != tile.KindEmpty {
		t.Fatal("carved cell should stay empty across re-imports")
	}
	if n := ts.Log.CountCategory(CatCursor, "carve"); n != 1 {
		t.Fatalf("carve logged %d times, want 1 (off-grid ignored)", n)
	}
	if err := ts.Activate(0); err != nil {
		t.Fatal(err)
	}
	if ts.Grid().Kind(4, 2, tile.Foreground) != tile.KindFloor {
		t.Fatal("activation should restore carved cells")
	}
}

func TestSession_CarveKeepsVisibilityCacheWarm(t *testing.T) {
	ts := newActiveSession(t, threatRoom)
	ts.StepFor(1, Input{})
	ts.Carve(tile.Pt(3, 2))
	ts.StepFor(1, Input{})

	gen := ts.Grid().Generation()
	_, misses := ts.Visibility().Stats()
	radius := ts.ThreatRadius()
	ts.StepFor(2, Input{})
	if ts.ThreatRadius() != radius {
		t.Fatal("threat radius should not advance within three ticks")
	}
	if got := ts.Grid().Generation(); got != gen {
		t.Fatalf("re-import with a carved cell advanced the generation %d -> %d", gen, got)
	}
	if _, got := ts.Visibility().Stats(); got != misses {
		t.Fatalf("visibility cache missed %d more times after carving", got-misses)
	}
	if ts.Grid().Kind(3, 2, tile.Foreground) != tile.KindEmpty {
		t.Fatal("carved cell should stay empty")
	}
}

func TestSession_CarvingEveryFloorCell(t *testing.T) {
	ts := newActiveSession(t, roomWithObjective)
	var floor []tile.Point
	ts.Grid().Each(tile.Foreground, func(x, y int, tl tile.Tile) {
		if tl.Kind == tile.KindFloor {
			floor = append(floor, tile.Pt(x, y))
		}
	})
	ts.Carve(floor...)
	ts.StepFor(1, Input{})
	if n := ts.Grid().Count(tile.Foreground, func(tl tile.Tile) bool { return tl.Kind == tile.KindFloor }); n != 0 {
		t.Fatalf("%d floor cells came back after the re-import", n)
	}
	if ts.Log.CountCategory(CatLayer, "import_error") != 0 {
		t.Fatal("a level with every floor carved should re-import without error")
	}
	if ts.RemainingObjectives() {
		t.Fatal("with the objective carved away no objectives should remain")
	}
	if res := ts.StepFor(1, Input{})[0]; !res.Advance || res.Next != 0 {
		t.Fatalf("a cleared single level should advance back to itself, got %+v", res)
	}
}

func TestSession_NoSpawn(t *testing.T) {
	ts, err := NewTestSession(WithLayouts("###\n###\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := ts.Activate(0); !errors.Is(err, tile.ErrNoSpawn) {
		t.Fatalf("expected ErrNoSpawn, got %v", err)
	}
}

func TestNewSession_RejectsMismatchedLevels(t *testing.T) {
	_, err := NewTestSession(WithLayouts("...\n...\n", "..\n..\n"))
	if !errors.Is(err, tile.ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
	var de *tile.DimensionError
	if !errors.As(err, &de) || de.BitmapW != 2 {
		t.Fatalf("expected *DimensionError for the second level, got %v", err)
	}
}

func TestSession_StepBeforeActivateIsInert(t *testing.T) {
	ts, err := NewTestSession(WithLayouts(roomWithObjective))
	if err != nil {
		t.Fatal(err)
	}
	if res := ts.Step(1.0/TestTPS, Input{Reset: true}); res.Advance {
		t.Fatal("inactive session should not advance")
	}
	if ts.Tick() != 0 {
		t.Fatal("inactive session should not tick")
	}
}
