package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/Garsondee/layered/internal/asset"
	"github.com/Garsondee/layered/internal/palette"
	"github.com/Garsondee/layered/internal/render"
	"github.com/Garsondee/layered/internal/sound"
	"github.com/Garsondee/layered/internal/tile"
	"github.com/Garsondee/layered/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	legendSize = 20
	titleSize  = 36
)

var legend = []string{
	"[space + cursor]",
	"[w a s d]: mvmnt",
	"[r]: reset layer",
	"[e]: toggle dbgr",
}

// Game is the ebiten.Game: input, the phase director and drawing.
type Game struct {
	cfg      *Config
	session  *Session
	director *Director
	view     *view.Viewport
	renderer *render.Renderer
	sounds   *sound.Player
	log      *EventLog

	front, back, splash *ebiten.Image
	face, title         *text.GoTextFace

	frame  Frame
	cursor Cursor
	debug  bool

	mouseX, mouseY int
	ambience       bool
}

// New loads the levels, textures, font and sounds described by cfg.
func New(cfg *Config) (*Game, error) {
	bins, err := asset.Levels(cfg.Maps, GridSize, GridSize)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	levels := make([]tile.Bitmap, len(bins))
	for i, b := range bins {
		levels[i] = b
	}

	tex := Textures{
		Wall:       ebiten.NewImageFromImage(asset.BlockImage(asset.WallBlock)),
		Floor:      ebiten.NewImageFromImage(asset.BlockImage(asset.FloorBlock)),
		Background: ebiten.NewImageFromImage(asset.BlockImage(asset.BackgroundBlock)),
	}
	log := NewEventLog(eventLogCapacity)
	session, err := NewSession(GridSize, GridSize, levels, tex, log)
	if err != nil {
		return nil, err
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	sounds, err := sound.NewPlayer(cfg.Sounds, cfg.Mute)
	if err != nil {
		return nil, fmt.Errorf("load sounds: %w", err)
	}

	v := view.New()
	v.Center(ScreenW, ScreenH, GridSize, GridSize)
	g := &Game{
		cfg:      cfg,
		session:  session,
		director: NewDirector(session, cfg.Splash),
		view:     v,
		renderer: render.New(session.Grid(), v),
		sounds:   sounds,
		log:      log,
		front:    ebiten.NewImageFromImage(asset.SpriteImage(false)),
		back:     ebiten.NewImageFromImage(asset.SpriteImage(true)),
		splash:   ebiten.NewImageFromImage(asset.SplashImage()),
		face:     &text.GoTextFace{Source: src, Size: legendSize},
		title:    &text.GoTextFace{Source: src, Size: titleSize},
		debug:    cfg.Debug,
	}
	g.mouseX, g.mouseY = ebiten.CursorPosition()
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !g.ambience {
		g.ambience = true
		if err := g.sounds.StartAmbience(); err != nil {
			return err
		}
	}
	g.handleInput()

	in := Input{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyD),
		Reset: inpututil.IsKeyJustReleased(ebiten.KeyR),
	}
	frame, err := g.director.Advance(1/float64(ebiten.TPS()), in)
	if err != nil {
		return err
	}
	if frame.Credited {
		g.sounds.Play(sound.Confirm)
	}
	if frame.Failed {
		g.sounds.Play(sound.Fail)
	}
	if g.debug && frame.Layer {
		g.updateCursor()
	}
	g.frame = frame
	return nil
}

// handleInput processes viewport and toggle input.
func (g *Game) handleInput() {
	if inpututil.IsKeyJustReleased(ebiten.KeyE) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sounds.SetMuted(!g.sounds.Muted())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.session.Active() {
		if err := setClipboardText(g.session.Snapshot()); err != nil {
			g.log.Add(g.session.Tick(), g.session.Level(), CatInput, "clipboard_error", err.Error(), 0)
		} else {
			g.log.Add(g.session.Tick(), g.session.Level(), CatInput, "clipboard", "snapshot copied", 0)
		}
	}

	// Pan: the grid follows the mouse while space is held.
	mx, my := ebiten.CursorPosition()
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		g.view.PanBy(float64(mx-g.mouseX), float64(my-g.mouseY))
	}
	g.mouseX, g.mouseY = mx, my

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.view.Wheel(wy)
	}
}

// updateCursor runs the debug selection tool on the active layer.
func (g *Game) updateCursor() {
	layer := g.session.Layer()
	p, ok := g.view.CursorCell(float64(g.mouseX), float64(g.mouseY), layer, g.session.Grid())
	g.cursor.Hover(p, ok)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.cursor.Click()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.session.Carve(g.cursor.Delete()...)
	}
	g.cursor.Highlight(g.session.Grid(), layer)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)

	if g.frame.Splash {
		g.drawSplash(screen)
	}
	if g.frame.Layer {
		g.drawLayer(screen)
	}
	for _, f := range g.frame.Fades {
		render.Overlay(screen, f.Color, f.Opacity)
	}
	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawSplash(screen *ebiten.Image) {
	render.Splash(screen, g.splash, palette.Background)
	op := &text.DrawOptions{}
	op.GeoM.Translate(ScreenW/2, ScreenH*0.82)
	op.ColorScale.ScaleWithColor(palette.Default)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, "layered", g.title, op)
}

func (g *Game) drawLayer(screen *ebiten.Image) {
	dst := render.Screen{Dst: screen}
	g.renderer.DrawTiles(dst)

	pos, facing := g.session.Pos(), g.session.Facing()
	sprite := g.front
	if facing.Back {
		sprite = g.back
	}
	g.renderer.DrawSprite(dst, sprite, pos.X, pos.Y, spriteHeight, g.session.Layer(), facing.Flip)

	for i, line := range legend {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, float64(ScreenH-80-legendSize+i*legendSize))
		op.ColorScale.ScaleWithColor(palette.Hint)
		text.Draw(screen, line, g.face, op)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	s := g.session
	hits, misses := s.Visibility().Stats()
	pos := s.Pos()
	info := fmt.Sprintf(
		"TPS %.0f  FPS %.0f  phase %s\nlevel %d/%d  layer %d  gen %d\npos (%.2f, %.2f)  checkpoint (%.2f, %.2f)\nthreat r=%d/%d  threatened=%v  remaining=%v\nvis cache %d entries  %d hits  %d misses\nzoom %.2f  pan (%.0f, %.0f)  muted=%v\n[c] copy snapshot  [m] mute  [lmb] select  [rmb] carve",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.director.Phase(),
		s.Level()+1, s.Levels(), s.Layer(), s.Grid().Generation(),
		pos.X, pos.Y, s.Checkpoint().X, s.Checkpoint().Y,
		threatBaseRadius+s.ThreatRadius(), threatBaseRadius+s.MaxThreatRadius()-1, s.Threatened(), s.RemainingObjectives(),
		s.Visibility().Len(), hits, misses,
		g.view.Zoom, g.view.PanX, g.view.PanY, g.sounds.Muted(),
	)
	ebitenutil.DebugPrintAt(screen, info, 10, 10)

	if lo, hi, ok, _ := g.cursor.Selection(); ok {
		g.strokeCells(screen, lo, tile.Pt(hi.X+1, hi.Y+1), palette.Threat)
	}
	if g.cursor.onGrid {
		g.strokeCells(screen, g.cursor.hover, tile.Pt(g.cursor.hover.X+1, g.cursor.hover.Y+1), palette.Objective)
	}
	drawEventPanel(screen, g.log, ScreenW, ScreenH)
}

// strokeCells outlines the grid rectangle [lo, hi) on the active layer.
func (g *Game) strokeCells(screen *ebiten.Image, lo, hi tile.Point, c color.RGBA) {
	layer := g.session.Layer()
	corners := [4][2]float64{
		{float64(lo.X), float64(lo.Y)},
		{float64(hi.X), float64(lo.Y)},
		{float64(hi.X), float64(hi.Y)},
		{float64(lo.X), float64(hi.Y)},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		x0, y0 := g.view.GridToView(a[0], a[1], layer)
		x1, y1 := g.view.GridToView(b[0], b[1], layer)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, c, true)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenW, ScreenH
}
