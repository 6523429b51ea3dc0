package game

import (
	"fmt"
	"image"
	"math"

	"github.com/Garsondee/layered/internal/asset"
	"github.com/Garsondee/layered/internal/tile"
)

// TestTPS is the tick rate the harness simulates.
const TestTPS = 60

// TestSession is a headless harness used by tests and the report tool. It
// drives a Session through a Director exactly as Game.Update does, with no
// Ebiten dependency.
type TestSession struct {
	*Session
	Director *Director
	Log      *EventLog
	Frames   []Frame

	layouts []string
	splash  float64
	tex     Textures
}

// SessionOption configures a TestSession.
type SessionOption func(*TestSession)

// WithLayouts sets the levels from text layouts ('#' wall, '.' floor,
// 'o' objective, 't' threat). All layouts must share one size.
func WithLayouts(layouts ...string) SessionOption {
	return func(ts *TestSession) { ts.layouts = layouts }
}

// WithSplash sets the splash duration in seconds.
func WithSplash(seconds float64) SessionOption {
	return func(ts *TestSession) { ts.splash = seconds }
}

// LayoutBitmap classifies a text layout at its native size.
func LayoutBitmap(layout string) (*asset.Binary, error) {
	img, err := asset.ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	return asset.Quantize(img, asset.Markers), nil
}

// NewTestSession builds a harness. Textures are small in-memory images so
// tiles stay distinguishable without a GPU.
func NewTestSession(opts ...SessionOption) (*TestSession, error) {
	ts := &TestSession{
		Log: NewEventLog(0),
		tex: Textures{
			Wall:       image.NewRGBA(image.Rect(0, 0, 2, 2)),
			Floor:      image.NewRGBA(image.Rect(0, 0, 2, 2)),
			Background: image.NewRGBA(image.Rect(0, 0, 2, 2)),
		},
	}
	for _, o := range opts {
		o(ts)
	}
	if len(ts.layouts) == 0 {
		return nil, fmt.Errorf("test session: no layouts")
	}

	levels := make([]tile.Bitmap, len(ts.layouts))
	for i, l := range ts.layouts {
		b, err := LayoutBitmap(l)
		if err != nil {
			return nil, fmt.Errorf("layout %d: %w", i, err)
		}
		levels[i] = b
	}
	w, h := levels[0].Size()
	s, err := NewSession(w, h, levels, ts.tex, ts.Log)
	if err != nil {
		return nil, err
	}
	ts.Session = s
	ts.Director = NewDirector(s, ts.splash)
	return ts, nil
}

// Run advances the director for the given number of seconds at TestTPS with
// in held down, recording every frame.
func (ts *TestSession) Run(seconds float64, in Input) error {
	return ts.RunTicks(int(math.Round(seconds*TestTPS)), in)
}

// RunTicks advances the director by n ticks with in held down.
func (ts *TestSession) RunTicks(n int, in Input) error {
	for i := 0; i < n; i++ {
		f, err := ts.Director.Advance(1.0/TestTPS, in)
		if err != nil {
			return err
		}
		ts.Frames = append(ts.Frames, f)
	}
	return nil
}

// StepFor steps the session directly, bypassing the director, for n ticks.
func (ts *TestSession) StepFor(n int, in Input) []StepResult {
	out := make([]StepResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ts.Step(1.0/TestTPS, in))
	}
	return out
}

// CountFrames returns how many recorded frames satisfy pred.
func (ts *TestSession) CountFrames(pred func(Frame) bool) int {
	n := 0
	for _, f := range ts.Frames {
		if pred(f) {
			n++
		}
	}
	return n
}
