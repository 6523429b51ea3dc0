package game

import (
	"image/color"

	"github.com/Garsondee/layered/internal/palette"
)

// Phase is the top-level state of the window loop.
type Phase int

const (
	PhaseSplash Phase = iota
	PhaseTransition
	PhaseLayer
)

func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "splash"
	case PhaseTransition:
		return "transition"
	case PhaseLayer:
		return "layer"
	}
	return "unknown"
}

// Fade is a full-screen overlay drawn over the frame.
type Fade struct {
	Color   color.RGBA
	Opacity float64
}

// Frame describes what the window should draw this tick.
type Frame struct {
	Splash bool
	Layer  bool
	Fades  []Fade

	// Credited and Failed fire once, on the tick they happen.
	Credited bool
	Failed   bool
}

// transition fades out of the current view and into level.
type transition struct {
	out, in   float64
	level     int
	fromLayer bool
}

// Director runs the splash, transition and layer phases over a Session.
type Director struct {
	session *Session
	splash  float64

	phase     Phase
	elapsed   float64
	tr        transition
	activated bool

	// fade-out colours, latched while fading out and reused while fading in
	tint  *color.RGBA
	color color.RGBA
}

// NewDirector starts in the splash phase for splash seconds.
func NewDirector(s *Session, splash float64) *Director {
	return &Director{session: s, splash: splash, color: palette.Background}
}

func (d *Director) Phase() Phase { return d.phase }

// Advance moves the phase clock by dt seconds and steps the session when a
// layer is visible.
func (d *Director) Advance(dt float64, in Input) (Frame, error) {
	var f Frame
	d.elapsed += dt

	switch d.phase {
	case PhaseSplash:
		f.Splash = true
		if d.splash-d.elapsed <= 0 {
			d.begin(transition{out: transitionTime, in: transitionTime, level: 0})
		}

	case PhaseTransition:
		remaining := d.tr.out + d.tr.in - d.elapsed
		switch {
		case remaining <= 0:
			d.phase = PhaseLayer
			d.elapsed = 0
			d.step(dt, in, &f)

		case remaining <= d.tr.in:
			if !d.activated {
				d.activated = true
				if err := d.session.Activate(d.tr.level); err != nil {
					return f, err
				}
			}
			d.step(dt, in, &f)
			d.fade(&f, remaining/d.tr.in)

		default:
			if d.tr.fromLayer {
				d.step(dt, Input{}, &f)
			} else {
				f.Splash = true
			}
			d.tint = nil
			d.color = palette.Background
			switch {
			case d.session.Threatened():
				d.color = palette.Threat
			case d.session.RemainingObjectives() && d.tr.fromLayer:
				c := palette.Completed
				d.tint = &c
			}
			d.fade(&f, 1-(remaining-d.tr.in)/d.tr.out)
		}

	case PhaseLayer:
		res := d.step(dt, in, &f)
		if res.Advance {
			out := transitionTime / 2
			if d.session.Threatened() {
				out = transitionTime / 4
				f.Failed = true
			}
			d.begin(transition{out: out, in: transitionTime, level: res.Next, fromLayer: true})
		}
	}
	return f, nil
}

func (d *Director) begin(tr transition) {
	d.phase = PhaseTransition
	d.tr = tr
	d.elapsed = 0
	d.activated = false
}

func (d *Director) step(dt float64, in Input, f *Frame) StepResult {
	f.Layer = true
	res := d.session.Step(dt, in)
	if res.Credited {
		f.Credited = true
	}
	return res
}

func (d *Director) fade(f *Frame, opacity float64) {
	f.Fades = append(f.Fades, Fade{Color: d.color, Opacity: opacity})
	if d.tint != nil {
		f.Fades = append(f.Fades, Fade{Color: *d.tint, Opacity: opacity * 0.25})
	}
}
