package game

import "flag"

// Grid and timing constants shared by the session and the window loop.
const (
	GridSize = 48

	// ScreenW and ScreenH are the logical screen size; the whole grid fits at zoom 1.
	ScreenW = 1600
	ScreenH = 900

	moveSpeed      = 22.0 // cells per second
	spriteHeight   = 0.5
	transitionTime = 0.75 // seconds per fade half

	threatBaseRadius = 3
	threatReach      = 1.25 // max radius as a multiple of the larger grid side
	threatCycle      = 4.0  // seconds for the radius to sweep its full range

	eventLogCapacity = 512
)

// Config represents the command-line parameters for the game.
type Config struct {
	Maps   string
	Sounds string
	Scale  float64
	Debug  bool
	Mute   bool
	Splash float64
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Scale: 0.8, Splash: 3}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Maps, "maps", c.Maps, "directory of .png level maps (built-in levels when empty)")
	fs.StringVar(&c.Sounds, "sounds", c.Sounds, "directory with confirm.wav, fail.wav, ambience.wav overrides")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "window size as a multiple of the logical screen")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "start with the debug overlay and cursor tools on")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable all sound")
	fs.Float64Var(&c.Splash, "splash", c.Splash, "splash screen duration in seconds")
}

// WindowSize returns the initial window size in device-independent pixels.
func (c *Config) WindowSize() (int, int) {
	s := c.Scale
	if s <= 0 {
		s = 1
	}
	return int(ScreenW * s), int(ScreenH * s)
}
