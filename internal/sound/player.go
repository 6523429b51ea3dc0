package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Cue names one sound.
type Cue int

const (
	Confirm Cue = iota
	Fail
	Ambience
)

var cueFiles = map[Cue]string{
	Confirm:  "confirm.wav",
	Fail:     "fail.wav",
	Ambience: "ambience.wav",
}

func (c Cue) String() string {
	if name, ok := cueFiles[c]; ok {
		return name[:len(name)-len(".wav")]
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Decode turns a WAV file into 16-bit stereo PCM at SampleRate.
func Decode(raw []byte) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	if len(pcm) == 0 {
		return nil, errors.New("wav has no audio data")
	}
	return pcm, nil
}

// Load returns decoded PCM for every cue. A cue's file in dir replaces the
// synthesized sound; missing files fall back silently.
func Load(dir string) (map[Cue][]byte, error) {
	synth := map[Cue]func() []byte{
		Confirm:  ConfirmWAV,
		Fail:     FailWAV,
		Ambience: AmbienceWAV,
	}
	out := make(map[Cue][]byte, len(synth))
	for cue, gen := range synth {
		raw, err := readCue(dir, cue)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			raw = gen()
		}
		pcm, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cue, err)
		}
		out[cue] = pcm
	}
	return out, nil
}

func readCue(dir string, cue Cue) ([]byte, error) {
	if dir == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, cueFiles[cue]))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cue, err)
	}
	return raw, nil
}

// Player plays cues through a shared ebiten audio context. A nil or muted
// Player ignores every call.
type Player struct {
	ctx   *audio.Context
	pcm   map[Cue][]byte
	loop  *audio.Player
	muted bool
}

// NewPlayer creates the audio context and loads every cue. Only one audio
// context may exist per process.
func NewPlayer(dir string, muted bool) (*Player, error) {
	if muted {
		return &Player{muted: true}, nil
	}
	pcm, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return &Player{ctx: audio.NewContext(SampleRate), pcm: pcm}, nil
}

// Play starts a one-shot cue.
func (p *Player) Play(c Cue) {
	if p == nil || p.muted {
		return
	}
	pcm, ok := p.pcm[c]
	if !ok {
		return
	}
	p.ctx.NewPlayerFromBytes(pcm).Play()
}

// StartAmbience loops the ambience cue until the process exits.
func (p *Player) StartAmbience() error {
	if p == nil || p.muted || p.loop != nil {
		return nil
	}
	pcm := p.pcm[Ambience]
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := p.ctx.NewPlayer(loop)
	if err != nil {
		return fmt.Errorf("ambience player: %w", err)
	}
	player.Play()
	p.loop = player
	return nil
}

// SetMuted silences or resumes all sound.
func (p *Player) SetMuted(muted bool) {
	if p == nil || p.ctx == nil {
		return
	}
	p.muted = muted
	if p.loop == nil {
		return
	}
	if muted {
		p.loop.Pause()
	} else {
		p.loop.Play()
	}
}

// Muted reports whether sound is off.
func (p *Player) Muted() bool { return p == nil || p.muted }
