package sound

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSynthLengthAndRange(t *testing.T) {
	out := Synth([]Note{{Freq: 440, Dur: 0.1, Gain: 0.5}}, 0.2)
	if len(out) != int(0.2*SampleRate) {
		t.Fatalf("len = %d", len(out))
	}
	peak := 0.0
	for _, s := range out {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak == 0 || peak > 0.5 {
		t.Fatalf("peak = %f, want (0, 0.5]", peak)
	}
	for _, s := range out[int(0.1*SampleRate)+1:] {
		if s != 0 {
			t.Fatal("samples after the note should be silent")
		}
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	raw := EncodeWAV(make([]float64, 10))
	if !bytes.HasPrefix(raw, []byte("RIFF")) || string(raw[8:16]) != "WAVEfmt " {
		t.Fatalf("bad header %q", raw[:16])
	}
	if len(raw) != 44+10*4 {
		t.Fatalf("len = %d, want %d", len(raw), 44+40)
	}
}

func TestLoadSynthesized(t *testing.T) {
	cues, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []Cue{Confirm, Fail, Ambience} {
		pcm := cues[c]
		if len(pcm) == 0 || len(pcm)%4 != 0 {
			t.Fatalf("%s: %d bytes of PCM", c, len(pcm))
		}
	}
	if len(cues[Ambience]) != 4*SampleRate*4 {
		t.Fatalf("ambience = %d bytes", len(cues[Ambience]))
	}
}

func TestLoadOverridesFromDir(t *testing.T) {
	dir := t.TempDir()
	custom := EncodeWAV(make([]float64, 100))
	if err := os.WriteFile(filepath.Join(dir, "confirm.wav"), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	cues, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cues[Confirm]) != 400 {
		t.Fatalf("confirm = %d bytes, want the 100-frame override", len(cues[Confirm]))
	}
	if len(cues[Fail]) == 0 {
		t.Fatal("missing fail.wav should fall back to the synthesized cue")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fail.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMutedPlayerIsInert(t *testing.T) {
	p, err := NewPlayer("", true)
	if err != nil {
		t.Fatal(err)
	}
	p.Play(Confirm)
	if err := p.StartAmbience(); err != nil {
		t.Fatal(err)
	}
	if !p.Muted() {
		t.Fatal("player should report muted")
	}
	var nilPlayer *Player
	nilPlayer.Play(Fail)
}

func TestCueString(t *testing.T) {
	if Confirm.String() != "confirm" || Cue(9).String() != "Cue(9)" {
		t.Fatalf("got %q %q", Confirm.String(), Cue(9).String())
	}
}
