// Package sound synthesizes and plays the game's cues.
package sound

import (
	"bytes"
	"encoding/binary"
	"math"
)

// SampleRate is the rate of every synthesized and decoded stream.
const SampleRate = 44100

// Note is a single partial: a sine at Freq starting at Start seconds, decaying
// over Dur seconds. A non-zero Glide bends the pitch linearly to Freq+Glide.
type Note struct {
	Freq  float64
	Glide float64
	Start float64
	Dur   float64
	Gain  float64
}

// Synth mixes notes into a mono buffer of length seconds.
func Synth(notes []Note, length float64) []float64 {
	n := int(length * SampleRate)
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for _, note := range notes {
		first := int(note.Start * SampleRate)
		count := int(note.Dur * SampleRate)
		phase := 0.0
		for i := 0; i < count; i++ {
			j := first + i
			if j < 0 || j >= n {
				continue
			}
			t := float64(i) / float64(count)
			freq := note.Freq + note.Glide*t
			phase += 2 * math.Pi * freq / SampleRate
			// short attack, exponential tail
			env := math.Min(1, float64(i)/(0.005*SampleRate)) * math.Exp(-4*t)
			out[j] += note.Gain * env * math.Sin(phase)
		}
	}
	return out
}

// EncodeWAV writes mono samples in [-1, 1] as a 16-bit stereo PCM WAV file.
func EncodeWAV(samples []float64) []byte {
	const channels, bits = 2, 16
	dataLen := len(samples) * channels * bits / 8
	var buf bytes.Buffer
	buf.Grow(44 + dataLen)
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate*channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*bits/8))
	binary.Write(&buf, binary.LittleEndian, uint16(bits))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s)) * math.MaxInt16)
		binary.Write(&buf, binary.LittleEndian, v)
		binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// ConfirmWAV is the rising two-note chime played when an objective is credited.
func ConfirmWAV() []byte {
	return EncodeWAV(Synth([]Note{
		{Freq: 659.25, Start: 0, Dur: 0.25, Gain: 0.35},
		{Freq: 987.77, Start: 0.09, Dur: 0.35, Gain: 0.35},
	}, 0.5))
}

// FailWAV is the falling bubble played when a threat catches the avatar.
func FailWAV() []byte {
	return EncodeWAV(Synth([]Note{
		{Freq: 440, Glide: -220, Start: 0, Dur: 0.3, Gain: 0.4},
		{Freq: 330, Glide: -165, Start: 0.12, Dur: 0.3, Gain: 0.25},
	}, 0.45))
}

// AmbienceWAV is a four second drone whose partials complete whole cycles, so
// it loops without a click.
func AmbienceWAV() []byte {
	const length = 4.0
	n := int(length * SampleRate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / SampleRate
		lfo := 0.5 + 0.5*math.Sin(2*math.Pi*t/length)
		out[i] = 0.08*math.Sin(2*math.Pi*110*t) + 0.05*lfo*math.Sin(2*math.Pi*165*t)
	}
	return EncodeWAV(out)
}
