// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources and buffers for tests
// and for the command line tools' built in tone generator.
package audiotest

import (
	"io"
	"math"
	"slices"
)

// Waveform returns the value of a frame on a channel.
type Waveform func(frame, channel int) float32

// Generator is an audio.Source producing a fixed number of frames from a
// Waveform.
type Generator struct {
	sampleRate int
	channels   int
	frames     int // total frames, negative for an endless stream
	pos        int
	wave       Waveform
}

// NewGenerator returns a source of frames frames (negative for endless).
func NewGenerator(sampleRate, channels, frames int, wave Waveform) *Generator {
	return &Generator{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// NewSilence generates zeros.
func NewSilence(sampleRate, channels, frames int) *Generator {
	return NewGenerator(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewConstant generates a constant value.
func NewConstant(sampleRate, channels, frames int, value float32) *Generator {
	return NewGenerator(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSine generates a full scale sine wave on every channel.
func NewSine(sampleRate, channels, frames int, hz float64) *Generator {
	return NewGenerator(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * hz * t))
	})
}

// Tone is one segment of a ToneSequence. Hz of zero is silence.
type Tone struct {
	Hz        float64
	Amplitude float64
	Seconds   float64
}

// NewToneSequence plays tones back to back on a mono stream.
func NewToneSequence(sampleRate int, tones []Tone) *Generator {
	type segment struct {
		end  int
		tone Tone
	}

	segs := make([]segment, 0, len(tones))
	total := 0
	for _, t := range tones {
		total += int(math.Round(t.Seconds * float64(sampleRate)))
		segs = append(segs, segment{end: total, tone: t})
	}

	return NewGenerator(sampleRate, 1, total, func(frame, _ int) float32 {
		i, _ := slices.BinarySearchFunc(segs, frame, func(s segment, f int) int {
			if s.end <= f {
				return -1
			}
			return 1
		})
		tone := segs[min(i, len(segs)-1)].tone
		if tone.Hz == 0 {
			return 0
		}
		t := float64(frame) / float64(sampleRate)
		return float32(tone.Amplitude * math.Sin(2*math.Pi*tone.Hz*t))
	})
}

func (g *Generator) SampleRate() int { return g.sampleRate }
func (g *Generator) Channels() int   { return g.channels }
func (g *Generator) BufSize() int    { return 4096 }
func (g *Generator) Close() error    { return nil }

// Reset rewinds the generator.
func (g *Generator) Reset() { g.pos = 0 }

func (g *Generator) ReadSamples(dst []float32) (int, error) {
	if g.frames >= 0 && g.pos >= g.frames {
		return 0, io.EOF
	}

	n := len(dst) / g.channels
	if g.frames >= 0 {
		n = min(n, g.frames-g.pos)
	}

	for f := range n {
		for ch := range g.channels {
			dst[f*g.channels+ch] = g.wave(g.pos+f, ch)
		}
	}
	g.pos += n

	if g.frames >= 0 && g.pos >= g.frames {
		return n * g.channels, io.EOF
	}

	return n * g.channels, nil
}
