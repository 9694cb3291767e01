// SPDX-License-Identifier: EPL-2.0

package extract

import (
	"fmt"
	"math"

	"github.com/ik5/audscribe/transcribe"
)

// Collector turns a stream of Frames into notes. Time is counted in blocks
// of hop samples, so a note starting in block b starts at b*hop/rate.
type Collector struct {
	hop        int
	sampleRate int
	bpm        uint

	block   int
	notes   []transcribe.Note
	current transcribe.Note
	present bool

	tempoSum   float64
	tempoCount int
}

// NewCollector returns a Collector. A bpm of zero gives every note the tempo
// detected while it sounded, and the whole list the most common of those.
func NewCollector(hop, sampleRate int, bpm uint) (*Collector, error) {
	if hop < 1 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: hop %d, sample rate %d", ErrInvalidOptions, hop, sampleRate)
	}
	if err := checkBPM(bpm); err != nil {
		return nil, err
	}

	return &Collector{hop: hop, sampleRate: sampleRate, bpm: bpm}, nil
}

func (c *Collector) now() float64 {
	return float64(c.block) * float64(c.hop) / float64(c.sampleRate)
}

// Add records the frame of the next block.
func (c *Collector) Add(f Frame) {
	if f.Offset && c.present {
		c.closeNote()
	}

	if f.Onset {
		if c.present {
			c.closeNote()
		}

		c.current = transcribe.Note{
			Pitch:    uint8(max(0, min(127, f.Pitch))),
			Velocity: uint8(max(0, min(127, math.Round(f.Velocity)))),
			Start:    c.now(),
		}
		c.present = true
		c.tempoSum, c.tempoCount = 0, 0
	}

	if c.present && c.bpm == 0 && f.Tempo > 0 {
		c.tempoSum += f.Tempo
		c.tempoCount++
	}

	c.block++
}

func (c *Collector) closeNote() {
	n := c.current
	n.Stop = c.now()

	switch {
	case c.bpm == 0 && c.tempoCount > 0:
		mean := uint(math.Round(c.tempoSum / float64(c.tempoCount)))
		n.Tempo = transcribe.RoundToMultiple(mean, tempoAccuracy)
	default:
		n.Tempo = c.bpm
	}

	c.notes = append(c.notes, n)
	c.present = false
}

// Flush ends a note that is still sounding at the current time.
func (c *Collector) Flush() {
	if c.present {
		c.closeNote()
	}
}

// Len returns the number of completed notes.
func (c *Collector) Len() int { return len(c.notes) }

// Notes flushes the collector and returns the notes with their final tempo:
// the fixed bpm, or the modal detected tempo.
func (c *Collector) Notes() []transcribe.Note {
	c.Flush()

	bpm := c.bpm
	if bpm == 0 {
		bpm = transcribe.ModalTempo(c.notes)
	}

	out := make([]transcribe.Note, len(c.notes))
	copy(out, c.notes)
	transcribe.ApplyTempo(out, bpm)

	return out
}
