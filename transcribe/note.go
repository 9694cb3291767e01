// SPDX-License-Identifier: EPL-2.0

package transcribe

import (
	"fmt"
	"math"
)

// Note is one detected note. Times are seconds from the start of the audio;
// Tempo is in beats per minute, zero when unknown.
type Note struct {
	Pitch    uint8
	Velocity uint8
	Tempo    uint
	Start    float64
	Stop     float64
}

// Duration returns Stop - Start.
func (n Note) Duration() float64 { return n.Stop - n.Start }

// Validate checks the ranges of a note. Translate itself is more lenient:
// it clamps velocity and backward deltas.
func (n Note) Validate() error {
	switch {
	case n.Pitch > 127:
		return fmt.Errorf("%w: pitch %d", ErrInvalidNote, n.Pitch)
	case n.Start < 0 || math.IsNaN(n.Start) || math.IsInf(n.Start, 0):
		return fmt.Errorf("%w: start %v", ErrInvalidNote, n.Start)
	case n.Stop < n.Start || math.IsNaN(n.Stop) || math.IsInf(n.Stop, 0):
		return fmt.Errorf("%w: stop %v before start %v", ErrInvalidNote, n.Stop, n.Start)
	}
	return nil
}

func (n Note) String() string {
	return fmt.Sprintf("pitch=%d velocity=%d tempo=%d start=%.3f stop=%.3f",
		n.Pitch, n.Velocity, n.Tempo, n.Start, n.Stop)
}

// RoundToMultiple rounds v to the nearest multiple of m, halves rounding up.
func RoundToMultiple(v, m uint) uint {
	if m == 0 {
		return v
	}
	return ((v + m/2) / m) * m
}

// ModalTempo returns the most frequent tempo among notes. Ties go to the
// tempo seen first. It returns 0 for an empty slice.
func ModalTempo(notes []Note) uint {
	counts := make(map[uint]int, len(notes))
	for _, n := range notes {
		counts[n.Tempo]++
	}

	var mode uint
	best := 0
	for _, n := range notes {
		if c := counts[n.Tempo]; c > best {
			best = c
			mode = n.Tempo
		}
	}

	return mode
}

// ApplyTempo sets the tempo of every note to bpm.
func ApplyTempo(notes []Note, bpm uint) {
	for i := range notes {
		notes[i].Tempo = bpm
	}
}
