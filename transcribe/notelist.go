// SPDX-License-Identifier: EPL-2.0

package transcribe

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseNoteList reads the line oriented note list printed by aubionotes:
// the first line holds the time the leading silence ended, every following
// line holds "<pitch> <start> <stop>" in seconds, and the last line holds the
// time the audio ended. Blank lines are ignored. The parsed notes get the
// given velocity and tempo.
func ParseNoteList(r io.Reader, velocity uint8, bpm uint) ([]Note, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoteList, err)
	}

	if len(lines) < 2 {
		return nil, nil
	}

	body := lines[1 : len(lines)-1]
	notes := make([]Note, 0, len(body))

	for i, line := range body {
		n, err := parseNoteLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrNoteList, i+2, err)
		}
		n.Velocity = velocity
		n.Tempo = bpm
		notes = append(notes, n)
	}

	return notes, nil
}

func parseNoteLine(line string) (Note, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Note{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	vals := make([]float64, 3)
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Note{}, err
		}
		vals[i] = v
	}

	pitch := math.Round(vals[0])
	if pitch < 0 || pitch > 127 {
		return Note{}, fmt.Errorf("%w: pitch %v", ErrInvalidNote, vals[0])
	}

	n := Note{Pitch: uint8(pitch), Start: vals[1], Stop: vals[2]}
	if err := n.Validate(); err != nil {
		return Note{}, err
	}

	return n, nil
}
