// SPDX-License-Identifier: EPL-2.0

package audscribe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/audscribe/endian"
	"github.com/ik5/audscribe/midi"
	"github.com/ik5/audscribe/varint"
)

var ErrNotMIDIFile = errors.New("not a standard MIDI file")

// Summary is what Inspect learns from reading a MIDI file back.
type Summary struct {
	Format  uint16
	Tracks  int
	PPQ     uint16
	Notes   int       // note-ons with a non-zero velocity
	Tempos  []float64 // bpm, in file order
	Name    string    // first track name
	Ticks   uint32    // length of the longest track
	Seconds float64   // playing time using the tempo map of the first track
}

func (s Summary) String() string {
	tempos := make([]string, len(s.Tempos))
	for i, bpm := range s.Tempos {
		tempos[i] = fmt.Sprintf("%g", bpm)
	}

	return fmt.Sprintf("format %d, %d tracks, %d ppq, %d notes, tempos [%s], %.3fs",
		s.Format, s.Tracks, s.PPQ, s.Notes, strings.Join(tempos, " "), s.Seconds)
}

// Inspect parses a MIDI file with an independent reader and summarises it.
// Only metric time divisions are supported.
func Inspect(r io.Reader) (Summary, error) {
	var sum Summary

	data, err := io.ReadAll(r)
	if err != nil {
		return sum, fmt.Errorf("%w", err)
	}
	if len(data) < midi.HeaderSize || !bytes.HasPrefix(data, []byte("MThd")) {
		return sum, ErrNotMIDIFile
	}
	sum.Format = endian.Uint16(data[8:10], endian.BigEndian)

	sm, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return sum, fmt.Errorf("%w: %w", ErrNotMIDIFile, err)
	}

	ticks, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		return sum, fmt.Errorf("%w: SMPTE time division", ErrNotMIDIFile)
	}
	sum.PPQ = uint16(ticks)
	sum.Tracks = len(sm.Tracks)

	for i, track := range sm.Tracks {
		var abs uint32
		tempo := uint32(60_000_000 / midi.DefaultBPM) // microseconds per quarter note

		for _, ev := range track {
			abs += ev.Delta
			if i == 0 {
				sum.Seconds += float64(ev.Delta) / float64(sum.PPQ) * float64(tempo) / 1e6
			}

			msg := []byte(ev.Message)
			switch {
			case len(msg) == 3 && msg[0]&0xF0 == midi.StatusNoteOn && msg[2] > 0:
				sum.Notes++
			case len(msg) >= 3 && msg[0] == midi.StatusMeta:
				payload, ok := metaPayload(msg)
				if !ok {
					continue
				}
				switch {
				case msg[1] == midi.MetaTempo && len(payload) == 3:
					tempo = uint32(payload[0])<<16 | uint32(payload[1])<<8 | uint32(payload[2])
					if tempo > 0 {
						sum.Tempos = append(sum.Tempos, 60_000_000/float64(tempo))
					}
				case msg[1] == midi.MetaTrackName && sum.Name == "":
					sum.Name = string(payload)
				}
			}
		}

		sum.Ticks = max(sum.Ticks, abs)
	}

	return sum, nil
}

func metaPayload(msg []byte) ([]byte, bool) {
	size, n, err := varint.Decode(msg[2:])
	if err != nil {
		return nil, false
	}
	body := msg[2+n:]
	if uint32(len(body)) < size {
		return nil, false
	}
	return body[:size], true
}
