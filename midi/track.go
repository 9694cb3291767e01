// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"

	"github.com/ik5/audscribe/endian"
	"github.com/ik5/audscribe/eventbuf"
	"github.com/ik5/audscribe/varint"
)

// Track is an MTrk chunk. Its events live in an owned buffer; Size is only
// meaningful once the track is finalized.
type Track struct {
	ChunkID [4]byte
	Size    uint32

	events    *eventbuf.Buffer
	finalized bool
	scratch   [varint.MaxLen]byte
}

// NewTrack returns an empty track whose buffer starts at bufSize bytes
// (eventbuf.DefaultCapacity when zero).
func NewTrack(bufSize int) *Track {
	return &Track{
		ChunkID: trackTag,
		events:  eventbuf.New(bufSize),
	}
}

// Len returns the number of event bytes written so far.
func (t *Track) Len() int { return t.events.Len() }

// Events returns the packed event stream.
func (t *Track) Events() []byte { return t.events.Bytes() }

// Finalized reports whether Finalize has run.
func (t *Track) Finalized() bool { return t.finalized }

// AddEvent packs one event: the delta time as a variable-length quantity,
// the status and both data bytes, then any extra bytes verbatim.
//
// For note on and note off events data1 is the pitch and must not exceed 127;
// data2 is the velocity and is clamped to 127.
func (t *Track) AddEvent(delta uint32, status, data1, data2 byte, extra ...byte) error {
	if t.finalized {
		return ErrTrackFinalized
	}
	if len(extra) > 255 {
		return fmt.Errorf("%w: %d extra bytes, at most 255", ErrInvalidParameter, len(extra))
	}

	switch status & 0xF0 {
	case StatusNoteOn, StatusNoteOff:
		if data1 > MaxPitch {
			return fmt.Errorf("%w: %d", ErrInvalidPitch, data1)
		}
		data2 = min(data2, MaxVelocity)
	}

	if err := t.events.Ensure(MaxEventSize); err != nil {
		return fmt.Errorf("%w", err)
	}

	t.events.Append(varint.Append(t.scratch[:0], delta)...)
	t.events.Append(status, data1, data2)
	t.events.Append(extra...)

	return nil
}

// NoteOn starts a note.
func (t *Track) NoteOn(delta uint32, channel, pitch, velocity byte) error {
	if channel > MaxChannel {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return t.AddEvent(delta, StatusNoteOn|channel, pitch, velocity)
}

// NoteOff ends a note.
func (t *Track) NoteOff(delta uint32, channel, pitch, velocity byte) error {
	if channel > MaxChannel {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return t.AddEvent(delta, StatusNoteOff|channel, pitch, velocity)
}

// SetTempo emits a tempo meta event. The tempo is stored as microseconds per
// quarter note in three bytes, most significant first.
func (t *Track) SetTempo(delta uint32, bpm uint) error {
	if bpm == 0 {
		return ErrInvalidTempo
	}

	us := microsPerMinute / bpm
	if us > maxTempoMicros {
		return fmt.Errorf("%w: %d bpm does not fit in three bytes", ErrInvalidTempo, bpm)
	}

	usec := uint32(us)
	return t.AddEvent(delta, StatusMeta, MetaTempo, 0x03,
		byte(usec>>16), byte(usec>>8), byte(usec),
	)
}

// SetTimeSignature emits a time signature meta event. denominator is the
// actual note value (4 for a crotchet) and must be a power of two.
func (t *Track) SetTimeSignature(delta uint32, numerator, denominator, clocksPerClick, notated32nds byte) error {
	if numerator == 0 || denominator == 0 || denominator&(denominator-1) != 0 {
		return fmt.Errorf("%w: time signature %d/%d", ErrInvalidParameter, numerator, denominator)
	}

	var power byte
	for d := denominator; d > 1; d >>= 1 {
		power++
	}

	return t.AddEvent(delta, StatusMeta, MetaTimeSignature, 0x04,
		numerator, power, clocksPerClick, notated32nds,
	)
}

// EndTrack emits the end-of-track meta event.
func (t *Track) EndTrack(delta uint32) error {
	return t.AddEvent(delta, endOfTrack[0], endOfTrack[1], endOfTrack[2])
}

// Finalize appends the end-of-track event unless it is already the last
// event, trims the buffer and records the chunk size. Finalizing twice is a
// no-op.
func (t *Track) Finalize() error {
	if t.finalized {
		return nil
	}

	if !t.events.HasSuffix(endOfTrack) {
		if err := t.EndTrack(0); err != nil {
			return err
		}
	}

	t.events.ShrinkToFit()
	t.Size = uint32(t.events.Len())
	t.finalized = true

	return nil
}

// AppendChunk appends the chunk header and events of a finalized track.
func (t *Track) AppendChunk(b []byte) ([]byte, error) {
	if !t.finalized {
		return b, ErrNotFinalized
	}

	var hdr [TrackHeaderSize]byte
	endian.PutTag(hdr[0:4], t.ChunkID)
	endian.Put32(hdr[4:8], t.Size, endian.BigEndian)

	b = append(b, hdr[:]...)
	return append(b, t.events.Bytes()...), nil
}

// ChunkSize returns the on-disk size of the chunk, prefix included.
func (t *Track) ChunkSize() int64 {
	return TrackHeaderSize + int64(t.Size)
}
