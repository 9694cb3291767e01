// SPDX-License-Identifier: EPL-2.0

// Package midi builds Standard MIDI Files.
//
// A File owns one header chunk and a fixed number of track chunks. Events are
// packed into each track as they are added; chunk sizes are computed by
// Finalize, after which the file can be written exactly once with WriteTo.
//
//	f, _ := midi.New(0, 1, 96, 0)
//	trk := f.Track(0)
//	trk.SetTempo(0, 120)
//	trk.NoteOn(0, 0, 60, 100)
//	trk.NoteOff(96, 0, 60, 100)
//	f.Finalize()
//	f.WriteTo(out)
//
// All integer fields are written big-endian. Only the pulses per quarter note
// form of the time division is supported.
package midi

const (
	DefaultPPQ = 96  // pulses per quarter note
	DefaultBPM = 120 // beats per minute

	// HeaderSize is the on-disk size of the header chunk, tag and size included.
	HeaderSize = 4 + 4 + headerChunkSize
	// TrackHeaderSize is the tag and size prefix of each track chunk.
	TrackHeaderSize = 4 + 4

	headerChunkSize = 2 + 2 + 2

	// MaxEventSize is the worst case size of a single event: a 5 byte delta
	// time, status and two data bytes, and up to 255 bytes of text.
	MaxEventSize = 5 + 3 + 255

	MaxChannel  = 15
	MaxPitch    = 127
	MaxVelocity = 127

	smpteFlag       = 0x8000
	microsPerMinute = 60000000
	maxTempoMicros  = 0xFFFFFF
)

// Channel voice status bytes. The low nibble carries the channel.
const (
	StatusNoteOff byte = 0x80
	StatusNoteOn  byte = 0x90
	StatusMeta    byte = 0xFF
)

// Meta event types.
const (
	MetaText          byte = 0x01
	MetaTrackName     byte = 0x03
	MetaInstrument    byte = 0x04
	MetaEndOfTrack    byte = 0x2F
	MetaTempo         byte = 0x51
	MetaTimeSignature byte = 0x58
)

var (
	headerTag = [4]byte{'M', 'T', 'h', 'd'}
	trackTag  = [4]byte{'M', 'T', 'r', 'k'}

	endOfTrack = []byte{StatusMeta, MetaEndOfTrack, 0x00}
)
