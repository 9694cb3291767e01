// SPDX-License-Identifier: EPL-2.0

package transcribe

import (
	"fmt"
	"math"

	"golang.org/x/text/transform"

	"github.com/ik5/audscribe/midi"
)

type options struct {
	bpm      uint
	channel  byte
	name     string
	nameEnc  transform.Transformer
	bufSize  int
	timeSig  [2]byte
	hasTimeS bool
	anchored bool
}

// Option configures BuildFile.
type Option func(*options)

// WithInitialTempo sets the tempo used until a note carries its own.
// The default is midi.DefaultBPM.
func WithInitialTempo(bpm uint) Option {
	return func(o *options) { o.bpm = bpm }
}

// WithChannel writes every note on channel ch (0-15).
func WithChannel(ch byte) Option {
	return func(o *options) { o.channel = ch }
}

// WithTrackName adds a track name meta event, optionally run through enc.
func WithTrackName(name string, enc transform.Transformer) Option {
	return func(o *options) {
		o.name = name
		o.nameEnc = enc
	}
}

// WithTimeSignature adds a time signature meta event at tick zero.
func WithTimeSignature(numerator, denominator byte) Option {
	return func(o *options) {
		o.timeSig = [2]byte{numerator, denominator}
		o.hasTimeS = true
	}
}

// WithBufferSize sets the initial event buffer size of the track.
func WithBufferSize(n int) Option {
	return func(o *options) { o.bufSize = n }
}

// WithAnchoredTempo measures time after a tempo change from the tick the
// change happened at, so notes after a change land where they would be heard.
// By default every instant is converted with the current tempo from time
// zero, which jumps when the tempo changes.
func WithAnchoredTempo() Option {
	return func(o *options) { o.anchored = true }
}

func newOptions(opts []Option) options {
	o := options{bpm: midi.DefaultBPM}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bpm == 0 {
		o.bpm = midi.DefaultBPM
	}
	return o
}

// Translate appends note on, note off and tempo events for notes to track on
// channel 0, starting at the default tempo. ppq must match the division of
// the file that owns track; zero means midi.DefaultPPQ.
func Translate(track *midi.Track, notes []Note, ppq uint16) error {
	return translate(track, notes, ppq, newOptions(nil))
}

// BuildFile returns a format 0 file holding notes in a single track. The
// file is not finalized so callers may append further events.
func BuildFile(notes []Note, ppq uint16, opts ...Option) (*midi.File, error) {
	o := newOptions(opts)

	f, err := midi.New(0, 1, ppq, o.bufSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMidiBuild, err)
	}

	trk := f.Track(0)
	if o.name != "" {
		if err := trk.SetText(0, midi.MetaTrackName, o.name, o.nameEnc); err != nil {
			return nil, fmt.Errorf("%w: track name: %w", ErrMidiBuild, err)
		}
	}
	if o.hasTimeS {
		if err := trk.SetTimeSignature(0, o.timeSig[0], o.timeSig[1], 24, 8); err != nil {
			return nil, fmt.Errorf("%w: time signature: %w", ErrMidiBuild, err)
		}
	}

	if err := translate(trk, notes, f.Division(), o); err != nil {
		return nil, err
	}

	return f, nil
}

// timeline maps wall clock seconds to absolute ticks as
// round(ticks per second × seconds) at the current tempo. When anchored,
// each tempo change starts a new segment at the tick position the change
// happened at instead.
type timeline struct {
	ppq        float64
	bpm        uint
	tps        float64
	anchored   bool
	anchorSec  float64
	anchorTick int64
	total      int64
}

func newTimeline(ppq uint16, bpm uint, anchored bool) *timeline {
	tl := &timeline{ppq: float64(ppq), anchored: anchored}
	tl.setTempo(0, bpm)
	return tl
}

func (tl *timeline) ticks(sec float64) int64 {
	return tl.anchorTick + int64(math.Round((sec-tl.anchorSec)*tl.tps))
}

func (tl *timeline) setTempo(sec float64, bpm uint) {
	if tl.anchored && tl.tps != 0 {
		tl.anchorTick = tl.ticks(sec)
		tl.anchorSec = sec
	}
	tl.bpm = bpm
	tl.tps = tl.ppq * float64(bpm) / 60
}

// advance returns the delta from the last event to sec. Instants before the
// last event produce a zero delta and leave the position unchanged.
func (tl *timeline) advance(sec float64) (uint32, error) {
	delta := tl.ticks(sec) - tl.total
	if delta <= 0 {
		return 0, nil
	}
	if delta > math.MaxUint32 {
		return 0, fmt.Errorf("%w: delta of %d ticks at %.3fs", midi.ErrInvalidParameter, delta, sec)
	}

	tl.total += delta
	return uint32(delta), nil
}

func translate(track *midi.Track, notes []Note, ppq uint16, o options) error {
	if track == nil {
		return fmt.Errorf("%w: nil track", ErrMidiBuild)
	}
	if ppq == 0 {
		ppq = midi.DefaultPPQ
	}

	tl := newTimeline(ppq, o.bpm, o.anchored)
	pending := true

	for i, n := range notes {
		if n.Tempo != 0 && n.Tempo != tl.bpm {
			tl.setTempo(n.Start, n.Tempo)
			pending = true
		}

		start, err := tl.advance(n.Start)
		if err != nil {
			return &BuildError{Index: i, Err: err}
		}

		if pending {
			if err := track.SetTempo(start, tl.bpm); err != nil {
				return &BuildError{Index: i, Err: err}
			}
			start = 0
			pending = false
		}

		if err := track.NoteOn(start, o.channel, n.Pitch, n.Velocity); err != nil {
			return &BuildError{Index: i, Err: err}
		}

		stop, err := tl.advance(n.Stop)
		if err != nil {
			return &BuildError{Index: i, Err: err}
		}

		if err := track.NoteOff(stop, o.channel, n.Pitch, n.Velocity); err != nil {
			return &BuildError{Index: i, Err: err}
		}
	}

	return nil
}
