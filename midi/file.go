// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"
	"io"
)

// File is a Standard MIDI File under construction.
type File struct {
	Header Header

	tracks    []*Track
	finalized bool
	size      int64
}

// New creates a file with the given format, track count and division. Zero
// tracks and a zero division fall back to one track and DefaultPPQ. bufSize is
// the initial event buffer size of every track; zero selects the default.
func New(format, tracks, division uint16, bufSize int) (*File, error) {
	hdr, err := NewHeader(format, tracks, division)
	if err != nil {
		return nil, err
	}
	if bufSize < 0 {
		return nil, fmt.Errorf("%w: buffer size %d", ErrInvalidParameter, bufSize)
	}

	f := &File{
		Header: hdr,
		tracks: make([]*Track, hdr.Tracks),
	}
	for i := range f.tracks {
		f.tracks[i] = NewTrack(bufSize)
	}

	return f, nil
}

// Track returns track i, or nil if i is out of range.
func (f *File) Track(i int) *Track {
	if i < 0 || i >= len(f.tracks) {
		return nil
	}
	return f.tracks[i]
}

// Tracks returns every track in file order.
func (f *File) Tracks() []*Track { return f.tracks }

// Division returns the pulses per quarter note.
func (f *File) Division() uint16 { return f.Header.Division }

// Finalize closes every track and computes the total file size.
func (f *File) Finalize() error {
	size := int64(HeaderSize)
	for i, t := range f.tracks {
		if err := t.Finalize(); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		size += t.ChunkSize()
	}

	f.size = size
	f.finalized = true

	return nil
}

// Finalized reports whether Finalize has completed.
func (f *File) Finalized() bool { return f.finalized }

// Size returns the number of bytes WriteTo produces. It is zero until the
// file is finalized.
func (f *File) Size() int64 { return f.size }

// MarshalBinary returns the complete file.
func (f *File) MarshalBinary() ([]byte, error) {
	if !f.finalized {
		return nil, ErrNotFinalized
	}

	out, err := f.Header.AppendBinary(make([]byte, 0, f.size))
	if err != nil {
		return nil, err
	}

	for i, t := range f.tracks {
		out, err = t.AppendChunk(out)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
	}

	return out, nil
}

// WriteTo writes the finalized file to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	data, err := f.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrIO, err)
	}
	if n != len(data) {
		return int64(n), fmt.Errorf("%w: %w", ErrIO, io.ErrShortWrite)
	}

	return int64(n), nil
}
