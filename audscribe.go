// SPDX-License-Identifier: EPL-2.0

package audscribe

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/extract"
	"github.com/ik5/audscribe/formats"
	"github.com/ik5/audscribe/midi"
	"github.com/ik5/audscribe/transcribe"
)

// fileSource closes the file under a decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	serr := s.Source.Close()
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return serr
}

// Open decodes the audio file at path, choosing the decoder by extension.
// Closing the source closes the file.
func Open(path string) (audio.Source, error) {
	dec, err := formats.Lookup(formats.NewRegistry(), path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// WriteMIDI builds a format 0 file from notes, finalizes it and writes it to
// w. The file is returned for inspection.
func WriteMIDI(w io.Writer, notes []transcribe.Note, ppq uint16, opts ...transcribe.Option) (*midi.File, error) {
	f, err := transcribe.BuildFile(notes, ppq, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.Finalize(); err != nil {
		return nil, err
	}
	if _, err := f.WriteTo(w); err != nil {
		return nil, err
	}

	return f, nil
}

// Options for Transcribe.
type Options struct {
	Extract extract.Options // zero value means extract.DefaultOptions
	PPQ     uint16          // zero means midi.DefaultPPQ
	MIDI    []transcribe.Option
}

// Transcribe extracts the notes of src and writes them to w as MIDI.
func Transcribe(ctx context.Context, src audio.Source, w io.Writer, opts Options) ([]transcribe.Note, *midi.File, error) {
	eo := opts.Extract
	if eo == (extract.Options{}) {
		eo = extract.DefaultOptions()
	}

	notes, err := extract.Extract(ctx, src, eo)
	if err != nil {
		return nil, nil, err
	}

	f, err := WriteMIDI(w, notes, opts.PPQ, opts.MIDI...)
	if err != nil {
		return notes, nil, err
	}

	return notes, f, nil
}
