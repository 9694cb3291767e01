// SPDX-License-Identifier: EPL-2.0

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/transcribe"
)

// Extract analyses src with a PitchTracker and returns the notes found.
// Multi channel sources are mixed down to mono. ctx is checked between
// blocks; src is not closed.
func Extract(ctx context.Context, src audio.Source, opts Options) ([]transcribe.Note, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	mono, err := audio.MatchChannels(src, 1)
	if err != nil {
		return nil, err
	}

	tracker, err := NewPitchTracker(mono.SampleRate(), opts)
	if err != nil {
		return nil, err
	}

	return Run(ctx, mono, tracker, opts)
}

// Run drives any Analyzer over a mono source.
func Run(ctx context.Context, mono audio.Source, a Analyzer, opts Options) ([]transcribe.Note, error) {
	if mono.Channels() != 1 {
		return nil, fmt.Errorf("%w: %d channels", audio.ErrUnsupportedChannels, mono.Channels())
	}

	col, err := NewCollector(opts.Hop, mono.SampleRate(), opts.BPM)
	if err != nil {
		return nil, err
	}

	block := make([]float32, opts.Hop)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		n, err := audio.ReadBlock(mono, block)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return nil, err
		}
		if n == 0 && eof {
			break
		}

		// the final block is padded with silence
		clear(block[n:])
		col.Add(a.Analyze(block))

		if eof {
			break
		}
	}

	return col.Notes(), nil
}
