// SPDX-License-Identifier: EPL-2.0

// Package record captures an audio source into a WAV file.
//
// The header is reserved before the first sample and rewritten with the real
// sizes when recording stops, whether the source ran dry, the time limit was
// reached or the context was cancelled.
package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/formats/wav"
)

var ErrInvalidConfig = errors.New("invalid recorder configuration")

// StopReason tells why a recording ended.
type StopReason int

const (
	StoppedEOF StopReason = iota
	StoppedLimit
	StoppedCancelled
)

func (r StopReason) String() string {
	switch r {
	case StoppedEOF:
		return "end of input"
	case StoppedLimit:
		return "time limit"
	case StoppedCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Stats describe a finished (or running) recording.
type Stats struct {
	Frames   int64
	Bytes    int64 // sample bytes, header excluded
	Duration time.Duration
	Reason   StopReason
}

// Recorder writes a source to WAV. Zero fields take defaults: 16 bits, and
// the source's channel count and sample rate.
type Recorder struct {
	BitDepth    uint16
	Channels    uint16
	SampleRate  int
	MaxDuration time.Duration // zero records until the source ends

	// Progress, if set, is called after every block.
	Progress func(Stats)
}

// blockTime is the amount of audio read per iteration.
const blockTime = 100 * time.Millisecond

func (r *Recorder) layout(src audio.Source) (bits, channels uint16, rate int, err error) {
	bits, channels, rate = r.BitDepth, r.Channels, r.SampleRate
	if bits == 0 {
		bits = 16
	}
	if channels == 0 {
		channels = uint16(min(2, max(1, src.Channels())))
	}
	if rate == 0 {
		rate = src.SampleRate()
	}

	switch {
	case bits != 8 && bits != 16 && bits != 32:
		err = fmt.Errorf("%w: %d-bit samples", ErrInvalidConfig, bits)
	case channels > 2:
		err = fmt.Errorf("%w: %d channels", ErrInvalidConfig, channels)
	case rate <= 0:
		err = fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, rate)
	case r.MaxDuration < 0:
		err = fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}

	return bits, channels, rate, err
}

// Run records src into ws until src ends, MaxDuration is reached or ctx is
// cancelled. Cancellation is a normal stop and returns a nil error. The WAV
// header is finalized on every return once the writer exists; src is not
// closed.
func (r *Recorder) Run(ctx context.Context, src audio.Source, ws io.WriteSeeker) (stats Stats, err error) {
	bits, channels, rate, err := r.layout(src)
	if err != nil {
		return stats, err
	}

	in, err := audio.Convert(src, rate, int(channels))
	if err != nil {
		return stats, err
	}

	w, err := wav.NewWriter(ws, bits, channels, uint32(rate))
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		stats.Bytes = w.DataSize()
	}()

	limit := int64(-1)
	if r.MaxDuration > 0 {
		limit = int64(r.MaxDuration.Seconds() * float64(rate))
	}

	ch := int(channels)
	blockFrames := max(1, int(blockTime.Seconds()*float64(rate)))
	buf := make([]float32, blockFrames*ch)

	for {
		if ctx.Err() != nil {
			stats.Reason = StoppedCancelled
			return stats, nil
		}

		want := int64(blockFrames)
		if limit >= 0 {
			want = min(want, limit-stats.Frames)
			if want <= 0 {
				stats.Reason = StoppedLimit
				return stats, nil
			}
		}

		n, rerr := audio.ReadBlock(in, buf[:int(want)*ch])
		eof := errors.Is(rerr, io.EOF)
		if rerr != nil && !eof {
			return stats, rerr
		}

		n -= n % ch
		if n > 0 {
			if err := w.WriteSamples(buf[:n]); err != nil {
				return stats, err
			}
		}

		stats.Frames += int64(n / ch)
		stats.Bytes = w.DataSize()
		stats.Duration = time.Duration(float64(stats.Frames) / float64(rate) * float64(time.Second))
		if r.Progress != nil {
			r.Progress(stats)
		}

		if eof {
			stats.Reason = StoppedEOF
			return stats, nil
		}
	}
}
