// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Duplicator copies every sample of a mono source onto n channels.
type Duplicator struct {
	src      Source
	channels int
	tmp      []float32
}

func NewDuplicator(src Source, channels int) *Duplicator {
	return &Duplicator{src: src, channels: channels}
}

func (d *Duplicator) SampleRate() int { return d.src.SampleRate() }
func (d *Duplicator) Channels() int   { return d.channels }
func (d *Duplicator) BufSize() int    { return d.src.BufSize() * d.channels }

func (d *Duplicator) Close() error {
	if err := d.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (d *Duplicator) ReadSamples(dst []float32) (int, error) {
	if len(dst)%d.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / d.channels
	if cap(d.tmp) < frames {
		d.tmp = make([]float32, frames)
	}
	d.tmp = d.tmp[:frames]

	n, err := d.src.ReadSamples(d.tmp)
	for f, s := range d.tmp[:n] {
		for c := range d.channels {
			dst[f*d.channels+c] = s
		}
	}

	return n * d.channels, err
}

// MatchChannels returns a source yielding channels channels from src. Only
// identity, mixing down to mono and spreading mono out are supported.
func MatchChannels(src Source, channels int) (Source, error) {
	have := src.Channels()

	switch {
	case have == channels:
		return src, nil
	case channels == 1:
		return NewMonoMixer(src), nil
	case have == 1 && channels > 1:
		return NewDuplicator(src, channels), nil
	default:
		return nil, fmt.Errorf("%w: %d to %d channels", ErrUnsupportedChannels, have, channels)
	}
}
