// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audscribe/audio"
)

// oggReader is the part of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples reads whole frames. oggvorbis counts its result in values, not
// frames, so it can be returned as is.
func (s *source) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	frames := len(dst) / ch
	if frames == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:frames*ch])
	if n == 0 && err != nil {
		return 0, err
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.Channels() < 1 {
		return nil, fmt.Errorf("ogg vorbis stream with %d channels", dec.Channels())
	}

	return &source{dec: dec}, nil
}
