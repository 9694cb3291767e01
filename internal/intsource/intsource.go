// SPDX-License-Identifier: EPL-2.0

// Package intsource adapts go-audio decoders, which hand out integer PCM
// through PCMBuffer, to audio.Source.
package intsource

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audscribe/utils"
)

// DefaultBufSize is the read size reported by BufSize.
const DefaultBufSize = 4096

// PCMReader is the subset of the go-audio wav and aiff decoders used here.
type PCMReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Encoding tells how the integers from PCMBuffer map to samples.
type Encoding int

const (
	Signed   Encoding = iota // two's complement at the stored bit depth
	Unsigned                 // 8-bit WAV, biased by 128
	Float                    // IEEE 754 bits in a 32-bit integer
)

// Source implements audio.Source on top of a PCMReader.
type Source struct {
	dec        PCMReader
	sampleRate int
	channels   int
	bitDepth   int
	enc        Encoding
	intBuf     *goaudio.IntBuffer
}

// New wraps dec, which yields samples of bitDepth bits encoded as enc.
func New(dec PCMReader, bitDepth int, enc Encoding) (*Source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("invalid PCM format %v", format)
	}
	if enc == Float && bitDepth != 32 {
		return nil, fmt.Errorf("float samples of %d bits", bitDepth)
	}

	return &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		enc:        enc,
	}, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return DefaultBufSize
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	s.convert(dst[:n], s.intBuf.Data[:n])

	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

func (s *Source) convert(dst []float32, src []int) {
	switch s.enc {
	case Float:
		for i, v := range src {
			dst[i] = math.Float32frombits(uint32(int32(v)))
		}
	case Unsigned:
		for i, v := range src {
			dst[i] = float32(v-128) / utils.FullScale(8)
		}
	default:
		scale := utils.FullScale(s.bitDepth)
		for i, v := range src {
			dst[i] = float32(v) / scale
		}
	}
}

// ReadSeeker returns r when it can seek, otherwise it buffers the whole
// stream in memory.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
