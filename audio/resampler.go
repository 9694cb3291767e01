// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audscribe/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count. A one-pole low-pass
// filter runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// win holds frames t-1, t0, t+1 and t+2; output is interpolated
	// between win[1] and win[2] at fraction pos.
	win    [4][]float32
	valid  [4]bool
	primed bool
	pos    float64

	in     []float32 // buffered source samples
	inPos  int
	inLen  int
	srcEOF bool
	srcErr error

	filter bool
	alpha  float32
	lp     []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		in:       make([]float32, 4096-4096%max(1, channels)),
		filter:   ratio > 1,
		alpha:    0.5,
		lp:       make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next copies the next source frame into frame. It reports false once the
// source is drained.
func (r *Resampler) next(frame []float32, first bool) bool {
	for r.inPos+r.channels > r.inLen {
		if r.srcEOF || r.srcErr != nil {
			return false
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case errors.Is(err, io.EOF):
			r.srcEOF = true
		case err != nil:
			r.srcErr = err
		case n == 0:
			r.srcEOF = true
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.filter {
		if first {
			copy(r.lp, frame)
		}
		for c, x := range frame {
			r.lp[c] = r.alpha*x + (1-r.alpha)*r.lp[c]
			frame[c] = r.lp[c]
		}
	}

	return true
}

func (r *Resampler) prime() bool {
	r.primed = true
	if !r.next(r.win[1], true) {
		return false
	}

	copy(r.win[0], r.win[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		r.valid[i] = r.next(r.win[i], false)
		if !r.valid[i] {
			copy(r.win[i], r.win[i-1])
		}
	}

	return true
}

func (r *Resampler) shift() {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	r.valid[3] = r.valid[2] && r.next(r.win[3], false)
	if !r.valid[3] {
		copy(r.win[3], r.win[2])
	}
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed && !r.prime() {
		return 0, r.endErr()
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			r.shift()
		}

		// past the last frame, or between it and the padding after it
		if !r.valid[1] || (!r.valid[2] && r.pos > 0) {
			return written * r.channels, r.endErr()
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

func (r *Resampler) endErr() error {
	if r.srcErr != nil {
		return fmt.Errorf("%w", r.srcErr)
	}
	return io.EOF
}
