// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// sliceSource plays back fixed samples, at most step values per read.
type sliceSource struct {
	rate     int
	channels int
	data     []float32
	step     int
	err      error // returned once data runs out instead of io.EOF
	closed   bool
}

func (s *sliceSource) SampleRate() int { return s.rate }
func (s *sliceSource) Channels() int   { return s.channels }
func (s *sliceSource) BufSize() int    { return 64 }
func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if len(s.data) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}

	lim := len(dst)
	if s.step > 0 {
		lim = min(lim, s.step)
	}
	n := copy(dst[:lim], s.data)
	s.data = s.data[n:]

	return n, nil
}

var errBroken = errors.New("broken source")
