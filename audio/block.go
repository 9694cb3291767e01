// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadBlock fills dst from src, reading as many times as needed. It returns
// len(dst) and a nil error for every full block; the final, possibly empty,
// block comes back with io.EOF.
func ReadBlock(src Source, dst []float32) (int, error) {
	filled := 0
	idle := 0

	for filled < len(dst) {
		n, err := src.ReadSamples(dst[filled:])
		filled += n

		switch {
		case errors.Is(err, io.EOF):
			return filled, io.EOF
		case err != nil:
			return filled, fmt.Errorf("%w", err)
		case n == 0:
			// some decoders return 0, nil while refilling
			idle++
			if idle > maxIdleReads {
				return filled, io.ErrNoProgress
			}
		default:
			idle = 0
		}
	}

	return filled, nil
}

const maxIdleReads = 100

// ReadAll drains src into a single slice using reads of bufSize samples.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	bufSize -= bufSize % max(1, src.Channels())
	if bufSize <= 0 {
		bufSize = max(1, src.Channels())
	}

	var out []float32
	buf := make([]float32, bufSize)

	for {
		n, err := ReadBlock(src, buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
