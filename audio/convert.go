// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audscribe/utils"
)

// Convert returns src resampled to rate and mapped to channels channels.
// Stages that would be a no-op are skipped.
func Convert(src Source, rate, channels int) (Source, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}

	var out Source = src
	if src.SampleRate() != rate {
		out = NewResampler(out, rate)
	}

	return MatchChannels(out, channels)
}

// ResampleToMono16 resamples src to targetRate, mixes it to mono and
// collects the whole stream as 16-bit PCM.
//
//	src, _ := decoder.Decode(file)
//	pcm16, rate, err := audio.ResampleToMono16(src, 8000, 4096)
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := NewMonoMixer(NewResampler(src, targetRate))

	var pcm16 []int16
	buf := make([]float32, max(1, bufferSize))

	for {
		n, err := mono.ReadSamples(buf)
		for _, s := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(s))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("%w", err)
		}
	}

	return pcm16, targetRate, nil
}
