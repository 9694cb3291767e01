// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/internal/intsource"
)

// Decoder reads PCM (8, 16, 24, 32 bit) and 32-bit IEEE float WAV files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intsource.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	enc := intsource.Signed
	switch {
	case dec.WavAudioFormat == FormatIEEEFloat && dec.BitDepth == 32:
		enc = intsource.Float
	case dec.WavAudioFormat != FormatPCM:
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	case dec.BitDepth == 8:
		enc = intsource.Unsigned
	case dec.BitDepth != 16 && dec.BitDepth != 24 && dec.BitDepth != 32:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	src, err := intsource.New(dec, int(dec.BitDepth), enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	return src, nil
}
