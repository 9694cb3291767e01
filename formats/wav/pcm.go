// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"math"

	"github.com/ik5/audscribe/endian"
	"github.com/ik5/audscribe/utils"
)

// PreparePCM converts samples held in host byte order to the little-endian
// order WAV data uses, in place. 8-bit samples are left alone.
func PreparePCM(samples []byte, bitDepth int) error {
	switch bitDepth {
	case 8:
		return nil
	case 16:
		if len(samples)%2 != 0 {
			return fmt.Errorf("%w: %d bytes of 16-bit samples", ErrInvalidParameter, len(samples))
		}
		if endian.Host() == endian.LittleEndian {
			return nil
		}
		for i := 0; i < len(samples); i += 2 {
			v := endian.Uint16(samples[i:], endian.Host())
			endian.Put16(samples[i:], v, endian.LittleEndian)
		}
	case 32:
		if len(samples)%4 != 0 {
			return fmt.Errorf("%w: %d bytes of 32-bit samples", ErrInvalidParameter, len(samples))
		}
		if endian.Host() == endian.LittleEndian {
			return nil
		}
		for i := 0; i < len(samples); i += 4 {
			v := endian.Uint32(samples[i:], endian.Host())
			endian.Put32(samples[i:], v, endian.LittleEndian)
		}
	default:
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}

	return nil
}

// EncodeSamples appends src to dst as raw samples in host byte order:
// unsigned 8-bit PCM, signed 16-bit PCM or 32-bit IEEE float. Run the result
// through PreparePCM before writing it.
func EncodeSamples(dst []byte, src []float32, bitDepth int) ([]byte, error) {
	host := endian.Host()

	switch bitDepth {
	case 8:
		for _, s := range src {
			dst = append(dst, utils.Float32ToUint8(s))
		}
	case 16:
		var b [2]byte
		for _, s := range src {
			endian.Put16(b[:], uint16(utils.Float32ToInt16(s)), host)
			dst = append(dst, b[:]...)
		}
	case 32:
		var b [4]byte
		for _, s := range src {
			endian.Put32(b[:], math.Float32bits(s), host)
			dst = append(dst, b[:]...)
		}
	default:
		return dst, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}

	return dst, nil
}
