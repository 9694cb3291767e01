// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrUnsupportedFormat   = errors.New("unsupported sample format")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrNilHeader           = errors.New("nil WAV header")
	ErrWriterClosed        = errors.New("WAV writer closed")
)
