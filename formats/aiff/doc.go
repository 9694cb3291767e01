// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//
// Signed PCM of 8, 16, 24 and 32 bits is accepted and returned as float32
// samples in [-1, 1]. Compressed AIFF-C files are rejected with
// ErrUnsupportedBitDepth or ErrNotAiffFile depending on what the header
// claims.
package aiff
