// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Writing
//
// A Header is built from the sample layout and finalized once the length of
// the file is known:
//
//	h := wav.NewHeader(16, 2, 44100)
//	pcm, _ := wav.EncodeSamples(nil, samples, 16)
//	wav.PreparePCM(pcm, 16)
//	wav.WriteFile(out, h, pcm)
//
// When the length is not known up front, Writer reserves the header, streams
// the samples and patches the sizes on Close:
//
//	w, _ := wav.NewWriter(file, 16, 1, 16000)
//	w.WriteSamples(block)
//	w.Close()
//
// Supported bit depths for writing are 8 (unsigned PCM), 16 (signed PCM) and
// 32 (IEEE float). Other depths still produce a header, tagged with
// FormatUnknown, but cannot be encoded from samples.
//
// # Reading
//
// Decoder wraps github.com/go-audio/wav and yields an audio.Source with
// float32 samples in [-1, 1]. PCM of 8, 16, 24 and 32 bits and 32-bit float
// files are accepted.
//
// # Layout
//
// The header is always the canonical 44 bytes: RIFF chunk (12), fmt chunk
// (24) and the data chunk prefix (8). All integers are little-endian.
package wav
