// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks shared by the
// recorder and the transcriber.
//
// Everything is a Source: decoders, synthetic generators and the processing
// stages that wrap them.
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mono, _ := audio.Convert(src, 16000, 1) // Resampler + MonoMixer
//
//	block := make([]float32, 512)
//	for {
//	    n, err := audio.ReadBlock(mono, block)
//	    process(block[:n])
//	    if err != nil {
//	        break // io.EOF at the end of the stream
//	    }
//	}
//
// Samples are float32 in [-1, 1], interleaved by frame. Sources report
// io.EOF once drained; ReadBlock turns the short reads some decoders produce
// into full fixed-size blocks, which is what the analysers expect.
//
// Registry maps format keys to decoders; formats.NewRegistry fills one with
// every decoder in this module.
package audio
