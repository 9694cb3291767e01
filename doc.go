// SPDX-License-Identifier: EPL-2.0

// Package audscribe turns recorded audio into Standard MIDI Files.
//
// The pipeline is built from the subpackages:
//   - formats and formats/... decode WAV, AIFF, MP3 and Ogg Vorbis into an
//     audio.Source
//   - extract finds notes in a mono stream
//   - transcribe maps notes onto a MIDI timeline
//   - midi assembles and writes the file
//
// # Quick Start
//
//	src, _ := audscribe.Open("melody.wav")
//	defer src.Close()
//
//	out, _ := os.Create("melody.mid")
//	defer out.Close()
//
//	notes, _, err := audscribe.Transcribe(ctx, src, out, audscribe.Options{PPQ: 96})
//
// # Lower Level
//
// A note list from any other source can be written directly:
//
//	notes := []transcribe.Note{{Pitch: 60, Velocity: 100, Tempo: 120, Start: 0, Stop: 0.5}}
//	_, err := audscribe.WriteMIDI(w, notes, 96)
//
// Recording to WAV lives in the record package, and formats/wav can build
// headers and files on its own.
package audscribe
