// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis. Samples come out interleaved, already in
// float32, at the stream's own rate and channel count.
package vorbis
