// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams through
// github.com/hajimehoshi/go-mp3. The decoder always produces interleaved
// stereo at the stream's sample rate.
package mp3
