// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder of this module into an audio.Registry.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/audscribe/audio"
	"github.com/ik5/audscribe/formats/aiff"
	"github.com/ik5/audscribe/formats/mp3"
	"github.com/ik5/audscribe/formats/vorbis"
	"github.com/ik5/audscribe/formats/wav"
)

var ErrUnknownFormat = errors.New("unknown audio format")

var aliases = map[string]string{
	"wave": "wav",
	"aif":  "aiff",
	"aifc": "aiff",
	"oga":  "ogg",
}

// NewRegistry returns a registry holding the wav, aiff, mp3 and ogg
// decoders.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// Key maps a file name to a registry key by its extension.
func Key(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if alias, ok := aliases[ext]; ok {
		return alias
	}
	return ext
}

// Lookup picks the decoder for a file name from r.
func Lookup(r *audio.Registry, path string) (audio.Decoder, error) {
	key := Key(path)
	d, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	return d, nil
}
