// SPDX-License-Identifier: EPL-2.0

package extract

import "fmt"

const (
	DefaultWindow        = 512
	DefaultHop           = 256
	DefaultSilenceDB     = -90.0
	DefaultReleaseDropDB = 10.0
	DefaultMinHz         = 40.0
	DefaultMaxHz         = 2000.0

	MinBPM = 20
	MaxBPM = 500

	// tempoAccuracy is the multiple per note tempos are rounded to.
	tempoAccuracy = 5
)

// Options control a single extraction run.
type Options struct {
	Window int // analysis window in samples
	Hop    int // samples consumed per block

	// BPM fixes the tempo of every note. Zero asks for detection.
	BPM uint

	SilenceDB     float64 // blocks quieter than this are silence
	ReleaseDropDB float64 // a note ends after dropping this far below its peak

	MinHz, MaxHz float64 // pitch search range
}

// DefaultOptions returns the options used by the audiotranscribe command.
func DefaultOptions() Options {
	return Options{
		Window:        DefaultWindow,
		Hop:           DefaultHop,
		SilenceDB:     DefaultSilenceDB,
		ReleaseDropDB: DefaultReleaseDropDB,
		MinHz:         DefaultMinHz,
		MaxHz:         DefaultMaxHz,
	}
}

func (o Options) withDefaults() Options {
	if o.SilenceDB == 0 {
		o.SilenceDB = DefaultSilenceDB
	}
	if o.ReleaseDropDB == 0 {
		o.ReleaseDropDB = DefaultReleaseDropDB
	}
	if o.MinHz == 0 {
		o.MinHz = DefaultMinHz
	}
	if o.MaxHz == 0 {
		o.MaxHz = DefaultMaxHz
	}
	return o
}

// Validate checks the block geometry and the tempo.
func (o Options) Validate() error {
	switch {
	case o.Hop > o.Window:
		return fmt.Errorf("%w: hop size %d larger than window size %d", ErrInvalidOptions, o.Hop, o.Window)
	case o.Hop < 1:
		return fmt.Errorf("%w: hop size cannot be less than 1 sample", ErrInvalidOptions)
	case o.Window < 2:
		return fmt.Errorf("%w: window size cannot be less than 2 samples", ErrInvalidOptions)
	case o.MinHz < 0 || o.MaxHz <= o.MinHz:
		return fmt.Errorf("%w: pitch range %v-%v Hz", ErrInvalidOptions, o.MinHz, o.MaxHz)
	}

	return checkBPM(o.BPM)
}

func checkBPM(bpm uint) error {
	if bpm != 0 && (bpm < MinBPM || bpm > MaxBPM) {
		return fmt.Errorf("%w: %d bpm, want 0 or %d-%d", ErrInvalidTempo, bpm, MinBPM, MaxBPM)
	}
	return nil
}
