// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"errors"
	"fmt"

	"github.com/ik5/audscribe/eventbuf"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidChannel   = errors.New("MIDI channel out of range (0-15)")
	ErrInvalidPitch     = errors.New("MIDI pitch out of range (0-127)")
	ErrInvalidTempo     = fmt.Errorf("%w: tempo must be greater than zero", ErrInvalidParameter)
	ErrNotFinalized     = errors.New("track has not been finalized")
	ErrTrackFinalized   = errors.New("track already finalized")
	ErrIO               = errors.New("MIDI write failed")

	// ErrOutOfMemory is returned when a track buffer cannot grow.
	ErrOutOfMemory = eventbuf.ErrOutOfMemory
)
