// SPDX-License-Identifier: EPL-2.0

package transcribe

import (
	"errors"
	"fmt"
)

var (
	ErrMidiBuild   = errors.New("MIDI build failed")
	ErrInvalidNote = errors.New("invalid note")
	ErrNoteList    = errors.New("malformed note list")
)

// BuildError reports the note whose events could not be added to a track.
// It matches both ErrMidiBuild and the underlying cause with errors.Is.
type BuildError struct {
	Index int
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%v: note %d: %v", ErrMidiBuild, e.Index, e.Err)
}

func (e *BuildError) Unwrap() []error {
	return []error{ErrMidiBuild, e.Err}
}
