// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"

	"golang.org/x/text/transform"
)

// SetText emits a text-like meta event (MetaText, MetaTrackName,
// MetaInstrument and so on). When enc is non-nil the UTF-8 input is run
// through it first, so callers can store Latin-1 text for older readers.
// The encoded payload is limited to 255 bytes.
func (t *Track) SetText(delta uint32, kind byte, text string, enc transform.Transformer) error {
	if kind == 0 || kind > 0x0F {
		return fmt.Errorf("%w: meta type 0x%02x is not a text event", ErrInvalidParameter, kind)
	}

	payload := []byte(text)
	if enc != nil {
		out, _, err := transform.Bytes(enc, payload)
		if err != nil {
			return fmt.Errorf("%w: encoding text: %w", ErrInvalidParameter, err)
		}
		payload = out
	}

	if len(payload) > 255 {
		return fmt.Errorf("%w: text of %d bytes, at most 255", ErrInvalidParameter, len(payload))
	}

	return t.AddEvent(delta, StatusMeta, kind, byte(len(payload)), payload...)
}
