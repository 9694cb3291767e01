// SPDX-License-Identifier: EPL-2.0

package varint

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when more than MaxLen bytes carry the continuation bit.
	ErrMalformed = errors.New("malformed variable-length quantity")

	// ErrOverflow is returned when a quantity does not fit in 32 bits.
	ErrOverflow = fmt.Errorf("%w: value exceeds 32 bits", ErrMalformed)
)
