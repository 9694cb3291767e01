// SPDX-License-Identifier: EPL-2.0

package extract

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid extraction options")
	ErrInvalidTempo   = errors.New("tempo out of range")
)
