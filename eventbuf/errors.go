// SPDX-License-Identifier: EPL-2.0

package eventbuf

import "errors"

var (
	ErrOutOfMemory  = errors.New("event buffer cannot grow any further")
	ErrNegativeSize = errors.New("negative free space requested")
)
