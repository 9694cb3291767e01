// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// SeekBuffer is an in-memory io.WriteSeeker. Writes past the end grow the
// buffer; seeking past the end and writing leaves zeros in the gap.
type SeekBuffer struct {
	data []byte
	pos  int64
}

func (b *SeekBuffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if end > int64(len(b.data)) {
		b.data = append(b.data, make([]byte, end-int64(len(b.data)))...)
	}
	copy(b.data[b.pos:end], p)
	b.pos = end

	return len(p), nil
}

func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("audiotest: negative position")
	}
	b.pos = pos

	return pos, nil
}

// Bytes returns everything written.
func (b *SeekBuffer) Bytes() []byte { return b.data }

// Len returns the size of the written data.
func (b *SeekBuffer) Len() int { return len(b.data) }
