// SPDX-License-Identifier: EPL-2.0

// Package varint encodes and decodes MIDI variable-length quantities.
//
// A quantity is stored as big-endian groups of 7 bits. Every byte except the
// last one has its high bit set.
//
//	0x00000000 -> 00
//	0x0000007F -> 7F
//	0x00000080 -> 81 00
//	0x0FFFFFFF -> FF FF FF 7F
//	0xFFFFFFFF -> 8F FF FF FF 7F
package varint

import (
	"io"
)

const (
	// MaxLen is the longest encoding of a 32-bit value.
	MaxLen = 5

	continuation = 0x80
	groupMask    = 0x7F
)

// Len returns the number of bytes Encode(v) produces.
func Len(v uint32) int {
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

// Encode returns the encoding of v.
func Encode(v uint32) []byte {
	return Append(make([]byte, 0, MaxLen), v)
}

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint32) []byte {
	var buf [MaxLen]byte
	pos := MaxLen - 1

	// least significant group goes last, without continuation bit
	buf[pos] = byte(v & groupMask)
	for v >>= 7; v > 0; v >>= 7 {
		pos--
		buf[pos] = continuation | byte(v&groupMask)
	}

	return append(dst, buf[pos:]...)
}

// Decode reads one quantity from the start of b. It returns the value and the
// number of bytes consumed.
func Decode(b []byte) (uint32, int, error) {
	var v uint64
	for i := 0; i < MaxLen; i++ {
		if i >= len(b) {
			return 0, i, io.ErrUnexpectedEOF
		}
		c := b[i]
		v = v<<7 | uint64(c&groupMask)
		if c&continuation == 0 {
			if v > 0xFFFFFFFF {
				return 0, i + 1, ErrOverflow
			}
			return uint32(v), i + 1, nil
		}
	}
	return 0, MaxLen, ErrMalformed
}

// Read decodes one quantity from r, returning the value and the number of
// bytes consumed.
func Read(r io.ByteReader) (uint32, int, error) {
	var v uint64
	for i := 0; i < MaxLen; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, i, err
		}
		v = v<<7 | uint64(c&groupMask)
		if c&continuation == 0 {
			if v > 0xFFFFFFFF {
				return 0, i + 1, ErrOverflow
			}
			return uint32(v), i + 1, nil
		}
	}
	return 0, MaxLen, ErrMalformed
}
