// SPDX-License-Identifier: EPL-2.0

// Package endian converts fixed-width integers between host byte order and the
// byte order a container format stores on disk.
//
// WAVE files keep every integer field little-endian, Standard MIDI Files keep
// them big-endian. Four character chunk tags ("RIFF", "MThd", ...) are plain
// bytes and are copied as-is, whatever the host order is.
package endian

import (
	"encoding/binary"
	"math/bits"
)

// Order is the byte order of a wire format.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

var host = detectHost()

func detectHost() Order {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}

// Host returns the byte order of the running machine.
func Host() Order { return host }

func (o Order) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// ByteOrder returns the encoding/binary implementation of o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func Swap16(v uint16) uint16 { return bits.ReverseBytes16(v) }
func Swap32(v uint32) uint32 { return bits.ReverseBytes32(v) }

// ToWire16 returns v arranged so that its in-memory representation on the
// host is in the target order. It only swaps when the orders differ.
func ToWire16(v uint16, target Order) uint16 {
	if target == host {
		return v
	}
	return Swap16(v)
}

// ToWire32 is the 32-bit variant of ToWire16.
func ToWire32(v uint32, target Order) uint32 {
	if target == host {
		return v
	}
	return Swap32(v)
}

// FromWire16 undoes ToWire16. Swapping is its own inverse.
func FromWire16(v uint16, source Order) uint16 { return ToWire16(v, source) }

// FromWire32 undoes ToWire32.
func FromWire32(v uint32, source Order) uint32 { return ToWire32(v, source) }

// Put16 stores v into dst[0:2] in the given order.
func Put16(dst []byte, v uint16, o Order) {
	o.ByteOrder().PutUint16(dst, v)
}

// Put32 stores v into dst[0:4] in the given order.
func Put32(dst []byte, v uint32, o Order) {
	o.ByteOrder().PutUint32(dst, v)
}

func Uint16(src []byte, o Order) uint16 { return o.ByteOrder().Uint16(src) }
func Uint32(src []byte, o Order) uint32 { return o.ByteOrder().Uint32(src) }

// PutTag copies a four character chunk identifier into dst[0:4].
func PutTag(dst []byte, tag [4]byte) {
	copy(dst[:4], tag[:])
}

// Tag converts a four character string into a chunk identifier.
// Shorter strings are padded with spaces.
func Tag(s string) [4]byte {
	t := [4]byte{' ', ' ', ' ', ' '}
	copy(t[:], s)
	return t
}
