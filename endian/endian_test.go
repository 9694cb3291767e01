// SPDX-License-Identifier: EPL-2.0

package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost_MatchesNative(t *testing.T) {
	t.Parallel()

	b := binary.NativeEndian.AppendUint32(nil, 0x01020304)
	if Host() == LittleEndian {
		assert.Equal(t, byte(0x04), b[0])
	} else {
		assert.Equal(t, byte(0x01), b[0])
	}
}

func TestToWire_ProducesWireBytesInMemory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		order  Order
		want   []byte
		want16 []byte
	}{
		{"little", LittleEndian, []byte{0x04, 0x03, 0x02, 0x01}, []byte{0x02, 0x01}},
		{"big", BigEndian, []byte{0x01, 0x02, 0x03, 0x04}, []byte{0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Storing the converted value in host order must yield wire order.
			got := binary.NativeEndian.AppendUint32(nil, ToWire32(0x01020304, tt.order))
			assert.Equal(t, tt.want, got)

			got16 := binary.NativeEndian.AppendUint16(nil, ToWire16(0x0102, tt.order))
			assert.Equal(t, tt.want16, got16)
		})
	}
}

func TestToWire_NoOpForHostOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(0xBEEF), ToWire16(0xBEEF, Host()))
	assert.Equal(t, uint32(0xDEADBEEF), ToWire32(0xDEADBEEF, Host()))
}

func TestFromWire_Inverse(t *testing.T) {
	t.Parallel()

	for _, o := range []Order{LittleEndian, BigEndian} {
		assert.Equal(t, uint16(0x1234), FromWire16(ToWire16(0x1234, o), o))
		assert.Equal(t, uint32(0x12345678), FromWire32(ToWire32(0x12345678, o), o))
	}
}

func TestSwap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(0x3412), Swap16(0x1234))
	assert.Equal(t, uint32(0x78563412), Swap32(0x12345678))
}

func TestPutAndRead(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 6)
	Put32(buf, 176400, LittleEndian)
	Put16(buf[4:], 96, BigEndian)

	assert.Equal(t, []byte{0x10, 0xB1, 0x02, 0x00, 0x00, 0x60}, buf)
	assert.Equal(t, uint32(176400), Uint32(buf, LittleEndian))
	assert.Equal(t, uint16(96), Uint16(buf[4:], BigEndian))
}

func TestPutTag_NeverSwapped(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 4)
	PutTag(buf, Tag("MThd"))
	assert.Equal(t, "MThd", string(buf))

	assert.Equal(t, [4]byte{'f', 'm', 't', ' '}, Tag("fmt"))
}
