// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"

	"github.com/ik5/audscribe/endian"
)

// Header is the MThd chunk.
type Header struct {
	ChunkID   [4]byte
	ChunkSize uint32
	Format    uint16 // 0 single track, 1 simultaneous tracks, 2 independent tracks
	Tracks    uint16
	Division  uint16 // pulses per quarter note
}

// NewHeader fills in a header. Zero tracks and a zero division fall back to
// one track and DefaultPPQ.
func NewHeader(format, tracks, division uint16) (Header, error) {
	if tracks == 0 {
		tracks = 1
	}
	if division == 0 {
		division = DefaultPPQ
	}

	switch {
	case format > 2:
		return Header{}, fmt.Errorf("%w: format %d", ErrInvalidParameter, format)
	case format == 0 && tracks > 1:
		return Header{}, fmt.Errorf("%w: format 0 holds a single track, got %d", ErrInvalidParameter, tracks)
	case division&smpteFlag != 0:
		return Header{}, fmt.Errorf("%w: SMPTE time division 0x%04x", ErrInvalidParameter, division)
	}

	return Header{
		ChunkID:   headerTag,
		ChunkSize: headerChunkSize,
		Format:    format,
		Tracks:    tracks,
		Division:  division,
	}, nil
}

// MarshalBinary packs the header into its 14 byte wire form.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// AppendBinary appends the wire form of h to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	var buf [HeaderSize]byte

	endian.PutTag(buf[0:4], h.ChunkID)
	endian.Put32(buf[4:8], h.ChunkSize, endian.BigEndian)
	endian.Put16(buf[8:10], h.Format, endian.BigEndian)
	endian.Put16(buf[10:12], h.Tracks, endian.BigEndian)
	endian.Put16(buf[12:14], h.Division, endian.BigEndian)

	return append(b, buf[:]...), nil
}
