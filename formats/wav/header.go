// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/ik5/audscribe/endian"
)

// Values of the audio format field.
const (
	FormatUnknown   uint16 = 0x0000
	FormatPCM       uint16 = 0x0001
	FormatIEEEFloat uint16 = 0x0003
)

// HeaderSize is the length of the canonical RIFF/WAVE header; sample data
// starts right after it.
const HeaderSize = 4 + 4 + 4 + // RIFF chunk
	4 + 4 + fmtChunkSize + // fmt chunk
	4 + 4 // data chunk prefix

const fmtChunkSize = 2 + 2 + 4 + 4 + 2 + 2

var (
	riffTag = endian.Tag("RIFF")
	waveTag = endian.Tag("WAVE")
	fmtTag  = endian.Tag("fmt ")
	dataTag = endian.Tag("data")
)

// Header is a canonical 44 byte WAVE header.
type Header struct {
	ChunkID      [4]byte
	RIFFSize     uint32 // size of everything after this field
	Format       [4]byte
	FmtChunkID   [4]byte
	FmtChunkSize uint32
	AudioFormat  uint16
	Channels     uint16
	SampleRate   uint32
	ByteRate     uint32
	BlockAlign   uint16
	BitDepth     uint16
	DataChunkID  [4]byte
	DataSize     uint32 // size of the sample data following the header
}

// AudioFormatFor returns the audio format tag matching a bit depth. Depths
// other than 8, 16 and 32 yield FormatUnknown.
func AudioFormatFor(bitDepth uint16) uint16 {
	switch bitDepth {
	case 8, 16:
		return FormatPCM
	case 32:
		return FormatIEEEFloat
	default:
		return FormatUnknown
	}
}

// NewHeader returns a header for the given layout. The size fields stay zero
// until Finalize.
func NewHeader(bitDepth, channels uint16, sampleRate uint32) *Header {
	blockAlign := uint32(channels) * uint32(bitDepth) / 8

	return &Header{
		ChunkID:      riffTag,
		Format:       waveTag,
		FmtChunkID:   fmtTag,
		FmtChunkSize: fmtChunkSize,
		AudioFormat:  AudioFormatFor(bitDepth),
		Channels:     channels,
		SampleRate:   sampleRate,
		ByteRate:     sampleRate * blockAlign,
		BlockAlign:   uint16(blockAlign),
		BitDepth:     bitDepth,
		DataChunkID:  dataTag,
	}
}

// Finalize sets the size fields from the final length of the file in bytes,
// header included.
func (h *Header) Finalize(totalFileSize int64) error {
	if h == nil {
		return ErrNilHeader
	}
	if totalFileSize < HeaderSize || totalFileSize-8 > math.MaxUint32 {
		return fmt.Errorf("%w: file size %d", ErrInvalidParameter, totalFileSize)
	}

	h.RIFFSize = uint32(totalFileSize - 8)
	h.DataSize = uint32(totalFileSize - HeaderSize)

	return nil
}

// Encode packs the header in field order. Tags are copied as is; integer
// fields are stored in order, which is LittleEndian for any file a reader
// will accept.
func (h *Header) Encode(order endian.Order) ([]byte, error) {
	if h == nil {
		return nil, ErrNilHeader
	}

	b := make([]byte, HeaderSize)

	endian.PutTag(b[0:4], h.ChunkID)
	endian.Put32(b[4:8], h.RIFFSize, order)
	endian.PutTag(b[8:12], h.Format)
	endian.PutTag(b[12:16], h.FmtChunkID)
	endian.Put32(b[16:20], h.FmtChunkSize, order)
	endian.Put16(b[20:22], h.AudioFormat, order)
	endian.Put16(b[22:24], h.Channels, order)
	endian.Put32(b[24:28], h.SampleRate, order)
	endian.Put32(b[28:32], h.ByteRate, order)
	endian.Put16(b[32:34], h.BlockAlign, order)
	endian.Put16(b[34:36], h.BitDepth, order)
	endian.PutTag(b[36:40], h.DataChunkID)
	endian.Put32(b[40:44], h.DataSize, order)

	return b, nil
}

// MarshalBinary encodes the header little-endian.
func (h *Header) MarshalBinary() ([]byte, error) {
	return h.Encode(endian.LittleEndian)
}

// WriteTo writes the little-endian header to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	b, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(b)
	if err != nil {
		return int64(n), fmt.Errorf("%w", err)
	}

	return int64(n), nil
}

// Describe prints every header field as a SIZE/NAME/VALUE table.
func (h *Header) Describe(w io.Writer) error {
	if h == nil {
		return ErrNilHeader
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SIZE\tNAME\tVALUE")
	fmt.Fprintf(tw, "4\tchunk_id\t%s\n", h.ChunkID[:])
	fmt.Fprintf(tw, "4\triff_size\t%d\n", h.RIFFSize)
	fmt.Fprintf(tw, "4\tformat\t%s\n", h.Format[:])
	fmt.Fprintf(tw, "4\tfmt_chunk_id\t%q\n", h.FmtChunkID[:])
	fmt.Fprintf(tw, "4\tfmt_chunk_size\t%d\n", h.FmtChunkSize)
	fmt.Fprintf(tw, "2\taudio_format\t%d\n", h.AudioFormat)
	fmt.Fprintf(tw, "2\tchannels\t%d\n", h.Channels)
	fmt.Fprintf(tw, "4\tsample_rate\t%d\n", h.SampleRate)
	fmt.Fprintf(tw, "4\tbyte_rate\t%d\n", h.ByteRate)
	fmt.Fprintf(tw, "2\tblock_align\t%d\n", h.BlockAlign)
	fmt.Fprintf(tw, "2\tbit_depth\t%d\n", h.BitDepth)
	fmt.Fprintf(tw, "4\tdata_chunk_id\t%s\n", h.DataChunkID[:])
	fmt.Fprintf(tw, "4\tdata_size\t%d\n", h.DataSize)

	return tw.Flush()
}
