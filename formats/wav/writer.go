// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/audscribe/utils"
)

// WriteFile finalizes h for len(samples) bytes of little-endian sample data
// and writes the header followed by the samples.
func WriteFile(w io.Writer, h *Header, samples []byte) error {
	if h == nil {
		return ErrNilHeader
	}

	if err := h.Finalize(HeaderSize + int64(len(samples))); err != nil {
		return err
	}
	if _, err := h.WriteTo(w); err != nil {
		return err
	}
	if _, err := w.Write(samples); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}

	h := NewHeader(16, 1, uint32(sampleRate))
	if err := h.Finalize(HeaderSize + int64(len(samples))*2); err != nil {
		return err
	}
	if _, err := h.WriteTo(w); err != nil {
		return err
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, 0, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]

		buf = buf[:0]
		for _, s := range chunk {
			buf = append(buf, byte(s), byte(uint16(s)>>8))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Writer streams samples into a WAV file on a seekable writer. The header is
// reserved on the first write and rewritten with the final sizes by Close.
type Writer struct {
	ws      io.WriteSeeker
	header  *Header
	base    int64 // offset of the header in ws
	started bool
	closed  bool
	written int64
	scratch []byte
}

// NewWriter returns a Writer for the given layout. Only 8, 16 and 32 bit
// depths can be encoded from float samples.
func NewWriter(ws io.WriteSeeker, bitDepth, channels uint16, sampleRate uint32) (*Writer, error) {
	switch {
	case AudioFormatFor(bitDepth) == FormatUnknown:
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	case channels == 0:
		return nil, fmt.Errorf("%w: zero channels", ErrInvalidParameter)
	case sampleRate == 0:
		return nil, fmt.Errorf("%w: zero sample rate", ErrInvalidParameter)
	}

	return &Writer{
		ws:     ws,
		header: NewHeader(bitDepth, channels, sampleRate),
	}, nil
}

// Header returns the header; its sizes are final once Close returns.
func (w *Writer) Header() *Header { return w.header }

// DataSize returns the number of sample bytes written so far.
func (w *Writer) DataSize() int64 { return w.written }

// Duration returns the amount of audio written, in seconds.
func (w *Writer) Duration() float64 {
	if w.header.ByteRate == 0 {
		return 0
	}
	return float64(w.written) / float64(w.header.ByteRate)
}

func (w *Writer) start() error {
	if w.started {
		return nil
	}

	base, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	w.base = base

	// placeholder, sizes are patched by Close
	if _, err := w.header.WriteTo(w.ws); err != nil {
		return err
	}
	w.started = true

	return nil
}

// Write appends raw little-endian sample bytes.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if err := w.start(); err != nil {
		return 0, err
	}

	n, err := w.ws.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// WriteSamples encodes interleaved float samples at the header's bit depth
// and appends them.
func (w *Writer) WriteSamples(samples []float32) error {
	var err error

	bits := int(w.header.BitDepth)
	w.scratch, err = EncodeSamples(w.scratch[:0], samples, bits)
	if err != nil {
		return err
	}
	if err := PreparePCM(w.scratch, bits); err != nil {
		return err
	}

	_, err = w.Write(w.scratch)
	return err
}

// Close finalizes the header from the bytes written since the header and
// rewrites it in place. The underlying writer is not closed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if err := w.start(); err != nil {
		return err
	}
	w.closed = true

	end, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := w.header.Finalize(end - w.base); err != nil {
		return err
	}

	if _, err := w.ws.Seek(w.base, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := w.header.WriteTo(w.ws); err != nil {
		return err
	}
	if _, err := w.ws.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Float32ToPCM16 converts float samples to 16-bit PCM for WriteWAV16.
func Float32ToPCM16(dst []int16, src []float32) []int16 {
	for _, s := range src {
		dst = append(dst, utils.Float32ToInt16(s))
	}
	return dst
}
