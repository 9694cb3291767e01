// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audscribe/internal/audiotest"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	h := NewHeader(16, 2, 44100)
	samples := make([]byte, 1000)

	var buf bytes.Buffer
	require.NoError(t, WriteFile(&buf, h, samples))

	require.Equal(t, 1044, buf.Len())
	data := buf.Bytes()
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(1000), binary.LittleEndian.Uint32(data[40:44]))
	assert.Equal(t, uint32(1036), binary.LittleEndian.Uint32(data[4:8]))
}

func TestWriteWAV16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []int16
	}{
		{"empty", nil},
		{"single", []int16{12345}},
		{"spans chunks", make([]int16, 20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, WriteWAV16(&buf, 16000, tt.samples))

			data := buf.Bytes()
			require.Len(t, data, HeaderSize+2*len(tt.samples))
			assert.Equal(t, "RIFF", string(data[0:4]))
			assert.Equal(t, "WAVE", string(data[8:12]))
			assert.Equal(t, uint32(2*len(tt.samples)), binary.LittleEndian.Uint32(data[40:44]))

			for i, s := range tt.samples {
				got := int16(binary.LittleEndian.Uint16(data[HeaderSize+2*i:]))
				if got != s {
					t.Fatalf("sample %d = %d, want %d", i, got, s)
				}
			}
		})
	}
}

func TestWriteWAV16_InvalidRate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, WriteWAV16(&bytes.Buffer{}, 0, nil), ErrInvalidParameter)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteWAV16_WriterError(t *testing.T) {
	t.Parallel()

	assert.Error(t, WriteWAV16(failWriter{}, 8000, []int16{1}))
}

func TestWriter_ReadBackWithGoAudio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth uint16
		format   uint16
	}{
		{8, FormatPCM},
		{16, FormatPCM},
		{32, FormatIEEEFloat},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.bitDepth), func(t *testing.T) {
			t.Parallel()

			var out audiotest.SeekBuffer
			w, err := NewWriter(&out, tt.bitDepth, 2, 22050)
			require.NoError(t, err)

			block := make([]float32, 2*441)
			for range 10 {
				require.NoError(t, w.WriteSamples(block))
			}
			require.NoError(t, w.Close())
			require.NoError(t, w.Close())

			frames := 4410
			dataSize := frames * 2 * int(tt.bitDepth) / 8
			require.Equal(t, HeaderSize+dataSize, out.Len())
			assert.InDelta(t, 0.2, w.Duration(), 1e-9)
			assert.Equal(t, uint32(dataSize), w.Header().DataSize)

			dec := gowav.NewDecoder(bytes.NewReader(out.Bytes()))
			require.True(t, dec.IsValidFile())
			assert.Equal(t, tt.bitDepth, dec.BitDepth)
			assert.Equal(t, uint16(2), dec.NumChans)
			assert.Equal(t, uint32(22050), dec.SampleRate)
			assert.Equal(t, tt.format, dec.WavAudioFormat)

			buf := &goaudio.IntBuffer{Data: make([]int, 2*frames+10)}
			n, err := dec.PCMBuffer(buf)
			require.NoError(t, err)
			assert.Equal(t, 2*frames, n)
		})
	}
}

func TestWriter_WriteAfterClose(t *testing.T) {
	t.Parallel()

	var out audiotest.SeekBuffer
	w, err := NewWriter(&out, 16, 1, 8000)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, HeaderSize, out.Len())
	assert.ErrorIs(t, w.WriteSamples([]float32{0}), ErrWriterClosed)
}

func TestWriter_AfterExistingData(t *testing.T) {
	t.Parallel()

	prefix := []byte("0123456789")

	var out audiotest.SeekBuffer
	_, err := out.Write(prefix)
	require.NoError(t, err)

	w, err := NewWriter(&out, 16, 1, 8000)
	require.NoError(t, err)
	require.NoError(t, w.WriteSamples(make([]float32, 100)))
	require.NoError(t, w.Close())

	data := out.Bytes()
	require.Len(t, data, len(prefix)+HeaderSize+200)
	assert.Equal(t, prefix, data[:len(prefix)])

	file := data[len(prefix):]
	assert.Equal(t, "RIFF", string(file[0:4]))
	assert.Equal(t, uint32(HeaderSize+200-8), binary.LittleEndian.Uint32(file[4:8]))
	assert.Equal(t, "data", string(file[36:40]))
	assert.Equal(t, uint32(200), binary.LittleEndian.Uint32(file[40:44]))
	assert.Equal(t, uint32(200), w.Header().DataSize)

	pos, err := out.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), pos)
}

func TestNewWriter_Invalid(t *testing.T) {
	t.Parallel()

	var out audiotest.SeekBuffer

	_, err := NewWriter(&out, 24, 1, 8000)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = NewWriter(&out, 16, 0, 8000)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewWriter(&out, 16, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 16000)
	var buf bytes.Buffer

	for b.Loop() {
		buf.Reset()
		if err := WriteWAV16(&buf, 16000, samples); err != nil {
			b.Fatal(err)
		}
	}
}
