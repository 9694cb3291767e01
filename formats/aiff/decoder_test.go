// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audscribe/internal/audiotest"
)

func encodeAIFF(t testing.TB, rate, bitDepth, channels int, data []int) []byte {
	t.Helper()

	var out audiotest.SeekBuffer
	enc := goaiff.NewEncoder(&out, rate, bitDepth, channels)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())

	return out.Bytes()
}

func TestDecoder_16Bit(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 22050, 16, 2, []int{0, 16384, -16384, 32767, -32768, 8192})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 22050, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	assert.ErrorIs(t, err, io.EOF)
	require.Equal(t, 6, n)
	assert.InDeltaSlice(t, []float32{0, 0.5, -0.5, 0.99997, -1, 0.25}, buf[:n], 1e-4)
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not AIFF data")},
		{"padding", []byte(strings.Repeat("x", 64))},
		{"riff wave", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
		{"form of another type", []byte("FORM\x00\x00\x00\x04WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrNotAiffFile)
		})
	}
}

func TestDecoder_Metadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate     int
		channels int
	}{
		{8000, 1},
		{22050, 2},
		{44100, 1},
		{48000, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.rate, tt.channels), func(t *testing.T) {
			t.Parallel()

			data := encodeAIFF(t, tt.rate, 16, tt.channels, make([]int, 4*tt.channels))

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			assert.Equal(t, tt.rate, src.SampleRate())
			assert.Equal(t, tt.channels, src.Channels())
			assert.Positive(t, src.BufSize())
			assert.NoError(t, src.Close())
		})
	}
}

func TestDecoder_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		want     float32
	}{
		{"8-bit max", 8, 127, 127.0 / 128.0},
		{"8-bit min", 8, -128, -1},
		{"16-bit max", 16, 32767, 32767.0 / 32768.0},
		{"16-bit min", 16, -32768, -1},
		{"24-bit max", 24, 8388607, 8388607.0 / 8388608.0},
		{"24-bit half", 24, -4194304, -0.5},
		{"32-bit max", 32, 2147483647, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := encodeAIFF(t, 44100, tt.bitDepth, 1, []int{tt.input})

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			dst := make([]float32, 4)
			n, _ := src.ReadSamples(dst)
			require.Equal(t, 1, n)
			assert.InDelta(t, tt.want, dst[0], 1e-3)
		})
	}
}

func TestDecoder_ReadSizes(t *testing.T) {
	t.Parallel()

	in := make([]int, 100)
	for i := range in {
		in[i] = i * 100
	}
	data := encodeAIFF(t, 44100, 16, 1, in)

	tests := []struct {
		name string
		dst  int
	}{
		{"single samples", 1},
		{"partial", 7},
		{"exact", 100},
		{"larger than stream", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			var got []float32
			dst := make([]float32, tt.dst)
			for {
				n, err := src.ReadSamples(dst)
				got = append(got, dst[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
			}

			require.Len(t, got, len(in))
			for i, v := range got {
				assert.InDelta(t, float32(in[i])/32768, v, 1e-6)
			}

			n, err := src.ReadSamples(dst)
			assert.Zero(t, n)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestDecoder_EmptyDestination(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 44100, 16, 1, []int{1, 2, 3})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	n, err := src.ReadSamples(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 16000, 16, 1, []int{100, 200, 300})

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, 16000, src.SampleRate())

	dst := make([]float32, 4)
	n, _ := src.ReadSamples(dst)
	assert.Equal(t, 3, n)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		message string
	}{
		{ErrNotAiffFile, "not an AIFF file"},
		{ErrUnsupportedBitDepth, "unsupported AIFF bit depth"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			assert.EqualError(t, tt.err, tt.message)

			wrapped := fmt.Errorf("decoding input: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}

	assert.NotErrorIs(t, ErrNotAiffFile, ErrUnsupportedBitDepth)
}

func BenchmarkDecoder_ReadSamples(b *testing.B) {
	data := encodeAIFF(b, 44100, 16, 2, make([]int, 44100*2))

	for _, size := range []int{64, 4096, 16384} {
		b.Run(fmt.Sprint(size), func(b *testing.B) {
			dst := make([]float32, size)

			b.ReportAllocs()
			for b.Loop() {
				src, err := Decoder{}.Decode(bytes.NewReader(data))
				if err != nil {
					b.Fatal(err)
				}
				_, _ = src.ReadSamples(dst)
			}
		})
	}
}
