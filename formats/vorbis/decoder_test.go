// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOgg counts Read results in values like oggvorbis.Reader does.
type fakeOgg struct {
	rate     int
	channels int
	data     []float32
	err      error
}

func (f *fakeOgg) SampleRate() int {
	if f.rate == 0 {
		return 48000
	}
	return f.rate
}

func (f *fakeOgg) Channels() int { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) / float32(n)
	}
	return out
}

func readAll(t *testing.T, src *source, size int) ([]float32, []int) {
	t.Helper()

	var all []float32
	var sizes []int
	dst := make([]float32, size)
	for {
		n, err := src.ReadSamples(dst)
		if n > 0 {
			all = append(all, dst[:n]...)
			sizes = append(sizes, n)
		}
		if errors.Is(err, io.EOF) {
			return all, sizes
		}
		require.NoError(t, err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not Ogg Vorbis data")},
		{"ogg magic only", []byte("OggS but not really")},
		{"truncated page", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecoder_InvalidStream(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(strings.NewReader("OggS but not really"))
	assert.Error(t, err)
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate     int
		channels int
	}{
		{8000, 1},
		{11025, 2},
		{22050, 2},
		{44100, 2},
		{48000, 6},
		{96000, 8},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.rate, tt.channels), func(t *testing.T) {
			t.Parallel()

			src := &source{dec: &fakeOgg{rate: tt.rate, channels: tt.channels}}

			assert.Equal(t, tt.rate, src.SampleRate())
			assert.Equal(t, tt.channels, src.Channels())
			assert.Positive(t, src.BufSize())
			assert.NoError(t, src.Close())
		})
	}
}

func TestSource_ReadsWholeFrames(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, data: []float32{1, 2, 3, 4, 5, 6}}}

	assert.Equal(t, 48000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, buf[:n])

	n, err = src.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 6}, buf[:n])

	n, err = src.ReadSamples(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_ReadSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		values   int
		dst      int
		want     []int
	}{
		{"mono", 1, 100, 100, []int{100}},
		{"mono small reads", 1, 10, 3, []int{3, 3, 3, 1}},
		{"stereo partial", 2, 6, 4, []int{4, 2}},
		{"stereo odd buffer", 2, 6, 5, []int{4, 2}},
		{"5.1", 6, 120, 64, []int{60, 60}},
		{"7.1", 8, 128, 100, []int{96, 32}},
		{"large", 2, 10000, 10000, []int{10000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := ramp(tt.values)
			src := &source{dec: &fakeOgg{channels: tt.channels, data: in}}

			got, sizes := readAll(t, src, tt.dst)
			assert.Equal(t, tt.want, sizes)
			assert.Equal(t, in, got)
			for _, n := range sizes {
				assert.Zero(t, n%tt.channels, "partial frame")
			}
		})
	}
}

func TestSource_BufferSmallerThanFrame(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, data: []float32{1, 2}}}

	n, err := src.ReadSamples(make([]float32, 1))
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestSource_EmptyDestination(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 1, data: ramp(10)}}

	n, err := src.ReadSamples(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, data: ramp(10), err: io.ErrUnexpectedEOF}}

	n, err := src.ReadSamples(make([]float32, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := ramp(44100 * 2)

	for _, tt := range []struct {
		channels int
		size     int
	}{
		{1, 4096},
		{2, 64},
		{2, 4096},
		{2, 16384},
	} {
		b.Run(fmt.Sprintf("%dch/%d", tt.channels, tt.size), func(b *testing.B) {
			f := &fakeOgg{channels: tt.channels}
			src := &source{dec: f}
			dst := make([]float32, tt.size)

			b.ReportAllocs()
			for b.Loop() {
				f.data = data
				_, _ = src.ReadSamples(dst)
			}
		})
	}
}
