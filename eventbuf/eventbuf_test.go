// SPDX-License-Identifier: EPL-2.0

package eventbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultCapacity(t *testing.T) {
	t.Parallel()

	b := New(0)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, DefaultCapacity, b.Cap())
	assert.Equal(t, DefaultCapacity, b.Remaining())
}

func TestEnsure_GrowsByFixedIncrement(t *testing.T) {
	t.Parallel()

	b := New(10)
	b.Append(1, 2, 3, 4, 5, 6, 7, 8)

	require.NoError(t, b.Ensure(263))
	assert.Equal(t, 10+Increment, b.Cap())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b.Bytes())
}

func TestEnsure_MultipleIncrementsForLargeRequests(t *testing.T) {
	t.Parallel()

	b := New(16)
	require.NoError(t, b.Ensure(3*Increment))
	assert.Equal(t, 16+3*Increment, b.Cap())
}

func TestEnsure_NoGrowthWhenEnoughSpace(t *testing.T) {
	t.Parallel()

	b := New(512)
	require.NoError(t, b.Ensure(263))
	assert.Equal(t, 512, b.Cap())
}

func TestEnsure_OutOfMemory(t *testing.T) {
	t.Parallel()

	b := New(8)
	b.max = 64
	b.Append(make([]byte, 8)...)

	assert.ErrorIs(t, b.Ensure(100), ErrOutOfMemory)
	assert.ErrorIs(t, b.Ensure(-1), ErrNegativeSize)

	// growth is capped at the limit
	require.NoError(t, b.Ensure(50))
	assert.Equal(t, 64, b.Cap())
}

func TestWrite_ReservesSpace(t *testing.T) {
	t.Parallel()

	b := New(2)
	n, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(b.Bytes()))
}

func TestShrinkToFit(t *testing.T) {
	t.Parallel()

	b := New(1024)
	b.Append(0xFF, 0x2F, 0x00)
	b.ShrinkToFit()

	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, 0, b.Remaining())
	assert.True(t, b.HasSuffix([]byte{0xFF, 0x2F, 0x00}))
}

func TestReset(t *testing.T) {
	t.Parallel()

	b := New(32)
	b.AppendByte(0x90)
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 32, b.Cap())
	assert.False(t, b.HasSuffix([]byte{0x90}))
}

func BenchmarkAppendEvents(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		buf := New(0)
		for range 10000 {
			_ = buf.Ensure(263)
			buf.Append(0x00, 0x90, 0x3C, 0x64)
		}
	}
}
