// SPDX-License-Identifier: EPL-2.0

// Package eventbuf provides the append-only byte store behind a MIDI track
// chunk.
//
// The final size of a track is only known after its last event, so events are
// packed into a buffer that grows in fixed increments. The write position is a
// length, never an address, so growing the backing array cannot invalidate it.
package eventbuf

import (
	"bytes"
	"math"
)

const (
	// DefaultCapacity is used when New is given a zero capacity.
	DefaultCapacity = 16384

	// Increment is how much the backing store grows when it runs low.
	Increment = 4096

	// MaxSize is the largest payload a chunk size field can describe.
	MaxSize = math.MaxUint32

	limit = min(MaxSize, math.MaxInt)
)

// Buffer is an append-only byte sequence. It is not safe for concurrent use.
type Buffer struct {
	buf []byte
	max int
}

// New returns an empty buffer with the given backing capacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		buf: make([]byte, 0, capacity),
		max: limit,
	}
}

// Len is the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap is the size of the backing store.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Remaining returns the free space left in the backing store.
func (b *Buffer) Remaining() int { return cap(b.buf) - len(b.buf) }

// Bytes returns the written bytes. The slice aliases the buffer until the
// next call that modifies it.
func (b *Buffer) Bytes() []byte { return b.buf }

// Ensure grows the backing store by Increment until at least minFree bytes
// are available.
func (b *Buffer) Ensure(minFree int) error {
	if minFree < 0 {
		return ErrNegativeSize
	}
	if b.Remaining() >= minFree {
		return nil
	}

	need := len(b.buf) + minFree
	if need > b.max {
		return ErrOutOfMemory
	}

	newCap := cap(b.buf)
	for newCap < need {
		newCap += Increment
	}
	newCap = min(newCap, b.max)

	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown

	return nil
}

// Append copies p to the end of the buffer. Callers that reserved space with
// Ensure never trigger a reallocation here.
func (b *Buffer) Append(p ...byte) {
	b.buf = append(b.buf, p...)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.buf = append(b.buf, c)
}

// Write implements io.Writer, reserving capacity before copying.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Ensure(len(p)); err != nil {
		return 0, err
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// HasSuffix reports whether the written bytes end with suffix.
func (b *Buffer) HasSuffix(suffix []byte) bool {
	return bytes.HasSuffix(b.buf, suffix)
}

// ShrinkToFit releases unused trailing capacity.
func (b *Buffer) ShrinkToFit() {
	if b.Remaining() == 0 {
		return
	}
	fitted := make([]byte, len(b.buf))
	copy(fitted, b.buf)
	b.buf = fitted
}

// Reset empties the buffer but keeps its capacity.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}
