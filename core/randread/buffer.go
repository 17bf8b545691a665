package randread

import (
	"fmt"
	"io"
	"math"
)

// Buffer is an in-memory RandomAccessRead over a byte slice. It exists for
// callers that already hold the bytes and for exercising code written
// against the interface without touching the filesystem. The slice is not
// copied; the caller must not mutate it while the Buffer is in use.
type Buffer struct {
	data   []byte
	pos    int64
	closed bool
}

var _ RandomAccessRead = (*Buffer)(nil)

// NewBuffer creates a reader over the given byte slice.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Position returns the offset at which the next byte would be read.
func (b *Buffer) Position() (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}
	return b.pos, nil
}

// Seek repositions the reader. Seeking beyond the end is legal.
func (b *Buffer) Seek(offset int64) error {
	if b.closed {
		return ErrClosed
	}
	if offset < 0 {
		return fmt.Errorf("%w: cannot seek to %d", ErrInvalidOffset, offset)
	}
	b.pos = offset
	return nil
}

// ReadByte returns the next byte, or io.EOF at the end of the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

// Read copies bytes into p starting at the current position. At the end of
// the buffer it returns 0, io.EOF.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Peek returns the next byte without advancing the position.
func (b *Buffer) Peek() (byte, error) {
	c, err := b.ReadByte()
	if err != nil {
		return 0, err
	}
	b.pos--
	return c, nil
}

// Rewind moves the position back by count bytes.
func (b *Buffer) Rewind(count int64) error {
	if b.closed {
		return ErrClosed
	}
	if count < 0 || count > b.pos {
		return fmt.Errorf("%w: cannot rewind %d bytes from position %d", ErrInvalidOffset, count, b.pos)
	}
	b.pos -= count
	return nil
}

// IsEOF reports whether the position is at the end of the buffer.
func (b *Buffer) IsEOF() (bool, error) {
	if b.closed {
		return false, ErrClosed
	}
	return b.pos >= int64(len(b.data)), nil
}

// Available returns the number of bytes left before the end of the buffer,
// capped at the platform integer maximum and never negative.
func (b *Buffer) Available() (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	remaining := int64(len(b.data)) - b.pos
	if remaining < 0 {
		remaining = 0
	}
	if remaining > math.MaxInt {
		return math.MaxInt, nil
	}
	return int(remaining), nil
}

// Length returns the length of the buffer in bytes.
func (b *Buffer) Length() (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}
	return int64(len(b.data)), nil
}

// Close releases the buffer. Closing twice is a no-op.
func (b *Buffer) Close() error {
	b.closed = true
	b.data = nil
	return nil
}

// IsClosed reports whether the reader has been closed.
func (b *Buffer) IsClosed() bool {
	return b.closed
}

// CreateView returns a bounded view of this reader restricting visible
// offsets to [start, start+length).
func (b *Buffer) CreateView(start, length int64) (RandomAccessRead, error) {
	if b.closed {
		return nil, ErrClosed
	}
	return newView(b, start, length)
}
