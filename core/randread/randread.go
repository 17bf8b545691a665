package randread

import "errors"

// Common errors
var (
	ErrClosed          = errors.New("reader is closed")
	ErrInvalidOffset   = errors.New("invalid offset")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMaxPages = errors.New("invalid page limit")
	ErrNestedView      = errors.New("views cannot create nested views")
)

// RandomAccessRead is a read-only byte sequence supporting arbitrary seeks.
//
// All operations on a closed reader fail with ErrClosed. The end of the
// sequence is signaled with io.EOF by ReadByte, Read, Peek and IsEOF.
type RandomAccessRead interface {
	// Position returns the offset at which the next byte would be read.
	Position() (int64, error)

	// Seek repositions the reader to the given absolute offset. Seeking
	// beyond Length is legal; subsequent reads return io.EOF. Negative
	// offsets are rejected with ErrInvalidOffset.
	Seek(offset int64) error

	// ReadByte returns the next byte, or io.EOF at the end of the sequence.
	ReadByte() (byte, error)

	// Read copies bytes into p starting at the current position and
	// advances past them. A single call never crosses a page boundary of
	// the underlying implementation, so it may return fewer bytes than
	// requested; callers loop as with any io.Reader. At the end of the
	// sequence it returns 0, io.EOF.
	Read(p []byte) (int, error)

	// Peek returns the next byte without advancing the position, or io.EOF
	// at the end of the sequence.
	Peek() (byte, error)

	// Rewind moves the position back by count bytes. Rewinding before
	// offset 0 or by a negative count is rejected with ErrInvalidOffset.
	Rewind(count int64) error

	// IsEOF reports whether the position is at the end of the sequence.
	IsEOF() (bool, error)

	// Available returns the number of bytes between the current position
	// and the end of the sequence, capped at the platform integer maximum
	// and never negative.
	Available() (int, error)

	// Length returns the total length of the sequence in bytes.
	Length() (int64, error)

	// Close releases the reader's resources. Closing twice is a no-op.
	Close() error

	// IsClosed reports whether the reader has been closed.
	IsClosed() bool

	// CreateView returns a bounded view restricting visible offsets to
	// [start, start+length), delegating all I/O to this reader.
	CreateView(start, length int64) (RandomAccessRead, error)
}
