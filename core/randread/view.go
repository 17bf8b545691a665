package randread

import (
	"fmt"
	"io"
	"math"
)

// View is a bounded window onto an underlying RandomAccessRead. It keeps its
// own position, translated by the view's start offset, and re-seeks the
// underlying reader before every operation, so views and their parent can be
// used interleaved. No data is copied; the parent's page cache serves all
// reads.
//
// Closing a view never closes the underlying reader.
type View struct {
	reader RandomAccessRead
	start  int64
	length int64
	pos    int64
	closed bool
}

var _ RandomAccessRead = (*View)(nil)

// newView creates a view over reader restricting visible offsets to
// [start, start+length) of the underlying sequence.
func newView(reader RandomAccessRead, start, length int64) (*View, error) {
	if start < 0 || length < 0 {
		return nil, fmt.Errorf("%w: view bounds start=%d length=%d", ErrInvalidOffset, start, length)
	}
	return &View{
		reader: reader,
		start:  start,
		length: length,
	}, nil
}

// checkClosed fails when the view or its underlying reader is closed.
func (v *View) checkClosed() error {
	if v.closed || v.reader.IsClosed() {
		return ErrClosed
	}
	return nil
}

// restorePosition points the underlying reader at the byte the view would
// read next.
func (v *View) restorePosition() error {
	return v.reader.Seek(v.start + v.pos)
}

// Position returns the offset within the view at which the next byte would
// be read.
func (v *View) Position() (int64, error) {
	if err := v.checkClosed(); err != nil {
		return 0, err
	}
	return v.pos, nil
}

// Seek repositions the view. Offsets are relative to the start of the view;
// seeking beyond its length is legal and yields io.EOF on subsequent reads.
func (v *View) Seek(offset int64) error {
	if err := v.checkClosed(); err != nil {
		return err
	}
	if offset < 0 {
		return fmt.Errorf("%w: cannot seek to %d", ErrInvalidOffset, offset)
	}
	if err := v.reader.Seek(v.start + offset); err != nil {
		return err
	}
	v.pos = offset
	return nil
}

// ReadByte returns the next byte of the view, or io.EOF at its end.
func (v *View) ReadByte() (byte, error) {
	if err := v.checkClosed(); err != nil {
		return 0, err
	}
	if v.pos >= v.length {
		return 0, io.EOF
	}
	if err := v.restorePosition(); err != nil {
		return 0, err
	}
	b, err := v.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	v.pos++
	return b, nil
}

// Read copies bytes into p starting at the view's position. Like the
// underlying reader, a single call may return fewer bytes than requested;
// at the end of the view it returns 0, io.EOF.
func (v *View) Read(p []byte) (int, error) {
	if err := v.checkClosed(); err != nil {
		return 0, err
	}
	if v.pos >= v.length {
		return 0, io.EOF
	}
	if remaining := v.length - v.pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	if err := v.restorePosition(); err != nil {
		return 0, err
	}
	n, err := v.reader.Read(p)
	v.pos += int64(n)
	return n, err
}

// Peek returns the next byte of the view without advancing its position.
func (v *View) Peek() (byte, error) {
	b, err := v.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := v.Rewind(1); err != nil {
		return 0, err
	}
	return b, nil
}

// Rewind moves the view's position back by count bytes.
func (v *View) Rewind(count int64) error {
	if err := v.checkClosed(); err != nil {
		return err
	}
	if count < 0 || count > v.pos {
		return fmt.Errorf("%w: cannot rewind %d bytes from position %d", ErrInvalidOffset, count, v.pos)
	}
	return v.Seek(v.pos - count)
}

// IsEOF reports whether the view's position is at its end.
func (v *View) IsEOF() (bool, error) {
	_, err := v.Peek()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Available returns the number of bytes left in the view, capped at the
// platform integer maximum and never negative.
func (v *View) Available() (int, error) {
	if err := v.checkClosed(); err != nil {
		return 0, err
	}
	remaining := v.length - v.pos
	if remaining < 0 {
		remaining = 0
	}
	if remaining > math.MaxInt {
		return math.MaxInt, nil
	}
	return int(remaining), nil
}

// Length returns the length of the view in bytes.
func (v *View) Length() (int64, error) {
	if err := v.checkClosed(); err != nil {
		return 0, err
	}
	return v.length, nil
}

// Close closes the view. The underlying reader stays open.
func (v *View) Close() error {
	v.closed = true
	return nil
}

// IsClosed reports whether the view or its underlying reader is closed.
func (v *View) IsClosed() bool {
	return v.closed || v.reader.IsClosed()
}

// CreateView is not supported on views.
func (v *View) CreateView(start, length int64) (RandomAccessRead, error) {
	return nil, ErrNestedView
}
