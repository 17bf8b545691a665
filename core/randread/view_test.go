package randread

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestView_ReadsTranslatedRange(t *testing.T) {
	path := writePatternFile(t, 10000)
	r := open(t, path, 4096, 8)

	v, err := r.CreateView(100, 50)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	length, err := v.Length()
	if err != nil {
		t.Fatalf("Length() error = %v", err)
	}
	if length != 50 {
		t.Errorf("Length() = %d, want 50", length)
	}

	got := make([]byte, 0, 50)
	buf := make([]byte, 8)
	for {
		n, err := v.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, buf[:n]...)
	}

	want := make([]byte, 50)
	for i := range want {
		want[i] = byte(100 + i)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("view read %d bytes, content mismatch", len(got))
	}
}

func TestView_SeekRewindPeek(t *testing.T) {
	path := writePatternFile(t, 10000)
	r := open(t, path, 4096, 8)

	v, err := r.CreateView(1000, 100)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	if err := v.Seek(10); err != nil {
		t.Fatalf("Seek(10) error = %v", err)
	}
	b, err := v.Peek()
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if b != byte(1010 % 256) {
		t.Errorf("Peek() = %d, want %d", b, byte(1010 % 256))
	}
	pos, err := v.Position()
	if err != nil {
		t.Fatalf("Position() error = %v", err)
	}
	if pos != 10 {
		t.Errorf("Position() after Peek() = %d, want 10", pos)
	}

	if b, err = v.ReadByte(); err != nil || b != byte(1010 % 256) {
		t.Errorf("ReadByte() = %d, %v; want %d, nil", b, err, byte(1010 % 256))
	}
	if err := v.Rewind(1); err != nil {
		t.Fatalf("Rewind(1) error = %v", err)
	}
	pos, err = v.Position()
	if err != nil {
		t.Fatalf("Position() error = %v", err)
	}
	if pos != 10 {
		t.Errorf("Position() after Rewind = %d, want 10", pos)
	}

	if err := v.Rewind(11); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("Rewind(11) error = %v, want ErrInvalidOffset", err)
	}
}

func TestView_EOFAtViewLength(t *testing.T) {
	path := writePatternFile(t, 10000)
	r := open(t, path, 4096, 8)

	v, err := r.CreateView(200, 10)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	if err := v.Seek(10); err != nil {
		t.Fatalf("Seek(10) error = %v", err)
	}
	if _, err := v.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte() at view end error = %v, want io.EOF", err)
	}
	eof, err := v.IsEOF()
	if err != nil {
		t.Fatalf("IsEOF() error = %v", err)
	}
	if !eof {
		t.Error("IsEOF() = false at view end, want true")
	}
	n, err := v.Available()
	if err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Available() = %d, want 0", n)
	}
}

func TestView_TruncatedByUnderlyingEOF(t *testing.T) {
	path := writePatternFile(t, 10000)
	r := open(t, path, 4096, 8)

	// The view claims 100 bytes but only 10 exist past its start.
	v, err := r.CreateView(9990, 100)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	buf := make([]byte, 100)
	n, err := v.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 10 {
		t.Errorf("Read() = %d, want 10", n)
	}
	if _, err := v.Read(buf); err != io.EOF {
		t.Errorf("Read() past file end error = %v, want io.EOF", err)
	}
}

func TestView_InterleavedWithParent(t *testing.T) {
	path := writePatternFile(t, 10000)
	r := open(t, path, 4096, 8)

	v, err := r.CreateView(5000, 100)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	// Alternate between parent and view; each keeps reading the right bytes.
	if err := r.Seek(0); err != nil {
		t.Fatalf("Seek(0) error = %v", err)
	}
	for i := 0; i < 5; i++ {
		pb, err := r.ReadByte()
		if err != nil {
			t.Fatalf("parent ReadByte() error = %v", err)
		}
		vb, err := v.ReadByte()
		if err != nil {
			t.Fatalf("view ReadByte() error = %v", err)
		}
		if pb != byte(i) {
			t.Errorf("parent byte %d = %d, want %d", i, pb, byte(i))
		}
		if vb != byte(5000+i) {
			t.Errorf("view byte %d = %d, want %d", i, vb, byte(5000+i))
		}
		// The view moved the shared cursor; restore the parent's spot.
		if err := r.Seek(int64(i + 1)); err != nil {
			t.Fatalf("Seek() error = %v", err)
		}
	}
}

func TestView_InvalidBounds(t *testing.T) {
	path := writePatternFile(t, 100)
	r := open(t, path, 16, 4)

	if _, err := r.CreateView(-1, 10); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("CreateView(-1, 10) error = %v, want ErrInvalidOffset", err)
	}
	if _, err := r.CreateView(0, -1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("CreateView(0, -1) error = %v, want ErrInvalidOffset", err)
	}
}

func TestView_NestedViewsUnsupported(t *testing.T) {
	path := writePatternFile(t, 100)
	r := open(t, path, 16, 4)

	v, err := r.CreateView(0, 50)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}
	if _, err := v.CreateView(0, 10); !errors.Is(err, ErrNestedView) {
		t.Errorf("nested CreateView() error = %v, want ErrNestedView", err)
	}
}

func TestView_CloseLeavesParentOpen(t *testing.T) {
	path := writePatternFile(t, 100)
	r := open(t, path, 16, 4)

	v, err := r.CreateView(0, 50)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}
	if err := v.Close(); err != nil {
		t.Fatalf("view Close() error = %v", err)
	}
	if !v.IsClosed() {
		t.Error("view IsClosed() = false after Close")
	}
	if r.IsClosed() {
		t.Error("parent closed by view Close()")
	}
	if _, err := v.ReadByte(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadByte() on closed view error = %v, want ErrClosed", err)
	}

	// Still readable through the parent.
	if err := r.Seek(0); err != nil {
		t.Fatalf("parent Seek() error = %v", err)
	}
	if _, err := r.ReadByte(); err != nil {
		t.Errorf("parent ReadByte() error = %v", err)
	}
}

func TestView_ClosedParentPropagates(t *testing.T) {
	path := writePatternFile(t, 100)
	r := open(t, path, 16, 4)

	v, err := r.CreateView(0, 50)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !v.IsClosed() {
		t.Error("view IsClosed() = false after parent Close")
	}
	if _, err := v.ReadByte(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadByte() error = %v, want ErrClosed", err)
	}
}

func TestView_OverBuffer(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	b := NewBuffer(data)

	v, err := b.CreateView(64, 16)
	if err != nil {
		t.Fatalf("CreateView() error = %v", err)
	}

	buf := make([]byte, 16)
	n, err := v.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 16 {
		t.Fatalf("Read() = %d, want 16", n)
	}
	for i := 0; i < 16; i++ {
		if buf[i] != byte(64+i) {
			t.Errorf("buf[%d] = %d, want %d", i, buf[i], byte(64+i))
		}
	}
}
