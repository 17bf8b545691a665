package randread

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/FocuswithJustin/randread/core/lru"
)

// Default paging geometry
const (
	// DefaultPageSizeShift is the power of two of the default page size.
	DefaultPageSizeShift = 12

	// DefaultPageSize is the default page size in bytes (4 KiB).
	DefaultPageSize = 1 << DefaultPageSizeShift

	// DefaultMaxPages is the default number of pages held in the cache.
	DefaultMaxPages = 1000
)

// BufferedFile provides random access to a local read-only file through a
// bounded cache of fixed-size pages. It implements RandomAccessRead.
//
// A BufferedFile is not safe for concurrent use.
type BufferedFile struct {
	// File handle for the underlying file
	file *os.File

	// Total file length, fixed at open
	fileLength int64

	// Page size in bytes (power of two) and the mask selecting the
	// page-aligned part of an offset
	pageSize int
	pageMask int64

	// Bounded LRU cache of page-aligned offset -> page buffer
	pages *lru.Cache[int64, []byte]

	// Buffer reclaimed from the most recent eviction, reused by the next
	// page load instead of allocating
	spare []byte

	// Cursor state: the resident page, its page-aligned offset (-1 when no
	// page is resident), the offset within it, and the absolute position
	curPage          []byte
	curPageOffset    int64
	offsetWithinPage int
	fileOffset       int64

	closed bool
}

var _ RandomAccessRead = (*BufferedFile)(nil)

// Open opens the named file for buffered random access reading with the
// default page size and page budget.
func Open(filename string) (*BufferedFile, error) {
	return OpenWithPageSize(filename, DefaultPageSize, DefaultMaxPages)
}

// OpenWithPageSize opens the named file with an explicit paging geometry.
// pageSize must be a power of two and maxPages must be at least 1.
func OpenWithPageSize(filename string, pageSize, maxPages int) (*BufferedFile, error) {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidPageSize, pageSize)
	}
	if maxPages < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxPages, maxPages)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	r := &BufferedFile{
		file:          file,
		fileLength:    info.Size(),
		pageSize:      pageSize,
		pageMask:      ^int64(pageSize - 1),
		pages:         lru.New[int64, []byte](maxPages),
		curPageOffset: -1,
	}

	if err := r.Seek(0); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

// Position returns the offset at which the next byte would be read.
func (r *BufferedFile) Position() (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.fileOffset, nil
}

// Seek repositions the reader. If the new offset lies outside the resident
// page, the target page is taken from the cache or read from the file and
// inserted, possibly evicting the least recently used page.
func (r *BufferedFile) Seek(offset int64) error {
	if r.closed {
		return ErrClosed
	}
	if offset < 0 {
		return fmt.Errorf("%w: cannot seek to %d", ErrInvalidOffset, offset)
	}

	pageOffset := offset & r.pageMask
	if pageOffset != r.curPageOffset {
		page, ok := r.pages.Get(pageOffset)
		if !ok {
			var err error
			page, err = r.readPage(pageOffset)
			if err != nil {
				return err
			}
			// Repoint the cursor before inserting: the insertion may evict
			// the page the cursor used to reference, which is then safe to
			// recycle.
			r.curPage = page
			r.curPageOffset = pageOffset
			if evicted, ok := r.pages.Put(pageOffset, page); ok {
				r.recycle(evicted)
			}
		} else {
			r.curPage = page
			r.curPageOffset = pageOffset
		}
	}

	r.offsetWithinPage = int(offset - r.curPageOffset)
	r.fileOffset = offset
	return nil
}

// readPage reads one page starting at the given page-aligned offset, reusing
// the buffer reclaimed from the last eviction when one is held. Short reads
// are retried until the page is full or the physical end of file is reached;
// any shortfall leaves whatever the buffer previously held past the read
// bytes. Those filler bytes are never served because every read gates on the
// file length.
func (r *BufferedFile) readPage(pageOffset int64) ([]byte, error) {
	page := r.spare
	r.spare = nil
	if page == nil {
		page = make([]byte, r.pageSize)
	}

	if _, err := r.file.Seek(pageOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to page at offset %d: %w", pageOffset, err)
	}

	readBytes := 0
	for readBytes < r.pageSize {
		n, err := r.file.Read(page[readBytes:])
		readBytes += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read page at offset %d: %w", pageOffset, err)
		}
	}

	return page, nil
}

// recycle retains an evicted page buffer for reuse by the next page load.
// The buffer the cursor still points at must never be recycled: a later load
// would overwrite bytes served through the cursor.
func (r *BufferedFile) recycle(page []byte) {
	if len(page) > 0 && len(r.curPage) > 0 && &page[0] == &r.curPage[0] {
		return
	}
	r.spare = page
}

// ReadByte returns the next byte, or io.EOF at the end of the file.
func (r *BufferedFile) ReadByte() (byte, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.fileOffset >= r.fileLength {
		return 0, io.EOF
	}

	if r.offsetWithinPage == r.pageSize {
		if err := r.Seek(r.fileOffset); err != nil {
			return 0, err
		}
	}

	b := r.curPage[r.offsetWithinPage]
	r.offsetWithinPage++
	r.fileOffset++
	return b, nil
}

// Read copies bytes from the resident page into p. A single call never
// crosses a page boundary, so it may return fewer bytes than len(p); at the
// end of the file it returns 0, io.EOF.
func (r *BufferedFile) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.fileOffset >= r.fileLength {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if r.offsetWithinPage == r.pageSize {
		if err := r.Seek(r.fileOffset); err != nil {
			return 0, err
		}
	}

	n := r.pageSize - r.offsetWithinPage
	if n > len(p) {
		n = len(p)
	}
	if remaining := r.fileLength - r.fileOffset; int64(n) > remaining {
		n = int(remaining)
	}

	copy(p, r.curPage[r.offsetWithinPage:r.offsetWithinPage+n])

	r.offsetWithinPage += n
	r.fileOffset += int64(n)
	return n, nil
}

// Peek returns the next byte without advancing the position.
func (r *BufferedFile) Peek() (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if err := r.Rewind(1); err != nil {
		return 0, err
	}
	return b, nil
}

// Rewind moves the position back by count bytes.
func (r *BufferedFile) Rewind(count int64) error {
	if r.closed {
		return ErrClosed
	}
	if count < 0 || count > r.fileOffset {
		return fmt.Errorf("%w: cannot rewind %d bytes from position %d", ErrInvalidOffset, count, r.fileOffset)
	}
	return r.Seek(r.fileOffset - count)
}

// IsEOF reports whether the position is at the end of the file.
func (r *BufferedFile) IsEOF() (bool, error) {
	_, err := r.Peek()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Available returns the number of bytes left before the end of the file,
// capped at the platform integer maximum and never negative.
func (r *BufferedFile) Available() (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	remaining := r.fileLength - r.fileOffset
	if remaining < 0 {
		remaining = 0
	}
	if remaining > math.MaxInt {
		return math.MaxInt, nil
	}
	return int(remaining), nil
}

// Length returns the total file length in bytes.
func (r *BufferedFile) Length() (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.fileLength, nil
}

// Close closes the underlying file and clears the page cache so that no
// buffer outlives the handle it was read through. Closing twice is a no-op.
func (r *BufferedFile) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	r.pages.Clear()
	r.spare = nil
	r.curPage = nil
	r.curPageOffset = -1

	if err := r.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// IsClosed reports whether the reader has been closed.
func (r *BufferedFile) IsClosed() bool {
	return r.closed
}

// CreateView returns a bounded view of this reader restricting visible
// offsets to [start, start+length). The view delegates all I/O to this
// reader and therefore shares its page cache.
func (r *BufferedFile) CreateView(start, length int64) (RandomAccessRead, error) {
	if r.closed {
		return nil, ErrClosed
	}
	return newView(r, start, length)
}

// PageSize returns the page size in bytes.
func (r *BufferedFile) PageSize() int {
	return r.pageSize
}

// CacheStats returns statistics of the page cache.
func (r *BufferedFile) CacheStats() lru.Stats {
	return r.pages.Stats()
}
