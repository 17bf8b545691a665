/*
Package randread provides random access reading over byte sequences, combining
arbitrary seeks with buffered, cached reads.

The primary implementation, BufferedFile, serves callers that jump around the
internal layout of a large local file: parsers of structured file formats that
follow offsets backwards and forwards rather than scanning linearly. Reading
the whole file into memory is avoided; repeated physical I/O for revisited
regions is avoided too.

# Paging

BufferedFile reads the file in fixed-size, power-of-two pages. A page is
identified by its page-aligned file offset (the read offset rounded down to a
multiple of the page size). Loaded pages are kept in a bounded
least-recently-used cache; when an insertion exceeds the page budget the least
recently touched page is evicted and its buffer is recycled for the next page
load, so steady-state operation allocates nothing.

A moving cursor ties the cache to the caller-visible position: it tracks the
absolute file offset, the resident page, and the offset within that page.
Every seek and read funnels through the cursor, which loads pages through the
cache on page-boundary crossings.

The last page of a file is usually partial. The bytes of its buffer beyond
the physical end of file are unspecified filler (often stale content of a
recycled buffer) and are never returned to a caller: every read path checks
the absolute position against the file length before serving bytes.

# Reads and seeks

A single Read call never spans a page boundary; it returns the bytes
available from the resident page, and callers needing more loop, exactly as
with io.Reader. Reads at or past the end of the sequence return io.EOF.
Seeking beyond the end is legal and simply makes subsequent reads report
io.EOF.

# Views

CreateView returns a bounded window onto an underlying reader without copying
data. A view keeps its own position, translates it by the view's start offset
and re-seeks the underlying reader before every operation, so a view, its
siblings and the parent can be used interleaved. Views share the parent's
page cache by delegation. Closing a view never closes the underlying reader.

# Concurrency

Readers are single-goroutine objects: no internal locking, fully synchronous
blocking I/O. Sharing one instance across goroutines requires external
synchronization.

# Usage

	r, err := randread.Open("large.bin")
	if err != nil {
	    return err
	}
	defer r.Close()

	if err := r.Seek(trailerOffset); err != nil {
	    return err
	}
	buf := make([]byte, 64)
	n, err := r.Read(buf)
*/
package randread
