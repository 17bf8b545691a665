// Command randread inspects local files through the buffered random access
// reader: copying byte ranges, hashing content, and reporting paging
// behavior.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/randread/core/randread"
	"github.com/FocuswithJustin/randread/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for randread.
var CLI struct {
	// Global flags
	PageSize  int    `name:"page-size" help:"Page size in bytes (power of two)" default:"4096"`
	MaxPages  int    `name:"max-pages" help:"Maximum number of cached pages" default:"1000"`
	LogLevel  string `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`

	Cat     CatCmd     `cmd:"" help:"Copy a byte range from a file to stdout"`
	Hash    HashCmd    `cmd:"" help:"Compute the BLAKE3 digest of a file or byte range"`
	Info    InfoCmd    `cmd:"" help:"Print file length and paging information"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// CatCmd copies a byte range from a file to stdout.
type CatCmd struct {
	Path   string `arg:"" help:"Path to the file to read" type:"existingfile"`
	Offset int64  `help:"Start offset in bytes" default:"0"`
	Length int64  `help:"Number of bytes to copy (-1 for the rest of the file)" default:"-1"`
}

func (c *CatCmd) Run() error {
	ctx := commandContext()

	r, cleanup, err := openInput(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	src, err := rangeReader(r, c.Offset, c.Length)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	n, err := streamAll(src, out)
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logging.DebugContext(ctx, "cat complete", "path", c.Path, "bytes", n)
	return nil
}

// HashCmd computes the BLAKE3 digest of a file or byte range.
type HashCmd struct {
	Path   string `arg:"" help:"Path to the file to hash" type:"existingfile"`
	Offset int64  `help:"Start offset in bytes" default:"0"`
	Length int64  `help:"Number of bytes to hash (-1 for the rest of the file)" default:"-1"`
}

func (c *HashCmd) Run() error {
	ctx := commandContext()

	r, cleanup, err := openInput(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	src, err := rangeReader(r, c.Offset, c.Length)
	if err != nil {
		return err
	}

	hasher := blake3.New()
	n, err := streamAll(src, hasher)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", hex.EncodeToString(hasher.Sum(nil)), c.Path)
	logging.DebugContext(ctx, "hash complete", "path", c.Path, "bytes", n)
	return nil
}

// InfoCmd prints file length and paging information.
type InfoCmd struct {
	Path string `arg:"" help:"Path to the file to inspect" type:"existingfile"`
	Scan bool   `help:"Read the whole file and report page cache statistics"`
}

func (c *InfoCmd) Run() error {
	ctx := commandContext()

	r, cleanup, err := openInput(ctx, c.Path)
	if err != nil {
		return err
	}
	defer cleanup()

	length, err := r.Length()
	if err != nil {
		return err
	}
	pageSize := r.PageSize()
	pages := (length + int64(pageSize) - 1) / int64(pageSize)

	fmt.Printf("path:       %s\n", c.Path)
	fmt.Printf("length:     %d bytes\n", length)
	fmt.Printf("page size:  %d bytes\n", pageSize)
	fmt.Printf("pages:      %d\n", pages)

	if c.Scan {
		if err := r.Seek(0); err != nil {
			return err
		}
		if _, err := streamAll(r, io.Discard); err != nil {
			return err
		}
		stats := r.CacheStats()
		fmt.Printf("cache hits:      %d\n", stats.Hits)
		fmt.Printf("cache misses:    %d\n", stats.Misses)
		fmt.Printf("cache evictions: %d\n", stats.Evictions)
		fmt.Printf("cache size:      %d/%d pages\n", stats.Size, stats.MaxSize)
		logging.DebugContext(ctx, "scan complete", "path", c.Path, "misses", stats.Misses)
	}

	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("randread version %s\n", version)
	return nil
}

// Helper functions

// commandContext returns a context carrying a fresh request ID so that all
// logs of one invocation can be correlated.
func commandContext() context.Context {
	return logging.WithRequestID(context.Background(), uuid.New().String())
}

// openInput opens a file for buffered random access reading. Files with an
// .xz suffix are decompressed to a temporary file first; random access needs
// a seekable byte sequence and xz streams are not one. The cleanup function
// closes the reader and removes any temporary file.
func openInput(ctx context.Context, path string) (*randread.BufferedFile, func(), error) {
	realPath := path
	var tempPath string

	if strings.HasSuffix(path, ".xz") {
		decompressed, err := decompressToTemp(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		realPath = decompressed
		tempPath = decompressed
	}

	r, err := randread.OpenWithPageSize(realPath, CLI.PageSize, CLI.MaxPages)
	if err != nil {
		if tempPath != "" {
			os.Remove(tempPath)
		}
		return nil, nil, err
	}

	cleanup := func() {
		r.Close()
		if tempPath != "" {
			os.Remove(tempPath)
		}
	}
	return r, cleanup, nil
}

// decompressToTemp decompresses an xz file into a temporary file and returns
// its path. The caller removes the file when done.
func decompressToTemp(ctx context.Context, path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open compressed file: %w", err)
	}
	defer in.Close()

	xzReader, err := xz.NewReader(bufio.NewReader(in))
	if err != nil {
		return "", fmt.Errorf("failed to read xz stream: %w", err)
	}

	tempFile, err := os.CreateTemp("", "randread-*"+filepath.Ext(strings.TrimSuffix(path, ".xz")))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(tempFile, xzReader)
	if cerr := tempFile.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	logging.DebugContext(ctx, "decompressed xz input", "path", path, "bytes", n)
	return tempFile.Name(), nil
}

// rangeReader narrows a reader to the requested byte range. A length of -1
// means the rest of the file.
func rangeReader(r *randread.BufferedFile, offset, length int64) (randread.RandomAccessRead, error) {
	if offset == 0 && length < 0 {
		return r, nil
	}

	fileLength, err := r.Length()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		length = fileLength - offset
		if length < 0 {
			length = 0
		}
	}
	return r.CreateView(offset, length)
}

// streamAll copies a reader's remaining bytes to w through repeated
// single-page reads and returns the number of bytes copied.
func streamAll(r randread.RandomAccessRead, w io.Writer) (int64, error) {
	var total int64
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return total, fmt.Errorf("failed to write output: %w", err)
		}
		total += int64(n)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("randread"),
		kong.Description("Buffered random access file reading with a paged LRU cache"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level, err := logging.ParseLevel(CLI.LogLevel)
	ctx.FatalIfErrorf(err)
	format, err := logging.ParseFormat(CLI.LogFormat)
	ctx.FatalIfErrorf(err)
	logging.InitLogger(level, format)

	err = ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
