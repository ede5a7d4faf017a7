// Package fileio opens graph inputs and outputs, handling stdin/stdout and
// gzip or zstd compression.
package fileio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"arcdbg/internal/graph"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// OpenInput opens path ("-" for stdin) and transparently decompresses gzip and
// zstd streams, recognized by their magic bytes.
func OpenInput(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == Stdio {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, &graph.IOError{Op: "read", Path: path, Err: err}
		}
	}
	closeFile := func() error {
		if f == os.Stdin {
			return nil
		}
		return f.Close()
	}
	rc, err := Decompress(f, closeFile)
	if err != nil {
		_ = closeFile()
		return nil, &graph.IOError{Op: "read", Path: path, Err: err}
	}
	return rc, nil
}

// Decompress wraps r according to its leading bytes. closeFn runs on Close.
func Decompress(r io.Reader, closeFn func() error) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: zr, close: func() error {
			zerr := zr.Close()
			if err := closeFn(); err != nil {
				return err
			}
			return zerr
		}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return closeFn()
		}}, nil
	}
	return readCloser{Reader: br, close: closeFn}, nil
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w writeCloser) Close() error { return w.close() }

// CreateOutput creates path, or returns stdout for "" and "-". Paths ending in
// .gz or .zst are compressed; Close flushes the compressor before the file.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return writeCloser{Writer: os.Stdout, close: func() error { return nil }}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &graph.IOError{Op: "write", Path: path, Err: err}
	}
	wc, err := Compress(f, path)
	if err != nil {
		_ = f.Close()
		return nil, &graph.IOError{Op: "write", Path: path, Err: err}
	}
	return wc, nil
}

// Compress wraps wc in the compressor matching the extension of name.
func Compress(wc io.WriteCloser, name string) (io.WriteCloser, error) {
	var enc io.WriteCloser
	switch {
	case strings.HasSuffix(name, ".gz"):
		enc = gzip.NewWriter(wc)
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(wc)
		if err != nil {
			return nil, err
		}
		enc = zw
	default:
		return wc, nil
	}
	return writeCloser{Writer: enc, close: func() error {
		if err := enc.Close(); err != nil {
			_ = wc.Close()
			return err
		}
		return wc.Close()
	}}, nil
}
