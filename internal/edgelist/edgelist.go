// Package edgelist writes doubled arc-centric graphs as plain text: the
// doubled node count on the first line, then one
// "from to weight mirror_from mirror_to sequence" line per arc.
package edgelist

import (
	"bufio"
	"encoding/hex"
	"hash"
	"io"
	"strconv"

	"arcdbg/internal/graph"

	"lukechampine.com/blake3"
)

// Writer serializes a graph and hashes everything it writes.
type Writer struct {
	w     *bufio.Writer
	sum   hash.Hash
	path  string
	bytes int64
}

// NewWriter wraps w. path is only used in error messages.
func NewWriter(w io.Writer, path string) *Writer {
	sum := blake3.New(32, nil)
	return &Writer{
		w:    bufio.NewWriter(io.MultiWriter(w, sum)),
		sum:  sum,
		path: path,
	}
}

// WriteGraph writes the node count and all arcs in order, then flushes.
func (w *Writer) WriteGraph(nodeCount int, arcs []graph.Arc) error {
	buf := make([]byte, 0, 128)
	buf = strconv.AppendInt(buf, int64(nodeCount), 10)
	buf = append(buf, '\n')
	if err := w.write(buf); err != nil {
		return err
	}
	for _, a := range arcs {
		buf = AppendArc(buf[:0], a)
		if err := w.write(buf); err != nil {
			return err
		}
	}
	if err := w.w.Flush(); err != nil {
		return &graph.IOError{Op: "write", Path: w.path, Err: err}
	}
	return nil
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.bytes += int64(n)
	if err != nil {
		return &graph.IOError{Op: "write", Path: w.path, Err: err}
	}
	return nil
}

// AppendArc appends the text line of a, newline included.
func AppendArc(buf []byte, a graph.Arc) []byte {
	buf = strconv.AppendUint(buf, uint64(a.From), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(a.To), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, a.Weight, 'f', -1, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(a.MirrorFrom), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(a.MirrorTo), 10)
	buf = append(buf, ' ')
	buf = append(buf, a.Sequence...)
	return append(buf, '\n')
}

// Digest is the hex BLAKE3-256 of the bytes written so far. Identical input
// always yields an identical digest.
func (w *Writer) Digest() string {
	return hex.EncodeToString(w.sum.Sum(nil))
}

// BytesWritten counts bytes accepted by the writer.
func (w *Writer) BytesWritten() int64 { return w.bytes }
