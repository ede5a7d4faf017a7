// Package fasta streams FASTA formatted records. Headers keep everything after
// '>' verbatim; sequence lines are concatenated without validation.
package fasta

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// DefaultMaxLine bounds a single input line. BCALM2 writes each unitig on one
// line, so this must exceed the longest unitig.
const DefaultMaxLine = 256 << 20

// ErrNoHeader is returned when sequence data precedes the first header.
var ErrNoHeader = errors.New("sequence data before first '>' header")

// FastaRecord represents a single FASTA record (header and sequence).
type FastaRecord struct {
	Header   string
	Sequence string
	Line     int // line of the header, 1-based
}

// Scanner reads one FastaRecord at a time.
type Scanner struct {
	sc      *bufio.Scanner
	line    int
	pending string // header read ahead of the current record
	pendLn  int
	started bool
	done    bool
	rec     FastaRecord
	err     error
}

// NewScanner returns a Scanner reading from r. maxLine <= 0 uses DefaultMaxLine.
func NewScanner(r io.Reader, maxLine int) *Scanner {
	if maxLine <= 0 {
		maxLine = DefaultMaxLine
	}
	initial := 64 * 1024
	if maxLine < initial {
		initial = maxLine
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initial), maxLine)
	return &Scanner{sc: sc}
}

// Scan advances to the next record and reports whether there is one.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		if !s.nextHeader() {
			return false
		}
	}
	if s.pending == "" && s.pendLn == 0 {
		s.done = true
		return false
	}
	s.rec = FastaRecord{Header: s.pending, Line: s.pendLn}
	s.pending, s.pendLn = "", 0

	var seq strings.Builder
	for s.sc.Scan() {
		s.line++
		line := strings.TrimRight(s.sc.Text(), "\r")
		if strings.HasPrefix(line, ">") {
			s.pending, s.pendLn = line[1:], s.line
			break
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := s.sc.Err(); err != nil {
		s.err = err
		s.done = true
		return false
	}
	s.rec.Sequence = seq.String()
	return true
}

// nextHeader skips blank lines up to the first header.
func (s *Scanner) nextHeader() bool {
	for s.sc.Scan() {
		s.line++
		line := strings.TrimRight(s.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, ">") {
			s.err = ErrNoHeader
			s.done = true
			return false
		}
		s.pending, s.pendLn = line[1:], s.line
		return true
	}
	s.err = s.sc.Err()
	s.done = true
	return false
}

// Record returns the record read by the last successful Scan.
func (s *Scanner) Record() FastaRecord { return s.rec }

// Err returns the first error met, if any.
func (s *Scanner) Err() error { return s.err }

// Line is the number of lines consumed so far.
func (s *Scanner) Line() int { return s.line }

// ParseFasta reads FASTA records from r and returns them all.
func ParseFasta(r io.Reader) ([]FastaRecord, error) {
	s := NewScanner(r, 0)
	var records []FastaRecord
	for s.Scan() {
		records = append(records, s.Record())
	}
	return records, s.Err()
}
