// Package bcalm2 reads unitig graphs written by the BCALM2 assembler:
//
//	>0 LN:i:14 KC:i:21 km:f:21.0 L:+:2:+ L:-:2:+
//	ATCGATCGATCGAT
//
// into a node table and a normalized node-centric edge list.
package bcalm2

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"arcdbg/internal/fasta"
	"arcdbg/internal/graph"
	"arcdbg/internal/nucleotide"
)

// Options tune parsing. K is needed to derive abundances from KC tags and to
// reject unitigs shorter than a k-mer; 0 disables both.
type Options struct {
	K       int
	MaxLine int
}

// Graph is the parsed node-centric graph. Nodes are in input order and Edges
// in discovery order.
type Graph struct {
	Nodes       []graph.Node
	Edges       []graph.NodeEdge
	Annotations int // L tags seen before normalization
}

type header struct {
	id        uint64
	length    int
	hasLength bool
	kmerCount int64
	hasCount  bool
	abundance float64
	hasMean   bool
	links     []graph.NodeEdge
}

// Parse reads every record of r.
func Parse(r io.Reader, opts Options) (*Graph, error) {
	g := &Graph{}
	seen := make(map[uint64]int)
	// unpaired counts annotations still waiting for their listing from the
	// other unitig.
	unpaired := make(map[graph.NodeEdge]int)

	s := fasta.NewScanner(r, opts.MaxLine)
	for s.Scan() {
		rec := s.Record()
		h, err := parseHeader(rec.Header, rec.Line)
		if err != nil {
			return nil, err
		}
		rawID := strconv.FormatUint(h.id, 10)
		malformed := func(format string, args ...any) error {
			return &graph.MalformedRecordError{Line: rec.Line, RecordID: rawID, Reason: fmt.Sprintf(format, args...)}
		}
		if prev, dup := seen[h.id]; dup {
			return nil, malformed("duplicate id, first defined at line %d", prev)
		}
		seen[h.id] = rec.Line

		seq, pos, ok := nucleotide.Normalize(rec.Sequence)
		if !ok {
			return nil, malformed("invalid nucleotide %q at sequence position %d", rec.Sequence[pos], pos)
		}
		if seq == "" {
			return nil, malformed("empty sequence")
		}
		if h.hasLength && h.length != len(seq) {
			return nil, malformed("declared length %d but sequence has %d bases", h.length, len(seq))
		}
		if opts.K > 0 && len(seq) < opts.K {
			return nil, malformed("unitig of %d bases is shorter than k=%d", len(seq), opts.K)
		}

		node := graph.Node{
			ID:        h.id,
			Sequence:  seq,
			Length:    len(seq),
			KmerCount: h.kmerCount,
			Line:      rec.Line,
		}
		switch {
		case h.hasMean:
			node.Abundance = h.abundance
		case h.hasCount && opts.K > 0:
			node.Abundance = float64(h.kmerCount) / float64(len(seq)-opts.K+1)
		default:
			return nil, malformed("no km abundance tag and no KC count to derive one from")
		}
		g.Nodes = append(g.Nodes, node)

		for _, e := range h.links {
			g.Annotations++
			mk := e.Mirror().Key()
			if unpaired[mk] > 0 {
				unpaired[mk]--
				continue
			}
			unpaired[e.Key()]++
			g.Edges = append(g.Edges, e)
		}
	}
	if err := s.Err(); err != nil {
		switch {
		case errors.Is(err, fasta.ErrNoHeader):
			return nil, &graph.MalformedRecordError{Line: s.Line(), Reason: err.Error()}
		case errors.Is(err, bufio.ErrTooLong):
			return nil, &graph.MalformedRecordError{Line: s.Line() + 1, Reason: "line exceeds the maximum line length"}
		}
		return nil, &graph.IOError{Op: "read", Err: err}
	}
	return g, nil
}

func parseHeader(text string, line int) (*header, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &graph.MalformedRecordError{Line: line, Reason: "missing record id"}
	}
	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, &graph.MalformedRecordError{Line: line, RecordID: fields[0], Reason: "record id is not a non-negative integer"}
	}
	h := &header{id: id}
	bad := func(tag, why string) error {
		return &graph.MalformedRecordError{Line: line, RecordID: fields[0], Reason: fmt.Sprintf("tag %q: %s", tag, why)}
	}

	for _, tag := range fields[1:] {
		name, rest, ok := strings.Cut(tag, ":")
		if !ok {
			continue
		}
		switch name {
		case "LN", "KC", "km":
			_, value, ok := strings.Cut(rest, ":")
			if !ok || value == "" {
				return nil, bad(tag, "missing value")
			}
			switch name {
			case "LN":
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 {
					return nil, bad(tag, "length is not a non-negative integer")
				}
				h.length, h.hasLength = n, true
			case "KC":
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil || n < 0 {
					return nil, bad(tag, "k-mer count is not a non-negative integer")
				}
				h.kmerCount, h.hasCount = n, true
			case "km":
				f, err := strconv.ParseFloat(value, 64)
				if err != nil || f < 0 {
					return nil, bad(tag, "abundance is not a non-negative number")
				}
				h.abundance, h.hasMean = f, true
			}
		case "L":
			e, why := parseLink(id, rest)
			if why != "" {
				return nil, bad(tag, why)
			}
			e.Line = line
			h.links = append(h.links, e)
		}
	}
	return h, nil
}

// parseLink reads "s1:id:s2" of an L:s1:id:s2 annotation listed on unitig from.
func parseLink(from uint64, rest string) (graph.NodeEdge, string) {
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return graph.NodeEdge{}, "adjacency needs the form L:<strand>:<id>:<strand>"
	}
	for _, p := range parts {
		if p == "" {
			return graph.NodeEdge{}, "adjacency has an empty field"
		}
	}
	fs, ok := graph.ParseStrand(parts[0])
	if !ok {
		return graph.NodeEdge{}, "source strand must be + or -"
	}
	to, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return graph.NodeEdge{}, "neighbor id is not a non-negative integer"
	}
	ts, ok := graph.ParseStrand(parts[2])
	if !ok {
		return graph.NodeEdge{}, "target strand must be + or -"
	}
	return graph.NodeEdge{From: from, FromStrand: fs, To: to, ToStrand: ts}, ""
}
