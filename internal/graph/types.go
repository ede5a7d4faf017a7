// Package graph holds the node-centric and doubled arc-centric views of a de
// Bruijn graph together with the transform between them.
package graph

import "fmt"

// Strand selects which orientation of a unitig takes part in an adjacency.
type Strand uint8

const (
	Plus Strand = iota
	Minus
)

// ParseStrand accepts the BCALM2 markers "+" and "-".
func ParseStrand(s string) (Strand, bool) {
	switch s {
	case "+":
		return Plus, true
	case "-":
		return Minus, true
	}
	return Plus, false
}

func (s Strand) Flip() Strand {
	if s == Plus {
		return Minus
	}
	return Plus
}

func (s Strand) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Node is a parsed unitig. Sequence is upper case and Length matches it.
type Node struct {
	ID        uint64
	Sequence  string
	Length    int
	Abundance float64 // mean k-mer coverage
	KmerCount int64   // KC tag, 0 when absent
	Line      int     // header line
}

// NodeEdge is one adjacency annotation L:FromStrand:To:ToStrand listed on
// unitig From: the end of From oriented by FromStrand overlaps the start of
// To oriented by ToStrand.
type NodeEdge struct {
	From       uint64
	FromStrand Strand
	To         uint64
	ToStrand   Strand
	Line       int
}

// Mirror returns the same adjacency as listed from the other unitig.
func (e NodeEdge) Mirror() NodeEdge {
	return NodeEdge{
		From:       e.To,
		FromStrand: e.ToStrand.Flip(),
		To:         e.From,
		ToStrand:   e.FromStrand.Flip(),
		Line:       e.Line,
	}
}

// Key drops the source position so that equal annotations compare equal.
func (e NodeEdge) Key() NodeEdge {
	e.Line = 0
	return e
}

func (e NodeEdge) String() string {
	return fmt.Sprintf("%d%s->%d%s", e.From, e.FromStrand, e.To, e.ToStrand)
}

// ID is a doubled, arc-centric node identifier.
type ID uint32

// Arc is one line of the output edge list.
type Arc struct {
	From, To   ID
	Weight     float64
	MirrorFrom ID // From of the mirror arc, Mirror(To)
	MirrorTo   ID // To of the mirror arc, Mirror(From)
	Sequence   string

	SelfComplemental bool
	Edge             int // index of the originating NodeEdge
}
