package graph

import (
	"fmt"

	"arcdbg/internal/nucleotide"

	"github.com/charmbracelet/log"
)

// maxMismatchWarnings caps per-edge overlap warnings; the total is still counted.
const maxMismatchWarnings = 10

// Builder turns node-centric edges into doubled arcs.
type Builder struct {
	Doubler *Doubler
	K       int
	Weight  WeightPolicy
	Logger  *log.Logger // optional
}

// BuildStats summarizes one Build call.
type BuildStats struct {
	Edges             int
	Arcs              int
	SelfComplemental  int
	OverlapMismatches int
}

// Build emits, per edge and in edge order, the arc and then its mirror arc,
// or a single arc when the two coincide. Every edge yields one or two arcs.
func (b *Builder) Build(edges []NodeEdge) ([]Arc, BuildStats, error) {
	var stats BuildStats
	if b.K < 2 {
		return nil, stats, fmt.Errorf("k must be at least 2, got %d", b.K)
	}
	arcs := make([]Arc, 0, 2*len(edges))
	for i, e := range edges {
		from, ok := b.Doubler.Oriented(e.From, e.FromStrand)
		if !ok {
			return nil, stats, &DanglingEdgeError{Edge: e, Missing: e.From}
		}
		to, ok := b.Doubler.Oriented(e.To, e.ToStrand)
		if !ok {
			return nil, stats, &DanglingEdgeError{Edge: e, Missing: e.To}
		}

		overlap := suffix(b.Doubler.OrientedSequence(from), b.K-1)
		if head := prefix(b.Doubler.OrientedSequence(to), b.K-1); head != overlap {
			stats.OverlapMismatches++
			if b.Logger != nil && stats.OverlapMismatches <= maxMismatchWarnings {
				b.Logger.Warn("adjacency overlap does not match", "edge", e.String(), "line", e.Line, "suffix", overlap, "prefix", head)
			}
		}

		weight := b.Weight.Weigh(b.Doubler.Node(from), b.Doubler.Node(to))
		arc := Arc{
			From:       from,
			To:         to,
			Weight:     weight,
			MirrorFrom: Mirror(to),
			MirrorTo:   Mirror(from),
			Sequence:   overlap,
			Edge:       i,
		}
		mirror := mirrorArc(arc)
		if mirror.From == arc.From && mirror.To == arc.To && mirror.Sequence == arc.Sequence {
			arc.SelfComplemental = true
			arcs = append(arcs, arc)
			stats.SelfComplemental++
		} else {
			arcs = append(arcs, arc, mirror)
		}
		stats.Edges++
	}
	stats.Arcs = len(arcs)
	if b.Logger != nil && stats.OverlapMismatches > maxMismatchWarnings {
		b.Logger.Warn("further overlap mismatches not shown", "total", stats.OverlapMismatches)
	}
	return arcs, stats, nil
}

// mirrorArc is the reverse-complement traversal of a.
func mirrorArc(a Arc) Arc {
	return Arc{
		From:       a.MirrorFrom,
		To:         a.MirrorTo,
		Weight:     a.Weight,
		MirrorFrom: a.From,
		MirrorTo:   a.To,
		Sequence:   nucleotide.ReverseComplement(a.Sequence),
		Edge:       a.Edge,
	}
}

func suffix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
