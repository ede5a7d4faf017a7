package graph

import (
	"errors"
	"testing"

	"arcdbg/internal/nucleotide"
)

func build(t *testing.T, nodes []Node, k int, edges []NodeEdge) ([]Arc, BuildStats) {
	t.Helper()
	d, err := NewDoubler(nodes)
	if err != nil {
		t.Fatalf("doubler: %v", err)
	}
	b := &Builder{Doubler: d, K: k}
	arcs, stats, err := b.Build(edges)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return arcs, stats
}

func TestBuildTwoUnitigs(t *testing.T) {
	nodes := []Node{
		{ID: 0, Sequence: "ACGT", Length: 4, Abundance: 3},
		{ID: 1, Sequence: "CGTA", Length: 4, Abundance: 5},
	}
	arcs, stats := build(t, nodes, 4, []NodeEdge{{From: 0, FromStrand: Plus, To: 1, ToStrand: Plus}})

	want := []Arc{
		{From: 0, To: 2, Weight: 3, MirrorFrom: 3, MirrorTo: 1, Sequence: "CGT"},
		{From: 3, To: 1, Weight: 3, MirrorFrom: 0, MirrorTo: 2, Sequence: "ACG"},
	}
	if len(arcs) != len(want) {
		t.Fatalf("expected %d arcs, got %d: %+v", len(want), len(arcs), arcs)
	}
	for i := range want {
		if arcs[i] != want[i] {
			t.Fatalf("arc %d: expected %+v, got %+v", i, want[i], arcs[i])
		}
	}
	if stats.Edges != 1 || stats.Arcs != 2 || stats.SelfComplemental != 0 || stats.OverlapMismatches != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBuildSelfComplementalCollapses(t *testing.T) {
	// forward TTACGT ends in ACGT, which also starts its reverse complement ACGTAA.
	nodes := []Node{{ID: 0, Sequence: "TTACGT", Length: 6, Abundance: 4}}
	arcs, stats := build(t, nodes, 5, []NodeEdge{{From: 0, FromStrand: Plus, To: 0, ToStrand: Minus}})
	if len(arcs) != 1 {
		t.Fatalf("expected a single arc, got %+v", arcs)
	}
	a := arcs[0]
	if a.From != 0 || a.To != 1 || a.MirrorFrom != 0 || a.MirrorTo != 1 || a.Sequence != "ACGT" || !a.SelfComplemental {
		t.Fatalf("unexpected self-complemental arc: %+v", a)
	}
	if stats.SelfComplemental != 1 {
		t.Fatalf("expected 1 self-complemental arc, got %d", stats.SelfComplemental)
	}
}

func TestBuildSelfLoopIsNotSelfComplemental(t *testing.T) {
	// ACGAC wraps onto itself through the overlap AC; its mirror runs on the reverse strand.
	nodes := []Node{{ID: 0, Sequence: "ACGAC", Length: 5, Abundance: 1}}
	arcs, stats := build(t, nodes, 3, []NodeEdge{{From: 0, FromStrand: Plus, To: 0, ToStrand: Plus}})
	if len(arcs) != 2 || stats.SelfComplemental != 0 {
		t.Fatalf("expected arc and mirror, got %+v", arcs)
	}
	if arcs[0].From != 0 || arcs[0].To != 0 || arcs[1].From != 1 || arcs[1].To != 1 {
		t.Fatalf("unexpected self-loop arcs: %+v", arcs)
	}
	if arcs[1].Sequence != "GT" {
		t.Fatalf("expected mirror overlap GT, got %q", arcs[1].Sequence)
	}
}

func TestBuildPreservesParallelArcs(t *testing.T) {
	nodes := []Node{
		{ID: 0, Sequence: "ACGT", Length: 4, Abundance: 3},
		{ID: 1, Sequence: "CGTA", Length: 4, Abundance: 5},
	}
	e := NodeEdge{From: 0, FromStrand: Plus, To: 1, ToStrand: Plus}
	arcs, _ := build(t, nodes, 4, []NodeEdge{e, e})
	if len(arcs) != 4 {
		t.Fatalf("expected 4 arcs for 2 parallel edges, got %d", len(arcs))
	}
	if arcs[0].Edge != 0 || arcs[2].Edge != 1 {
		t.Fatalf("parallel arcs must keep their originating edges: %+v", arcs)
	}
	if arcs[0].From != arcs[2].From || arcs[0].To != arcs[2].To {
		t.Fatalf("expected identical endpoints, got %+v", arcs)
	}
}

func TestBuildMirrorCompleteness(t *testing.T) {
	nodes := []Node{
		{ID: 0, Sequence: "ATCGATCGATCGAT", Length: 14, Abundance: 21},
		{ID: 1, Sequence: "CGATCGATCGATCG", Length: 14, Abundance: 20},
		{ID: 2, Sequence: "TCGATCGATCGATC", Length: 14, Abundance: 43},
		{ID: 3, Sequence: "CGATCGATCGATCAGT", Length: 16, Abundance: 1},
	}
	edges := []NodeEdge{
		{From: 0, FromStrand: Minus, To: 2, ToStrand: Plus},
		{From: 0, FromStrand: Plus, To: 2, ToStrand: Plus},
		{From: 1, FromStrand: Minus, To: 2, ToStrand: Minus},
		{From: 1, FromStrand: Plus, To: 2, ToStrand: Minus},
		{From: 2, FromStrand: Plus, To: 3, ToStrand: Plus},
	}
	arcs, stats := build(t, nodes, 14, edges)
	if stats.OverlapMismatches != 0 {
		t.Fatalf("fixture overlaps must match, got %d mismatches", stats.OverlapMismatches)
	}
	checkMirrorCompleteness(t, arcs)
}

func checkMirrorCompleteness(t *testing.T, arcs []Arc) {
	t.Helper()
	for i, a := range arcs {
		if a.SelfComplemental {
			continue
		}
		matches := 0
		for j, b := range arcs {
			if i == j {
				continue
			}
			if b.From == a.MirrorFrom && b.To == a.MirrorTo && b.MirrorFrom == a.From && b.MirrorTo == a.To &&
				b.Weight == a.Weight && b.Sequence == nucleotide.ReverseComplement(a.Sequence) && b.Edge == a.Edge {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("arc %d %+v has %d mirror arcs, want 1", i, a, matches)
		}
	}
}

func TestBuildDanglingEdge(t *testing.T) {
	d, _ := NewDoubler([]Node{{ID: 0, Sequence: "ACGT", Length: 4, Abundance: 1}})
	b := &Builder{Doubler: d, K: 4}
	_, _, err := b.Build([]NodeEdge{{From: 0, FromStrand: Plus, To: 9, ToStrand: Minus, Line: 1}})
	var de *DanglingEdgeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DanglingEdgeError, got %v", err)
	}
	if de.Missing != 9 || de.Edge.Line != 1 {
		t.Fatalf("unexpected dangling edge error: %+v", de)
	}
}

func TestBuildCountsOverlapMismatch(t *testing.T) {
	nodes := []Node{
		{ID: 0, Sequence: "ACGT", Length: 4, Abundance: 1},
		{ID: 1, Sequence: "TTTT", Length: 4, Abundance: 1},
	}
	arcs, stats := build(t, nodes, 4, []NodeEdge{{From: 0, FromStrand: Plus, To: 1, ToStrand: Plus}})
	if stats.OverlapMismatches != 1 {
		t.Fatalf("expected 1 mismatch, got %d", stats.OverlapMismatches)
	}
	if len(arcs) != 2 || arcs[0].Sequence != "CGT" {
		t.Fatalf("mismatching adjacency must still be emitted from the source suffix: %+v", arcs)
	}
}

func TestBuildRejectsSmallK(t *testing.T) {
	d, _ := NewDoubler(nil)
	b := &Builder{Doubler: d, K: 1}
	if _, _, err := b.Build(nil); err == nil {
		t.Fatalf("expected error for k=1")
	}
}
