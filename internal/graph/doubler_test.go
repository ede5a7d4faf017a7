package graph

import (
	"errors"
	"testing"
)

func testNodes() []Node {
	return []Node{
		{ID: 7, Sequence: "ACGT", Length: 4, Abundance: 3},
		{ID: 3, Sequence: "CGTA", Length: 4, Abundance: 5},
		{ID: 11, Sequence: "TTACGT", Length: 6, Abundance: 2},
	}
}

func TestDoublerPairs(t *testing.T) {
	d, err := NewDoubler(testNodes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.NodeCount() != 6 {
		t.Fatalf("expected 6 doubled nodes, got %d", d.NodeCount())
	}
	fwd, rev, ok := d.Pair(3)
	if !ok || fwd != 2 || rev != 3 {
		t.Fatalf("expected unitig 3 at position 1 to map to (2,3), got (%d,%d) ok=%v", fwd, rev, ok)
	}
	if id, _ := d.Oriented(11, Minus); id != 5 {
		t.Fatalf("expected reverse of unitig 11 to be 5, got %d", id)
	}
	if _, ok := d.Oriented(42, Plus); ok {
		t.Fatalf("unknown unitig must not resolve")
	}
	if got := d.OrientedSequence(3); got != "TACG" {
		t.Fatalf("expected reverse orientation TACG, got %q", got)
	}
	if got := d.Node(4).ID; got != 11 {
		t.Fatalf("expected doubled id 4 to belong to unitig 11, got %d", got)
	}
}

func TestMirrorInvolution(t *testing.T) {
	d, _ := NewDoubler(testNodes())
	for x := ID(0); int(x) < d.NodeCount(); x++ {
		if Mirror(Mirror(x)) != x {
			t.Fatalf("mirror is not an involution at %d", x)
		}
		if Mirror(x) == x {
			t.Fatalf("mirror of %d must differ from itself", x)
		}
		if d.Node(x).ID != d.Node(Mirror(x)).ID {
			t.Fatalf("%d and its mirror belong to different unitigs", x)
		}
	}
}

func TestDoublerCapacity(t *testing.T) {
	_, err := newDoubler(testNodes(), 2)
	var ce *CapacityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if ce.Nodes != 3 || ce.Limit != 2 {
		t.Fatalf("unexpected capacity error fields: %+v", ce)
	}
	if _, err := newDoubler(testNodes(), 3); err != nil {
		t.Fatalf("3 unitigs fit a limit of 3: %v", err)
	}
}
