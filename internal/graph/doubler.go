package graph

import (
	"arcdbg/internal/nucleotide"
)

// maxUnitigs is the largest node table whose doubled ids fit in an ID.
const maxUnitigs = uint64(1) << 31

// Doubler maps every unitig, by parse position, onto a forward and a
// reverse-complement doubled id: Forward = 2i, Reverse = 2i+1.
type Doubler struct {
	nodes []Node
	index map[uint64]int
}

// NewDoubler fails with a CapacityError if the doubled ids would overflow.
// Node ids must be unique; the parser guarantees it.
func NewDoubler(nodes []Node) (*Doubler, error) {
	return newDoubler(nodes, maxUnitigs)
}

func newDoubler(nodes []Node, limit uint64) (*Doubler, error) {
	if uint64(len(nodes)) > limit {
		return nil, &CapacityError{Nodes: uint64(len(nodes)), Limit: limit}
	}
	d := &Doubler{nodes: nodes, index: make(map[uint64]int, len(nodes))}
	for i, n := range nodes {
		d.index[n.ID] = i
	}
	return d, nil
}

// Mirror returns the reverse-complement counterpart of id.
func Mirror(id ID) ID { return id ^ 1 }

// IsForward reports whether id denotes a unitig in its parsed orientation.
func IsForward(id ID) bool { return id&1 == 0 }

// NodeCount is the size of the doubled id space.
func (d *Doubler) NodeCount() int { return 2 * len(d.nodes) }

// Pair returns the forward and reverse ids of a unitig.
func (d *Doubler) Pair(nodeID uint64) (fwd, rev ID, ok bool) {
	i, ok := d.index[nodeID]
	if !ok {
		return 0, 0, false
	}
	fwd = ID(2 * i)
	return fwd, Mirror(fwd), true
}

// Oriented resolves a unitig and strand marker into a doubled id.
func (d *Doubler) Oriented(nodeID uint64, s Strand) (ID, bool) {
	fwd, rev, ok := d.Pair(nodeID)
	if !ok {
		return 0, false
	}
	if s == Minus {
		return rev, true
	}
	return fwd, true
}

// Node returns the unitig behind a doubled id.
func (d *Doubler) Node(id ID) Node {
	return d.nodes[id>>1]
}

// OrientedSequence is the unitig sequence read in the orientation of id.
func (d *Doubler) OrientedSequence(id ID) string {
	seq := d.Node(id).Sequence
	if IsForward(id) {
		return seq
	}
	return nucleotide.ReverseComplement(seq)
}
