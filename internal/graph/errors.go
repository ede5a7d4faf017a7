package graph

import "fmt"

// MalformedRecordError reports input that does not follow the BCALM2 record
// grammar: bad header fields, alphabet violations, length mismatches or
// duplicated ids.
type MalformedRecordError struct {
	Line     int    // 1-based input line, 0 when unknown
	RecordID string // raw record id, empty when the header could not be read
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Line > 0 && e.RecordID != "":
		return fmt.Sprintf("malformed record %s at line %d: %s", e.RecordID, e.Line, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
	case e.RecordID != "":
		return fmt.Sprintf("malformed record %s: %s", e.RecordID, e.Reason)
	}
	return "malformed record: " + e.Reason
}

// DanglingEdgeError reports an adjacency annotation naming a unitig that is
// not present in the node table.
type DanglingEdgeError struct {
	Edge    NodeEdge
	Missing uint64
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("edge %s at line %d references unknown unitig %d", e.Edge, e.Edge.Line, e.Missing)
}

// CapacityError reports a node table too large for the doubled id space.
type CapacityError struct {
	Nodes uint64
	Limit uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d unitigs exceed the doubled id capacity of %d unitigs", e.Nodes, e.Limit)
}

// IOError wraps a read or write failure.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
