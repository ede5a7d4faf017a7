// Package convert runs the node-centric to arc-centric transform end to end:
// parse, double, build arcs, write.
package convert

import (
	"io"

	"arcdbg/internal/bcalm2"
	"arcdbg/internal/edgelist"
	"arcdbg/internal/graph"

	"github.com/charmbracelet/log"
)

// Options configure a conversion.
type Options struct {
	K       int
	Weight  graph.WeightPolicy
	MaxLine int
	Logger  *log.Logger // optional
}

// Result is the fully built arc-centric graph.
type Result struct {
	Nodes       []graph.Node
	Edges       []graph.NodeEdge
	Annotations int
	Doubler     *graph.Doubler
	Arcs        []graph.Arc
	Stats       graph.BuildStats
}

// Transform reads a BCALM2 graph from r and builds its doubled arcs.
func Transform(r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger != nil {
		logger.Info("reading graph")
	}
	g, err := bcalm2.Parse(r, bcalm2.Options{K: opts.K, MaxLine: opts.MaxLine})
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("parsed unitigs", "nodes", len(g.Nodes), "annotations", g.Annotations, "edges", len(g.Edges))
	}

	d, err := graph.NewDoubler(g.Nodes)
	if err != nil {
		return nil, err
	}
	b := &graph.Builder{Doubler: d, K: opts.K, Weight: opts.Weight, Logger: logger}
	arcs, stats, err := b.Build(g.Edges)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("built arcs", "arcs", stats.Arcs, "self_complemental", stats.SelfComplemental, "overlap_mismatches", stats.OverlapMismatches)
	}
	return &Result{
		Nodes:       g.Nodes,
		Edges:       g.Edges,
		Annotations: g.Annotations,
		Doubler:     d,
		Arcs:        arcs,
		Stats:       stats,
	}, nil
}

// Write emits res as an edge list on w and returns the output digest.
func Write(res *Result, w io.Writer, path string) (string, error) {
	ew := edgelist.NewWriter(w, path)
	if err := ew.WriteGraph(res.Doubler.NodeCount(), res.Arcs); err != nil {
		return "", err
	}
	return ew.Digest(), nil
}

// Run is Transform followed by Write.
func Run(r io.Reader, w io.Writer, opts Options) (*Result, string, error) {
	res, err := Transform(r, opts)
	if err != nil {
		return nil, "", err
	}
	if opts.Logger != nil {
		opts.Logger.Info("writing graph")
	}
	digest, err := Write(res, w, "")
	if err != nil {
		return nil, "", err
	}
	return res, digest, nil
}
