package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"arcdbg/internal/config"
	"arcdbg/internal/convert"
	"arcdbg/internal/fileio"
	"arcdbg/internal/graph"
	"arcdbg/internal/logging"
	"arcdbg/internal/memmeter"
	"arcdbg/internal/report"
	"arcdbg/internal/sqlitestore"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// Exit codes per error kind.
const (
	exitOther     = 1
	exitMalformed = 2
	exitDangling  = 3
	exitCapacity  = 4
	exitIO        = 5
)

type flags struct {
	configPath string
	input      string
	output     string
	k          int
	weight     string
	sqlite     string
	maxLine    int
	summary    bool
	logFile    string
	logLevel   string
	verbose    bool
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "arcdbg --input GRAPH -k K [--output EDGES]",
		Short: "Convert a BCALM2 node-centric de Bruijn graph into a doubled arc-centric edge list",
		Long: `arcdbg reads unitigs written by BCALM2 and writes an arc-centric edge list.

Every unitig becomes a forward and a reverse-complement node (2n and 2n+1).
Every adjacency becomes an arc and its mirror arc, or a single arc when the
two coincide. The output starts with the node count followed by one line per
arc: from to weight mirror_from mirror_to sequence.

Examples:
  arcdbg --input graph.unitigs.fa -k 31 --output graph.arcs
  arcdbg --input graph.unitigs.fa.gz -k 31 --output graph.arcs.zst --summary
  zcat graph.unitigs.fa.gz | arcdbg --input - -k 31 > graph.arcs`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f.verbose, stderr)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "path to a YAML or JSON config file (default "+config.DefaultPath+" if present)")
	fl.StringVarP(&f.input, "input", "i", "", "BCALM2 unitig file, optionally gzip or zstd compressed; - for stdin")
	fl.StringVarP(&f.output, "output", "o", "", "edge list destination, .gz/.zst compress it; stdout when empty")
	fl.IntVarP(&f.k, "k", "k", 0, "k-mer size the graph was built with")
	fl.StringVar(&f.weight, "weight", "", "arc weight policy: min, source or mean (default min)")
	fl.StringVar(&f.sqlite, "sqlite", "", "also export the graph into this SQLite database")
	fl.IntVar(&f.maxLine, "max-line", 0, "longest accepted input line in bytes (default 256 MiB)")
	fl.BoolVar(&f.summary, "summary", false, "print a summary box to stderr when done")
	fl.StringVar(&f.logFile, "log-file", "", "also append logs to this file (rotated)")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (default info)")
	fl.BoolVar(&f.verbose, "verbose", false, "enable verbose (debug) logging")
	return cmd
}

// loadConfig merges CLI flags into the config file; flags win when set.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	fl := cmd.Flags()
	if fl.Changed("input") {
		cfg.Input = f.input
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("k") {
		cfg.K = f.k
	}
	if fl.Changed("weight") {
		cfg.Weight = f.weight
	}
	if fl.Changed("sqlite") {
		cfg.SQLitePath = f.sqlite
	}
	if fl.Changed("max-line") {
		cfg.MaxLineBytes = f.maxLine
	}
	if f.summary {
		cfg.Summary = true
	}
	if fl.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, verbose bool, stderr io.Writer) error {
	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Verbose:    verbose,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAge,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	policy, err := graph.ParseWeightPolicy(cfg.Weight)
	if err != nil {
		return err
	}
	start := time.Now()
	meter := memmeter.New(logger)
	logger.Debug("loaded config", "input", cfg.Input, "output", cfg.Output, "k", cfg.K, "weight", policy, "sqlite", cfg.SQLitePath, "log_file", cfg.LogFile)
	logger.Info("loading graph", "input", cfg.Input, "k", cfg.K, "output", outputName(cfg.Output))
	meter.Record("start")

	in, err := fileio.OpenInput(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()
	res, err := convert.Transform(in, convert.Options{
		K:       cfg.K,
		Weight:  policy,
		MaxLine: cfg.MaxLineBytes,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	meter.Record("transformed")

	logger.Info("writing graph", "output", outputName(cfg.Output))
	digest, err := writeEdgeList(res, cfg.Output)
	if err != nil {
		return err
	}
	logger.Info("wrote edge list", "nodes", res.Doubler.NodeCount(), "arcs", len(res.Arcs), "blake3", digest)

	if cfg.SQLitePath != "" {
		if err := exportSQLite(ctx, logger, res, cfg.SQLitePath); err != nil {
			return err
		}
	}
	meter.Record("done")
	logger.Info("success", "elapsed", time.Since(start).Round(time.Millisecond), "peak_heap", meter.PeakString())

	if cfg.Summary {
		fmt.Fprintln(stderr, report.Render(report.Summary{
			Input:             cfg.Input,
			Output:            cfg.Output,
			K:                 cfg.K,
			Weight:            policy.String(),
			Unitigs:           len(res.Nodes),
			Annotations:       res.Annotations,
			Edges:             len(res.Edges),
			DoubledNodes:      res.Doubler.NodeCount(),
			Arcs:              len(res.Arcs),
			SelfComplemental:  res.Stats.SelfComplemental,
			OverlapMismatches: res.Stats.OverlapMismatches,
			Digest:            digest,
			PeakMemory:        meter.PeakString(),
			Elapsed:           time.Since(start),
		}))
	}
	return nil
}

// writeEdgeList removes a partially written file on failure.
func writeEdgeList(res *convert.Result, path string) (string, error) {
	out, err := fileio.CreateOutput(path)
	if err != nil {
		return "", err
	}
	digest, werr := convert.Write(res, out, path)
	cerr := out.Close()
	if werr == nil && cerr != nil {
		werr = &graph.IOError{Op: "write", Path: path, Err: cerr}
	}
	if werr != nil {
		if path != "" && path != fileio.Stdio {
			_ = os.Remove(path)
		}
		return "", werr
	}
	return digest, nil
}

func exportSQLite(ctx context.Context, logger *log.Logger, res *convert.Result, path string) error {
	store, err := sqlitestore.Open(path)
	if err != nil {
		return &graph.IOError{Op: "write", Path: path, Err: err}
	}
	defer store.Close()
	if err := store.Save(ctx, res.Doubler, res.Arcs); err != nil {
		return &graph.IOError{Op: "write", Path: path, Err: err}
	}
	logger.Info("exported sqlite", "path", path, "nodes", res.Doubler.NodeCount(), "arcs", len(res.Arcs))
	return nil
}

func outputName(path string) string {
	if path == "" || path == fileio.Stdio {
		return "stdout"
	}
	return path
}

func exitCode(err error) int {
	var (
		malformed *graph.MalformedRecordError
		dangling  *graph.DanglingEdgeError
		capacity  *graph.CapacityError
		ioErr     *graph.IOError
	)
	switch {
	case errors.As(err, &malformed):
		return exitMalformed
	case errors.As(err, &dangling):
		return exitDangling
	case errors.As(err, &capacity):
		return exitCapacity
	case errors.As(err, &ioErr):
		return exitIO
	}
	return exitOther
}

func main() {
	cmd := newRootCmd(os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "arcdbg:", err)
		os.Exit(exitCode(err))
	}
}
