package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-pep/internal/analyze"
	"github.com/inodb/vibe-pep/internal/bioactivity"
	"github.com/inodb/vibe-pep/internal/brain"
	"github.com/inodb/vibe-pep/internal/cleavage"
	"github.com/inodb/vibe-pep/internal/output"
	"github.com/inodb/vibe-pep/internal/sequence"
	"github.com/inodb/vibe-pep/internal/store"
	"github.com/inodb/vibe-pep/internal/uniprot"
)

// pipelineFlags are the analysis options shared by analyze and batch.
type pipelineFlags struct {
	mode       string
	signal     int
	minSites   int
	minSpacing int
	maxLength  int
	remote     bool
	brainPath  string
	noCache    bool
}

func (pf *pipelineFlags) register(fs *flag.FlagSet, defaults uniprot.Params) {
	fs.StringVar(&pf.mode, "mode", "strict", "Cleavage detection mode: strict, permissive, ultra-permissive, pcsk567")
	fs.IntVar(&pf.signal, "signal", defaults.SignalLength, "Signal peptide length in residues")
	fs.IntVar(&pf.minSites, "min-sites", defaults.MinSites, "Minimum cleavage sites required for extraction")
	fs.IntVar(&pf.minSpacing, "min-spacing", defaults.MinSpacing, "Minimum spacing between cleavage sites (strict mode)")
	fs.IntVar(&pf.maxLength, "max-length", defaults.MaxPeptideLength, "Maximum peptide length to keep")
	fs.BoolVar(&pf.remote, "remote", false, "Score with the remote PeptideRanker service, falling back to the heuristic")
	fs.StringVar(&pf.brainPath, "brain", "", "Path to a brain peptide reference set (JSON)")
	fs.BoolVar(&pf.noCache, "no-cache", false, "Bypass the local protein cache")
}

func (pf *pipelineFlags) options() (analyze.Options, error) {
	mode, err := cleavage.ParseMode(pf.mode)
	if err != nil {
		return analyze.Options{}, err
	}
	return analyze.Options{
		Mode:             mode,
		SignalLength:     pf.signal,
		MinSites:         pf.minSites,
		MinSpacing:       pf.minSpacing,
		MaxPeptideLength: pf.maxLength,
	}, nil
}

// buildAnalyzer wires the scorer, resolver, and reference set from the
// flags and config. The returned closer releases the protein cache and
// may be nil.
func buildAnalyzer(pf *pipelineFlags, logger *zap.Logger) (*analyze.Analyzer, func(), error) {
	var oracle bioactivity.Oracle
	if pf.remote || viper.GetBool("ranker.enabled") {
		oracle = bioactivity.NewPeptideRanker(viper.GetString("ranker.url"), 0)
	}
	scorer := bioactivity.NewScorer(oracle)

	client := uniprot.NewClient()
	client.SetLogger(logger)

	var resolver analyze.ProteinResolver = client
	closer := func() {}
	if !pf.noCache {
		s, err := store.Open(defaultCachePath())
		if err != nil {
			logger.Warn("protein cache unavailable, querying UniProt directly", zap.Error(err))
		} else {
			caching := store.NewCachingResolver(s, client, store.FreshnessWindow)
			caching.SetLogger(logger)
			resolver = caching
			closer = func() { s.Close() }
		}
	}

	brainPath := pf.brainPath
	if brainPath == "" {
		brainPath = viper.GetString("brain.path")
	}
	var brainSet *brain.Set
	if brainPath != "" {
		set, err := brain.Load(brainPath)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("loading brain peptide set: %w", err)
		}
		logger.Info("loaded brain peptide set", zap.Int("peptides", set.Total))
		brainSet = set
	}

	a := analyze.NewAnalyzer(scorer, resolver, brainSet)
	a.SetLogger(logger)
	return a, closer, nil
}

func runAnalyze(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)

	var pf pipelineFlags
	pf.register(fs, uniprot.DefaultParams())

	var (
		protein      bool
		outputFormat string
		outputFile   string
	)
	fs.BoolVar(&protein, "protein", false, "Treat the argument as a UniProt accession or gene name")
	fs.StringVar(&outputFormat, "f", "summary", "Output format: summary, tab, json")
	fs.StringVar(&outputFormat, "output-format", "summary", "Output format: summary, tab, json")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Predict bioactive peptides from a precursor protein.

Usage:
  vibe-pep analyze [options] <sequence | fasta-file>
  vibe-pep analyze [options] --protein <accession-or-gene>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-pep analyze MKTLLLTLVVVTIVCLDLGYTGGGGKRAAAAAAAAAAKR
  vibe-pep analyze --mode permissive --signal 26 pomc.fasta
  vibe-pep analyze --protein POMC -f json -o pomc.json
  vibe-pep analyze --protein P01189 --remote
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: sequence or protein argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	opts, err := pf.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	analyzer, closer, err := buildAnalyzer(&pf, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer closer()

	ctx := context.Background()
	arg := fs.Arg(0)

	var report *analyze.Report
	if protein {
		report, err = analyzer.AnalyzeProtein(ctx, arg, opts)
	} else {
		seq, rerr := readSequenceArg(arg)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", rerr)
			return ExitError
		}
		report, err = analyzer.AnalyzeSequence(ctx, seq, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	out, cleanup, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer cleanup()

	switch outputFormat {
	case "summary":
		err = output.WriteSummary(out, report)
	case "tab":
		tw := output.NewTabWriter(out)
		if err = tw.WriteHeader(); err == nil {
			if err = tw.WriteReport(report); err == nil {
				err = tw.Flush()
			}
		}
	case "json":
		err = output.WriteJSON(out, report)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", outputFormat)
		return ExitError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runBatch(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)

	var pf pipelineFlags
	// Zero defaults let each protein's recommended parameters apply.
	pf.register(fs, uniprot.Params{})

	var (
		listFile     string
		outputFormat string
		outputFile   string
	)
	fs.StringVar(&listFile, "file", "", "File listing accessions or gene names, one per line")
	fs.StringVar(&outputFormat, "f", "summary", "Output format: summary, tab, json")
	fs.StringVar(&outputFormat, "output-format", "summary", "Output format: summary, tab, json")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Analyze multiple UniProt entries in one run.

Usage:
  vibe-pep batch [options] <accession-or-gene>...
  vibe-pep batch [options] --file proteins.txt

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-pep batch POMC PENK PDYN
  vibe-pep batch --file neuropeptide_precursors.txt -f json -o results.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	queries := fs.Args()
	if listFile != "" {
		fromFile, err := readQueryFile(listFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		queries = append(queries, fromFile...)
	}
	if len(queries) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one accession or gene name required\n\n")
		fs.Usage()
		return ExitUsage
	}

	opts, err := pf.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	analyzer, closer, err := buildAnalyzer(&pf, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer closer()

	batch, err := analyzer.AnalyzeBatch(context.Background(), queries, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	out, cleanup, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer cleanup()

	switch outputFormat {
	case "summary":
		err = output.WriteBatchSummary(out, batch)
	case "tab":
		tw := output.NewTabWriter(out)
		if err = tw.WriteHeader(); err == nil {
			if err = tw.WriteBatch(batch); err == nil {
				err = tw.Flush()
			}
		}
	case "json":
		err = output.WriteBatchJSON(out, batch)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", outputFormat)
		return ExitError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}
	if batch.FailedProteins > 0 {
		return ExitError
	}
	return ExitSuccess
}

// readSequenceArg accepts either a raw sequence or a path to a FASTA
// file. A readable file wins; anything else is treated as a sequence.
func readSequenceArg(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", arg, err)
		}
		rec := sequence.ParseFASTA(string(data))
		if rec.Sequence == "" {
			return "", fmt.Errorf("no sequence found in %s", arg)
		}
		return rec.Sequence, nil
	}
	return arg, nil
}

func readQueryFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var queries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
