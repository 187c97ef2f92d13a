// Package main provides the vibe-pep command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	var verbose bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("vibe-pep version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()
	logger := newLogger(verbose)
	defer logger.Sync()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:], logger)
	case "batch":
		return runBatch(args[1:], logger)
	case "fetch":
		return runFetch(args[1:], logger)
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initConfig loads ~/.vibe-pep.yaml if present. A missing config file
// is not an error.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigName(".vibe-pep")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	_ = viper.ReadInConfig()
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// defaultCachePath returns the DuckDB protein cache location, honoring
// the cache.path config key.
func defaultCachePath() string {
	if p := viper.GetString("cache.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "proteins.duckdb"
	}
	return filepath.Join(home, ".vibe-pep", "proteins.duckdb")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vibe-pep - Bioactive peptide predictor

Usage:
  vibe-pep [options] <command> [arguments]

Commands:
  analyze     Predict bioactive peptides from a sequence, FASTA file, or UniProt entry
  batch       Analyze multiple UniProt entries
  fetch       Fetch a protein record from UniProt and cache it
  config      Manage vibe-pep configuration
  help        Show this help message

Global Options:
  --version   Show version information
  --verbose   Enable debug logging

Examples:
  # Analyze a raw amino acid sequence
  vibe-pep analyze MKTLLLTLVVVTIVCLDLGYTGGGGKRAAAAAAAAAAKR

  # Analyze a UniProt entry by accession or gene name
  vibe-pep analyze --protein P01189

  # Analyze with permissive cleavage detection
  vibe-pep analyze --mode permissive --signal 20 sequence.fasta

  # Analyze several proteins at once
  vibe-pep batch POMC PENK PDYN

For more information on a command, use:
  vibe-pep <command> --help
`)
}
