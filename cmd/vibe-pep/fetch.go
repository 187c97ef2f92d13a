package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-pep/internal/store"
	"github.com/inodb/vibe-pep/internal/uniprot"
)

func runFetch(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)

	var (
		searchType string
		limit      int
		refresh    bool
	)
	fs.StringVar(&searchType, "type", "gene", "Search type: gene or accession")
	fs.IntVar(&limit, "limit", 5, "Maximum search results to show")
	fs.BoolVar(&refresh, "refresh", false, "Refetch even if the cache entry is fresh")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Fetch a protein record from UniProt and cache it locally.

Usage:
  vibe-pep fetch [options] <accession-or-gene>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  vibe-pep fetch P01189
  vibe-pep fetch --type gene POMC
  vibe-pep fetch --refresh P01189
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: accession or gene name argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	query := strings.ToUpper(strings.TrimSpace(fs.Arg(0)))

	client := uniprot.NewClient()
	client.SetLogger(logger)

	s, err := store.Open(defaultCachePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening protein cache: %v\n", err)
		return ExitError
	}
	defer s.Close()

	ctx := context.Background()

	if !refresh {
		if p, ok, err := s.GetProtein(query, store.FreshnessWindow); err == nil && ok {
			fmt.Fprintf(os.Stderr, "Using cached record for %s\n", p.Accession)
			printProtein(p)
			return ExitSuccess
		}
	}

	var p *uniprot.Protein
	if uniprot.IsAccession(query) {
		p, err = client.Get(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	} else {
		results, err := client.Search(ctx, query, searchType, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no UniProt entry found for %q\n", query)
			return ExitError
		}
		p = results[0]
		if len(results) > 1 {
			fmt.Fprintf(os.Stderr, "Multiple matches for %q, using %s:\n", query, p.Accession)
			for _, r := range results {
				fmt.Fprintf(os.Stderr, "  %s  %s  %s\n", r.Accession, r.GeneName, r.ProteinName)
			}
		}
	}

	if err := s.PutProtein(p); err != nil {
		logger.Warn("caching protein failed", zap.String("accession", p.Accession), zap.Error(err))
	}

	printProtein(p)
	return ExitSuccess
}

func printProtein(p *uniprot.Protein) {
	fmt.Printf("Accession:        %s\n", p.Accession)
	fmt.Printf("Gene:             %s\n", p.GeneName)
	fmt.Printf("Name:             %s\n", p.ProteinName)
	fmt.Printf("Length:           %d\n", p.Length)
	fmt.Printf("Signal peptide:   1-%d\n", p.SignalEnd)
	fmt.Printf("Known peptides:   %d\n", len(p.AnnotatedPeptides))
	fmt.Printf("Recommended:      signal=%d min-sites=%d min-spacing=%d max-length=%d\n",
		p.RecommendedParams.SignalLength, p.RecommendedParams.MinSites,
		p.RecommendedParams.MinSpacing, p.RecommendedParams.MaxPeptideLength)
	for _, ap := range p.AnnotatedPeptides {
		fmt.Printf("  %-30s %d-%d\n", ap.Name, ap.Start, ap.End)
	}
}
