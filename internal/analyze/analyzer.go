package analyze

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-pep/internal/bioactivity"
	"github.com/inodb/vibe-pep/internal/brain"
	"github.com/inodb/vibe-pep/internal/cleavage"
	"github.com/inodb/vibe-pep/internal/peptide"
	"github.com/inodb/vibe-pep/internal/ptm"
	"github.com/inodb/vibe-pep/internal/sequence"
	"github.com/inodb/vibe-pep/internal/uniprot"
)

// topPeptideCount limits the highlighted slice in a report.
const topPeptideCount = 5

// minSequenceMargin is added to the signal length to get the minimum
// analyzable sequence length.
const minSequenceMargin = 10

// ProteinResolver resolves an accession or gene name to a protein
// record, from cache or from UniProt.
type ProteinResolver interface {
	Resolve(ctx context.Context, query string) (*uniprot.Protein, error)
}

// Analyzer runs the full pipeline: detect sites, extract candidates,
// score, annotate PTMs, and rank.
type Analyzer struct {
	detector *cleavage.Detector
	scorer   *bioactivity.Scorer
	resolver ProteinResolver
	brainSet *brain.Set
	logger   *zap.Logger
}

// NewAnalyzer creates an analyzer. resolver and brainSet may be nil;
// a nil resolver disables AnalyzeProtein and AnalyzeBatch, a nil
// brainSet skips reference-set lookups.
func NewAnalyzer(scorer *bioactivity.Scorer, resolver ProteinResolver, brainSet *brain.Set) *Analyzer {
	return &Analyzer{
		detector: cleavage.NewDetector(),
		scorer:   scorer,
		resolver: resolver,
		brainSet: brainSet,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger on the analyzer and its stages.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
	a.detector.SetLogger(l)
	if a.scorer != nil {
		a.scorer.SetLogger(l)
	}
}

// AnalyzeSequence analyzes one raw amino acid sequence.
func (a *Analyzer) AnalyzeSequence(ctx context.Context, raw string, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seq := sequence.Clean(raw)
	if err := sequence.Validate(seq); err != nil {
		return nil, err
	}
	if err := sequence.ValidateLength(seq, opts.SignalLength+minSequenceMargin); err != nil {
		return nil, err
	}

	sites := a.detector.FindSites(seq, opts.Mode, opts.SignalLength, opts.MinSpacing)
	candidates := peptide.Extract(seq, sites, opts.SignalLength, opts.MinSpacing, opts.MinSites, opts.Mode)
	if opts.MaxPeptideLength > 0 {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Length <= opts.MaxPeptideLength {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	report := &Report{
		Status:             StatusSuccess,
		Sequence:           seq,
		SequenceLength:     len(seq),
		SignalPeptideEnd:   opts.SignalLength,
		Mode:               opts.Mode,
		CleavageSites:      sites,
		CleavageSitesCount: len(sites),
		Peptides:           make([]*Peptide, 0, len(candidates)),
	}

	seqs := make([]string, len(candidates))
	ctxs := make([]bioactivity.Context, len(candidates))
	for i, c := range candidates {
		seqs[i] = c.Sequence
		ctxs[i] = bioactivity.Context{
			FullSequence: seq,
			End:          c.End,
			CTermKind:    c.CTermKind,
		}
	}
	results := a.scorer.ScoreAll(ctx, seqs, ctxs)

	for i, c := range candidates {
		p := &Peptide{
			Candidate:         c,
			BioactivityScore:  results[i].Score,
			BioactivitySource: results[i].Source,
			UniProtStatus:     uniprot.StatusUnknown,
		}
		p.PTMs = a.annotatePTMs(c, seq)
		p.ModifiedSequence = ptm.GenerateModifiedSequence(c.Sequence, p.PTMs)
		p.Properties = bioactivity.Profile(c.Sequence)
		if a.brainSet != nil && a.brainSet.Loaded() {
			p.Brain = a.brainSet.Check(c.Sequence)
		}
		if c.InRange {
			report.PeptidesInRange++
		}
		report.Peptides = append(report.Peptides, p)
	}

	sort.SliceStable(report.Peptides, func(i, j int) bool {
		return report.Peptides[i].BioactivityScore > report.Peptides[j].BioactivityScore
	})
	n := topPeptideCount
	if n > len(report.Peptides) {
		n = len(report.Peptides)
	}
	report.TopPeptides = report.Peptides[:n]

	a.logger.Info("analysis complete",
		zap.String("mode", string(opts.Mode)),
		zap.Int("sites", len(sites)),
		zap.Int("peptides", len(report.Peptides)),
		zap.Int("inRange", report.PeptidesInRange))
	return report, nil
}

// annotatePTMs guards the PTM stage against candidates with offsets that
// do not line up with the parent sequence. Such a candidate gets no
// annotations rather than failing the whole analysis.
func (a *Analyzer) annotatePTMs(c peptide.Candidate, seq string) []ptm.Annotation {
	if c.Start < 0 || c.End > len(seq) || c.Start+c.Length > c.End {
		a.logger.Warn("candidate offsets out of bounds, skipping PTM annotation",
			zap.Int("start", c.Start), zap.Int("end", c.End), zap.Int("length", c.Length))
		return []ptm.Annotation{}
	}
	return ptm.DetectAll(c.Sequence, seq, c.End)
}

// AnalyzeProtein resolves an accession or gene name and analyzes the
// resolved sequence with the protein's recommended parameters filling
// any zero-valued options.
func (a *Analyzer) AnalyzeProtein(ctx context.Context, query string, opts Options) (*Report, error) {
	if a.resolver == nil {
		return nil, fmt.Errorf("no protein resolver configured")
	}
	p, err := a.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", query, err)
	}

	if opts.SignalLength == 0 {
		opts.SignalLength = p.SignalEnd
	}
	if opts.MinSites == 0 {
		opts.MinSites = p.RecommendedParams.MinSites
	}
	if opts.MinSpacing == 0 {
		opts.MinSpacing = p.RecommendedParams.MinSpacing
	}
	if opts.MaxPeptideLength == 0 {
		opts.MaxPeptideLength = p.RecommendedParams.MaxPeptideLength
	}

	report, err := a.AnalyzeSequence(ctx, p.Sequence, opts)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", p.Accession, err)
	}

	report.Accession = p.Accession
	report.GeneName = p.GeneName
	report.ProteinName = p.ProteinName
	report.FastaHeader = p.FastaHeader
	report.ProteinID = fmt.Sprintf("SP|%s|%s_HUMAN %s", p.Accession, p.GeneName, p.ProteinName)

	for _, pep := range report.Peptides {
		m := uniprot.MatchKnown(pep.Sequence, p.AnnotatedPeptides)
		pep.UniProtStatus = m.Status
		pep.UniProtName = m.Name
		pep.UniProtNote = m.Note
		pep.UniProtAccession = p.Accession
	}
	return report, nil
}

// AnalyzeBatch analyzes a list of accessions or gene names in order,
// deduplicating while preserving first occurrence. Failures do not stop
// the batch; unresolvable queries are collected separately.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, queries []string, opts Options) (*BatchReport, error) {
	if a.resolver == nil {
		return nil, fmt.Errorf("no protein resolver configured")
	}

	seen := make(map[string]bool, len(queries))
	unique := make([]string, 0, len(queries))
	for _, q := range queries {
		key := strings.ToUpper(strings.TrimSpace(q))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}

	batch := &BatchReport{
		TotalProteins:  len(queries),
		UniqueProteins: len(unique),
		Mode:           opts.Mode,
		Results:        make([]*Report, 0, len(unique)),
	}

	for _, q := range unique {
		report, err := a.AnalyzeProtein(ctx, q, opts)
		if err != nil {
			if errors.Is(err, uniprot.ErrNotFound) {
				batch.NotFound = append(batch.NotFound, q)
			}
			batch.FailedProteins++
			batch.Results = append(batch.Results, &Report{
				Status:    StatusError,
				ProteinID: q,
				Mode:      opts.Mode,
				Error:     err.Error(),
			})
			a.logger.Warn("batch entry failed", zap.String("query", q), zap.Error(err))
			continue
		}
		batch.SuccessfulProteins++
		batch.Results = append(batch.Results, report)
	}
	return batch, nil
}
