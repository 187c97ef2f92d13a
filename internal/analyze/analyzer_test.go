package analyze

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-pep/internal/bioactivity"
	"github.com/inodb/vibe-pep/internal/cleavage"
	"github.com/inodb/vibe-pep/internal/uniprot"
)

const prohormoneSeq = "MKTLLLTLVVVTIVCLDLGYTGGGGKRAAAAAAAAAAKRSSSSSSSSSSKR"

func defaultOptions() Options {
	return Options{
		Mode:         cleavage.ModeStrict,
		SignalLength: 9,
		MinSites:     2,
		MinSpacing:   5,
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, defaultOptions().Validate())

	bad := defaultOptions()
	bad.SignalLength = -1
	assert.Error(t, bad.Validate())

	bad = defaultOptions()
	bad.MinSites = 0
	assert.Error(t, bad.Validate())

	bad = defaultOptions()
	bad.MinSpacing = 0
	assert.Error(t, bad.Validate())

	bad = defaultOptions()
	bad.MaxPeptideLength = 5
	assert.Error(t, bad.Validate())

	ok := defaultOptions()
	ok.MaxPeptideLength = 0
	assert.NoError(t, ok.Validate())
}

func TestAnalyzeSequence(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)

	report, err := a.AnalyzeSequence(context.Background(), prohormoneSeq, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, len(prohormoneSeq), report.SequenceLength)
	assert.Equal(t, 2, report.CleavageSitesCount)
	require.Len(t, report.Peptides, 3)

	// Peptides come back ranked by score.
	for i := 1; i < len(report.Peptides); i++ {
		assert.GreaterOrEqual(t, report.Peptides[i-1].BioactivityScore, report.Peptides[i].BioactivityScore)
	}
	assert.Len(t, report.TopPeptides, 3)

	for _, p := range report.Peptides {
		assert.Equal(t, bioactivity.SourceHeuristic, p.BioactivitySource)
		assert.Equal(t, uniprot.StatusUnknown, p.UniProtStatus)
		assert.NotEmpty(t, p.ModifiedSequence)
	}
}

func TestAnalyzeSequence_CleansInput(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)

	raw := ">precursor test\n" + prohormoneSeq[:20] + "\n" + prohormoneSeq[20:]
	report, err := a.AnalyzeSequence(context.Background(), raw, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, prohormoneSeq, report.Sequence)
}

func TestAnalyzeSequence_Rejections(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)
	ctx := context.Background()

	_, err := a.AnalyzeSequence(ctx, "MKTXLL1", defaultOptions())
	assert.Error(t, err)

	// Shorter than signal length + 10.
	_, err = a.AnalyzeSequence(ctx, "MKTLLLTVVVTIVCLD", defaultOptions())
	assert.Error(t, err)

	bad := defaultOptions()
	bad.MinSites = 0
	_, err = a.AnalyzeSequence(ctx, prohormoneSeq, bad)
	assert.Error(t, err)
}

func TestAnalyzeSequence_MaxLengthFilter(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)

	opts := defaultOptions()
	opts.MaxPeptideLength = 12
	report, err := a.AnalyzeSequence(context.Background(), prohormoneSeq, opts)
	require.NoError(t, err)

	for _, p := range report.Peptides {
		assert.LessOrEqual(t, p.Length, 12)
	}
	// The 16-residue first fragment is filtered out.
	assert.Len(t, report.Peptides, 2)
}

func TestAnalyzeSequence_RemoteScores(t *testing.T) {
	oracle := fixedOracle(42.0)
	a := NewAnalyzer(bioactivity.NewScorer(oracle), nil, nil)

	report, err := a.AnalyzeSequence(context.Background(), prohormoneSeq, defaultOptions())
	require.NoError(t, err)
	for _, p := range report.Peptides {
		assert.Equal(t, bioactivity.SourceRemote, p.BioactivitySource)
		assert.Equal(t, 42.0, p.BioactivityScore)
	}
}

type fixedOracle float64

func (f fixedOracle) Predict(context.Context, string) (float64, error) {
	return float64(f), nil
}

// stubResolver serves canned proteins by accession or gene name.
type stubResolver struct {
	proteins map[string]*uniprot.Protein
	calls    int
}

func (r *stubResolver) Resolve(_ context.Context, query string) (*uniprot.Protein, error) {
	r.calls++
	if p, ok := r.proteins[query]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%s: %w", query, uniprot.ErrNotFound)
}

func stubProtein() *uniprot.Protein {
	return &uniprot.Protein{
		Accession:   "T00001",
		GeneName:    "TEST1",
		ProteinName: "Test prohormone",
		Sequence:    prohormoneSeq,
		Length:      len(prohormoneSeq),
		SignalEnd:   9,
		FastaHeader: ">sp|T00001|TEST1_HUMAN Test prohormone",
		RecommendedParams: uniprot.Params{
			SignalLength: 9,
			MinSites:     2,
			MinSpacing:   5,
		},
		AnnotatedPeptides: []uniprot.AnnotatedPeptide{
			{Name: "Deca-alanine", Type: "Peptide", Start: 28, End: 37, Sequence: "AAAAAAAAAA"},
		},
	}
}

func TestAnalyzeProtein(t *testing.T) {
	resolver := &stubResolver{proteins: map[string]*uniprot.Protein{"TEST1": stubProtein()}}
	a := NewAnalyzer(bioactivity.NewScorer(nil), resolver, nil)

	// Zero-valued options pick up the protein's recommended parameters.
	opts := Options{Mode: cleavage.ModeStrict}
	report, err := a.AnalyzeProtein(context.Background(), "TEST1", opts)
	require.NoError(t, err)

	assert.Equal(t, "T00001", report.Accession)
	assert.Equal(t, "TEST1", report.GeneName)
	assert.Equal(t, "SP|T00001|TEST1_HUMAN Test prohormone", report.ProteinID)
	assert.Equal(t, 9, report.SignalPeptideEnd)

	// The deca-alanine fragment matches the annotated peptide exactly.
	var exact *Peptide
	for _, p := range report.Peptides {
		if p.Sequence == "AAAAAAAAAA" {
			exact = p
		}
		assert.Equal(t, "T00001", p.UniProtAccession)
	}
	require.NotNil(t, exact)
	assert.Equal(t, uniprot.StatusExact, exact.UniProtStatus)
	assert.Equal(t, "Deca-alanine", exact.UniProtName)
}

func TestAnalyzeProtein_GeneNameQuery(t *testing.T) {
	// Gene symbols resolve via the search endpoint; the entry
	// endpoint rejects them outright.
	entry := `{
		"primaryAccession": "P01189",
		"genes": [{"geneName": {"value": "POMC"}}],
		"proteinDescription": {"recommendedName": {"fullName": {"value": "Pro-opiomelanocortin"}}},
		"sequence": {"value": "` + prohormoneSeq + `", "length": ` + fmt.Sprint(len(prohormoneSeq)) + `},
		"features": [{"type": "Signal", "location": {"start": {"value": 1}, "end": {"value": 9}}}]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search") {
			fmt.Fprintf(w, `{"results": [%s]}`, entry)
			return
		}
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := uniprot.NewClientWithBaseURL(srv.URL)
	a := NewAnalyzer(bioactivity.NewScorer(nil), client, nil)

	report, err := a.AnalyzeProtein(context.Background(), "POMC", Options{Mode: cleavage.ModeStrict})
	require.NoError(t, err)
	assert.Equal(t, "P01189", report.Accession)
	assert.Equal(t, "POMC", report.GeneName)
	assert.Equal(t, StatusSuccess, report.Status)
}

func TestAnalyzeProtein_NotFound(t *testing.T) {
	resolver := &stubResolver{proteins: map[string]*uniprot.Protein{}}
	a := NewAnalyzer(bioactivity.NewScorer(nil), resolver, nil)

	_, err := a.AnalyzeProtein(context.Background(), "NOPE", Options{Mode: cleavage.ModeStrict})
	require.Error(t, err)
	assert.ErrorIs(t, err, uniprot.ErrNotFound)
}

func TestAnalyzeProtein_NoResolver(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)
	_, err := a.AnalyzeProtein(context.Background(), "TEST1", Options{Mode: cleavage.ModeStrict})
	assert.Error(t, err)
}

func TestAnalyzeBatch(t *testing.T) {
	resolver := &stubResolver{proteins: map[string]*uniprot.Protein{"TEST1": stubProtein()}}
	a := NewAnalyzer(bioactivity.NewScorer(nil), resolver, nil)

	queries := []string{"TEST1", "test1 ", "MISSING", ""}
	batch, err := a.AnalyzeBatch(context.Background(), queries, Options{Mode: cleavage.ModeStrict})
	require.NoError(t, err)

	// Duplicates and blanks collapse; TEST1 resolved once.
	assert.Equal(t, 4, batch.TotalProteins)
	assert.Equal(t, 2, batch.UniqueProteins)
	assert.Equal(t, 1, batch.SuccessfulProteins)
	assert.Equal(t, 1, batch.FailedProteins)
	assert.Equal(t, []string{"MISSING"}, batch.NotFound)
	require.Len(t, batch.Results, 2)

	assert.Equal(t, StatusSuccess, batch.Results[0].Status)
	assert.Equal(t, StatusError, batch.Results[1].Status)
	assert.NotEmpty(t, batch.Results[1].Error)
	assert.Equal(t, 2, resolver.calls)
}

func TestAnalyzeSequence_UltraPermissiveEndToEnd(t *testing.T) {
	a := NewAnalyzer(bioactivity.NewScorer(nil), nil, nil)

	// K anchor and RYG amidation motif past a 5-residue signal, padded
	// to the minimum analyzable length.
	seq := "AAAAAKAAAAAAAARYGKRSAA"
	opts := Options{
		Mode:         cleavage.ModeUltraPermissive,
		SignalLength: 5,
		MinSites:     1,
		MinSpacing:   1,
	}
	report, err := a.AnalyzeSequence(context.Background(), seq, opts)
	require.NoError(t, err)
	require.NotEmpty(t, report.Peptides)

	top := report.Peptides[0]
	assert.Equal(t, "AAAAAAAARYG", top.Sequence)
	assert.Equal(t, 100.0, top.Confidence)
}
