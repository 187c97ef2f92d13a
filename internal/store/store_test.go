package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-pep/internal/uniprot"
)

func testProtein() *uniprot.Protein {
	return &uniprot.Protein{
		Accession:   "P01189",
		GeneName:    "POMC",
		ProteinName: "Pro-opiomelanocortin",
		Sequence:    "MPRSCCSRSGALLLALLLQASMEVRGWCLESSQCQDLTTESNLLECIRACKPDLSAETPM",
		Length:      60,
		SignalEnd:   26,
		FastaHeader: ">sp|P01189|POMC_HUMAN Pro-opiomelanocortin",
		AnnotatedPeptides: []uniprot.AnnotatedPeptide{
			{Name: "Test peptide", Type: "Peptide", Start: 30, End: 40, Sequence: "ESSQCQDLTT"},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "proteins.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGetProtein(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutProtein(testProtein()))

	got, ok, err := s.GetProtein("P01189", FreshnessWindow)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "POMC", got.GeneName)
	assert.Equal(t, 26, got.SignalEnd)
	assert.Equal(t, 60, got.Length)
	require.Len(t, got.AnnotatedPeptides, 1)
	assert.Equal(t, "ESSQCQDLTT", got.AnnotatedPeptides[0].Sequence)
	// Recommended parameters are recomputed on read.
	assert.Equal(t, 26, got.RecommendedParams.SignalLength)
	assert.Equal(t, 3, got.RecommendedParams.MinSpacing)
}

func TestStore_GetProteinByGeneName(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutProtein(testProtein()))

	got, ok, err := s.GetProtein("POMC", FreshnessWindow)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "P01189", got.Accession)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	got, ok, err := s.GetProtein("Q99999", FreshnessWindow)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_StaleEntryTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutProtein(testProtein()))

	// With a zero-width freshness window everything is stale.
	_, ok, err := s.GetProtein("P01189", time.Nanosecond)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutProtein(testProtein()))

	updated := testProtein()
	updated.GeneName = "POMC2"
	require.NoError(t, s.PutProtein(updated))

	got, ok, err := s.GetProtein("P01189", FreshnessWindow)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "POMC2", got.GeneName)
}

func TestStore_ClearProteins(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutProtein(testProtein()))
	require.NoError(t, s.ClearProteins())

	_, ok, err := s.GetProtein("P01189", FreshnessWindow)
	require.NoError(t, err)
	assert.False(t, ok)
}

// countingFetcher records upstream hits.
type countingFetcher struct {
	protein *uniprot.Protein
	err     error
	calls   int
}

func (f *countingFetcher) Resolve(_ context.Context, query string) (*uniprot.Protein, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.protein, nil
}

func TestCachingResolver_ReadThrough(t *testing.T) {
	s := openTestStore(t)
	fetcher := &countingFetcher{protein: testProtein()}
	r := NewCachingResolver(s, fetcher, FreshnessWindow)

	ctx := context.Background()

	p, err := r.Resolve(ctx, "P01189")
	require.NoError(t, err)
	assert.Equal(t, "POMC", p.GeneName)
	assert.Equal(t, 1, fetcher.calls)

	// Second lookup is served from the cache.
	p, err = r.Resolve(ctx, "P01189")
	require.NoError(t, err)
	assert.Equal(t, "POMC", p.GeneName)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCachingResolver_GeneNameHitsCache(t *testing.T) {
	s := openTestStore(t)
	fetcher := &countingFetcher{protein: testProtein()}
	r := NewCachingResolver(s, fetcher, FreshnessWindow)

	ctx := context.Background()

	p, err := r.Resolve(ctx, "POMC")
	require.NoError(t, err)
	assert.Equal(t, "P01189", p.Accession)
	assert.Equal(t, 1, fetcher.calls)

	// The record is stored under its accession but a repeated gene
	// query still finds it.
	_, err = r.Resolve(ctx, "POMC")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCachingResolver_StaleRefetches(t *testing.T) {
	s := openTestStore(t)
	fetcher := &countingFetcher{protein: testProtein()}
	r := NewCachingResolver(s, fetcher, time.Nanosecond)

	ctx := context.Background()
	_, err := r.Resolve(ctx, "P01189")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = r.Resolve(ctx, "P01189")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestCachingResolver_UpstreamErrorPropagates(t *testing.T) {
	s := openTestStore(t)
	wantErr := errors.New("upstream down")
	r := NewCachingResolver(s, &countingFetcher{err: wantErr}, FreshnessWindow)

	_, err := r.Resolve(context.Background(), "P01189")
	assert.ErrorIs(t, err, wantErr)
}
