package bioactivity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOracle scripts remote responses per peptide.
type fakeOracle struct {
	scores map[string]float64
	err    error
	calls  int
}

func (f *fakeOracle) Predict(_ context.Context, pep string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.scores[pep], nil
}

func TestScorer_RemotePreferred(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{"YGGFM": 87.5}}
	s := NewScorer(oracle)

	r := s.Score(context.Background(), "YGGFM", Context{})
	assert.Equal(t, SourceRemote, r.Source)
	assert.Equal(t, 87.5, r.Score)
	assert.Equal(t, 1, oracle.calls)
}

func TestScorer_FallbackOnError(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("service down")}
	s := NewScorer(oracle)

	r := s.Score(context.Background(), "YGGFM", Context{})
	assert.Equal(t, SourceHeuristic, r.Source)
	assert.Equal(t, Heuristic("YGGFM"), r.Score)
}

func TestScorer_NilOracle(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score(context.Background(), "YGGFM", Context{})
	assert.Equal(t, SourceHeuristic, r.Source)
}

func TestScorer_ContextAdjustmentsOnHeuristicPathOnly(t *testing.T) {
	full := "AAAAAYGGFMGKRAAAA"
	pctx := Context{FullSequence: full, End: 11}

	// Remote path ignores context adjustments.
	oracle := &fakeOracle{scores: map[string]float64{"YGGFMG": 60}}
	r := NewScorer(oracle).Score(context.Background(), "YGGFMG", pctx)
	assert.Equal(t, 60.0, r.Score)

	// Heuristic path applies them.
	r = NewScorer(nil).Score(context.Background(), "YGGFMG", pctx)
	assert.Equal(t, AdjustForContext(Heuristic("YGGFMG"), "YGGFMG", pctx), r.Score)
}

func TestScoreAll_OrderAndIsolation(t *testing.T) {
	// The oracle fails only for one peptide; the others stay remote.
	oracle := &selectiveOracle{fail: "BBROKEN"}
	s := NewScorer(oracle)

	peps := []string{"YGGFM", "BBROKEN", "GSSFLS"}
	results := s.ScoreAll(context.Background(), peps, nil)
	require.Len(t, results, 3)

	assert.Equal(t, SourceRemote, results[0].Source)
	assert.Equal(t, SourceHeuristic, results[1].Source)
	assert.Equal(t, SourceRemote, results[2].Source)
	assert.Equal(t, float64(len(peps[0])), results[0].Score)
	assert.Equal(t, float64(len(peps[2])), results[2].Score)
}

type selectiveOracle struct {
	fail string
}

func (o *selectiveOracle) Predict(_ context.Context, pep string) (float64, error) {
	if pep == o.fail {
		return 0, errors.New("boom")
	}
	return float64(len(pep)), nil
}

func TestScoreAll_Empty(t *testing.T) {
	s := NewScorer(nil)
	assert.Empty(t, s.ScoreAll(context.Background(), nil, nil))
}

func TestPeptideRanker_Predict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"score": 0.875}`)
	}))
	defer srv.Close()

	ranker := NewPeptideRanker(srv.URL, 0)
	score, err := ranker.Predict(context.Background(), "YGGFM")
	require.NoError(t, err)
	assert.Equal(t, 87.5, score)
}

func TestPeptideRanker_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ranker := NewPeptideRanker(srv.URL, 0)
	_, err := ranker.Predict(context.Background(), "YGGFM")
	assert.Error(t, err)

	// Too short for the service.
	_, err = ranker.Predict(context.Background(), "Y")
	assert.Error(t, err)
}
