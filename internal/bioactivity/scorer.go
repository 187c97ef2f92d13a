package bioactivity

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Score provenance values.
const (
	SourceRemote    = "remote"
	SourceHeuristic = "heuristic"
	SourceNone      = "none"
)

// Result is the outcome of scoring one candidate.
type Result struct {
	Score  float64
	Source string
}

// Scorer assigns bioactivity scores, preferring the remote oracle and
// degrading to the heuristic per candidate.
type Scorer struct {
	oracle Oracle
	logger *zap.Logger
}

// NewScorer creates a scorer. A nil oracle yields heuristic-only
// operation, which is a supported degraded mode, not an error.
func NewScorer(oracle Oracle) *Scorer {
	return &Scorer{oracle: oracle, logger: zap.NewNop()}
}

// SetLogger sets the logger for fallback diagnostics.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Score scores a single candidate. The remote oracle is tried once; on
// any failure the heuristic (with context adjustments) takes over.
func (s *Scorer) Score(ctx context.Context, pep string, pctx Context) Result {
	if s.oracle != nil {
		score, err := s.oracle.Predict(ctx, pep)
		if err == nil {
			return Result{Score: score, Source: SourceRemote}
		}
		s.logger.Debug("remote scoring failed, using heuristic",
			zap.Int("peptide_length", len(pep)),
			zap.Error(err))
	}

	return Result{
		Score:  AdjustForContext(Heuristic(pep), pep, pctx),
		Source: SourceHeuristic,
	}
}

// ScoreAll scores a batch with one concurrent remote call per candidate.
// Each call is independently cancellable through ctx and a failure
// degrades only its own candidate to the heuristic path. Results are
// returned in input order. ctxs must be nil or the same length as peps.
func (s *Scorer) ScoreAll(ctx context.Context, peps []string, ctxs []Context) []Result {
	results := make([]Result, len(peps))

	var wg sync.WaitGroup
	wg.Add(len(peps))

	for i := range peps {
		i := i
		go func() {
			defer wg.Done()
			var pctx Context
			if ctxs != nil {
				pctx = ctxs[i]
			}
			results[i] = s.Score(ctx, peps[i], pctx)
		}()
	}

	wg.Wait()
	return results
}
