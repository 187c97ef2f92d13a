package bioactivity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultRankerURL is the public PeptideRanker prediction endpoint.
const DefaultRankerURL = "http://peptideranker.ilincs.org/api/predict"

// DefaultRankerTimeout bounds each remote prediction call.
const DefaultRankerTimeout = 10 * time.Second

// Oracle is a remote bioactivity prediction collaborator. It may be
// unavailable; callers must treat any error as a signal to fall back to
// the local heuristic for that one candidate.
type Oracle interface {
	Predict(ctx context.Context, pep string) (float64, error)
}

// PeptideRanker calls the PeptideRanker web service, which returns a
// probability-like score in [0,1].
type PeptideRanker struct {
	url        string
	httpClient *http.Client
}

// NewPeptideRanker creates a client for the given endpoint. Empty url or
// non-positive timeout select the defaults.
func NewPeptideRanker(url string, timeout time.Duration) *PeptideRanker {
	if url == "" {
		url = DefaultRankerURL
	}
	if timeout <= 0 {
		timeout = DefaultRankerTimeout
	}

	return &PeptideRanker{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict scores one peptide remotely, scaled to 0-100.
func (r *PeptideRanker) Predict(ctx context.Context, pep string) (float64, error) {
	if len(pep) < 2 {
		return 0, fmt.Errorf("peptide too short for remote prediction: %d residues", len(pep))
	}

	payload, err := json.Marshal(map[string]string{"sequence": pep})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("peptideranker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("peptideranker error %d", resp.StatusCode)
	}

	var body struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode peptideranker response: %w", err)
	}

	return clamp(body.Score * 100), nil
}
