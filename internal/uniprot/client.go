// Package uniprot resolves proteins and their annotated peptides from
// the UniProt REST API.
package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the UniProtKB REST endpoint.
const DefaultBaseURL = "https://rest.uniprot.org/uniprotkb"

const requestTimeout = 15 * time.Second

// entryFields selects everything the pipeline needs in one request.
const entryFields = "accession,gene_names,protein_name,sequence,length,ft_signal,ft_peptide,ft_propep"

// ErrNotFound reports that an accession does not resolve to a protein.
var ErrNotFound = errors.New("protein not found")

// AnnotatedPeptide is a known Peptide or Propeptide feature from the
// UniProt record. Start and End are 1-based inclusive.
type AnnotatedPeptide struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Sequence string `json:"sequence"`
}

// Protein is a resolved precursor protein with the analysis parameters
// recommended for it.
type Protein struct {
	Accession         string             `json:"accession"`
	GeneName          string             `json:"geneName"`
	ProteinName       string             `json:"proteinName"`
	Length            int                `json:"length"`
	Sequence          string             `json:"sequence"`
	SignalEnd         int                `json:"signalPeptideEnd"`
	FastaHeader       string             `json:"fastaHeader"`
	RecommendedParams Params             `json:"recommendedParams"`
	AnnotatedPeptides []AnnotatedPeptide `json:"annotatedPeptides,omitempty"`
}

// Client queries the UniProt REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the default endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL creates a client for a custom endpoint, mainly
// for tests.
func NewClientWithBaseURL(base string) *Client {
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// accessionRe matches UniProtKB accession formats (P01189, Q8N2C7,
// A0A075B6I0).
var accessionRe = regexp.MustCompile(`^[OPQ][0-9][A-Z0-9]{3}[0-9]$|^[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2}$`)

// IsAccession reports whether s is shaped like a UniProtKB accession
// rather than a gene name.
func IsAccession(s string) bool {
	return accessionRe.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// Resolve dispatches a query to the matching lookup: accession-shaped
// queries use the direct entry endpoint, anything else is treated as a
// gene name and searched. Returns ErrNotFound when neither path yields
// a protein.
func (c *Client) Resolve(ctx context.Context, query string) (*Protein, error) {
	query = strings.TrimSpace(query)
	if IsAccession(query) {
		return c.Get(ctx, query)
	}

	results, err := c.Search(ctx, query, "gene_name", 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: %w", query, ErrNotFound)
	}
	return results[0], nil
}

// Get resolves a single accession. Returns ErrNotFound for unknown
// accessions; any other failure is a transport error the caller should
// degrade on.
func (c *Client) Get(ctx context.Context, accession string) (*Protein, error) {
	u := fmt.Sprintf("%s/%s?format=json&fields=%s", c.baseURL, url.PathEscape(accession), entryFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uniprot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", accession, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uniprot error %d for %s", resp.StatusCode, accession)
	}

	var entry rawEntry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode uniprot response: %w", err)
	}

	p := entry.toProtein()
	if p == nil {
		return nil, fmt.Errorf("%s: incomplete uniprot record: %w", accession, ErrNotFound)
	}
	return p, nil
}

// Search finds secreted, reviewed human proteins by gene name or
// accession. searchType is "gene_name" or "accession".
func (c *Client) Search(ctx context.Context, query, searchType string, limit int) ([]*Protein, error) {
	var q string
	if searchType == "accession" {
		q = fmt.Sprintf("(accession:%s)", query)
	} else {
		q = fmt.Sprintf("(gene:%s)", query)
	}
	q += " AND (organism_id:9606) AND (reviewed:true) AND (cc_subcellular_location:Secreted)"

	u := fmt.Sprintf("%s/search?query=%s&format=json&size=%d&fields=%s",
		c.baseURL, url.QueryEscape(q), limit, entryFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uniprot search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uniprot search error %d", resp.StatusCode)
	}

	var body struct {
		Results []rawEntry `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode uniprot search response: %w", err)
	}

	var out []*Protein
	for _, entry := range body.Results {
		if p := entry.toProtein(); p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// rawEntry mirrors the slice of the UniProtKB JSON schema we consume.
type rawEntry struct {
	PrimaryAccession string `json:"primaryAccession"`
	Genes            []struct {
		GeneName struct {
			Value string `json:"value"`
		} `json:"geneName"`
	} `json:"genes"`
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Sequence struct {
		Value  string `json:"value"`
		Length int    `json:"length"`
	} `json:"sequence"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    struct {
		Start struct {
			Value int `json:"value"`
		} `json:"start"`
		End struct {
			Value int `json:"value"`
		} `json:"end"`
	} `json:"location"`
}

func (e *rawEntry) toProtein() *Protein {
	if e.PrimaryAccession == "" || e.Sequence.Value == "" {
		return nil
	}

	p := &Protein{
		Accession:   e.PrimaryAccession,
		ProteinName: "Unknown protein",
		Sequence:    e.Sequence.Value,
		Length:      e.Sequence.Length,
		SignalEnd:   defaultSignalLength,
	}
	if p.Length == 0 {
		p.Length = len(p.Sequence)
	}

	if len(e.Genes) > 0 && e.Genes[0].GeneName.Value != "" {
		p.GeneName = e.Genes[0].GeneName.Value
	} else {
		p.GeneName = "Unknown"
	}
	if v := e.ProteinDescription.RecommendedName.FullName.Value; v != "" {
		p.ProteinName = v
	}

	for _, feat := range e.Features {
		switch feat.Type {
		case "Signal":
			if feat.Location.End.Value > 0 {
				p.SignalEnd = feat.Location.End.Value
			}
		case "Peptide", "Propeptide":
			start, end := feat.Location.Start.Value, feat.Location.End.Value
			if start <= 0 || end <= 0 || start > len(p.Sequence) || end > len(p.Sequence) {
				continue
			}
			name := feat.Description
			if name == "" {
				name = feat.Type
			}
			p.AnnotatedPeptides = append(p.AnnotatedPeptides, AnnotatedPeptide{
				Name:     name,
				Type:     feat.Type,
				Start:    start,
				End:      end,
				Sequence: p.Sequence[start-1 : end],
			})
		}
	}

	p.RecommendedParams = RecommendedParams(p.Length, p.SignalEnd, len(p.AnnotatedPeptides))
	p.FastaHeader = fmt.Sprintf(">sp|%s|%s_HUMAN %s", p.Accession, p.GeneName, p.ProteinName)

	return p
}
