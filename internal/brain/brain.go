// Package brain checks predicted peptides against a reference dataset of
// peptides detected by mass spectrometry in human brain tissue.
package brain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry is one reference peptide record.
type Entry struct {
	IsProhormone bool    `json:"isProhormone"`
	ProteinName  string  `json:"proteinName"`
	UniProt      string  `json:"uniprot"`
	MSMSCount    int     `json:"msmsCount"`
	MascotScore  float64 `json:"mascotScore"`
	IsAmidated   bool    `json:"isAmidated"`
}

// Match reports a reference hit for a predicted peptide.
type Match struct {
	Entry
	Found bool   `json:"found"`
	Note  string `json:"matchNote,omitempty"`
}

// Set is an in-memory reference peptide set keyed by sequence. An empty
// Set is valid and reports no matches; a missing dataset disables the
// feature rather than failing the pipeline.
type Set struct {
	peptides map[string]Entry
	Total    int
	Source   string
	DOI      string
}

type datasetFile struct {
	Peptides      map[string]Entry `json:"peptides"`
	TotalPeptides int              `json:"total_peptides"`
	Source        string           `json:"source"`
	DOI           string           `json:"doi"`
}

// Load reads a reference dataset from a JSON file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open brain peptide dataset: %w", err)
	}

	var ds datasetFile
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode brain peptide dataset: %w", err)
	}

	return &Set{
		peptides: ds.Peptides,
		Total:    ds.TotalPeptides,
		Source:   ds.Source,
		DOI:      ds.DOI,
	}, nil
}

// Loaded reports whether the set holds any reference peptides.
func (s *Set) Loaded() bool {
	return s != nil && len(s.peptides) > 0
}

// Check looks a predicted sequence up in the reference set. Amidated
// reference peptides lose their C-terminal glycine during maturation, so
// a trailing-G miss is retried without the glycine and accepted only when
// the reference entry is itself amidated.
func (s *Set) Check(seq string) *Match {
	if !s.Loaded() {
		return nil
	}

	clean := strings.ToUpper(strings.TrimSpace(seq))

	if e, ok := s.peptides[clean]; ok {
		return &Match{Entry: e, Found: true}
	}

	if len(clean) > 3 && strings.HasSuffix(clean, "G") {
		if e, ok := s.peptides[clean[:len(clean)-1]]; ok && e.IsAmidated {
			return &Match{
				Entry: e,
				Found: true,
				Note:  "Matched after C-terminal amidation (G removed)",
			}
		}
	}

	return nil
}
