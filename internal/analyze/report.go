// Package analyze orchestrates the single-protein prediction pipeline
// and the batch loop over multiple proteins.
package analyze

import (
	"fmt"

	"github.com/inodb/vibe-pep/internal/bioactivity"
	"github.com/inodb/vibe-pep/internal/brain"
	"github.com/inodb/vibe-pep/internal/cleavage"
	"github.com/inodb/vibe-pep/internal/peptide"
	"github.com/inodb/vibe-pep/internal/ptm"
)

// Report statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Options parameterize one analysis. Mode is selected once and is
// immutable for the duration of the analysis.
type Options struct {
	Mode             cleavage.Mode
	SignalLength     int
	MinSites         int
	MinSpacing       int
	MaxPeptideLength int
}

// Validate checks the parameter ranges the pipeline requires.
func (o Options) Validate() error {
	if o.SignalLength < 0 {
		return fmt.Errorf("signal length must be >= 0, got %d", o.SignalLength)
	}
	if o.MinSites < 1 {
		return fmt.Errorf("min cleavage sites must be >= 1, got %d", o.MinSites)
	}
	if o.MinSpacing < 1 {
		return fmt.Errorf("min cleavage spacing must be >= 1, got %d", o.MinSpacing)
	}
	if o.MaxPeptideLength != 0 && o.MaxPeptideLength < 10 {
		return fmt.Errorf("max peptide length must be >= 10, got %d", o.MaxPeptideLength)
	}
	return nil
}

// Peptide is a candidate enriched by the scoring and annotation stages.
type Peptide struct {
	peptide.Candidate

	BioactivityScore  float64                `json:"bioactivityScore"`
	BioactivitySource string                 `json:"bioactivitySource"`
	UniProtStatus     string                 `json:"uniprotStatus"`
	UniProtName       string                 `json:"uniprotName,omitempty"`
	UniProtNote       string                 `json:"uniprotNote,omitempty"`
	UniProtAccession  string                 `json:"uniprotAccession,omitempty"`
	PTMs              []ptm.Annotation       `json:"ptms"`
	ModifiedSequence  string                 `json:"modifiedSequence,omitempty"`
	Properties        bioactivity.Properties `json:"properties"`
	Brain             *brain.Match           `json:"brain,omitempty"`
}

// Report is the full result of analyzing one protein or raw sequence.
// Peptide start/end offsets stay zero-based here; output writers shift
// them to 1-based positions.
type Report struct {
	Status             string          `json:"status"`
	ProteinID          string          `json:"proteinId,omitempty"`
	GeneName           string          `json:"geneName,omitempty"`
	ProteinName        string          `json:"proteinName,omitempty"`
	Accession          string          `json:"accession,omitempty"`
	FastaHeader        string          `json:"fastaHeader,omitempty"`
	Sequence           string          `json:"sequence"`
	SequenceLength     int             `json:"sequenceLength"`
	SignalPeptideEnd   int             `json:"signalPeptideEnd"`
	Mode               cleavage.Mode   `json:"mode"`
	CleavageSites      []cleavage.Site `json:"cleavageSites"`
	CleavageSitesCount int             `json:"cleavageSitesCount"`
	Peptides           []*Peptide      `json:"peptides"`
	PeptidesInRange    int             `json:"peptidesInRange"`
	TopPeptides        []*Peptide      `json:"topPeptides"`
	Error              string          `json:"error,omitempty"`
}

// BatchReport aggregates per-protein reports for one batch request.
type BatchReport struct {
	TotalProteins      int           `json:"totalProteins"`
	UniqueProteins     int           `json:"uniqueProteins"`
	SuccessfulProteins int           `json:"successfulProteins"`
	FailedProteins     int           `json:"failedProteins"`
	Results            []*Report     `json:"results"`
	NotFound           []string      `json:"notFound"`
	Mode               cleavage.Mode `json:"mode"`
}
