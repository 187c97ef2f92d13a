// Package peptide extracts candidate peptide fragments from a protein
// sequence using detected cleavage sites.
package peptide

import "github.com/inodb/vibe-pep/internal/cleavage"

// Optimal length window for dibasic-convertase products, in residues.
const (
	OptimalMinLength = 5
	OptimalMaxLength = 25
)

// The PCSK5/6/7 convertase class releases whole protein domains, so its
// typical window is much wider than the dibasic one.
const (
	FurinMinLength = 10
	FurinMaxLength = 150
)

// Provenance tags for PCSK5/6/7 fragments.
const (
	TypeMatureForm = "mature_form"
	TypeProdomain  = "prodomain"
)

// Boundary labels used when a peptide is not closed by a cleavage motif.
const (
	MotifStart = "START"
	MotifEnd   = "END"
)

// Candidate is one extracted peptide fragment. Start and End are
// zero-based offsets into the parent sequence (End exclusive); reported
// positions are shifted to 1-based at the output layer. A candidate is
// created here and enriched downstream by the bioactivity scorer and the
// PTM annotator; no two stages mutate it concurrently.
type Candidate struct {
	Sequence   string  `json:"sequence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Length     int     `json:"length"`
	InRange    bool    `json:"inRange"`
	MotifN     string  `json:"cleavageMotifN"`
	MotifC     string  `json:"cleavageMotifC"`
	Type       string  `json:"peptideType,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	// CTermKind records the kind of the site that closed this candidate;
	// empty when the candidate runs to the sequence end.
	CTermKind cleavage.SiteKind `json:"-"`
}

func newCandidate(seq string, start, end int, motifN, motifC string, rangeMin, rangeMax int) Candidate {
	body := seq[start:end]
	return Candidate{
		Sequence: body,
		Start:    start,
		End:      end,
		Length:   len(body),
		InRange:  len(body) >= rangeMin && len(body) <= rangeMax,
		MotifN:   motifN,
		MotifC:   motifC,
	}
}
