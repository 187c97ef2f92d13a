package uniprot

import "strings"

// Match statuses for comparing a predicted peptide against annotated
// UniProt features.
const (
	StatusExact   = "exact"
	StatusPartial = "partial"
	StatusUnknown = "unknown"
)

// Match is the outcome of checking one predicted peptide against a
// protein's annotated peptides.
type Match struct {
	Status string `json:"uniprotStatus"`
	Name   string `json:"uniprotName,omitempty"`
	Note   string `json:"uniprotNote,omitempty"`
}

// MatchKnown compares a predicted peptide with the annotated peptides of
// its parent protein. Exact sequence identity wins; otherwise a
// containment either way is a partial match, annotated with the fragment
// relationship. No match yields StatusUnknown.
func MatchKnown(pep string, annotated []AnnotatedPeptide) Match {
	for _, known := range annotated {
		if pep == known.Sequence {
			return Match{Status: StatusExact, Name: known.Name}
		}

		if idx := strings.Index(known.Sequence, pep); idx >= 0 {
			note := "Internal fragment"
			if idx == 0 {
				note = "N-terminal fragment"
			} else if idx+len(pep) == len(known.Sequence) {
				note = "C-terminal fragment"
			}
			return Match{Status: StatusPartial, Name: known.Name, Note: note}
		}

		if strings.Contains(pep, known.Sequence) {
			return Match{Status: StatusPartial, Name: known.Name, Note: "Extended form"}
		}
	}

	return Match{Status: StatusUnknown}
}
