package ptm

import (
	"fmt"
	"strings"
)

// GenerateModifiedSequence renders a textual representation of the
// peptide with its modifications applied. The original sequence is never
// mutated: tokens are built one per residue so position-indexed
// substitutions stay valid, and the single length-changing edit (the
// amidation glycine truncation) is applied to the token array before any
// substitution can reference a shifted index.
func GenerateModifiedSequence(seq string, anns []Annotation) string {
	if len(anns) == 0 {
		return seq
	}

	tokens := make([]string, len(seq))
	for i := range seq {
		tokens[i] = string(seq[i])
	}

	amidated := false
	for _, a := range anns {
		if a.Type == TypeCAmidation && len(tokens) > 0 && tokens[len(tokens)-1] == "G" {
			tokens = tokens[:len(tokens)-1]
			amidated = true
		}
	}

	for _, a := range anns {
		switch a.Type {
		case TypePyroglutamate:
			if len(tokens) > 0 {
				tokens[0] = "pGlu"
			}

		case TypeAcylation:
			if len(tokens) > 0 {
				tokens[0] = "G(C8:0)"
			}

		case TypeSulfation:
			if p := a.Position - 1; p >= 0 && p < len(tokens) && tokens[p] == "Y" {
				tokens[p] = "Y(SO3)"
			}

		case TypeGlycosylation:
			if p := a.Position - 1; p >= 0 && p < len(tokens) && tokens[p] == "N" {
				tokens[p] = "N(GlcNAc)"
			}

		case TypeDisulfide:
			for idx, pos := range a.Positions {
				if p := pos - 1; p >= 0 && p < len(tokens) && tokens[p] == "C" {
					tokens[p] = fmt.Sprintf("C%d", idx+1)
				}
			}
		}
	}

	out := strings.Join(tokens, "")
	if amidated {
		out += "-NH2"
	}
	return out
}
