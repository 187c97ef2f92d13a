package ptm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inodb/vibe-pep/internal/sequence"
)

// DetectAll runs the six modification checks against a peptide. The
// amidation check needs the parent protein context (fullSeq plus the
// peptide's exclusive end offset); with end < 0 or no context it is
// skipped, not scored as absent evidence. All checks are independent.
func DetectAll(pep, fullSeq string, end int) []Annotation {
	var out []Annotation

	if a := DetectCAmidation(pep, fullSeq, end); a != nil {
		out = append(out, *a)
	}
	if a := DetectPyroglutamate(pep); a != nil {
		out = append(out, *a)
	}
	if a := DetectDisulfide(pep); a != nil {
		out = append(out, *a)
	}
	if a := DetectAcylation(pep); a != nil {
		out = append(out, *a)
	}
	out = append(out, DetectSulfation(pep)...)
	out = append(out, DetectGlycosylation(pep)...)

	return out
}

// DetectCAmidation fires when the peptide ends in glycine and the one or
// two residues immediately following it in the parent protein are basic.
// Those residues are removed by the convertase and PAM converts the
// exposed glycine into a C-terminal amide.
func DetectCAmidation(pep, fullSeq string, end int) *Annotation {
	if fullSeq == "" || end < 0 || !strings.HasSuffix(pep, "G") {
		return nil
	}
	if end >= len(fullSeq) {
		return nil
	}

	if !sequence.IsBasic(fullSeq[end]) {
		return nil
	}

	motif := "G" + string(fullSeq[end])
	if end+1 < len(fullSeq) && sequence.IsBasic(fullSeq[end+1]) {
		motif += string(fullSeq[end+1])
	}

	return &Annotation{
		Type:        TypeCAmidation,
		ShortName:   "C-amidation",
		Enzyme:      "PAM",
		Motif:       motif,
		Position:    len(pep),
		Description: motif + " -> -NH2",
	}
}

// DetectPyroglutamate fires when the first residue is glutamine or
// glutamate, which cyclize into pyroglutamate.
func DetectPyroglutamate(pep string) *Annotation {
	if pep == "" {
		return nil
	}

	switch pep[0] {
	case 'Q':
		return &Annotation{
			Type:        TypePyroglutamate,
			ShortName:   "N-pGlu",
			Enzyme:      "QPCT",
			Residue:     "Q",
			Position:    1,
			Description: "Q -> pGlu",
		}
	case 'E':
		return &Annotation{
			Type:        TypePyroglutamate,
			ShortName:   "N-pGlu",
			Enzyme:      "QPCTL",
			Residue:     "E",
			Position:    1,
			Description: "E -> pGlu",
		}
	}
	return nil
}

// DetectDisulfide fires when the peptide has two or more cysteines. The
// pairing count is the floor of half the cysteine count.
func DetectDisulfide(pep string) *Annotation {
	var positions []int
	for i := 0; i < len(pep); i++ {
		if pep[i] == 'C' {
			positions = append(positions, i+1)
		}
	}

	if len(positions) < 2 {
		return nil
	}

	return &Annotation{
		Type:        TypeDisulfide,
		ShortName:   "Disulfide",
		Enzyme:      "PDI / ER oxidoreductases",
		Positions:   positions,
		Count:       len(positions) / 2,
		Description: fmt.Sprintf("%d Cys (>=%d bonds)", len(positions), len(positions)/2),
	}
}

// DetectAcylation fires on the exact ghrelin N-terminal GSSF motif,
// where GOAT octanoylates the third serine.
func DetectAcylation(pep string) *Annotation {
	if !strings.HasPrefix(pep, "GSSF") {
		return nil
	}

	return &Annotation{
		Type:        TypeAcylation,
		ShortName:   "Ghrelin-acyl",
		Enzyme:      "GOAT (MBOAT4)",
		Residue:     "Ser3",
		Position:    3,
		Description: "Ser3 octanoylation",
	}
}

// DetectSulfation flags every tyrosine with at least two acidic residues
// in a +/-5 residue window, the context TPST1/2 sulfate.
func DetectSulfation(pep string) []Annotation {
	var out []Annotation

	for i := 0; i < len(pep); i++ {
		if pep[i] != 'Y' {
			continue
		}

		lo := i - 5
		if lo < 0 {
			lo = 0
		}
		hi := i + 6
		if hi > len(pep) {
			hi = len(pep)
		}

		window := pep[lo:hi]
		acidic := strings.Count(window, "D") + strings.Count(window, "E")
		if acidic < 2 {
			continue
		}

		out = append(out, Annotation{
			Type:        TypeSulfation,
			ShortName:   "Y-sulfation",
			Enzyme:      "TPST1/TPST2",
			Residue:     fmt.Sprintf("Y%d", i+1),
			Position:    i + 1,
			Description: fmt.Sprintf("Y%d -> Y(SO3)", i+1),
		})
	}

	return out
}

var glycoRe = regexp.MustCompile(`N[^P][ST]`)

// DetectGlycosylation reports every non-overlapping N-X-[ST] sequon with
// X != P.
func DetectGlycosylation(pep string) []Annotation {
	var out []Annotation

	for _, loc := range glycoRe.FindAllStringIndex(pep, -1) {
		out = append(out, Annotation{
			Type:        TypeGlycosylation,
			ShortName:   "N-glyco",
			Enzyme:      "Oligosaccharyltransferase",
			Motif:       pep[loc[0]:loc[1]],
			Position:    loc[0] + 1,
			Description: fmt.Sprintf("N%d glycosylation", loc[0]+1),
		})
	}

	return out
}
