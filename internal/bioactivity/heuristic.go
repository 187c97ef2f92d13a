// Package bioactivity scores peptide candidates for likely bioactivity,
// preferring a remote prediction service and falling back to a local
// physicochemical heuristic per candidate.
package bioactivity

import (
	"strings"

	"github.com/inodb/vibe-pep/internal/cleavage"
	"github.com/inodb/vibe-pep/internal/peptide"
)

const hydrophobicResidues = "ALIVMFWP"

// Heuristic computes the local 0-100 plausibility score from residue
// composition and length. The empty peptide scores 0.
func Heuristic(pep string) float64 {
	if len(pep) == 0 {
		return 0
	}

	score := hydrophobicFraction(pep) * 30

	if strings.ContainsAny(pep, "KRH") {
		score += 10
	}
	if strings.ContainsAny(pep, "DE") {
		score += 10
	}

	switch {
	case len(pep) >= peptide.OptimalMinLength && len(pep) <= peptide.OptimalMaxLength:
		score += 35
	case len(pep) < peptide.OptimalMinLength:
		score -= 10
	case len(pep) > 100:
		score -= 15
	}

	if strings.ContainsRune(pep, 'C') {
		score += 8
	}

	if strings.Count(pep, "P") <= 2 {
		score += 7
	} else {
		score -= 5
	}

	if distinctResidues(pep) >= 6 {
		score += 5
	}

	return clamp(score)
}

// Context carries the biological surroundings of one candidate for the
// context-dependent adjustments. The zero value disables every check
// that needs parent-protein information.
type Context struct {
	FullSequence string            // parent protein sequence, may be empty
	End          int               // candidate's exclusive end offset in the parent
	CTermKind    cleavage.SiteKind // kind of the site that closed the candidate
}

// Motif families with documented bioactivity; each hit is worth a bonus.
var motifFamilies = []struct {
	name  string
	match func(string) bool
}{
	{"opioid", func(p string) bool { return strings.Contains(p, "YGGF") }},
	{"melanocortin", func(p string) bool { return strings.Contains(p, "HFRW") }},
	{"RFamide", func(p string) bool {
		return strings.HasSuffix(p, "RF") || strings.HasSuffix(p, "RFG")
	}},
}

// AdjustForContext layers the context-dependent bonuses and penalties on
// top of a base heuristic score and clamps the result to [0,100].
func AdjustForContext(score float64, pep string, ctx Context) float64 {
	amidatable := false
	if ctx.FullSequence != "" && strings.HasSuffix(pep, "G") &&
		ctx.End >= 0 && ctx.End < len(ctx.FullSequence) &&
		(ctx.FullSequence[ctx.End] == 'K' || ctx.FullSequence[ctx.End] == 'R') {
		amidatable = true
	}

	if amidatable {
		score += 25
	}
	if ctx.CTermKind == cleavage.KindAmidation {
		score += 10
	}

	for _, fam := range motifFamilies {
		if fam.match(pep) {
			score += 15
		}
	}

	// A candidate at the protein's extreme C-terminus cannot be amidated
	// unless it carries its own terminal glycine.
	if ctx.FullSequence != "" && ctx.End == len(ctx.FullSequence) && !strings.HasSuffix(pep, "G") {
		score -= 20
	}

	if len(pep) < 5 && !amidatable && ctx.CTermKind != cleavage.KindAmidation {
		score -= 15
	}

	basic := strings.Count(pep, "K") + strings.Count(pep, "R")
	if basic*2 > len(pep) {
		score -= 10
	}

	return clamp(score)
}

func hydrophobicFraction(pep string) float64 {
	n := 0
	for i := 0; i < len(pep); i++ {
		if strings.IndexByte(hydrophobicResidues, pep[i]) >= 0 {
			n++
		}
	}
	return float64(n) / float64(len(pep))
}

func distinctResidues(pep string) int {
	var seen [256]bool
	n := 0
	for i := 0; i < len(pep); i++ {
		if !seen[pep[i]] {
			seen[pep[i]] = true
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
