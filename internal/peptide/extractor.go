package peptide

import (
	"github.com/inodb/vibe-pep/internal/cleavage"
)

// Strict-mode extraction rejects bodies shorter than this.
const minStrictBodyLength = 4

// PCSK5/6/7 fragments below these lengths are not biologically plausible
// products and are dropped.
const (
	minMatureLength    = 10
	minProdomainLength = 20
)

// Extract partitions seq into peptide candidates using the detected
// sites, under mode-specific inclusion and spacing rules. For strict and
// permissive modes it fails closed: fewer than minSites sites yields no
// candidates. Extraction is pure; re-running it with the same inputs
// yields identical ordered output.
func Extract(seq string, sites []cleavage.Site, signalLength, minSpacing, minSites int, mode cleavage.Mode) []Candidate {
	switch mode {
	case cleavage.ModeUltraPermissive:
		return extractCombinatorial(seq, sites)
	case cleavage.ModePCSK567:
		return extractProteolytic(seq, sites, signalLength)
	default:
		return extractSequential(seq, sites, signalLength, minSpacing, minSites, mode)
	}
}

// extractSequential walks sites left to right with a cursor starting at
// signalLength. Each site's index closes the candidate ending there, so
// motif residues are excluded from the body; the cursor then advances
// past the motif. A trailing candidate runs from the cursor to the
// sequence end.
func extractSequential(seq string, sites []cleavage.Site, signalLength, minSpacing, minSites int, mode cleavage.Mode) []Candidate {
	if len(sites) < minSites {
		return nil
	}

	var out []Candidate
	cursor := signalLength
	motifN := MotifStart

	for _, site := range sites {
		gap := site.Index - cursor

		if mode == cleavage.ModeStrict {
			// Strict requires the spacing and a minimum body; a failing
			// site is skipped without moving the cursor.
			if gap < minSpacing || gap < minStrictBodyLength {
				continue
			}
		} else if gap <= 0 {
			// Permissive accepts any non-empty gap. Adjacent motifs still
			// advance the cursor so both motifs stay excised.
			if site.Position > cursor {
				cursor = site.Position
				motifN = site.Motif
			}
			continue
		}

		c := newCandidate(seq, cursor, site.Index, motifN, site.Motif,
			OptimalMinLength, OptimalMaxLength)
		c.CTermKind = site.Kind
		out = append(out, c)
		cursor = site.Position
		motifN = site.Motif
	}

	tail := len(seq) - cursor
	minTail := 1
	if mode == cleavage.ModeStrict {
		minTail = minStrictBodyLength
	}
	if tail >= minTail {
		out = append(out, newCandidate(seq, cursor, len(seq), motifN, MotifEnd,
			OptimalMinLength, OptimalMaxLength))
	}

	return out
}

// extractProteolytic emits two fragments per PCSK5/6/7 site: the mature
// form from the cleavage point to the sequence end, and the prodomain
// from the end of the signal region to the motif start. Both carry their
// provenance tag and use the wider furin length window.
func extractProteolytic(seq string, sites []cleavage.Site, signalLength int) []Candidate {
	var out []Candidate

	for _, site := range sites {
		if mature := len(seq) - site.Position; mature >= minMatureLength {
			c := newCandidate(seq, site.Position, len(seq), site.Motif, MotifEnd,
				FurinMinLength, FurinMaxLength)
			c.Type = TypeMatureForm
			out = append(out, c)
		}

		if pro := site.Index - signalLength; pro >= minProdomainLength {
			c := newCandidate(seq, signalLength, site.Index, MotifStart, site.Motif,
				FurinMinLength, FurinMaxLength)
			c.Type = TypeProdomain
			c.CTermKind = site.Kind
			out = append(out, c)
		}
	}

	return out
}
