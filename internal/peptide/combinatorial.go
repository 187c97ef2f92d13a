package peptide

import (
	"sort"

	"github.com/inodb/vibe-pep/internal/cleavage"
)

// Combinatorial enumeration limits.
const (
	combMinLength = 4
	combMaxLength = 50
	maxCandidates = 50
)

// Confidence components for ultra-permissive candidates.
const (
	confStrongNTerm    = 50 // dibasic or amidation-chain N-terminal motif
	confWeakNTerm      = 15 // single basic residue
	confAmidatedCTerm  = 50
	confAmidationMotif = 30
	confTrailingGly    = 15
	confLengthBand     = 20 // 5-15 residues
	confAmidationFloor = 90
	confDiscardBelow   = 30
)

// Candidates whose shared span exceeds this fraction of the shorter
// candidate's length are considered duplicates.
const maxOverlapFraction = 0.70

// extractCombinatorial enumerates every ordered pair of sites as a
// candidate peptide, scores each pair for confidence, discards weak and
// highly overlapping candidates, and returns the survivors ranked by
// confidence (descending) then length (ascending), capped at
// maxCandidates. Sites are referenced by slice index; candidates are
// transient and only their final ranking matters.
func extractCombinatorial(seq string, sites []cleavage.Site) []Candidate {
	var out []Candidate

	for i := 0; i < len(sites); i++ {
		for j := i + 1; j < len(sites); j++ {
			start := sites[i].Position
			end := sites[j].BodyEnd()

			length := end - start
			if length < combMinLength || length > combMaxLength {
				continue
			}

			conf := confidence(seq, sites[i], sites[j], start, end)
			if conf < confDiscardBelow {
				continue
			}

			c := newCandidate(seq, start, end, sites[i].Motif, sites[j].Motif,
				OptimalMinLength, OptimalMaxLength)
			c.Confidence = conf
			c.CTermKind = sites[j].Kind
			out = append(out, c)
		}
	}

	// Rank before deduplication so the overlap pass always keeps the
	// higher-confidence member of a duplicate pair, first-kept on ties.
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Confidence != out[b].Confidence {
			return out[a].Confidence > out[b].Confidence
		}
		return out[a].Length < out[b].Length
	})

	kept := out[:0]
	for _, c := range out {
		dup := false
		for _, k := range kept {
			if overlapFraction(c, k) > maxOverlapFraction {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}

	if len(kept) > maxCandidates {
		kept = kept[:maxCandidates]
	}
	return kept
}

// confidence scores a site pair on a 0-100 scale from its terminal motif
// classes and length.
func confidence(seq string, nSite, cSite cleavage.Site, start, end int) float64 {
	conf := 0.0

	switch nSite.Kind {
	case cleavage.KindDibasic, cleavage.KindAmidationAnchor:
		conf += confStrongNTerm
	default:
		conf += confWeakNTerm
	}

	amidated := cSite.Kind == cleavage.KindAmidation
	if amidated {
		conf += confAmidatedCTerm
		conf += confAmidationMotif
	} else if end > start && seq[end-1] == 'G' {
		conf += confTrailingGly
	}

	length := end - start
	if length >= 5 && length <= 15 {
		conf += confLengthBand
	}

	if amidated && conf < confAmidationFloor {
		conf = confAmidationFloor
	}

	if conf < 0 {
		conf = 0
	}
	if conf > 100 {
		conf = 100
	}
	return conf
}

// overlapFraction returns the shared residue span of two candidates
// divided by the shorter candidate's length.
func overlapFraction(a, b Candidate) float64 {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}

	shorter := a.Length
	if b.Length < shorter {
		shorter = b.Length
	}
	return float64(hi-lo) / float64(shorter)
}
