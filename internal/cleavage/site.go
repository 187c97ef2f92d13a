package cleavage

// SiteKind classifies what anchored a cleavage site. Extraction and
// confidence scoring treat the kinds differently: amidation motifs stay
// inside the peptide body, all other motifs are excised.
type SiteKind string

const (
	// KindDibasic is a two-residue KK/KR/RR/RK motif.
	KindDibasic SiteKind = "dibasic"

	// KindSingleBasic is an isolated K or R (ultra-permissive pass 2).
	KindSingleBasic SiteKind = "single-basic"

	// KindAmidationAnchor is a single K/R paired with a downstream
	// amidation-terminal motif (ultra-permissive pass 1).
	KindAmidationAnchor SiteKind = "amidation-anchor"

	// KindAmidation is an amidation-terminal motif ([KR][FY], optional
	// trailing G). Used as a C-terminal boundary it is kept in the body.
	KindAmidation SiteKind = "amidation"

	// KindFurin is a four-residue R-X-[KR]-R motif; the cleavage point is
	// after the full motif.
	KindFurin SiteKind = "furin"
)

// Site is a detected cleavage site. Index is the zero-based offset of the
// first motif residue; Position is the offset immediately after the motif
// (the cleavage point), so Position-Index equals the motif length.
type Site struct {
	Position int      `json:"position"`
	Motif    string   `json:"motif"`
	Index    int      `json:"index"`
	Kind     SiteKind `json:"kind"`
}

// BodyEnd returns the exclusive end offset a peptide gets when this site
// closes it. Amidation motifs remain part of the peptide so the
// biologically active C-terminus is preserved; every other motif is
// excluded from the body.
func (s Site) BodyEnd() int {
	if s.Kind == KindAmidation {
		return s.Index + len(s.Motif)
	}
	return s.Index
}
