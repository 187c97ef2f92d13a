// Package cleavage locates proprotein convertase cleavage sites in
// validated protein sequences.
package cleavage

import "fmt"

// Mode selects a cleavage detection policy. The set is closed: each mode
// parameterizes both site detection and peptide extraction, and is fixed
// for the duration of one analysis.
type Mode string

const (
	// ModeStrict matches dibasic motifs with flanking-residue exclusions
	// and a minimum spacing between accepted sites (PCSK1/3 defaults).
	ModeStrict Mode = "strict"

	// ModePermissive matches the dibasic alphabet without the
	// preceding-residue exclusion or the spacing filter.
	ModePermissive Mode = "permissive"

	// ModeUltraPermissive enumerates amidation-terminal motifs and
	// isolated basic residues in two passes; extraction is combinatorial.
	ModeUltraPermissive Mode = "ultra-permissive"

	// ModePCSK567 matches the four-residue R-X-[KR]-R motif recognized by
	// the PCSK5/6/7 convertase class (furin-like cleavage).
	ModePCSK567 Mode = "pcsk567"
)

// ParseMode converts a mode string into a Mode. "four-residue-motif" is
// accepted as an alias for pcsk567.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict":
		return ModeStrict, nil
	case "permissive":
		return ModePermissive, nil
	case "ultra-permissive":
		return ModeUltraPermissive, nil
	case "pcsk567", "four-residue-motif":
		return ModePCSK567, nil
	}
	return "", fmt.Errorf("unknown detection mode %q (want strict, permissive, ultra-permissive, or pcsk567)", s)
}
