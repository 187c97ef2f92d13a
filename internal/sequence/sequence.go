// Package sequence provides protein sequence validation and FASTA parsing.
package sequence

import (
	"fmt"
	"sort"
	"strings"
)

// ValidResidues is the accepted amino-acid alphabet: the 20 standard
// residues plus '*' for a translated stop.
const ValidResidues = "ACDEFGHIKLMNPQRSTVWY*"

// Clean normalizes raw input into a bare residue string.
// FASTA headers, whitespace, and line breaks are stripped and the
// result is uppercased. Clean never rejects input; use Validate for that.
func Clean(raw string) string {
	s := strings.TrimSpace(strings.ToUpper(raw))

	if strings.HasPrefix(s, ">") {
		lines := strings.Split(s, "\n")
		s = strings.Join(lines[1:], "")
	}

	replacer := strings.NewReplacer("\n", "", "\r", "", " ", "", "\t", "")
	return replacer.Replace(s)
}

// Validate checks that every character of seq is a valid residue symbol.
func Validate(seq string) error {
	var invalid map[rune]bool

	for _, r := range seq {
		if !strings.ContainsRune(ValidResidues, r) {
			if invalid == nil {
				invalid = make(map[rune]bool)
			}
			invalid[r] = true
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	chars := make([]string, 0, len(invalid))
	for r := range invalid {
		chars = append(chars, string(r))
	}
	sort.Strings(chars)

	return fmt.Errorf("invalid residue characters: %s", strings.Join(chars, ", "))
}

// ValidateLength checks that seq is at least min residues long.
func ValidateLength(seq string, min int) error {
	if len(seq) < min {
		return fmt.Errorf("sequence too short: %d residues (minimum %d)", len(seq), min)
	}
	return nil
}

// IsBasic reports whether the residue is lysine or arginine.
func IsBasic(b byte) bool {
	return b == 'K' || b == 'R'
}
