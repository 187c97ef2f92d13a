package sequence

import (
	"regexp"
	"strings"
)

// Record holds a parsed FASTA entry.
type Record struct {
	Header   string // header line without the leading '>'
	ID       string // accession extracted from the header, if any
	Name     string // free-text description from the header, if any
	Sequence string // uppercased residue string
}

// UniProt-style headers look like "sp|P01308|INS_HUMAN Insulin".
var fastaHeaderRe = regexp.MustCompile(`^(?:\w+\|)?([A-Z0-9]+)\|?([A-Z0-9_]+)?\s*(.*)$`)

// ParseFASTA parses FASTA text with or without a header line.
// Multiple sequence lines are joined; the sequence is uppercased.
func ParseFASTA(text string) Record {
	var rec Record
	var body []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			rec.Header = strings.TrimSpace(line[1:])
			if m := fastaHeaderRe.FindStringSubmatch(rec.Header); m != nil {
				rec.ID = m[1]
				if rec.ID == "" {
					rec.ID = m[2]
				}
				rec.Name = strings.TrimSpace(m[3])
			} else {
				rec.Name = rec.Header
			}
			continue
		}

		body = append(body, line)
	}

	rec.Sequence = strings.ToUpper(strings.Join(body, ""))
	return rec
}
