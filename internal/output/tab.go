// Package output provides report output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-pep/internal/analyze"
)

// TabWriter writes analysis reports in tab-delimited format, one row
// per predicted peptide. Positions are written 1-based inclusive.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Protein",
			"Peptide",
			"Start",
			"End",
			"Length",
			"In_range",
			"Motif_N",
			"Motif_C",
			"Type",
			"Score",
			"Score_source",
			"UniProt_status",
			"UniProt_name",
			"PTMs",
			"Modified_sequence",
			"Brain",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WriteReport writes all peptides of one report.
func (tw *TabWriter) WriteReport(r *analyze.Report) error {
	protein := r.Accession
	if protein == "" {
		protein = "-"
	}
	if r.Status != analyze.StatusSuccess {
		_, err := fmt.Fprintf(tw.w, "%s\tERROR: %s\n", protein, r.Error)
		return err
	}
	for _, p := range r.Peptides {
		if err := tw.writePeptide(protein, p); err != nil {
			return err
		}
	}
	return nil
}

func (tw *TabWriter) writePeptide(protein string, p *analyze.Peptide) error {
	inRange := "no"
	if p.InRange {
		inRange = "yes"
	}

	motifN := p.MotifN
	if motifN == "" {
		motifN = "-"
	}
	motifC := p.MotifC
	if motifC == "" {
		motifC = "-"
	}

	ptype := p.Type
	if ptype == "" {
		ptype = "-"
	}

	name := p.UniProtName
	if name == "" {
		name = "-"
	}

	ptms := "-"
	if len(p.PTMs) > 0 {
		short := make([]string, len(p.PTMs))
		for i, a := range p.PTMs {
			short[i] = a.ShortName
		}
		ptms = strings.Join(short, ",")
	}

	modified := p.ModifiedSequence
	if modified == "" || modified == p.Sequence {
		modified = "-"
	}

	brainHit := "-"
	if p.Brain != nil && p.Brain.Found {
		brainHit = "yes"
	}

	values := []string{
		protein,
		p.Sequence,
		fmt.Sprintf("%d", p.Start+1),
		fmt.Sprintf("%d", p.End),
		fmt.Sprintf("%d", p.Length),
		inRange,
		motifN,
		motifC,
		ptype,
		fmt.Sprintf("%.1f", p.BioactivityScore),
		p.BioactivitySource,
		p.UniProtStatus,
		name,
		ptms,
		modified,
		brainHit,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteBatch writes every report of a batch.
func (tw *TabWriter) WriteBatch(b *analyze.BatchReport) error {
	for _, r := range b.Results {
		if err := tw.WriteReport(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
