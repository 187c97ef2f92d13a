package output

import (
	"fmt"
	"io"

	"github.com/inodb/vibe-pep/internal/analyze"
)

// WriteSummary writes a short human-readable summary of a report.
func WriteSummary(w io.Writer, r *analyze.Report) error {
	if r.ProteinID != "" {
		fmt.Fprintf(w, "Protein: %s\n", r.ProteinID)
	}
	fmt.Fprintf(w, "Sequence length: %d\n", r.SequenceLength)
	fmt.Fprintf(w, "Signal peptide end: %d\n", r.SignalPeptideEnd)
	fmt.Fprintf(w, "Mode: %s\n", r.Mode)
	fmt.Fprintf(w, "Cleavage sites: %d\n", r.CleavageSitesCount)
	fmt.Fprintf(w, "Peptides: %d (%d in optimal range)\n", len(r.Peptides), r.PeptidesInRange)

	if len(r.TopPeptides) > 0 {
		fmt.Fprintf(w, "\nTop peptides:\n")
		for i, p := range r.TopPeptides {
			known := ""
			if p.UniProtName != "" {
				known = fmt.Sprintf("  [%s]", p.UniProtName)
			}
			fmt.Fprintf(w, "  %d. %s  (pos %d-%d, len %d, score %.1f/%s)%s\n",
				i+1, p.Sequence, p.Start+1, p.End, p.Length,
				p.BioactivityScore, p.BioactivitySource, known)
		}
	}
	return nil
}

// WriteBatchSummary writes the batch-level counts followed by each
// successful report's summary.
func WriteBatchSummary(w io.Writer, b *analyze.BatchReport) error {
	fmt.Fprintf(w, "Proteins: %d requested, %d unique, %d succeeded, %d failed\n",
		b.TotalProteins, b.UniqueProteins, b.SuccessfulProteins, b.FailedProteins)
	if len(b.NotFound) > 0 {
		fmt.Fprintf(w, "Not found: %v\n", b.NotFound)
	}
	for _, r := range b.Results {
		if r.Status != analyze.StatusSuccess {
			continue
		}
		fmt.Fprintln(w)
		if err := WriteSummary(w, r); err != nil {
			return err
		}
	}
	return nil
}
