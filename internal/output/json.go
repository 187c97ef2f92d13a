package output

import (
	"encoding/json"
	"io"

	"github.com/inodb/vibe-pep/internal/analyze"
)

// WriteJSON writes a single report as indented JSON.
func WriteJSON(w io.Writer, r *analyze.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteBatchJSON writes a batch report as indented JSON.
func WriteBatchJSON(w io.Writer, b *analyze.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
