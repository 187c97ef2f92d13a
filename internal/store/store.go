// Package store provides a DuckDB-backed cache for resolved proteins
// with a freshness window.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-pep/internal/uniprot"
)

// FreshnessWindow is how long a cached protein stays usable. Older
// entries are treated as absent, never served stale.
const FreshnessWindow = 24 * time.Hour

// Store manages a DuckDB connection for caching protein lookups.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an
// empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS proteins (
		accession VARCHAR PRIMARY KEY,
		gene_name VARCHAR,
		protein_name VARCHAR,
		sequence VARCHAR,
		signal_end INTEGER,
		fasta_header VARCHAR,
		annotated_peptides VARCHAR,
		fetched_at TIMESTAMP
	)`)
	return err
}

// PutProtein stores or refreshes one protein, stamping it with the
// current time.
func (s *Store) PutProtein(p *uniprot.Protein) error {
	peptides, err := json.Marshal(p.AnnotatedPeptides)
	if err != nil {
		return fmt.Errorf("encode annotated peptides: %w", err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO proteins
		(accession, gene_name, protein_name, sequence, signal_end, fasta_header, annotated_peptides, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Accession, p.GeneName, p.ProteinName, p.Sequence, p.SignalEnd,
		p.FastaHeader, string(peptides), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write protein %s: %w", p.Accession, err)
	}
	return nil
}

// GetProtein looks up a cached protein by accession or gene name.
// Entries older than maxAge are treated as absent. The second return
// value reports a fresh hit.
func (s *Store) GetProtein(query string, maxAge time.Duration) (*uniprot.Protein, bool, error) {
	row := s.db.QueryRow(`SELECT accession, gene_name, protein_name, sequence, signal_end,
		fasta_header, annotated_peptides, fetched_at
		FROM proteins WHERE accession = ? OR gene_name = ?`, query, query)

	var p uniprot.Protein
	var peptides string
	var fetchedAt time.Time

	err := row.Scan(&p.Accession, &p.GeneName, &p.ProteinName, &p.Sequence, &p.SignalEnd,
		&p.FastaHeader, &peptides, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read protein %s: %w", query, err)
	}

	if time.Since(fetchedAt) > maxAge {
		return nil, false, nil
	}

	if err := json.Unmarshal([]byte(peptides), &p.AnnotatedPeptides); err != nil {
		return nil, false, fmt.Errorf("decode annotated peptides for %s: %w", query, err)
	}

	p.Length = len(p.Sequence)
	p.RecommendedParams = uniprot.RecommendedParams(p.Length, p.SignalEnd, len(p.AnnotatedPeptides))

	return &p, true, nil
}

// ClearProteins removes all cached proteins.
func (s *Store) ClearProteins() error {
	_, err := s.db.Exec(`DELETE FROM proteins`)
	return err
}
