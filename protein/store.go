package protein

import (
	"context"
	"database/sql"
	"fmt"
)

const proteinsSchema = `
CREATE TABLE IF NOT EXISTS proteins (
    accession TEXT PRIMARY KEY,
    taxon_id INTEGER NOT NULL,
    annotations BLOB
);
`

// EnsureSchema creates the proteins table in the provided database if it
// does not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(proteinsSchema)
	return err
}

// Store persists protein metadata alongside the index file. The corpus text
// and suffix array live in the index file itself; the store carries what a
// search result reports per protein.
type Store interface {
	// AddProteins inserts records, preserving their order.
	AddProteins(ctx context.Context, proteins []Protein) error

	// LoadProteins returns all records in insertion order, which matches
	// corpus order when the store was filled from a Collection.
	LoadProteins(ctx context.Context) ([]Protein, error)
}

// SQLiteStore is the Store implementation over a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed Store. It ensures the proteins
// schema exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("protein: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// AddProteins inserts records into the proteins table within a single
// transaction.
func (s *SQLiteStore) AddProteins(ctx context.Context, proteins []Protein) error {
	if len(proteins) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO proteins(accession, taxon_id, annotations) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range proteins {
		if p.Accession == "" {
			return fmt.Errorf("protein: Protein.Accession must be set in AddProteins")
		}
		if _, err := stmt.ExecContext(ctx, p.Accession, p.TaxonID, p.Annotations); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadProteins reads all records back in insertion order.
func (s *SQLiteStore) LoadProteins(ctx context.Context) ([]Protein, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT accession, taxon_id, annotations FROM proteins ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Protein
	for rows.Next() {
		var p Protein
		if err := rows.Scan(&p.Accession, &p.TaxonID, &p.Annotations); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
