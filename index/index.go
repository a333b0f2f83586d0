// Package index ties a persisted suffix array file and the protein database
// built alongside it into a ready-to-query searcher.
package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/pepdex/engine"
	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/search"
	"github.com/viant/pepdex/suffarray"
)

// Options select how the index is served.
type Options struct {
	// Mapped serves the suffix array straight from the file through a memory
	// mapping instead of loading it. Only uncompressed payloads can be
	// mapped.
	Mapped bool
	// DenseLocator trades four bytes per corpus character for constant-time
	// protein lookups; the default sparse locator binary searches protein
	// start offsets.
	DenseLocator bool
}

// Index is an opened index: the searcher over it plus the resources backing
// it.
type Index struct {
	*search.Searcher

	suffix *suffarray.Index
	db     *sql.DB
}

// Open loads the index file and the protein database and assembles the
// searcher over them. The protein records must be in corpus order, the order
// the store preserves.
func Open(indexPath, databasePath string, options Options) (*Index, error) {
	var suffix *suffarray.Index
	var err error
	if options.Mapped {
		suffix, err = suffarray.OpenMapped(indexPath)
	} else {
		suffix, err = suffarray.Open(indexPath)
	}
	if err != nil {
		return nil, err
	}

	db, err := engine.Open(databasePath)
	if err != nil {
		suffix.Close()
		return nil, err
	}
	store, err := protein.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		suffix.Close()
		return nil, err
	}
	proteins, err := store.LoadProteins(context.Background())
	if err != nil {
		db.Close()
		suffix.Close()
		return nil, fmt.Errorf("index: load proteins: %w", err)
	}

	var locator protein.Locator
	if options.DenseLocator {
		locator = protein.NewDenseLocator(suffix.Text)
	} else {
		locator = protein.NewSparseLocator(suffix.Text)
	}
	return &Index{
		Searcher: search.New(suffix.SA, suffix.Text, proteins, locator),
		suffix:   suffix,
		db:       db,
	}, nil
}

// DB exposes the protein database connection, for registering SQL surfaces
// on top of the index.
func (i *Index) DB() *sql.DB { return i.db }

// Close releases the database connection and any mapping held by the suffix
// array.
func (i *Index) Close() error {
	dbErr := i.db.Close()
	if err := i.suffix.Close(); err != nil {
		return err
	}
	return dbErr
}
