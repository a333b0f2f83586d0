package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/viant/pepdex/builder"
	"github.com/viant/pepdex/engine"
	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/suffarray"
	"github.com/viant/pepdex/taxonomy"
)

func runBuild(c *cli.Context) error {
	databasePath := c.String("database")
	outputPath := c.String("output")
	if databasePath == "" || outputPath == "" {
		return fmt.Errorf("build: the database and output files are required")
	}
	sparseness := c.Uint("sparseness")
	if sparseness < 1 || sparseness > 255 {
		return fmt.Errorf("build: sparseness must be in 1..255, got %d", sparseness)
	}
	storePath := c.String("store")
	taxonomyPath := c.String("taxonomy")

	var collection *protein.Collection
	var text []byte
	var err error
	if storePath != "" || taxonomyPath != "" {
		if collection, err = protein.ReadDatabase(databasePath); err != nil {
			return err
		}
		text = collection.Text
	} else if text, err = protein.ReadDatabaseText(databasePath); err != nil {
		return err
	}

	if taxonomyPath != "" {
		aggregator, err := taxonomy.AggregatorFromFile(taxonomyPath, taxonomy.MethodLCAStar)
		if err != nil {
			return err
		}
		for _, p := range collection.Proteins {
			if !aggregator.Exists(p.TaxonID) {
				return fmt.Errorf("build: protein %s references unknown taxon %d", p.Accession, p.TaxonID)
			}
		}
	}

	// Pack the corpus before construction translates L to I in place; the
	// persisted text must keep the original residues.
	packed, err := protein.NewText(text)
	if err != nil {
		return err
	}

	sa, err := builder.Build(text, builder.Algorithm(c.String("algorithm")), uint8(sparseness))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "suffix array constructed: %d entries over %d characters\n", len(sa), packed.Len())

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	writer := bufio.NewWriterSize(file, 1<<20)
	if err := suffarray.Dump(packed, sa, uint8(sparseness), !c.Bool("uncompressed"), writer); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	if storePath != "" {
		db, err := engine.Open(storePath)
		if err != nil {
			return err
		}
		defer db.Close()
		store, err := protein.NewSQLiteStore(db)
		if err != nil {
			return err
		}
		if err := store.AddProteins(context.Background(), collection.Proteins); err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "stored %d proteins in %s\n", len(collection.Proteins), storePath)
	}
	return nil
}
