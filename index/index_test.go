package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/pepdex/engine"
	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/suffarray"
)

func writeFixture(t *testing.T) (indexPath, databasePath string) {
	t.Helper()
	dir := t.TempDir()
	indexPath = filepath.Join(dir, "index.bin")
	databasePath = filepath.Join(dir, "proteins.sqlite")

	text, err := protein.NewText([]byte("AI-CLACVAA-AC-KCRLY$"))
	if err != nil {
		t.Fatalf("NewText failed: %v", err)
	}
	sa := []int64{19, 10, 2, 13, 9, 8, 11, 5, 0, 3, 12, 15, 6, 1, 4, 17, 14, 16, 7, 18}
	file, err := os.Create(indexPath)
	if err != nil {
		t.Fatalf("creating index file failed: %v", err)
	}
	if err := suffarray.Dump(text, sa, 1, false, file); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing index file failed: %v", err)
	}

	db, err := engine.Open(databasePath)
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	store, err := protein.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	err = store.AddProteins(context.Background(), []protein.Protein{
		{Accession: "P10001", TaxonID: 10},
		{Accession: "P10002", TaxonID: 11},
		{Accession: "P10003", TaxonID: 12},
		{Accession: "P10004", TaxonID: 13},
	})
	if err != nil {
		t.Fatalf("AddProteins failed: %v", err)
	}
	return indexPath, databasePath
}

func TestOpen(t *testing.T) {
	indexPath, databasePath := writeFixture(t)

	for _, options := range []Options{{}, {Mapped: true}, {DenseLocator: true}} {
		index, err := Open(indexPath, databasePath, options)
		if err != nil {
			t.Fatalf("Open with %+v failed: %v", options, err)
		}

		result, err := index.SearchPeptide("VAA", 0, false, false)
		if err != nil {
			t.Fatalf("SearchPeptide failed: %v", err)
		}
		if result == nil || len(result.Proteins) != 1 || result.Proteins[0].Accession != "P10002" {
			t.Fatalf("result = %+v, want one match on P10002", result)
		}

		if err := index.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}
}

func TestOpen_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "missing.sqlite"), Options{}); err == nil {
		t.Fatal("Open of a missing index should fail")
	}
}
