package protein

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const databaseFixture = "P12345\t1\tMLPGLALLLLAAWTARALEV\tGO:0009279;IPR:IPR016364;IPR:IPR008816\n" +
	"P54321\t2\tPTDGNAGLLAEPQIAMFCGRLNMHMNVQNG\tGO:0009279;IPR:IPR016364;IPR:IPR008816\n" +
	"P67890\t6\tKWDSDPSGTKTCIDT\tGO:0009279;IPR:IPR016364;IPR:IPR008816\n" +
	"P13579\t17\tKEGILQYCQEVYPELQITNVVEANQPVTIQNWCKRGRKQCKTHPH\tGO:0009279;IPR:IPR016364;IPR:IPR008816\n"

const concatenatedFixture = "MLPGLALLLLAAWTARALEV-PTDGNAGLLAEPQIAMFCGRLNMHMNVQNG-KWDSDPSGTKTCIDT-KEGILQYCQEVYPELQITNVVEANQPVTIQNWCKRGRKQCKTHPH$"

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}
	return path
}

func TestReadDatabase(t *testing.T) {
	collection, err := ReadDatabase(writeFixture(t, databaseFixture))
	if err != nil {
		t.Fatalf("ReadDatabase failed: %v", err)
	}

	if !bytes.Equal(collection.Text, []byte(concatenatedFixture)) {
		t.Fatalf("Text = %q, want %q", collection.Text, concatenatedFixture)
	}
	if len(collection.Proteins) != 4 {
		t.Fatalf("got %d proteins, want 4", len(collection.Proteins))
	}

	wantTaxa := []uint32{1, 2, 6, 17}
	wantAccessions := []string{"P12345", "P54321", "P67890", "P13579"}
	for i, p := range collection.Proteins {
		if p.Accession != wantAccessions[i] {
			t.Errorf("protein %d: Accession = %q, want %q", i, p.Accession, wantAccessions[i])
		}
		if p.TaxonID != wantTaxa[i] {
			t.Errorf("protein %d: TaxonID = %d, want %d", i, p.TaxonID, wantTaxa[i])
		}
		annotations, err := p.FunctionalAnnotations()
		if err != nil {
			t.Fatalf("protein %d: FunctionalAnnotations failed: %v", i, err)
		}
		if want := "GO:0009279;IPR:IPR016364;IPR:IPR008816"; annotations != want {
			t.Errorf("protein %d: FunctionalAnnotations = %q, want %q", i, annotations, want)
		}
	}
}

func TestReadDatabase_LowercaseSequence(t *testing.T) {
	collection, err := ReadDatabase(writeFixture(t, "P1\t5\tacgt\t\n"))
	if err != nil {
		t.Fatalf("ReadDatabase failed: %v", err)
	}
	if !bytes.Equal(collection.Text, []byte("ACGT$")) {
		t.Fatalf("Text = %q, want %q", collection.Text, "ACGT$")
	}
}

func TestReadDatabase_Empty(t *testing.T) {
	collection, err := ReadDatabase(writeFixture(t, ""))
	if err != nil {
		t.Fatalf("ReadDatabase failed: %v", err)
	}
	if !bytes.Equal(collection.Text, []byte("$")) {
		t.Fatalf("Text = %q, want %q", collection.Text, "$")
	}
	if len(collection.Proteins) != 0 {
		t.Fatalf("got %d proteins, want 0", len(collection.Proteins))
	}
}

func TestReadDatabase_MalformedLine(t *testing.T) {
	if _, err := ReadDatabase(writeFixture(t, "P1\t5\tACGT\n")); err == nil {
		t.Fatal("ReadDatabase with a 3-field line should fail")
	}
	if _, err := ReadDatabase(writeFixture(t, "P1\tx\tACGT\t\n")); err == nil {
		t.Fatal("ReadDatabase with a non-numeric taxon id should fail")
	}
}

func TestReadDatabaseText(t *testing.T) {
	text, err := ReadDatabaseText(writeFixture(t, databaseFixture))
	if err != nil {
		t.Fatalf("ReadDatabaseText failed: %v", err)
	}
	if !bytes.Equal(text, []byte(concatenatedFixture)) {
		t.Fatalf("text = %q, want %q", text, concatenatedFixture)
	}
}
