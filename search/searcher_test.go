package search

import (
	"sort"
	"testing"

	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/suffarray"
)

// exampleText has four proteins; its dense suffix array is exampleSA and its
// sparse suffix array with factor 3 is exampleSparseSA.
const exampleText = "AI-CLACVAA-AC-KCRLY$"

var (
	exampleSA       = []int64{19, 10, 2, 13, 9, 8, 11, 5, 0, 3, 12, 15, 6, 1, 4, 17, 14, 16, 7, 18}
	exampleSparseSA = []int64{9, 0, 3, 12, 15, 6, 18}
)

func newSearcher(t *testing.T, raw string, sa []int64, sampleRate uint8, proteins []protein.Protein) *Searcher {
	t.Helper()
	text, err := protein.NewText([]byte(raw))
	if err != nil {
		t.Fatalf("NewText failed: %v", err)
	}
	return NewSparse(suffarray.NewRaw(sa, sampleRate), text, proteins)
}

func exampleSearcher(t *testing.T, sa []int64, sampleRate uint8) *Searcher {
	t.Helper()
	return newSearcher(t, exampleText, sa, sampleRate, make([]protein.Protein, 4))
}

func checkSuffixes(t *testing.T, matches Matches, want []int64, capped bool) {
	t.Helper()
	if matches.Capped != capped {
		t.Fatalf("capped = %t, want %t", matches.Capped, capped)
	}
	got := append([]int64{}, matches.Suffixes...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if len(got) != len(want) {
		t.Fatalf("suffixes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("suffixes = %v, want %v", got, want)
		}
	}
}

func TestSearchBounds(t *testing.T) {
	searcher := exampleSearcher(t, exampleSA, 1)

	tests := []struct {
		query      string
		start, end int
		found      bool
	}{
		{"A", 4, 9, true},
		{"$", 0, 1, true},
		{"AC", 6, 8, true},
		{"I", 13, 16, true},
		{"RIY", 17, 18, true},
		{"W", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range tests {
		start, end, found := searcher.SearchBounds([]byte(tc.query))
		if found != tc.found || start != tc.start || end != tc.end {
			t.Fatalf("SearchBounds(%q) = (%d, %d, %t), want (%d, %d, %t)",
				tc.query, start, end, found, tc.start, tc.end, tc.found)
		}
	}
}

func TestSearchMatchingSuffixes_Sparse(t *testing.T) {
	searcher := exampleSearcher(t, exampleSparseSA, 3)

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("VAA"), 0, false, false), []int64{7}, false)
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("AC"), 0, false, false), []int64{5, 11}, false)
}

func TestSearchMatchingSuffixes_QueryShorterThanSampleRate(t *testing.T) {
	searcher := exampleSearcher(t, exampleSparseSA, 3)

	// A one-character query leaves nothing to search once two characters
	// are stripped; only the sampled occurrences are reachable.
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("A"), 0, false, false), []int64{0, 9}, false)
}

func TestSearchMatchingSuffixes_EquateIL(t *testing.T) {
	searcher := exampleSearcher(t, exampleSparseSA, 3)

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("RIY"), 0, true, false), []int64{16}, false)
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("RIY"), 0, false, false), nil, false)
}

func TestSearchMatchingSuffixes_LeucineAtFirstEntry(t *testing.T) {
	searcher := newSearcher(t, "LMPYY$", []int64{0, 2, 4}, 2, make([]protein.Protein, 1))

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("IM"), 0, true, false), []int64{0}, false)
}

func TestSearchMatchingSuffixes_MixedIL(t *testing.T) {
	searcher := newSearcher(t, "AAILLL$", []int64{6, 0, 1, 5, 4, 3, 2}, 1, make([]protein.Protein, 1))

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("I"), 0, true, false), []int64{2, 3, 4, 5}, false)
}

func TestSearchMatchingSuffixes_RepeatedIL(t *testing.T) {
	searcher := newSearcher(t, "IIIILL$", []int64{6, 5, 4, 3, 2, 1, 0}, 1, make([]protein.Protein, 1))

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("II"), 0, true, false), []int64{0, 1, 2, 3, 4}, false)
}

func TestSearchMatchingSuffixes_ExactILOnSparseArray(t *testing.T) {
	searcher := newSearcher(t, "IIIILL$", []int64{6, 4, 2, 0}, 2, make([]protein.Protein, 1))

	// Exact matching keeps only the runs of plain I characters.
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("II"), 0, false, false), []int64{0, 1, 2}, false)
}

func TestSearchMatchingSuffixes_RepeatedILAcrossBoundary(t *testing.T) {
	searcher := newSearcher(t, "IILLLL$", []int64{6, 5, 4, 3, 2, 1, 0}, 1, make([]protein.Protein, 1))

	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("II"), 0, true, false), []int64{0, 1, 2, 3, 4}, false)
}

func TestSearchMatchingSuffixes_Tryptic(t *testing.T) {
	searcher := newSearcher(t, "PAA-AAKPKAPAA$",
		[]int64{13, 3, 12, 11, 1, 4, 2, 5, 9, 8, 6, 10, 0, 7}, 1, make([]protein.Protein, 2))

	// PAA occurs at 0, 7 and 10; only the protein start qualifies. APAA at 9
	// follows a K cut and runs to the protein end.
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("PAA"), 0, false, true), []int64{0}, false)
	checkSuffixes(t, searcher.SearchMatchingSuffixes([]byte("APAA"), 0, false, true), []int64{9}, false)
}

func TestSearchMatchingSuffixes_Cutoff(t *testing.T) {
	searcher := newSearcher(t, "AAILLL$", []int64{6, 0, 1, 5, 4, 3, 2}, 1, make([]protein.Protein, 1))

	matches := searcher.SearchMatchingSuffixes([]byte("I"), 2, true, false)
	if !matches.Capped {
		t.Fatal("expected the cutoff to be reported")
	}
	if len(matches.Suffixes) != 2 {
		t.Fatalf("got %d suffixes, want 2", len(matches.Suffixes))
	}
}

func TestRetrieveProteins(t *testing.T) {
	proteins := []protein.Protein{
		{Accession: "P1"},
		{Accession: "P2"},
		{Accession: "P3"},
		{Accession: "P4"},
	}
	searcher := newSearcher(t, exampleText, exampleSA, 1, proteins)

	// Offset 2 is a separator and resolves to no protein.
	got := searcher.RetrieveProteins([]int64{0, 2, 5, 14})
	want := []string{"P1", "P2", "P4"}
	if len(got) != len(want) {
		t.Fatalf("got %d proteins, want %d", len(got), len(want))
	}
	for i, accession := range want {
		if got[i].Accession != accession {
			t.Fatalf("protein %d = %q, want %q", i, got[i].Accession, accession)
		}
	}
}
