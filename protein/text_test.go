package protein

import (
	"bytes"
	"testing"
)

func TestRank_Order(t *testing.T) {
	// Rank must preserve byte order so packed comparisons agree with
	// character comparisons.
	alphabet := []byte("$-ACDEFGHIKLMNPQRSTVWY")
	prev := -1
	for _, c := range alphabet {
		rank, err := Rank(c)
		if err != nil {
			t.Fatalf("Rank(%q) failed: %v", c, err)
		}
		if int(rank) <= prev {
			t.Fatalf("Rank(%q) = %d, not above previous rank %d", c, rank, prev)
		}
		prev = int(rank)
	}
}

func TestRank_Invalid(t *testing.T) {
	for _, c := range []byte{'a', '#', '0', ' '} {
		if _, err := Rank(c); err == nil {
			t.Fatalf("Rank(%q) should fail", c)
		}
	}
}

func TestText_GetAndLen(t *testing.T) {
	raw := []byte("AI-CLACVAA-AC-KCRLY$")
	text, err := NewText(raw)
	if err != nil {
		t.Fatalf("NewText failed: %v", err)
	}
	if text.Len() != len(raw) {
		t.Fatalf("Len = %d, want %d", text.Len(), len(raw))
	}
	for i, c := range raw {
		if got := text.Get(i); got != c {
			t.Fatalf("Get(%d) = %q, want %q", i, got, c)
		}
	}
}

func TestText_GetOutOfRange(t *testing.T) {
	text, err := NewText([]byte("AC$"))
	if err != nil {
		t.Fatalf("NewText failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Get past the end should panic")
		}
	}()
	text.Get(3)
}

func TestText_SerializationRoundTrip(t *testing.T) {
	raw := []byte("MLPGIAILLIAAWTARAIEV-PTDGNAGIIAEPQIAMFCGRINMHMNVQNG$")
	text, err := NewText(raw)
	if err != nil {
		t.Fatalf("NewText failed: %v", err)
	}

	var buffer bytes.Buffer
	if _, err := text.WriteTo(&buffer); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	loaded, err := ReadTextFrom(&buffer, len(raw))
	if err != nil {
		t.Fatalf("ReadTextFrom failed: %v", err)
	}
	for i, c := range raw {
		if got := loaded.Get(i); got != c {
			t.Fatalf("loaded Get(%d) = %q, want %q", i, got, c)
		}
	}
}

func TestNewText_InvalidCharacter(t *testing.T) {
	if _, err := NewText([]byte("ACx$")); err == nil {
		t.Fatal("NewText with a lowercase character should fail")
	}
}
