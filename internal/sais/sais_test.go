package sais

import (
	"math/rand"
	"sort"
	"testing"
)

func symbols(s string) []int64 {
	out := make([]int64, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int64(s[i])
	}
	return out
}

func suffixLess(text []int64, a, b int64) bool {
	for {
		if a == int64(len(text)) {
			return true
		}
		if b == int64(len(text)) {
			return false
		}
		if text[a] != text[b] {
			return text[a] < text[b]
		}
		a++
		b++
	}
}

func naive(text []int64) []int64 {
	sa := make([]int64, len(text))
	for i := range sa {
		sa[i] = int64(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return suffixLess(text, sa[i], sa[j])
	})
	return sa
}

func equalSA(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort_KnownTexts(t *testing.T) {
	tests := []struct {
		text string
		want []int64
	}{
		{"", []int64{}},
		{"A", []int64{0}},
		{"AAAA", []int64{3, 2, 1, 0}},
		{"banana", []int64{5, 3, 1, 0, 4, 2}},
		{"ABRACADABRA", []int64{10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}},
		{"mmiissiissiippii", []int64{15, 14, 10, 6, 2, 11, 7, 3, 1, 0, 13, 12, 9, 5, 8, 4}},
	}
	for _, tc := range tests {
		got, err := Sort(symbols(tc.text), 256)
		if err != nil {
			t.Fatalf("Sort(%q) failed: %v", tc.text, err)
		}
		if !equalSA(got, tc.want) {
			t.Fatalf("Sort(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSort_RandomAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, k := range []int64{2, 4, 26, 1 << 20} {
		for trial := 0; trial < 20; trial++ {
			n := 1 + rng.Intn(400)
			text := make([]int64, n)
			for i := range text {
				text[i] = rng.Int63n(k)
			}
			got, err := Sort(text, k)
			if err != nil {
				t.Fatalf("Sort failed: %v", err)
			}
			if want := naive(text); !equalSA(got, want) {
				t.Fatalf("alphabet %d, trial %d: Sort = %v, want %v", k, trial, got, want)
			}
		}
	}
}

func TestSort_Errors(t *testing.T) {
	if _, err := Sort(symbols("AB"), 0); err == nil {
		t.Fatal("Sort with zero alphabet size should fail")
	}
	if _, err := Sort([]int64{0, 5}, 5); err == nil {
		t.Fatal("Sort with a symbol outside the alphabet should fail")
	}
	if _, err := Sort([]int64{-1}, 5); err == nil {
		t.Fatal("Sort with a negative symbol should fail")
	}
}
