// Package sais implements the SA-IS linear-time suffix array construction
// algorithm over generalized integer alphabets. Working on int64 symbols
// rather than bytes lets the builder sort packed multi-character symbols
// directly, which is how sparse suffix arrays are constructed without ever
// materializing the dense array.
package sais

import "fmt"

// Sort returns the suffix array of text: the starting positions of all
// suffixes, ordered lexicographically. Symbols must lie in [0, alphabetSize).
// Suffix order is resolved as if a unique sentinel smaller than every symbol
// terminated the text.
func Sort(text []int64, alphabetSize int64) ([]int64, error) {
	if alphabetSize <= 0 {
		return nil, fmt.Errorf("sais: alphabet size %d must be positive", alphabetSize)
	}
	n := len(text)
	if n == 0 {
		return []int64{}, nil
	}

	// Shift symbols up by one and append an explicit zero sentinel, the
	// form the induced-sorting core requires.
	s := make([]int, n+1)
	for i, c := range text {
		if c < 0 || c >= alphabetSize {
			return nil, fmt.Errorf("sais: symbol %d at position %d outside alphabet [0, %d)", c, i, alphabetSize)
		}
		s[i] = int(c) + 1
	}
	s[n] = 0

	sa := make([]int, n+1)
	saIS(s, sa, int(alphabetSize)+1)

	// sa[0] is the sentinel suffix; the rest is the suffix array proper.
	out := make([]int64, n)
	for i, p := range sa[1:] {
		out[i] = int64(p)
	}
	return out, nil
}

// saIS computes the suffix array of s into sa. s must end with a unique
// smallest sentinel; k is the alphabet size (symbols in [0, k)).
func saIS(s, sa []int, k int) {
	n := len(s)
	if n == 1 {
		sa[0] = 0
		return
	}

	// Classify suffix types: sTyp[i] is true for S-type (suffix i sorts
	// before suffix i+1 among those sharing a prefix).
	sTyp := make([]bool, n)
	sTyp[n-1] = true
	for i := n - 2; i >= 0; i-- {
		sTyp[i] = s[i] < s[i+1] || (s[i] == s[i+1] && sTyp[i+1])
	}
	isLMS := func(i int) bool { return i > 0 && i < n && sTyp[i] && !sTyp[i-1] }

	// Stage 1: place LMS suffixes in arbitrary order and induce a first
	// approximation of the suffix array.
	for i := range sa {
		sa[i] = -1
	}
	tails := bucketBounds(s, k, true)
	for i := 1; i < n; i++ {
		if isLMS(i) {
			tails[s[i]]--
			sa[tails[s[i]]] = i
		}
	}
	induce(s, sa, sTyp, k)

	// Collect the LMS suffixes in their induced order and name the LMS
	// substrings to build the reduced problem.
	numLMS := 0
	for _, p := range sa {
		if isLMS(p) {
			sa[numLMS] = p
			numLMS++
		}
	}
	named := sa[numLMS:]
	for i := range named {
		named[i] = -1
	}
	name := 0
	prev := -1
	for _, p := range sa[:numLMS] {
		if prev >= 0 && !lmsEqual(s, sTyp, isLMS, prev, p) {
			name++
		}
		named[p/2] = name
		prev = p
	}

	// Compact the names into the reduced string, keeping LMS text order.
	reduced := make([]int, 0, numLMS)
	lmsPos := make([]int, 0, numLMS)
	for i := 1; i < n; i++ {
		if isLMS(i) {
			reduced = append(reduced, named[i/2])
			lmsPos = append(lmsPos, i)
		}
	}

	// Stage 2: order the LMS suffixes, recursing only when names collide.
	lmsOrder := make([]int, numLMS)
	if name+1 == numLMS {
		for i, r := range reduced {
			lmsOrder[r] = i
		}
	} else {
		saIS(reduced, lmsOrder, name+1)
	}

	// Stage 3: place LMS suffixes in sorted order and induce the final
	// suffix array.
	for i := range sa {
		sa[i] = -1
	}
	tails = bucketBounds(s, k, true)
	for i := numLMS - 1; i >= 0; i-- {
		p := lmsPos[lmsOrder[i]]
		tails[s[p]]--
		sa[tails[s[p]]] = p
	}
	induce(s, sa, sTyp, k)
}

// induce fills in the L-type and S-type suffixes from the placed LMS (or
// sorted-LMS) entries, the two linear passes at the heart of SA-IS.
func induce(s, sa []int, sTyp []bool, k int) {
	heads := bucketBounds(s, k, false)
	for _, p := range sa {
		if p > 0 && !sTyp[p-1] {
			sa[heads[s[p-1]]] = p - 1
			heads[s[p-1]]++
		}
	}
	tails := bucketBounds(s, k, true)
	for i := len(sa) - 1; i >= 0; i-- {
		p := sa[i]
		if p > 0 && sTyp[p-1] {
			tails[s[p-1]]--
			sa[tails[s[p-1]]] = p - 1
		}
	}
}

// bucketBounds returns, per symbol, the head (end=false) or one-past-tail
// (end=true) position of its bucket in the suffix array.
func bucketBounds(s []int, k int, end bool) []int {
	counts := make([]int, k)
	for _, c := range s {
		counts[c]++
	}
	bounds := make([]int, k)
	sum := 0
	for c, cnt := range counts {
		if end {
			sum += cnt
			bounds[c] = sum
		} else {
			bounds[c] = sum
			sum += cnt
		}
	}
	return bounds
}

// lmsEqual reports whether the LMS substrings starting at a and b are
// identical in both symbols and type pattern. The unique sentinel guarantees
// the comparison terminates before running past the end of s.
func lmsEqual(s []int, sTyp []bool, isLMS func(int) bool, a, b int) bool {
	if a == b {
		return true
	}
	for i := 0; ; i++ {
		aEnd := isLMS(a + i)
		bEnd := isLMS(b + i)
		if i > 0 && aEnd && bEnd {
			return true
		}
		if aEnd != bEnd {
			return false
		}
		if s[a+i] != s[b+i] || sTyp[a+i] != sTyp[b+i] {
			return false
		}
	}
}
