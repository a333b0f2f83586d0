// Package dsort implements suffix array construction in the style of
// divsufsort: an initial bucket sort on the first symbol followed by
// Bentley-Sedgewick multikey quicksort of each bucket. It is the simpler,
// cache-friendly counterpart to the sais backend and the default choice for
// moderate inputs.
package dsort

import "fmt"

// Buckets on the first symbol pay off only while the count array stays small
// relative to the text. Packed multi-character alphabets blow past this and
// go straight to the quicksort.
const maxBucketAlphabet = 1 << 16

const insertionThreshold = 16

// Sort returns the suffix array of text: the starting positions of all
// suffixes, ordered lexicographically. Symbols must lie in [0, alphabetSize).
// Suffix order is resolved as if a unique sentinel smaller than every symbol
// terminated the text.
func Sort(text []int64, alphabetSize int64) ([]int64, error) {
	if alphabetSize <= 0 {
		return nil, fmt.Errorf("dsort: alphabet size %d must be positive", alphabetSize)
	}
	for i, c := range text {
		if c < 0 || c >= alphabetSize {
			return nil, fmt.Errorf("dsort: symbol %d at position %d outside alphabet [0, %d)", c, i, alphabetSize)
		}
	}

	n := len(text)
	sa := make([]int64, n)
	if n == 0 {
		return sa, nil
	}

	if alphabetSize <= maxBucketAlphabet {
		bucketByFirst(text, sa, int(alphabetSize))
		start := 0
		for start < n {
			end := start + 1
			first := text[sa[start]]
			for end < n && text[sa[end]] == first {
				end++
			}
			mkqSort(text, sa[start:end], 1)
			start = end
		}
	} else {
		for i := range sa {
			sa[i] = int64(i)
		}
		mkqSort(text, sa, 0)
	}
	return sa, nil
}

// bucketByFirst places every suffix into the region of its first symbol.
func bucketByFirst(text []int64, sa []int64, k int) {
	counts := make([]int, k)
	for _, c := range text {
		counts[c]++
	}
	heads := make([]int, k)
	sum := 0
	for c, cnt := range counts {
		heads[c] = sum
		sum += cnt
	}
	for i, c := range text {
		sa[heads[c]] = int64(i)
		heads[c]++
	}
}

// symbolAt reads the symbol of suffix p at the given depth, with the virtual
// sentinel -1 past the end of the text.
func symbolAt(text []int64, p, depth int64) int64 {
	if pos := p + depth; pos < int64(len(text)) {
		return text[pos]
	}
	return -1
}

// mkqSort orders the suffixes in sa, which already agree on their first
// depth symbols, by ternary partitioning on the symbol at depth. The equal
// partition is handled iteratively one symbol deeper; the less and greater
// partitions recurse.
func mkqSort(text []int64, sa []int64, depth int64) {
	for len(sa) > 1 {
		if len(sa) < insertionThreshold {
			insertionSort(text, sa, depth)
			return
		}

		pivot := medianOfThree(text, sa, depth)
		lt, gt := 0, len(sa)
		for i := lt; i < gt; {
			switch c := symbolAt(text, sa[i], depth); {
			case c < pivot:
				sa[lt], sa[i] = sa[i], sa[lt]
				lt++
				i++
			case c > pivot:
				gt--
				sa[gt], sa[i] = sa[i], sa[gt]
			default:
				i++
			}
		}

		mkqSort(text, sa[:lt], depth)
		mkqSort(text, sa[gt:], depth)
		if pivot == -1 {
			// Suffixes exhausted at this depth; at most one exists.
			return
		}
		sa = sa[lt:gt]
		depth++
	}
}

func medianOfThree(text []int64, sa []int64, depth int64) int64 {
	a := symbolAt(text, sa[0], depth)
	b := symbolAt(text, sa[len(sa)/2], depth)
	c := symbolAt(text, sa[len(sa)-1], depth)
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
		if a > b {
			b = a
		}
	}
	return b
}

func insertionSort(text []int64, sa []int64, depth int64) {
	for i := 1; i < len(sa); i++ {
		for j := i; j > 0 && suffixLess(text, sa[j], sa[j-1], depth); j-- {
			sa[j], sa[j-1] = sa[j-1], sa[j]
		}
	}
}

// suffixLess compares two suffixes symbol by symbol from depth onward.
func suffixLess(text []int64, a, b, depth int64) bool {
	for {
		ca := symbolAt(text, a, depth)
		cb := symbolAt(text, b, depth)
		if ca != cb {
			return ca < cb
		}
		if ca == -1 {
			return false
		}
		depth++
	}
}
