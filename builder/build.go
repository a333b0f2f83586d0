package builder

import (
	"fmt"

	"github.com/viant/pepdex/protein"
)

// maxDirectFactor bounds how many characters are packed into one backend
// symbol. Five 5-bit characters keep the packed alphabet at 2^25, the largest
// the backends' bucket structures tolerate.
const maxDirectFactor = 5

// Build constructs the sparse suffix array of text with the given sparseness
// factor and returns the retained suffix offsets, in suffix order, as true
// text offsets. Leucine is translated to isoleucine in place before sorting,
// so matches equate the two; text must use the corpus alphabet and end with
// the '$' terminator.
//
// A factor s decomposes as s = d*r where d is the largest divisor of s at
// most maxDirectFactor: the d stage packs d characters per symbol and sorts
// the packed text directly, the r stage filters the result down to offsets
// divisible by s. The dense suffix array is materialized only when d is 1.
func Build(text []byte, algorithm Algorithm, sparseness uint8) ([]int64, error) {
	if sparseness < 1 {
		return nil, fmt.Errorf("builder: sparseness factor must be at least 1, got %d", sparseness)
	}
	sorter, err := NewSorter(algorithm)
	if err != nil {
		return nil, err
	}

	TranslateIL(text)

	d := int64(largestDirectFactor(int(sparseness)))
	packed, err := packText(text, int(d))
	if err != nil {
		return nil, err
	}

	sa, err := sorter.SortSuffixes(packed, 1<<(protein.BitsPerChar*d))
	if err != nil {
		return nil, fmt.Errorf("builder: suffix sorting failed: %w", err)
	}
	for i := range sa {
		sa[i] *= d
	}
	return sample(sa, int64(sparseness)), nil
}

// TranslateIL replaces every leucine with isoleucine in place. The two share
// a mass and are indistinguishable to mass spectrometry, so suffixes are
// ordered as if they were one symbol; the persisted corpus text keeps the
// original residues.
func TranslateIL(text []byte) {
	for i, c := range text {
		if c == 'L' {
			text[i] = 'I'
		}
	}
}

// largestDirectFactor returns the largest divisor of s not exceeding
// maxDirectFactor, falling back to 1 when s has no small divisor.
func largestDirectFactor(s int) int {
	d := maxDirectFactor
	if s < d {
		d = s
	}
	for ; d > 1; d-- {
		if s%d == 0 {
			return d
		}
	}
	return 1
}

// packText packs runs of d consecutive characters into one symbol each, most
// significant character first. A short final run keeps its characters in the
// high bits, padding with the terminator rank; the unique trailing '$' of the
// corpus keeps padded comparisons consistent with true suffix order.
func packText(text []byte, d int) ([]int64, error) {
	if len(text) == 0 {
		return []int64{}, nil
	}
	packed := make([]int64, (len(text)+d-1)/d)
	for i := range packed {
		var symbol int64
		start := i * d
		for j := 0; j < d && start+j < len(text); j++ {
			rank, err := protein.Rank(text[start+j])
			if err != nil {
				return nil, fmt.Errorf("builder: position %d: %w", start+j, err)
			}
			symbol |= int64(rank) << (protein.BitsPerChar * (d - 1 - j))
		}
		packed[i] = symbol
	}
	return packed, nil
}

// sample compacts sa in place, keeping only offsets divisible by the
// sparseness factor.
func sample(sa []int64, sparseness int64) []int64 {
	if sparseness <= 1 {
		return sa
	}
	kept := 0
	for _, offset := range sa {
		if offset%sparseness == 0 {
			sa[kept] = offset
			kept++
		}
	}
	return sa[:kept]
}
