package builder

import (
	"fmt"

	"github.com/viant/pepdex/internal/dsort"
	"github.com/viant/pepdex/internal/sais"
)

// Algorithm names a suffix sorting backend.
type Algorithm string

const (
	// AlgorithmSAIS is the induced-sorting backend, linear time and the
	// better choice for very large corpora.
	AlgorithmSAIS Algorithm = "sais"
	// AlgorithmDivSufSort is the bucket-and-quicksort backend.
	AlgorithmDivSufSort Algorithm = "divsufsort"
)

// Sorter is the single capability construction needs from a backend: a total
// lexicographic ordering of all suffixes of text, resolved as if a unique
// sentinel smaller than every symbol terminated it. Both implementations
// return the identical permutation for any input.
type Sorter interface {
	// SortSuffixes returns the starting offsets of all suffixes of text in
	// lexicographic order. Symbols must lie in [0, alphabetSize).
	SortSuffixes(text []int64, alphabetSize int64) ([]int64, error)
}

// NewSorter returns the backend for the given algorithm name.
func NewSorter(algorithm Algorithm) (Sorter, error) {
	switch algorithm {
	case AlgorithmSAIS:
		return saisSorter{}, nil
	case AlgorithmDivSufSort:
		return dsortSorter{}, nil
	default:
		return nil, fmt.Errorf("builder: unknown construction algorithm %q", algorithm)
	}
}

type saisSorter struct{}

func (saisSorter) SortSuffixes(text []int64, alphabetSize int64) ([]int64, error) {
	return sais.Sort(text, alphabetSize)
}

type dsortSorter struct{}

func (dsortSorter) SortSuffixes(text []int64, alphabetSize int64) ([]int64, error) {
	return dsort.Sort(text, alphabetSize)
}
