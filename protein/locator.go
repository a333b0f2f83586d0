package protein

import "sort"

// NullIndex marks a text position belonging to no protein, the separator and
// terminator characters.
const NullIndex = ^uint32(0)

// Locator maps a suffix offset in the corpus text to the protein containing
// it. Implementations are immutable after construction and safe for
// concurrent readers.
type Locator interface {
	// Find returns the index of the protein whose sequence covers the given
	// text offset. ok is false on separator and terminator positions.
	// offset must lie in [0, text length).
	Find(offset int64) (index int, ok bool)
}

// DenseLocator stores one protein index per text position: constant-time
// lookup at four bytes per corpus character.
type DenseLocator struct {
	mapping []uint32
}

// NewDenseLocator builds a dense locator from the packed corpus text.
func NewDenseLocator(text *Text) *DenseLocator {
	mapping := make([]uint32, text.Len())
	index := uint32(0)
	for i := 0; i < text.Len(); i++ {
		switch text.Get(i) {
		case Separator:
			mapping[i] = NullIndex
			index++
		case Terminator:
			mapping[i] = NullIndex
		default:
			mapping[i] = index
		}
	}
	return &DenseLocator{mapping: mapping}
}

func (l *DenseLocator) Find(offset int64) (int, bool) {
	index := l.mapping[offset]
	if index == NullIndex {
		return 0, false
	}
	return int(index), true
}

// SparseLocator stores only the start offset of every protein and binary
// searches on lookup: eight bytes per protein instead of four per character.
type SparseLocator struct {
	starts []int64
}

// NewSparseLocator builds a sparse locator from the packed corpus text.
func NewSparseLocator(text *Text) *SparseLocator {
	starts := []int64{0}
	for i := 0; i < text.Len(); i++ {
		if text.Get(i) == Separator {
			starts = append(starts, int64(i)+1)
		}
	}
	starts = append(starts, int64(text.Len()))
	return &SparseLocator{starts: starts}
}

func (l *SparseLocator) Find(offset int64) (int, bool) {
	index := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	// The character before the next protein's start is the separator (or the
	// terminator) closing this one.
	if offset == l.starts[index+1]-1 {
		return 0, false
	}
	return index, true
}

var (
	_ Locator = (*DenseLocator)(nil)
	_ Locator = (*SparseLocator)(nil)
)
