package suffarray

import (
	"fmt"
	"math/bits"

	"github.com/viant/pepdex/bitpack"
)

// Array is read access to a (possibly sparse) suffix array. Implementations
// are immutable after construction and safe for concurrent readers.
type Array interface {
	// Len returns the number of entries.
	Len() int

	// Get returns the text offset stored at the given position. It panics
	// when index is out of range.
	Get(index int) int64

	// SampleRate returns the sparseness factor the array was built with.
	SampleRate() uint8
}

// Raw holds the suffix array as plain int64 values.
type Raw struct {
	sa   []int64
	rate uint8
}

// NewRaw wraps a suffix array without re-encoding it.
func NewRaw(sa []int64, sampleRate uint8) *Raw {
	return &Raw{sa: sa, rate: sampleRate}
}

func (r *Raw) Len() int            { return len(r.sa) }
func (r *Raw) Get(index int) int64 { return r.sa[index] }
func (r *Raw) SampleRate() uint8   { return r.rate }

// BitsNeeded returns the width required to store any offset into a text of
// the given length, with a minimum of one bit.
func BitsNeeded(textLength int64) uint {
	if textLength <= 1 {
		return 1
	}
	return uint(bits.Len64(uint64(textLength - 1)))
}

// Packed holds the suffix array bit-packed at a fixed width.
type Packed struct {
	array *bitpack.Array
	rate  uint8
}

// NewPacked packs the offsets at the given width. An offset that does not
// fit the width reports data corruption rather than wrapping.
func NewPacked(sa []int64, width uint, sampleRate uint8) (*Packed, error) {
	array, err := bitpack.New(len(sa), width)
	if err != nil {
		return nil, err
	}
	for i, offset := range sa {
		if offset < 0 {
			return nil, fmt.Errorf("suffarray: negative offset %d at position %d", offset, i)
		}
		if err := array.Set(i, uint64(offset)); err != nil {
			return nil, fmt.Errorf("suffarray: offset %d at position %d: %w", offset, i, err)
		}
	}
	return &Packed{array: array, rate: sampleRate}, nil
}

func (p *Packed) Len() int            { return p.array.Len() }
func (p *Packed) Get(index int) int64 { return int64(p.array.Get(index)) }
func (p *Packed) SampleRate() uint8   { return p.rate }

var (
	_ Array = (*Raw)(nil)
	_ Array = (*Packed)(nil)
)
