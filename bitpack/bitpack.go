package bitpack

import (
	"errors"
	"fmt"
)

var (
	// ErrValueOutOfRange reports a Set with a value that does not fit the
	// configured bit width. Silent truncation would corrupt every offset
	// derived from the array, so this is always surfaced.
	ErrValueOutOfRange = errors.New("bitpack: value out of range for bit width")

	// ErrIndexOutOfBounds reports an index outside [0, Len).
	ErrIndexOutOfBounds = errors.New("bitpack: index out of bounds")
)

// Array is a fixed-capacity vector of unsigned integers, each stored in a
// fixed number of bits (1..64). Values are packed most-significant-bit first
// into consecutive uint64 blocks; a value may straddle two blocks. Capacity
// is set at construction and never grows.
type Array struct {
	blocks []uint64
	mask   uint64
	bits   uint
	length int
}

// New allocates a zeroed Array holding capacity values of the given bit
// width. Width 0 is disallowed: an empty value carries no information and
// every downstream consumer derives width from a maximum value of at least 0,
// which still needs one bit.
func New(capacity int, bits uint) (*Array, error) {
	if bits < 1 || bits > 64 {
		return nil, fmt.Errorf("bitpack: unsupported bit width %d", bits)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("bitpack: negative capacity %d", capacity)
	}
	mask := ^uint64(0)
	if bits < 64 {
		mask = (1 << bits) - 1
	}
	return &Array{
		blocks: make([]uint64, numBlocks(capacity, bits)),
		mask:   mask,
		bits:   bits,
		length: capacity,
	}, nil
}

// numBlocks returns the block allocation for capacity values of the given
// width. The extra block keeps the split-value arithmetic in Get and Set
// branch-free at the tail.
func numBlocks(capacity int, bits uint) int {
	return capacity*int(bits)/64 + 1
}

// Len returns the number of values the array holds.
func (a *Array) Len() int { return a.length }

// Bits returns the configured bit width per value.
func (a *Array) Bits() uint { return a.bits }

// Get returns the value at the given index. The index must be within
// [0, Len); out-of-bounds access is a programming error and panics, matching
// slice semantics.
func (a *Array) Get(index int) uint64 {
	if index < 0 || index >= a.length {
		panic(fmt.Sprintf("bitpack: index %d out of bounds for length %d", index, a.length))
	}
	bits := int(a.bits)
	startBlock := index * bits / 64
	startOffset := index * bits % 64

	// Value contained in a single block.
	if startOffset+bits <= 64 {
		return a.blocks[startBlock] >> (64 - startOffset - bits) & a.mask
	}

	endBlock := (index + 1) * bits / 64
	endOffset := (index + 1) * bits % 64

	high := a.blocks[startBlock] << endOffset
	low := a.blocks[endBlock] >> (64 - endOffset)
	return (high | low) & a.mask
}

// Set stores value at the given index. The value must fit in the configured
// width and the index must be within [0, Len); violations return
// ErrValueOutOfRange and ErrIndexOutOfBounds respectively, leaving the array
// unchanged.
func (a *Array) Set(index int, value uint64) error {
	if index < 0 || index >= a.length {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, index, a.length)
	}
	if value&^a.mask != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", ErrValueOutOfRange, value, a.bits)
	}
	bits := int(a.bits)
	startBlock := index * bits / 64
	startOffset := index * bits % 64

	// Value contained in a single block.
	if startOffset+bits <= 64 {
		shift := uint(64 - startOffset - bits)
		a.blocks[startBlock] &^= a.mask << shift
		a.blocks[startBlock] |= value << shift
		return nil
	}

	endBlock := (index + 1) * bits / 64
	endOffset := uint((index + 1) * bits % 64)

	a.blocks[startBlock] &^= a.mask >> endOffset
	a.blocks[startBlock] |= value >> endOffset

	a.blocks[endBlock] &^= a.mask << (64 - endOffset)
	a.blocks[endBlock] |= value << (64 - endOffset)
	return nil
}

// Clear zeroes every value in the array.
func (a *Array) Clear() {
	for i := range a.blocks {
		a.blocks[i] = 0
	}
}
