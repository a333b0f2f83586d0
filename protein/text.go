package protein

import (
	"fmt"
	"io"

	"github.com/viant/pepdex/bitpack"
)

// BitsPerChar is the packed width of one corpus character.
const BitsPerChar = 5

// AlphabetSize bounds the character ranks: '$', '-' and 'A'..'Z'.
const AlphabetSize = 28

// Separator joins consecutive protein sequences in the corpus text.
const Separator byte = '-'

// Terminator closes the corpus text. It sorts before every other character,
// which keeps padded multi-character comparisons during construction
// consistent with true suffix order.
const Terminator byte = '$'

// Rank maps a corpus character onto its 5-bit code. The mapping preserves
// byte order: '$' < '-' < 'A' < ... < 'Z'.
func Rank(c byte) (uint8, error) {
	switch {
	case c == Terminator:
		return 0, nil
	case c == Separator:
		return 1, nil
	case c >= 'A' && c <= 'Z':
		return 2 + c - 'A', nil
	default:
		return 0, fmt.Errorf("protein: character %q outside the corpus alphabet", c)
	}
}

func charOf(rank uint64) byte {
	switch rank {
	case 0:
		return Terminator
	case 1:
		return Separator
	default:
		return byte('A' + rank - 2)
	}
}

// Text is the concatenated corpus held at five bits per character. It is
// immutable once built and safe for concurrent readers.
type Text struct {
	array  *bitpack.Array
	length int
}

// NewText packs a raw corpus into a Text.
func NewText(text []byte) (*Text, error) {
	array, err := bitpack.New(len(text), BitsPerChar)
	if err != nil {
		return nil, err
	}
	for i, c := range text {
		rank, err := Rank(c)
		if err != nil {
			return nil, fmt.Errorf("protein: position %d: %w", i, err)
		}
		if err := array.Set(i, uint64(rank)); err != nil {
			return nil, err
		}
	}
	return &Text{array: array, length: len(text)}, nil
}

// Len returns the number of characters in the text.
func (t *Text) Len() int { return t.length }

// Get returns the character at index. It panics when index is out of range.
func (t *Text) Get(index int) byte {
	if index >= t.length {
		panic(fmt.Sprintf("protein: text index %d out of range [0, %d)", index, t.length))
	}
	return charOf(t.array.Get(index))
}

// WriteTo writes the packed payload to w.
func (t *Text) WriteTo(w io.Writer) (int64, error) { return t.array.WriteTo(w) }

// ReadTextFrom reads the packed payload of a text of the given length from r.
func ReadTextFrom(r io.Reader, length int) (*Text, error) {
	if length < 0 {
		return nil, fmt.Errorf("protein: negative text length %d", length)
	}
	array, err := bitpack.New(length, BitsPerChar)
	if err != nil {
		return nil, err
	}
	if _, err := array.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Text{array: array, length: length}, nil
}
