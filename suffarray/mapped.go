package suffarray

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/viant/pepdex/bitpack"
	"github.com/viant/pepdex/protein"
)

// Mapped serves a raw suffix array payload straight from a memory-mapped
// index file, leaving residency decisions to the page cache. Only
// uncompressed payloads (raw int64 values) can be mapped; a bit-packed
// payload must go through Load.
type Mapped struct {
	reader *mmap.ReaderAt
	offset int64
	count  int
	rate   uint8
}

// OpenMapped opens a persisted index, loads the corpus text into memory and
// maps the suffix array payload in place. The caller owns the mapping and
// releases it through Index.Close.
func OpenMapped(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	text, width, sampleRate, count, err := loadHeader(file)
	if err != nil {
		return nil, err
	}
	if width != rawWidth {
		return nil, fmt.Errorf("suffarray: cannot map a compressed suffix array (%d bits per value)", width)
	}

	// Everything before the suffix array payload has a fixed size derived
	// from the text length.
	offset := int64(2 + 8 + bitpack.PayloadSize(text.Len(), protein.BitsPerChar) + 2 + 8)

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	if int64(reader.Len()) < offset+int64(count)*8 {
		reader.Close()
		return nil, fmt.Errorf("suffarray: index file truncated: %d bytes, need %d", reader.Len(), offset+int64(count)*8)
	}
	return &Index{
		Text: text,
		SA:   &Mapped{reader: reader, offset: offset, count: count, rate: sampleRate},
	}, nil
}

func (m *Mapped) Len() int { return m.count }

func (m *Mapped) Get(index int) int64 {
	if index < 0 || index >= m.count {
		panic(fmt.Sprintf("suffarray: index %d out of bounds for length %d", index, m.count))
	}
	var buf [8]byte
	if _, err := m.reader.ReadAt(buf[:], m.offset+int64(index)*8); err != nil {
		panic(fmt.Sprintf("suffarray: mapped read at %d: %v", index, err))
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (m *Mapped) SampleRate() uint8 { return m.rate }

// Close releases the mapping.
func (m *Mapped) Close() error { return m.reader.Close() }

var _ Array = (*Mapped)(nil)
