package suffarray

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/viant/pepdex/bitpack"
	"github.com/viant/pepdex/protein"
)

// FormatVersion is the persisted index format written by Dump.
const FormatVersion = 1

// rawWidth marks an uncompressed suffix array payload of plain little-endian
// int64 values.
const rawWidth = 64

// Index is a loaded persisted index: the packed corpus text and the suffix
// array over it. Protein metadata lives in the SQLite database built
// alongside.
type Index struct {
	Text *protein.Text
	SA   Array
}

// Close releases resources held by the suffix array representation, the
// mapping for a memory-mapped index. Loading into memory holds nothing.
func (i *Index) Close() error {
	if closer, ok := i.SA.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Dump writes the packed corpus text and the suffix array to w. With
// compress set, offsets are bit-packed at the minimal width covering the
// text length; otherwise they are written as raw little-endian int64 values,
// the representation OpenMapped can serve in place.
func Dump(text *protein.Text, sa []int64, sampleRate uint8, compress bool, w io.Writer) error {
	if sampleRate < 1 {
		return fmt.Errorf("suffarray: sample rate must be at least 1, got %d", sampleRate)
	}

	if _, err := w.Write([]byte{FormatVersion, protein.BitsPerChar}); err != nil {
		return fmt.Errorf("suffarray: write header: %w", err)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(text.Len()))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("suffarray: write text length: %w", err)
	}
	if _, err := text.WriteTo(w); err != nil {
		return err
	}

	width := uint8(rawWidth)
	if compress {
		width = uint8(BitsNeeded(int64(text.Len())))
	}
	if _, err := w.Write([]byte{width, sampleRate}); err != nil {
		return fmt.Errorf("suffarray: write suffix array header: %w", err)
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(len(sa)))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("suffarray: write suffix array count: %w", err)
	}

	if compress {
		packed, err := NewPacked(sa, uint(width), sampleRate)
		if err != nil {
			return err
		}
		_, err = packed.array.WriteTo(w)
		return err
	}
	return writeRaw(sa, w)
}

func writeRaw(sa []int64, w io.Writer) error {
	buf := make([]byte, 8*1024)
	for start := 0; start < len(sa); {
		n := 0
		for _, offset := range sa[start:] {
			if n+8 > len(buf) {
				break
			}
			binary.LittleEndian.PutUint64(buf[n:], uint64(offset))
			n += 8
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("suffarray: write suffix array payload: %w", err)
		}
		start += n / 8
	}
	return nil
}

// Open reads an index file into memory.
func Open(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(bufio.NewReaderSize(file, 1<<20))
}

// Load reads an index dumped by Dump into memory. Header fields are
// validated against the payload; a short payload is reported as corruption.
func Load(r io.Reader) (*Index, error) {
	text, width, sampleRate, count, err := loadHeader(r)
	if err != nil {
		return nil, err
	}

	if width == rawWidth {
		sa := make([]int64, count)
		buf := make([]byte, 8*1024)
		for start := 0; start < count; {
			n := len(buf)
			if remaining := (count - start) * 8; remaining < n {
				n = remaining
			}
			if _, err := io.ReadFull(r, buf[:n]); err != nil {
				return nil, fmt.Errorf("suffarray: read suffix array payload: %w", err)
			}
			for i := 0; i < n; i += 8 {
				sa[start] = int64(binary.LittleEndian.Uint64(buf[i:]))
				start++
			}
		}
		return &Index{Text: text, SA: NewRaw(sa, sampleRate)}, nil
	}

	array, err := bitpack.New(count, uint(width))
	if err != nil {
		return nil, err
	}
	if _, err := array.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Index{Text: text, SA: &Packed{array: array, rate: sampleRate}}, nil
}

// loadHeader reads and validates everything up to the suffix array payload.
func loadHeader(r io.Reader) (text *protein.Text, width uint8, sampleRate uint8, count int, err error) {
	header := make([]byte, 2)
	if _, err = io.ReadFull(r, header); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: read header: %w", err)
	}
	if header[0] != FormatVersion {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: unsupported format version %d", header[0])
	}
	if header[1] != protein.BitsPerChar {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: unsupported text width %d bits", header[1])
	}

	var buf [8]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: read text length: %w", err)
	}
	textLength := binary.LittleEndian.Uint64(buf[:])
	if textLength > uint64(int(^uint(0)>>1)) {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: text length %d overflows", textLength)
	}
	if text, err = protein.ReadTextFrom(r, int(textLength)); err != nil {
		return nil, 0, 0, 0, err
	}

	if _, err = io.ReadFull(r, header); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: read suffix array header: %w", err)
	}
	width, sampleRate = header[0], header[1]
	if width < 1 || width > rawWidth {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: unsupported bits per value %d", width)
	}
	if sampleRate < 1 {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: invalid sparseness factor %d", sampleRate)
	}
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: read suffix array count: %w", err)
	}
	saCount := binary.LittleEndian.Uint64(buf[:])
	if saCount > uint64(int(^uint(0)>>1))/8 {
		return nil, 0, 0, 0, fmt.Errorf("suffarray: suffix array count %d overflows", saCount)
	}
	return text, width, sampleRate, int(saCount), nil
}
