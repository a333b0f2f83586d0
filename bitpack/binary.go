package bitpack

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteTo writes the packed block payload to w as little-endian uint64
// blocks. The caller is responsible for recording the value count and bit
// width; the payload alone does not describe itself.
func (a *Array) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 8*1024)
	var written int64
	for start := 0; start < len(a.blocks); {
		n := 0
		for _, block := range a.blocks[start:] {
			if n+8 > len(buf) {
				break
			}
			binary.LittleEndian.PutUint64(buf[n:], block)
			n += 8
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return written, fmt.Errorf("bitpack: write payload: %w", err)
		}
		written += int64(n)
		start += n / 8
	}
	return written, nil
}

// ReadFrom fills the block payload from r. It reads exactly the number of
// bytes the array was allocated for; a short read means the serialized count
// or width does not match the payload and is reported as corruption.
func (a *Array) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 8*len(a.blocks))
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), fmt.Errorf("bitpack: read payload (%d of %d bytes): %w", n, len(buf), err)
	}
	for i := range a.blocks {
		a.blocks[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return int64(n), nil
}

// PayloadSize returns the byte length of the serialized block payload for
// count values of the given width.
func PayloadSize(count int, bits uint) int {
	return 8 * numBlocks(count, bits)
}
