package protein

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/viant/pepdex/annot"
)

// Protein is one record of the input database.
type Protein struct {
	// Accession is the UniProt accession number.
	Accession string
	// TaxonID links the protein to its taxon.
	TaxonID uint32
	// Annotations holds the functional annotations in encoded form.
	Annotations []byte
}

// FunctionalAnnotations decodes the annotations back to their textual form.
func (p *Protein) FunctionalAnnotations() (string, error) {
	return annot.Decode(p.Annotations)
}

// Collection is the protein database held in memory: the records and the
// corpus text their sequences form.
type Collection struct {
	// Text is the raw corpus: the uppercased sequences joined by the
	// separator and closed with the terminator.
	Text []byte
	// Proteins holds the records in corpus order.
	Proteins []Protein
}

// Sequence lines can run long; a multi-megabyte scanner buffer avoids
// bufio.ErrTooLong on real databases.
const maxLineSize = 16 * 1024 * 1024

// ReadDatabase reads a protein database file: one record per line, with
// accession, taxon id, sequence and functional annotations separated by
// tabs. Sequences are uppercased and annotations are stored encoded.
func ReadDatabase(path string) (*Collection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var text []byte
	var proteins []Protein
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("protein: line %d: expected 4 tab-separated fields, got %d", line, len(fields))
		}
		taxonID, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("protein: line %d: invalid taxon id %q", line, fields[1])
		}
		encoded, err := annot.Encode(fields[3])
		if err != nil {
			return nil, fmt.Errorf("protein: line %d: %w", line, err)
		}
		text = append(text, strings.ToUpper(fields[2])...)
		text = append(text, Separator)
		proteins = append(proteins, Protein{
			Accession:   fields[0],
			TaxonID:     uint32(taxonID),
			Annotations: encoded,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(text) > 0 {
		text = text[:len(text)-1]
	}
	text = append(text, Terminator)
	return &Collection{Text: text, Proteins: proteins}, nil
}

// ReadDatabaseText reads only the concatenated corpus text, for construction
// runs that do not need the per-protein metadata.
func ReadDatabaseText(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var text []byte
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("protein: line %d: expected at least 3 tab-separated fields, got %d", line, len(fields))
		}
		text = append(text, strings.ToUpper(fields[2])...)
		text = append(text, Separator)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(text) > 0 {
		text = text[:len(text)-1]
	}
	text = append(text, Terminator)
	return text, nil
}
