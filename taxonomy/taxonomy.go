package taxonomy

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Taxon is one entry of the taxonomy file.
type Taxon struct {
	ID     uint32
	Name   string
	Rank   string
	Parent uint32
	// Valid taxa take part in aggregation; invalid ones snap to a valid
	// ancestor first.
	Valid bool
}

const noRank = "no rank"

// ReadTaxonomy parses a taxonomy file: one taxon per line with id, name,
// rank, parent id and a validity byte (0x01 or 0x00) separated by tabs.
func ReadTaxonomy(path string) ([]Taxon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var taxa []Taxon
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("taxonomy: line %d: expected 5 tab-separated fields, got %d", line, len(fields))
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: line %d: invalid taxon id %q", line, fields[0])
		}
		parent, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: line %d: invalid parent id %q", line, fields[3])
		}
		taxa = append(taxa, Taxon{
			ID:     uint32(id),
			Name:   fields[1],
			Rank:   fields[2],
			Parent: uint32(parent),
			Valid:  fields[4] == "\x01",
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return taxa, nil
}
