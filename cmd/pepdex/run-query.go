package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/viant/pepdex/index"
	"github.com/viant/pepdex/search"
	"github.com/viant/pepdex/taxonomy"
)

// queryOutput extends a search result with the consensus taxon when a
// taxonomy is supplied.
type queryOutput struct {
	search.Result
	ConsensusTaxon *uint32 `json:"consensus_taxon,omitempty"`
}

func runQuery(c *cli.Context) error {
	indexPath := c.String("index")
	storePath := c.String("store")
	if indexPath == "" || storePath == "" {
		return fmt.Errorf("query: the index and store files are required")
	}

	opened, err := index.Open(indexPath, storePath, index.Options{Mapped: c.Bool("mapped")})
	if err != nil {
		return err
	}
	defer opened.Close()

	var aggregator *taxonomy.Aggregator
	if taxonomyPath := c.String("taxonomy"); taxonomyPath != "" {
		if aggregator, err = taxonomy.AggregatorFromFile(taxonomyPath, taxonomy.Method(c.String("method"))); err != nil {
			return err
		}
	}

	peptides, err := readPeptides(c.String("peptides"))
	if err != nil {
		return err
	}

	results, err := opened.SearchAllPeptides(peptides, c.Int("cutoff"), c.Bool("equate-il"), c.Bool("tryptic"))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(c.App.Writer)
	for _, result := range results {
		output := queryOutput{Result: result}
		if aggregator != nil {
			id, ok, err := search.AggregateTaxa(aggregator, result.Proteins)
			if err != nil {
				return err
			}
			if ok {
				output.ConsensusTaxon = &id
			}
		}
		if err := encoder.Encode(output); err != nil {
			return err
		}
	}
	return nil
}

// readPeptides reads one peptide per line, skipping blank lines. The file
// name "-" reads standard input.
func readPeptides(path string) ([]string, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var peptides []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			peptides = append(peptides, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return peptides, nil
}
