package search

import (
	"runtime"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/taxonomy"
)

// ProteinInfo is everything reported about one matched protein.
type ProteinInfo struct {
	Taxon                 uint32 `json:"taxon"`
	Accession             string `json:"uniprot_accession"`
	FunctionalAnnotations string `json:"functional_annotations"`
}

// Result is the outcome of searching one peptide.
type Result struct {
	Sequence   string        `json:"sequence"`
	Proteins   []ProteinInfo `json:"proteins"`
	CutoffUsed bool          `json:"cutoff_used"`
}

// SearchProteinsForPeptide searches one peptide and returns the matching
// protein records. The peptide is trimmed and uppercased first; peptides
// shorter than the sparseness factor are unsearchable and report ok false,
// as does a peptide without matches. capped is true when the match cutoff
// stopped the search.
func (s *Searcher) SearchProteinsForPeptide(peptide string, cutoff int, equateIL, tryptic bool) (proteins []*protein.Protein, capped, ok bool) {
	peptide = strings.ToUpper(strings.TrimRight(peptide, " \t\r\n"))
	if len(peptide) < int(s.sa.SampleRate()) {
		return nil, false, false
	}

	matches := s.SearchMatchingSuffixes([]byte(peptide), cutoff, equateIL, tryptic)
	if len(matches.Suffixes) == 0 {
		return nil, false, false
	}
	return s.RetrieveProteins(matches.Suffixes), matches.Capped, true
}

// SearchPeptide searches one peptide and assembles the reportable result,
// decoding the functional annotations of every matched protein. A nil
// result means the peptide is unsearchable or has no matches.
func (s *Searcher) SearchPeptide(peptide string, cutoff int, equateIL, tryptic bool) (*Result, error) {
	peptide = strings.ToUpper(strings.TrimRight(peptide, " \t\r\n"))
	proteins, capped, ok := s.SearchProteinsForPeptide(peptide, cutoff, equateIL, tryptic)
	if !ok {
		return nil, nil
	}

	infos := make([]ProteinInfo, 0, len(proteins))
	for _, p := range proteins {
		annotations, err := p.FunctionalAnnotations()
		if err != nil {
			return nil, err
		}
		infos = append(infos, ProteinInfo{
			Taxon:                 p.TaxonID,
			Accession:             p.Accession,
			FunctionalAnnotations: annotations,
		})
	}
	return &Result{Sequence: peptide, Proteins: infos, CutoffUsed: capped}, nil
}

// SearchAllPeptides searches a batch of peptides concurrently against the
// shared index, fanning out over the available CPUs. Results keep the input
// order; unsearchable and unmatched peptides are dropped.
func (s *Searcher) SearchAllPeptides(peptides []string, cutoff int, equateIL, tryptic bool) ([]Result, error) {
	results := make([]*Result, len(peptides))
	errs := make([]error, len(peptides))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(peptides) {
		workers = len(peptides)
	}
	indexes := make(chan int)
	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i], errs[i] = s.SearchPeptide(peptides[i], cutoff, equateIL, tryptic)
			}
		}()
	}
	for i := range peptides {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	var collected []Result
	for i, result := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if result != nil {
			collected = append(collected, *result)
		}
	}
	return collected, nil
}

// AggregateTaxa reduces the taxa of one result's proteins to a consensus
// taxon. Taxa absent from the taxonomy are ignored; the rest are snapped to
// their closest valid ranked ancestor before aggregation. ok is false when
// no taxon survives.
func AggregateTaxa(aggregator *taxonomy.Aggregator, proteins []ProteinInfo) (id uint32, ok bool, err error) {
	taxa := roaring.New()
	for _, p := range proteins {
		if !aggregator.Exists(p.Taxon) {
			continue
		}
		snapped, err := aggregator.Snap(p.Taxon)
		if err != nil {
			return 0, false, err
		}
		taxa.Add(snapped)
	}
	return aggregator.Aggregate(taxa)
}
