package search

import (
	"github.com/viant/pepdex/protein"
	"github.com/viant/pepdex/suffarray"
)

// boundKind selects which edge of the matching run a binary search homes in
// on.
type boundKind int

const (
	boundMinimum boundKind = iota
	boundMaximum
)

// Matches holds the outcome of a suffix search: the text offsets where the
// query matches, and whether the match cap cut the search short.
type Matches struct {
	// Suffixes are the corpus text offsets of the matches, in discovery
	// order. Empty means no matches.
	Suffixes []int64
	// Capped is true when the search stopped at the match limit; the result
	// is then a sample, not the full match set.
	Capped bool
}

// Searcher answers peptide queries against one loaded index. It is immutable
// after construction and safe for concurrent use.
type Searcher struct {
	sa       suffarray.Array
	text     *protein.Text
	proteins []protein.Protein
	locator  protein.Locator
}

// New builds a Searcher over a suffix array, the corpus text it indexes, the
// protein records in corpus order and a locator mapping text offsets back to
// those records.
func New(sa suffarray.Array, text *protein.Text, proteins []protein.Protein, locator protein.Locator) *Searcher {
	return &Searcher{sa: sa, text: text, proteins: proteins, locator: locator}
}

// NewSparse builds a Searcher with a sparse locator over the text.
func NewSparse(sa suffarray.Array, text *protein.Text, proteins []protein.Protein) *Searcher {
	return New(sa, text, proteins, protein.NewSparseLocator(text))
}

// NewDense builds a Searcher with a dense locator over the text.
func NewDense(sa suffarray.Array, text *protein.Text, proteins []protein.Protein) *Searcher {
	return New(sa, text, proteins, protein.NewDenseLocator(text))
}

// SampleRate returns the sparseness factor of the underlying suffix array.
func (s *Searcher) SampleRate() uint8 { return s.sa.SampleRate() }

// charsMatch reports whether a query character matches a text character
// under the merged I/L alphabet the index was sorted with.
func charsMatch(query, text byte) bool {
	return query == text ||
		(query == 'L' && text == 'I') ||
		(query == 'I' && text == 'L')
}

// normalizeIL maps L onto I, the translation applied to the text before
// suffix sorting. Order comparisons against the index must see the same
// alphabet.
func normalizeIL(c byte) byte {
	if c == 'L' {
		return 'I'
	}
	return c
}

// compare matches query against the suffix starting at the given text
// offset, skipping the first skip characters which are known to match. It
// reports whether the suffix lies at or beyond the searched bound, and how
// far the query matched.
func (s *Searcher) compare(query []byte, suffix int64, skip int, bound boundKind) (bool, int) {
	textIndex := int(suffix) + skip
	queryIndex := skip
	textLen := s.text.Len()

	for queryIndex < len(query) && textIndex < textLen && charsMatch(query[queryIndex], s.text.Get(textIndex)) {
		textIndex++
		queryIndex++
	}

	// The empty query matches everywhere but should never be reported found.
	if len(query) == 0 {
		return false, queryIndex
	}
	if queryIndex == len(query) {
		return true, queryIndex
	}
	if textIndex >= textLen {
		return false, queryIndex
	}
	queryChar := normalizeIL(query[queryIndex])
	textChar := normalizeIL(s.text.Get(textIndex))
	if bound == boundMinimum {
		return queryChar < textChar, queryIndex
	}
	return queryChar > textChar, queryIndex
}

// binarySearchBound finds the minimum or maximum suffix array position whose
// suffix matches the query. The longest common prefix with both window edges
// is carried along so each probe resumes where previous probes already
// matched.
func (s *Searcher) binarySearchBound(bound boundKind, query []byte) (bool, int) {
	left, right := 0, s.sa.Len()
	lcpLeft, lcpRight := 0, 0
	found := false

	for right-left > 1 {
		center := (left + right) / 2
		ok, lcp := s.compare(query, s.sa.Get(center), min(lcpLeft, lcpRight), bound)
		found = found || lcp == len(query)
		if (ok && bound == boundMinimum) || (!ok && bound == boundMaximum) {
			right, lcpRight = center, lcp
		} else {
			left, lcpLeft = center, lcp
		}
	}

	// The loop never probes position 0; a minimum bound can still sit there.
	if right == 1 && left == 0 {
		ok, lcp := s.compare(query, s.sa.Get(0), min(lcpLeft, lcpRight), bound)
		found = found || lcp == len(query)
		if bound == boundMinimum && ok {
			right = 0
		}
	}

	if bound == boundMinimum {
		return found, right
	}
	return found, left
}

// SearchBounds returns the half-open suffix array range [start, end) of the
// suffixes matching the query, with I and L equated. found is false when the
// query does not occur.
func (s *Searcher) SearchBounds(query []byte) (start, end int, found bool) {
	if len(query) == 0 {
		return 0, 0, false
	}
	foundMin, minBound := s.binarySearchBound(boundMinimum, query)
	if !foundMin {
		return 0, 0, false
	}
	_, maxBound := s.binarySearchBound(boundMaximum, query)
	return minBound, maxBound + 1, true
}

// SearchMatchingSuffixes returns the text offsets where the query matches.
// A sparse suffix array only holds every sample-rate-th suffix, so the query
// is searched once per possible skip with its first skip characters stripped,
// and candidates are verified against the stripped prefix. With equateIL set
// I and L match each other; otherwise matches the merged index produced are
// re-checked at the I/L positions of the query. With tryptic set a match
// must start and end at a protein boundary or a tryptic cleavage site.
// maxMatches caps the number of matches processed when positive.
func (s *Searcher) SearchMatchingSuffixes(query []byte, maxMatches int, equateIL, tryptic bool) Matches {
	var suffixes []int64
	var ilLocations []int
	for i, c := range query {
		if c == 'I' || c == 'L' {
			ilLocations = append(ilLocations, i)
		}
	}

	// The skip loop stops at the query length: stripping the whole query
	// leaves nothing to search for.
	for skip := 0; skip < int(s.sa.SampleRate()) && skip <= len(query); skip++ {
		ilStart := 0
		for ilStart < len(ilLocations) && ilLocations[ilStart] < skip {
			ilStart++
		}
		ilCurrent := ilLocations[ilStart:]

		start, end, found := s.SearchBounds(query[skip:])
		if !found {
			continue
		}
		for saIndex := start; saIndex < end; saIndex++ {
			suffix := s.sa.Get(saIndex)
			if suffix < int64(skip) {
				continue
			}
			matchStart := suffix - int64(skip)
			matchEnd := suffix + int64(len(query)-skip)

			if skip > 0 && !s.textEquals(matchStart, query[:skip], equateIL) {
				continue
			}
			if !equateIL && !s.checkILLocations(suffix, skip, ilCurrent, query) {
				continue
			}
			if tryptic &&
				!((s.startOfProtein(matchStart) || s.trypticCut(matchStart)) &&
					(s.endOfProtein(matchEnd) || s.trypticCut(matchEnd))) {
				continue
			}

			suffixes = append(suffixes, matchStart)
			if maxMatches > 0 && len(suffixes) >= maxMatches {
				return Matches{Suffixes: suffixes, Capped: true}
			}
		}
	}
	return Matches{Suffixes: suffixes}
}

// textEquals compares the text starting at offset against slice, character
// by character.
func (s *Searcher) textEquals(offset int64, slice []byte, equateIL bool) bool {
	for i, c := range slice {
		textChar := s.text.Get(int(offset) + i)
		if equateIL {
			if !charsMatch(c, textChar) {
				return false
			}
		} else if c != textChar {
			return false
		}
	}
	return true
}

// checkILLocations verifies that the text matches the query exactly at the
// query's I and L positions. ilLocations indexes into the full query; the
// match in the text starts at suffix, which corresponds to query position
// skip.
func (s *Searcher) checkILLocations(suffix int64, skip int, ilLocations []int, query []byte) bool {
	for _, location := range ilLocations {
		index := location - skip
		if query[location] != s.text.Get(int(suffix)+index) {
			return false
		}
	}
	return true
}

// startOfProtein reports whether the offset is the first character of a
// protein sequence.
func (s *Searcher) startOfProtein(offset int64) bool {
	return offset == 0 || s.text.Get(int(offset)-1) == protein.Separator
}

// endOfProtein reports whether the offset sits just past the last character
// of a protein sequence.
func (s *Searcher) endOfProtein(offset int64) bool {
	c := s.text.Get(int(offset))
	return c == protein.Terminator || c == protein.Separator
}

// trypticCut reports whether the offset is a tryptic cleavage site: the
// preceding residue is K or R and the residue at the offset is not P. Only
// called with offset >= 1; offset 0 is handled by startOfProtein.
func (s *Searcher) trypticCut(offset int64) bool {
	previous := s.text.Get(int(offset) - 1)
	return (previous == 'K' || previous == 'R') && s.text.Get(int(offset)) != 'P'
}

// RetrieveProteins maps matched text offsets to the protein records
// containing them. Offsets on separator positions resolve to no protein and
// are dropped.
func (s *Searcher) RetrieveProteins(suffixes []int64) []*protein.Protein {
	var result []*protein.Protein
	for _, suffix := range suffixes {
		if index, ok := s.locator.Find(suffix); ok {
			result = append(result, &s.proteins[index])
		}
	}
	return result
}
