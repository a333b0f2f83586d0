package taxonomy

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Method selects how a set of taxa reduces to one consensus taxon.
type Method string

const (
	// MethodLCA takes the lowest common ancestor of all taxa.
	MethodLCA Method = "lca"
	// MethodLCAStar first drops taxa that are strict ancestors of other
	// taxa in the set, then takes the lowest common ancestor of the rest.
	// A set where one taxon subsumes the others aggregates to the most
	// specific one instead of their shared ancestor.
	MethodLCAStar Method = "lca*"
)

// Aggregator holds the taxonomic tree, the snapping table from arbitrary
// taxa to their closest valid ranked ancestor, and the aggregation method.
// It is immutable after construction and safe for concurrent use.
type Aggregator struct {
	taxa   []*Taxon // indexed by id
	snap   []uint32 // indexed by id, 0 when unsnappable
	method Method
}

// NewAggregator builds an Aggregator from a parsed taxon list.
func NewAggregator(taxa []Taxon, method Method) (*Aggregator, error) {
	if method != MethodLCA && method != MethodLCAStar {
		return nil, fmt.Errorf("taxonomy: unknown aggregation method %q", method)
	}
	maxID := uint32(0)
	for _, t := range taxa {
		if t.ID > maxID {
			maxID = t.ID
		}
		if t.ID == 0 {
			return nil, fmt.Errorf("taxonomy: taxon id 0 is reserved")
		}
	}
	a := &Aggregator{
		taxa:   make([]*Taxon, maxID+1),
		snap:   make([]uint32, maxID+1),
		method: method,
	}
	for i := range taxa {
		t := &taxa[i]
		if a.taxa[t.ID] != nil {
			return nil, fmt.Errorf("taxonomy: duplicate taxon id %d", t.ID)
		}
		a.taxa[t.ID] = t
	}
	for _, t := range taxa {
		target, err := a.snapTarget(t.ID)
		if err != nil {
			return nil, err
		}
		a.snap[t.ID] = target
	}
	return a, nil
}

// AggregatorFromFile reads a taxonomy file and builds an Aggregator over it.
func AggregatorFromFile(path string, method Method) (*Aggregator, error) {
	taxa, err := ReadTaxonomy(path)
	if err != nil {
		return nil, err
	}
	return NewAggregator(taxa, method)
}

// snapTarget walks up from id to the closest ancestor-or-self that is valid
// and ranked; the root (its own parent) is a valid fallback despite carrying
// no rank.
func (a *Aggregator) snapTarget(id uint32) (uint32, error) {
	current := id
	for steps := 0; steps <= len(a.taxa); steps++ {
		t := a.taxon(current)
		if t == nil {
			return 0, fmt.Errorf("taxonomy: taxon %d references unknown ancestor %d", id, current)
		}
		isRoot := t.Parent == current
		if t.Valid && (t.Rank != noRank || isRoot) {
			return current, nil
		}
		if isRoot {
			return 0, fmt.Errorf("taxonomy: taxon %d has no valid ranked ancestor", id)
		}
		current = t.Parent
	}
	return 0, fmt.Errorf("taxonomy: cycle in ancestry of taxon %d", id)
}

func (a *Aggregator) taxon(id uint32) *Taxon {
	if int(id) >= len(a.taxa) {
		return nil
	}
	return a.taxa[id]
}

// Exists reports whether the taxon id appears in the taxonomy.
func (a *Aggregator) Exists(id uint32) bool { return a.taxon(id) != nil }

// Valid reports whether the taxon exists and takes part in aggregation.
func (a *Aggregator) Valid(id uint32) bool {
	t := a.taxon(id)
	return t != nil && t.Valid
}

// Snap returns the closest valid ranked ancestor-or-self of the taxon.
func (a *Aggregator) Snap(id uint32) (uint32, error) {
	if t := a.taxon(id); t == nil || a.snap[id] == 0 {
		return 0, fmt.Errorf("taxonomy: cannot snap taxon %d", id)
	}
	return a.snap[id], nil
}

// lineage returns the path from the root down to id, inclusive.
func (a *Aggregator) lineage(id uint32) ([]uint32, error) {
	var reversed []uint32
	current := id
	for steps := 0; steps <= len(a.taxa); steps++ {
		t := a.taxon(current)
		if t == nil {
			return nil, fmt.Errorf("taxonomy: unknown taxon %d in lineage of %d", current, id)
		}
		reversed = append(reversed, current)
		if t.Parent == current {
			for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
				reversed[i], reversed[j] = reversed[j], reversed[i]
			}
			return reversed, nil
		}
		current = t.Parent
	}
	return nil, fmt.Errorf("taxonomy: cycle in ancestry of taxon %d", id)
}

// Aggregate reduces a set of taxon ids to one consensus taxon according to
// the aggregation method. ok is false when the set is empty.
func (a *Aggregator) Aggregate(taxa *roaring.Bitmap) (id uint32, ok bool, err error) {
	if taxa == nil || taxa.IsEmpty() {
		return 0, false, nil
	}

	lineages := make([][]uint32, 0, taxa.GetCardinality())
	iterator := taxa.Iterator()
	for iterator.HasNext() {
		lineage, err := a.lineage(iterator.Next())
		if err != nil {
			return 0, false, err
		}
		lineages = append(lineages, lineage)
	}

	if a.method == MethodLCAStar {
		lineages = dropAncestors(lineages)
	}

	consensus := lineages[0]
	for _, lineage := range lineages[1:] {
		consensus = commonPrefix(consensus, lineage)
	}
	if len(consensus) == 0 {
		return 0, false, fmt.Errorf("taxonomy: taxa share no common ancestor")
	}
	return consensus[len(consensus)-1], true, nil
}

// dropAncestors removes every lineage whose taxon is a strict ancestor of
// another taxon in the set.
func dropAncestors(lineages [][]uint32) [][]uint32 {
	kept := lineages[:0:0]
	for i, candidate := range lineages {
		subsumed := false
		for j, other := range lineages {
			if i == j || len(candidate) >= len(other) {
				continue
			}
			if other[len(candidate)-1] == candidate[len(candidate)-1] {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func commonPrefix(a, b []uint32) []uint32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
