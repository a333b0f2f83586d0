// Package search is the query engine over a sparse suffix array. A peptide
// is located with a bounded binary search that reuses longest-common-prefix
// information between probes, then expanded across the sparseness gap by
// retrying the query with its first characters stripped and verifying the
// stripped prefix against the corpus text. Isoleucine and leucine are merged
// in the index, so exact matching re-verifies their positions after the fact.
package search
