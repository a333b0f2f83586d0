// Package builder constructs (sparse) generalized suffix arrays over the
// concatenated protein corpus. Suffix sorting is delegated to one of two
// interchangeable backends behind the Sorter interface; sparsification runs
// in two stages so the dense suffix array is never materialized when a
// sparseness factor above one is requested.
package builder
