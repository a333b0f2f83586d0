// Package taxonomy reads the preprocessed NCBI taxonomy and aggregates sets
// of matched taxa to a single consensus taxon, by lowest common ancestor or
// by the LCA* variant that ignores taxa subsumed by more specific ones.
package taxonomy
