// Package suffarray holds the suffix array representations (raw, bit-packed
// and memory-mapped), the minimal-width compression codec, and the persisted
// index file format that carries the packed corpus text and the array
// together.
package suffarray
