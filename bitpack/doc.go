// Package bitpack implements a fixed-capacity array of fixed-bit-width
// unsigned integers packed into uint64 blocks. It is the storage primitive
// for the compressed suffix array and the packed corpus text: values narrower
// than a machine word are stored back to back in a dense bitstream, cutting
// memory per entry to the minimum width that covers the largest value.
// The package also provides binary serialization of the block payload.
package bitpack
