// Package annot implements a compact binary codec for functional-annotation
// strings: semicolon-delimited cross-reference tokens with EC, GO and IPR
// category prefixes. Every record is encoded and decoded independently, with
// no shared dictionary, so any single database record can be decoded without
// loading anything else. The encoding groups tokens by category, drops the
// category prefixes, and packs the remaining characters two per byte, which
// bounds the output at half the input size for well-formed records.
//
// Decoding produces the canonical form: tokens grouped EC, GO, IPR in that
// order, each category keeping the order its tokens were encoded in.
package annot
