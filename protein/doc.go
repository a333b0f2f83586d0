// Package protein holds the protein side of the index: database records, the
// concatenated corpus text packed at five bits per character, the mapping
// from suffix offsets back to proteins, and a SQLite-backed metadata store.
package protein
