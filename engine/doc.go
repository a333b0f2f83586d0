// Package engine opens the SQLite databases holding protein metadata,
// registering the pure-Go modernc.org/sqlite driver, and installs the SQL
// scalar functions that make the encoded annotation column inspectable.
// It keeps a thin surface so the store, the virtual table and the CLI all
// share the same driver instance.
package engine
