package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a protein metadata database using the modernc.org/sqlite
// driver.
//
// Pass a file path like "./proteins.sqlite" for the database built alongside
// an index, or ":memory:" for a throwaway one.
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }
