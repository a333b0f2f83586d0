// Package pepsql exposes peptide search as a SQLite virtual table, so an
// index can be queried next to the protein metadata with plain SQL:
//
//	CREATE VIRTUAL TABLE peptide_search USING peptide_search;
//	SELECT uniprot_accession, taxon FROM peptide_search WHERE peptide MATCH 'VAA';
//
// One row is produced per matched protein.
package pepsql

import (
	"database/sql"
	"fmt"
	"strings"

	"modernc.org/sqlite/vtab"

	"github.com/viant/pepdex/search"
)

// Options control how the virtual table runs its searches.
type Options struct {
	// Cutoff caps the number of processed matches per query when positive.
	Cutoff int
	// EquateIL makes I and L match each other.
	EquateIL bool
	// Tryptic restricts matches to tryptic peptides.
	Tryptic bool
}

// Module is the virtual table module. All tables created from it share one
// searcher.
type Module struct {
	searcher *search.Searcher
	options  Options
}

// Table is one created virtual table.
type Table struct {
	module *Module
}

// Cursor iterates the proteins matched by one query.
type Cursor struct {
	table      *Table
	peptide    string
	cutoffUsed bool
	rows       []search.ProteinInfo
	pos        int
}

// Register installs the peptide_search module on the connection.
func Register(db *sql.DB, searcher *search.Searcher, options Options) error {
	module := &Module{searcher: searcher, options: options}
	if err := vtab.RegisterModule(db, "peptide_search", module); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

func (m *Module) declare(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("peptide_search: need at least 3 args")
	}
	schema := fmt.Sprintf(
		"CREATE TABLE %s(peptide TEXT, uniprot_accession TEXT, taxon INTEGER, functional_annotations TEXT, cutoff_used INTEGER)",
		args[2])
	if err := ctx.Declare(schema); err != nil {
		return nil, err
	}
	return &Table{module: m}, nil
}

func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.declare(ctx, args)
}

func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.declare(ctx, args)
}

// BestIndex routes a MATCH constraint on the peptide column into Filter.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			info.IdxNum = 1
			break
		}
	}
	return nil
}

func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }
func (t *Table) Disconnect() error          { return nil }
func (t *Table) Destroy() error             { return nil }

func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	c.rows = nil
	c.pos = 0
	c.peptide = ""
	c.cutoffUsed = false
	if idxNum != 1 || len(vals) == 0 || vals[0] == nil {
		return nil
	}
	peptide, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("peptide_search: MATCH expects the peptide as TEXT")
	}

	options := c.table.module.options
	result, err := c.table.module.searcher.SearchPeptide(peptide, options.Cutoff, options.EquateIL, options.Tryptic)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	c.peptide = result.Sequence
	c.cutoffUsed = result.CutoffUsed
	c.rows = result.Proteins
	return nil
}

func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("peptide_search: Column out of range")
	}
	row := c.rows[c.pos]
	switch col {
	case 0:
		return c.peptide, nil
	case 1:
		return row.Accession, nil
	case 2:
		return int64(row.Taxon), nil
	case 3:
		return row.FunctionalAnnotations, nil
	case 4:
		if c.cutoffUsed {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return nil, nil
}

func (c *Cursor) Rowid() (int64, error) { return int64(c.pos + 1), nil }

func (c *Cursor) Close() error {
	c.rows = nil
	c.pos = 0
	return nil
}

var (
	_ vtab.Module = (*Module)(nil)
	_ vtab.Table  = (*Table)(nil)
	_ vtab.Cursor = (*Cursor)(nil)
)
