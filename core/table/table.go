package table

import (
	"sort"
	"strings"
)

// Table is an in-memory tabular dataset with a header row.
// Rows are expected to have len(Columns) cells; short rows read as empty cells.
type Table struct {
	// Name identifies the table in logs and error messages (file path, object key, table name).
	Name string
	// Columns holds the header in source order.
	Columns []string
	// Rows holds the data rows in source order.
	Rows [][]string
}

// New creates a table from a header and rows.
func New(name string, columns []string, rows [][]string) *Table {
	return &Table{Name: name, Columns: columns, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the named column.
// Matching is exact first, then case-insensitive with surrounding space trimmed.
func (t *Table) Index(column string) (int, bool) {
	if t == nil {
		return -1, false
	}
	for i, c := range t.Columns {
		if c == column {
			return i, true
		}
	}
	want := strings.TrimSpace(column)
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), want) {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether the table carries the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.Index(column)
	return ok
}

// Cell returns the trimmed cell at row r and column index c.
func (t *Table) Cell(r, c int) string {
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c])
}

// Distinct returns the sorted set of non-empty values of a column.
// A missing column yields an empty result.
func (t *Table) Distinct(column string) []string {
	c, ok := t.Index(column)
	if !ok {
		return []string{}
	}
	seen := make(map[string]struct{})
	for r := range t.Rows {
		v := t.Cell(r, c)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
