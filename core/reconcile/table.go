package reconcile

import (
	"encoding/json"
	"strings"
	"time"

	"drill-eda/core/utils"

	"github.com/google/uuid"
)

// Fixed merged table columns. Assay columns follow in declared order.
const (
	ColID   = "ID"
	ColFrom = "FROM"
	ColTo   = "TO"
	ColRock = "ROCK"
)

// Columns returns the merged table column contract for the given assay columns.
func Columns(assayColumns []string) []string {
	cols := make([]string, 0, 4+len(assayColumns))
	cols = append(cols, ColID, ColFrom, ColTo, ColRock)
	return append(cols, assayColumns...)
}

func reserved(column string) bool {
	switch strings.ToUpper(column) {
	case ColID, ColFrom, ColTo, ColRock:
		return true
	default:
		return false
	}
}

// Row is one output interval of the merged table.
type Row struct {
	Hole HoleID
	From float64
	To   float64
	// Rock is meaningful only when HasRock is set.
	Rock    string
	HasRock bool
	// Values follow the table's assay columns.
	Values []Value
}

func (r Row) clone() Row {
	r.Values = append([]Value(nil), r.Values...)
	return r
}

// ColumnKind tells categorical and numeric merged table columns apart.
type ColumnKind int

const (
	// KindText columns are ID and ROCK.
	KindText ColumnKind = iota
	// KindNumber columns are FROM, TO and every assay column.
	KindNumber
)

// MergedTable is the immutable result of a reconciliation run: one row per
// output interval, grouped by hole in ascending hole order, rows of a hole
// sorted by From. Accessors return copies; derived tables are new values.
type MergedTable struct {
	runID        string
	createdAt    time.Time
	assayColumns []string
	assayIndex   map[string]int
	rows         []Row
}

// NewMergedTable builds a table from copies of the given rows.
func NewMergedTable(assayColumns []string, rows []Row) *MergedTable {
	owned := make([]Row, len(rows))
	for i, r := range rows {
		owned[i] = r.clone()
	}
	return newMergedTable(assayColumns, owned)
}

// newMergedTable takes ownership of rows.
func newMergedTable(assayColumns []string, rows []Row) *MergedTable {
	cols := append([]string(nil), assayColumns...)
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &MergedTable{
		runID:        uuid.NewString(),
		createdAt:    time.Now().UTC(),
		assayColumns: cols,
		assayIndex:   index,
		rows:         rows,
	}
}

// RunID identifies the run that produced the table.
func (t *MergedTable) RunID() string { return t.runID }

// CreatedAt is the production time of the table.
func (t *MergedTable) CreatedAt() time.Time { return t.createdAt }

// Len returns the number of rows.
func (t *MergedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the full column contract: ID, FROM, TO, ROCK, assay columns.
func (t *MergedTable) Columns() []string {
	return Columns(t.assayColumns)
}

// AssayColumns returns the assay columns in declared order.
func (t *MergedTable) AssayColumns() []string {
	return append([]string(nil), t.assayColumns...)
}

// At returns a copy of row i.
func (t *MergedTable) At(i int) Row {
	return t.rows[i].clone()
}

// Rows returns a copy of every row.
func (t *MergedTable) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.clone()
	}
	return out
}

// Holes returns the distinct hole ids in table order.
func (t *MergedTable) Holes() []HoleID {
	var out []HoleID
	for i, r := range t.rows {
		if i == 0 || r.Hole != t.rows[i-1].Hole {
			out = append(out, r.Hole)
		}
	}
	return out
}

// Kind returns the kind of a column, or false if the table has no such column.
func (t *MergedTable) Kind(column string) (ColumnKind, bool) {
	switch column {
	case ColID, ColRock:
		return KindText, true
	case ColFrom, ColTo:
		return KindNumber, true
	}
	if _, ok := t.assayIndex[column]; ok {
		return KindNumber, true
	}
	return 0, false
}

// Number returns a numeric cell of row i. Unknown or text columns read as missing.
func (t *MergedTable) Number(i int, column string) Value {
	r := &t.rows[i]
	switch column {
	case ColFrom:
		return Some(r.From)
	case ColTo:
		return Some(r.To)
	}
	if idx, ok := t.assayIndex[column]; ok {
		return r.Values[idx]
	}
	return Missing
}

// Text returns a categorical cell of row i. A row without rock reads as absent.
func (t *MergedTable) Text(i int, column string) (string, bool) {
	r := &t.rows[i]
	switch column {
	case ColID:
		return string(r.Hole), true
	case ColRock:
		return r.Rock, r.HasRock
	}
	return "", false
}

// Where returns a new table holding the rows for which keep returns true.
// The run id and creation time are carried over.
func (t *MergedTable) Where(keep func(i int) bool) *MergedTable {
	var rows []Row
	for i := range t.rows {
		if keep(i) {
			rows = append(rows, t.rows[i].clone())
		}
	}
	derived := newMergedTable(t.assayColumns, rows)
	derived.runID = t.runID
	derived.createdAt = t.createdAt
	return derived
}

// Records renders the rows as strings in column order; missing cells are empty.
func (t *MergedTable) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rec := make([]string, 0, 4+len(r.Values))
		rec = append(rec, string(r.Hole), utils.FormatFloat(r.From), utils.FormatFloat(r.To))
		if r.HasRock {
			rec = append(rec, r.Rock)
		} else {
			rec = append(rec, "")
		}
		for _, v := range r.Values {
			if v.Valid {
				rec = append(rec, utils.FormatFloat(v.Float))
			} else {
				rec = append(rec, "")
			}
		}
		out[i] = rec
	}
	return out
}

type tableJSON struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Columns   []string        `json:"columns"`
	Rows      [][]interface{} `json:"rows"`
}

// MarshalJSON encodes the table as a column header plus positional rows.
// Unknown rocks and missing values are null.
func (t *MergedTable) MarshalJSON() ([]byte, error) {
	rows := make([][]interface{}, len(t.rows))
	for i, r := range t.rows {
		rec := make([]interface{}, 0, 4+len(r.Values))
		rec = append(rec, r.Hole, r.From, r.To)
		if r.HasRock {
			rec = append(rec, r.Rock)
		} else {
			rec = append(rec, nil)
		}
		for _, v := range r.Values {
			rec = append(rec, v)
		}
		rows[i] = rec
	}
	return json.Marshal(tableJSON{
		RunID:     t.runID,
		CreatedAt: t.createdAt,
		Columns:   t.Columns(),
		Rows:      rows,
	})
}
