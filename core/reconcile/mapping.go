package reconcile

import (
	"drill-eda/core/table"
)

// LithologyMapping names the columns of a lithology table.
type LithologyMapping struct {
	HoleID string `mapstructure:"holeid" json:"holeid"`
	From   string `mapstructure:"from" json:"from"`
	To     string `mapstructure:"to" json:"to"`
	Rock   string `mapstructure:"rock" json:"rock"`
}

// AssayMapping names the columns of an assay table. AssayColumns fixes the
// attribute set and its order in the merged table.
type AssayMapping struct {
	HoleID       string   `mapstructure:"holeid" json:"holeid"`
	From         string   `mapstructure:"from" json:"from"`
	To           string   `mapstructure:"to" json:"to"`
	AssayColumns []string `mapstructure:"assay_columns" json:"assay_columns"`
}

// Validate checks that every key is set and, when t is non-nil, that every
// referenced column exists.
func (m LithologyMapping) Validate(t *table.Table) error {
	return validateColumns(t, "lithology", []mappedColumn{
		{"holeid", m.HoleID},
		{"from", m.From},
		{"to", m.To},
		{"rock", m.Rock},
	})
}

// Validate checks that every key is set and, when t is non-nil, that every
// referenced column exists.
func (m AssayMapping) Validate(t *table.Table) error {
	cols := []mappedColumn{
		{"holeid", m.HoleID},
		{"from", m.From},
		{"to", m.To},
	}
	if len(m.AssayColumns) == 0 {
		return &ConfigurationError{Key: "assay.assay_columns", Reason: "at least one assay column is required"}
	}
	seen := make(map[string]struct{}, len(m.AssayColumns))
	for _, c := range m.AssayColumns {
		if _, dup := seen[c]; dup {
			return &ConfigurationError{Key: "assay.assay_columns", Column: c, Reason: "is listed twice"}
		}
		seen[c] = struct{}{}
		cols = append(cols, mappedColumn{"assay_columns", c})
	}
	return validateColumns(t, "assay", cols)
}

// Columns returns the merged-table column contract for these assay columns.
func (m AssayMapping) Columns() []string {
	return Columns(m.AssayColumns)
}

type mappedColumn struct {
	key    string
	column string
}

func validateColumns(t *table.Table, section string, cols []mappedColumn) error {
	for _, c := range cols {
		if c.column == "" {
			return &ConfigurationError{Key: section + "." + c.key, Reason: "is required"}
		}
		if reserved(c.column) && c.key == "assay_columns" {
			return &ConfigurationError{Key: section + "." + c.key, Column: c.column, Reason: "collides with a merged table column"}
		}
		if t != nil && !t.Has(c.column) {
			return &ConfigurationError{Key: section + "." + c.key, Column: c.column, Reason: "does not exist in " + t.Name}
		}
	}
	return nil
}
