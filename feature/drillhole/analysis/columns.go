package analysis

import (
	"drill-eda/core/reconcile"
)

func numericColumn(t *reconcile.MergedTable, key, column string) error {
	kind, ok := t.Kind(column)
	if !ok {
		return &reconcile.ConfigurationError{Key: key, Column: column, Reason: "does not exist in the merged table"}
	}
	if kind != reconcile.KindNumber {
		return &reconcile.ConfigurationError{Key: key, Column: column, Reason: "is not numeric"}
	}
	return nil
}

func textColumn(t *reconcile.MergedTable, key, column string) error {
	kind, ok := t.Kind(column)
	if !ok {
		return &reconcile.ConfigurationError{Key: key, Column: column, Reason: "does not exist in the merged table"}
	}
	if kind != reconcile.KindText {
		return &reconcile.ConfigurationError{Key: key, Column: column, Reason: "is not categorical"}
	}
	return nil
}

// validValues collects the present values of a numeric column over the selected rows.
func validValues(t *reconcile.MergedTable, column string, rows []int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, i := range rows {
		if v := t.Number(i, column); v.Valid {
			out = append(out, v.Float)
		}
	}
	return out
}

func allRows(t *reconcile.MergedTable) []int {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}
