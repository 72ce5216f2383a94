package analysis

import (
	"math"
	"sort"

	"drill-eda/core/reconcile"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the present values of one numeric column.
// Statistics that cannot be computed (no values, or std of a single value) are missing.
type Summary struct {
	Column string          `json:"column"`
	Count  int             `json:"count"`
	Mean   reconcile.Value `json:"mean"`
	Std    reconcile.Value `json:"std"`
	Min    reconcile.Value `json:"min"`
	Q25    reconcile.Value `json:"25%"`
	Q50    reconcile.Value `json:"50%"`
	Q75    reconcile.Value `json:"75%"`
	Max    reconcile.Value `json:"max"`
}

// Description is the per-column summary of the rows of one rock class.
type Description struct {
	Rock    string    `json:"rock"`
	Rows    int       `json:"rows"`
	Columns []Summary `json:"columns"`
}

// Describe summarises FROM, TO and every assay column over the rows whose rock
// equals rock. An unknown rock yields zero rows and all-missing statistics.
func Describe(t *reconcile.MergedTable, rock string) (*Description, error) {
	if t == nil {
		return nil, reconcile.ErrStateNotReady
	}

	var rows []int
	for i := 0; i < t.Len(); i++ {
		if r, ok := t.Text(i, reconcile.ColRock); ok && r == rock {
			rows = append(rows, i)
		}
	}

	columns := append([]string{reconcile.ColFrom, reconcile.ColTo}, t.AssayColumns()...)
	desc := &Description{Rock: rock, Rows: len(rows), Columns: make([]Summary, 0, len(columns))}
	for _, col := range columns {
		desc.Columns = append(desc.Columns, Summarize(col, validValues(t, col, rows)))
	}
	return desc, nil
}

// Summarize computes count, mean, sample standard deviation, min, quartiles
// and max of xs. xs is not modified.
func Summarize(column string, xs []float64) Summary {
	s := Summary{Column: column, Count: len(xs)}
	if len(xs) == 0 {
		return s
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	s.Mean = reconcile.Some(mean)
	if len(sorted) > 1 && !math.IsNaN(std) {
		s.Std = reconcile.Some(std)
	}
	s.Min = reconcile.Some(floats.Min(sorted))
	s.Max = reconcile.Some(floats.Max(sorted))
	s.Q25 = reconcile.Some(quantile(0.25, sorted))
	s.Q50 = reconcile.Some(quantile(0.50, sorted))
	s.Q75 = reconcile.Some(quantile(0.75, sorted))
	return s
}

// quantile interpolates linearly between the closest ranks at h = (n-1)p.
// sorted must be ascending and non-empty.
func quantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
