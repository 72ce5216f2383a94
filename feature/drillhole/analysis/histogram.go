package analysis

import (
	"fmt"
	"math"
	"sort"

	"drill-eda/core/reconcile"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultBins is the bin count used when none is requested.
	DefaultBins = 20
	// MaxBins bounds the bin count a caller may request.
	MaxBins = 1000
)

// Bin is one histogram class covering [Low, High).
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count float64 `json:"count"`
}

// HistogramResult is the binned distribution of one column.
type HistogramResult struct {
	Column  string `json:"column"`
	Samples int    `json:"samples"`
	Bins    []Bin  `json:"bins"`
}

// HistogramOptions controls binning.
type HistogramOptions struct {
	// Bins is the number of equal-width classes. Zero means DefaultBins.
	Bins int
	// Cap clamps values above it before binning, when set.
	Cap *float64
	// Filters restricts the rows first.
	Filters Filters
}

// Histogram bins the present values of a numeric column into equal-width
// classes spanning the observed range. The last class includes the maximum.
func Histogram(t *reconcile.MergedTable, column string, opts HistogramOptions) (*HistogramResult, error) {
	if t == nil {
		return nil, reconcile.ErrStateNotReady
	}
	if err := numericColumn(t, "column", column); err != nil {
		return nil, err
	}
	bins := opts.Bins
	if bins == 0 {
		bins = DefaultBins
	}
	if bins < 0 {
		return nil, &reconcile.ConfigurationError{Key: "bins", Reason: fmt.Sprintf("must be positive, got %d", bins)}
	}
	if bins > MaxBins {
		return nil, &reconcile.ConfigurationError{Key: "bins", Reason: fmt.Sprintf("must be at most %d, got %d", MaxBins, bins)}
	}

	if !opts.Filters.Empty() {
		filtered, err := Filter(t, opts.Filters)
		if err != nil {
			return nil, err
		}
		t = filtered
	}

	xs := validValues(t, column, allRows(t))
	res := &HistogramResult{Column: column, Samples: len(xs), Bins: []Bin{}}
	if len(xs) == 0 {
		return res, nil
	}
	if opts.Cap != nil {
		for i, x := range xs {
			xs[i] = math.Min(x, *opts.Cap)
		}
	}
	sort.Float64s(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		bins = 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram wants every x strictly below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, xs, nil)
	for i, c := range counts {
		res.Bins = append(res.Bins, Bin{Low: dividers[i], High: dividers[i+1], Count: c})
	}
	return res, nil
}
