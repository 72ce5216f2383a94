package analysis

import (
	"fmt"
	"sort"

	"drill-eda/core/reconcile"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Filters is a conjunction of categorical allow-lists and numeric ranges,
// keyed by merged table column.
type Filters struct {
	Categorical map[string][]string `json:"categorical,omitempty" mapstructure:"categorical"`
	Numeric     map[string]Range    `json:"numeric,omitempty" mapstructure:"numeric"`
}

// Empty reports whether no predicate is set.
func (f Filters) Empty() bool {
	return len(f.Categorical) == 0 && len(f.Numeric) == 0
}

// Validate checks every referenced column against the table.
func (f Filters) Validate(t *reconcile.MergedTable) error {
	for _, col := range sortedKeys(f.Categorical) {
		if err := textColumn(t, "filters.categorical", col); err != nil {
			return err
		}
	}
	for _, col := range sortedKeys(f.Numeric) {
		if err := numericColumn(t, "filters.numeric", col); err != nil {
			return err
		}
		if r := f.Numeric[col]; r.Min > r.Max {
			return &reconcile.ConfigurationError{
				Key:    "filters.numeric",
				Column: col,
				Reason: fmt.Sprintf("has min %v above max %v", r.Min, r.Max),
			}
		}
	}
	return nil
}

// Filter returns a new table with the rows satisfying every predicate.
// A row whose value is missing fails that predicate. An empty result is valid.
func Filter(t *reconcile.MergedTable, f Filters) (*reconcile.MergedTable, error) {
	if t == nil {
		return nil, reconcile.ErrStateNotReady
	}
	if err := f.Validate(t); err != nil {
		return nil, err
	}

	allowed := make(map[string]map[string]struct{}, len(f.Categorical))
	for col, values := range f.Categorical {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		allowed[col] = set
	}

	return t.Where(func(i int) bool {
		for col, set := range allowed {
			v, ok := t.Text(i, col)
			if !ok {
				return false
			}
			if _, in := set[v]; !in {
				return false
			}
		}
		for col, r := range f.Numeric {
			v := t.Number(i, col)
			if !v.Valid || !r.Contains(v.Float) {
				return false
			}
		}
		return true
	}), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
