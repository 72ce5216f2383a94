package analysis

import (
	"fmt"
	"math"
	"sort"

	"drill-eda/core/reconcile"

	"gonum.org/v1/gonum/stat"
)

// RockGrade is the mean grade of one rock class.
type RockGrade struct {
	Rock    string  `json:"rock"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// OreWasteSplit partitions rock classes by mean grade. Both lists are sorted by rock.
type OreWasteSplit struct {
	Grade  string      `json:"grade"`
	Cutoff float64     `json:"cutoff"`
	Ore    []RockGrade `json:"ore"`
	Waste  []RockGrade `json:"waste"`
}

// OreWaste computes the mean of the grade column per rock class. A class whose
// mean is at or above cutoff is ore, otherwise waste. Missing grades and rows
// without rock are ignored; classes without any valid grade are omitted.
func OreWaste(t *reconcile.MergedTable, grade string, cutoff float64) (*OreWasteSplit, error) {
	if t == nil {
		return nil, reconcile.ErrStateNotReady
	}
	if err := numericColumn(t, "grade", grade); err != nil {
		return nil, err
	}
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
		return nil, &reconcile.ConfigurationError{Key: "cutoff", Reason: fmt.Sprintf("must be finite, got %v", cutoff)}
	}

	byRock := make(map[string][]float64)
	for i := 0; i < t.Len(); i++ {
		rock, ok := t.Text(i, reconcile.ColRock)
		if !ok {
			continue
		}
		v := t.Number(i, grade)
		if !v.Valid {
			continue
		}
		byRock[rock] = append(byRock[rock], v.Float)
	}

	rocks := make([]string, 0, len(byRock))
	for r := range byRock {
		rocks = append(rocks, r)
	}
	sort.Strings(rocks)

	split := &OreWasteSplit{
		Grade:  grade,
		Cutoff: cutoff,
		Ore:    []RockGrade{},
		Waste:  []RockGrade{},
	}
	for _, r := range rocks {
		xs := byRock[r]
		rg := RockGrade{Rock: r, Mean: stat.Mean(xs, nil), Samples: len(xs)}
		if rg.Mean >= cutoff {
			split.Ore = append(split.Ore, rg)
		} else {
			split.Waste = append(split.Waste, rg)
		}
	}
	return split, nil
}
