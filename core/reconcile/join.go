package reconcile

import "sort"

// JoinHole attaches rock codes and assay values to the spans of one hole.
//
// spans must be sorted by From. lith and assay must belong to the hole. A span
// starting at x takes its attributes from the source interval with
// From <= x < To; among several candidates the lowest Seq wins. Spans without
// a covering interval keep an unknown rock or all-missing values. Exactly one
// row is returned per span.
func JoinHole(hole HoleID, spans []Span, lith []LithologyInterval, assay []AssayInterval, valueCount int) []Row {
	starts := make([]float64, len(spans))
	for i, s := range spans {
		starts[i] = s.From
	}

	rows := make([]Row, len(spans))
	for i, s := range spans {
		rows[i] = Row{
			Hole:   hole,
			From:   s.From,
			To:     s.To,
			Values: make([]Value, valueCount),
		}
	}

	rockClaimed := make([]bool, len(spans))
	for _, iv := range bySeqLithology(lith) {
		lo, hi := coveredRange(starts, iv.From, iv.To)
		for j := lo; j < hi; j++ {
			if rockClaimed[j] {
				continue
			}
			rockClaimed[j] = true
			rows[j].Rock = iv.Rock
			rows[j].HasRock = true
		}
	}

	valueClaimed := make([]bool, len(spans))
	for _, iv := range bySeqAssay(assay) {
		lo, hi := coveredRange(starts, iv.From, iv.To)
		for j := lo; j < hi; j++ {
			if valueClaimed[j] {
				continue
			}
			valueClaimed[j] = true
			copy(rows[j].Values, iv.Values)
		}
	}

	return rows
}

// coveredRange returns the index range [lo, hi) of starts with from <= start < to.
func coveredRange(starts []float64, from, to float64) (int, int) {
	lo := sort.SearchFloat64s(starts, from)
	hi := sort.SearchFloat64s(starts, to)
	return lo, hi
}

func bySeqLithology(in []LithologyInterval) []LithologyInterval {
	out := make([]LithologyInterval, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func bySeqAssay(in []AssayInterval) []AssayInterval {
	out := make([]AssayInterval, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}
