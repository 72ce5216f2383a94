package reconcile

import "sort"

// byHole splits both sources by hole and returns every hole present in
// either, ascending.
func byHole(lith []LithologyInterval, assay []AssayInterval) (map[HoleID][]LithologyInterval, map[HoleID][]AssayInterval, []HoleID) {
	lithByHole := make(map[HoleID][]LithologyInterval)
	for _, iv := range lith {
		lithByHole[iv.Hole] = append(lithByHole[iv.Hole], iv)
	}
	assayByHole := make(map[HoleID][]AssayInterval)
	for _, iv := range assay {
		assayByHole[iv.Hole] = append(assayByHole[iv.Hole], iv)
	}

	holeSet := make(HoleSet, len(lithByHole))
	for h := range lithByHole {
		holeSet[h] = struct{}{}
	}
	for h := range assayByHole {
		holeSet[h] = struct{}{}
	}
	return lithByHole, assayByHole, holeSet.Sorted()
}

// Breakpoints returns, per hole, the ascending de-duplicated union of every
// From and To of both sources.
func Breakpoints(lith []LithologyInterval, assay []AssayInterval) map[HoleID][]float64 {
	lithByHole, assayByHole, holes := byHole(lith, assay)
	out := make(map[HoleID][]float64, len(holes))
	for _, h := range holes {
		out[h] = holeBreakpoints(lithByHole[h], assayByHole[h])
	}
	return out
}

// holeBreakpoints is Breakpoints for the intervals of a single hole.
func holeBreakpoints(lith []LithologyInterval, assay []AssayInterval) []float64 {
	depths := make([]float64, 0, 2*(len(lith)+len(assay)))
	for _, iv := range lith {
		depths = append(depths, iv.From, iv.To)
	}
	for _, iv := range assay {
		depths = append(depths, iv.From, iv.To)
	}
	return dedupeSorted(depths)
}

// dedupeSorted sorts depths in place and drops exact duplicates.
func dedupeSorted(depths []float64) []float64 {
	if len(depths) == 0 {
		return depths
	}
	sort.Float64s(depths)
	out := depths[:1]
	for _, d := range depths[1:] {
		if d != out[len(out)-1] {
			out = append(out, d)
		}
	}
	return out
}

// Spans pairs consecutive breakpoints. The last breakpoint has no successor
// and never starts a span; fewer than two breakpoints yield no spans.
func Spans(breakpoints []float64) []Span {
	if len(breakpoints) < 2 {
		return nil
	}
	spans := make([]Span, len(breakpoints)-1)
	for i := range spans {
		spans[i] = Span{From: breakpoints[i], To: breakpoints[i+1]}
	}
	return spans
}

// Align returns the output interval skeletons of every hole.
func Align(lith []LithologyInterval, assay []AssayInterval) map[HoleID][]Span {
	lithByHole, assayByHole, holes := byHole(lith, assay)
	out := make(map[HoleID][]Span, len(holes))
	for _, h := range holes {
		out[h] = alignHole(lithByHole[h], assayByHole[h])
	}
	return out
}

// alignHole returns the skeleton of a single hole. Align and Join both build
// their spans here.
func alignHole(lith []LithologyInterval, assay []AssayInterval) []Span {
	return Spans(holeBreakpoints(lith, assay))
}
