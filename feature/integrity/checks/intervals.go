package checks

import (
	"math"
	"sort"

	"drill-eda/core/reconcile"
	"drill-eda/core/table"
)

// Segment is a depth range within one hole.
type Segment struct {
	Hole reconcile.HoleID `json:"hole"`
	From float64          `json:"from"`
	To   float64          `json:"to"`
}

// SourceIntervals is the interval quality of one source.
type SourceIntervals struct {
	Source string            `json:"source"`
	Rows   int               `json:"rows"`
	Valid  int               `json:"valid"`
	Issues []reconcile.Issue `json:"issues"`
	// Overlaps are depth ranges covered by more than one interval; the
	// earliest row wins during reconciliation.
	Overlaps []Segment `json:"overlaps"`
	// Gaps are uncovered ranges between consecutive intervals of a hole.
	Gaps []Segment `json:"gaps"`
}

// Clean reports whether the source has no issue, overlap or gap.
func (s SourceIntervals) Clean() bool {
	return len(s.Issues) == 0 && len(s.Overlaps) == 0 && len(s.Gaps) == 0
}

// IntervalReport is the interval quality of both sources.
type IntervalReport struct {
	Lithology SourceIntervals `json:"lithology"`
	Assay     SourceIntervals `json:"assay"`
	Status    string          `json:"status"` // "ok", "issues"
}

// CheckIntervals scans both tables for rows reconciliation would drop or
// treat as missing, and for overlapping or gapped coverage.
func CheckIntervals(lith, assay *table.Table, lm reconcile.LithologyMapping, am reconcile.AssayMapping) (*IntervalReport, error) {
	if err := lm.Validate(lith); err != nil {
		return nil, err
	}
	if err := am.Validate(assay); err != nil {
		return nil, err
	}

	lithIvs, lithIssues, err := reconcile.ExtractLithology(lith, lm)
	if err != nil {
		return nil, err
	}
	assayIvs, assayIssues, err := reconcile.ExtractAssay(assay, am)
	if err != nil {
		return nil, err
	}

	lithSegs := make([]Segment, len(lithIvs))
	for i, iv := range lithIvs {
		lithSegs[i] = Segment{Hole: iv.Hole, From: iv.From, To: iv.To}
	}
	assaySegs := make([]Segment, len(assayIvs))
	for i, iv := range assayIvs {
		assaySegs[i] = Segment{Hole: iv.Hole, From: iv.From, To: iv.To}
	}

	report := &IntervalReport{
		Lithology: sourceIntervals("lithology", lith.Len(), lithSegs, lithIssues),
		Assay:     sourceIntervals("assay", assay.Len(), assaySegs, assayIssues),
		Status:    "ok",
	}
	if !report.Lithology.Clean() || !report.Assay.Clean() {
		report.Status = "issues"
	}
	return report, nil
}

func sourceIntervals(name string, rows int, segs []Segment, issues []reconcile.Issue) SourceIntervals {
	if issues == nil {
		issues = []reconcile.Issue{}
	}
	overlaps, gaps := coverage(segs)
	return SourceIntervals{
		Source:   name,
		Rows:     rows,
		Valid:    len(segs),
		Issues:   issues,
		Overlaps: overlaps,
		Gaps:     gaps,
	}
}

// coverage walks the segments of each hole in depth order, tracking the
// deepest covered point, and reports overlapping and uncovered ranges.
func coverage(segs []Segment) (overlaps, gaps []Segment) {
	overlaps, gaps = []Segment{}, []Segment{}
	sorted := append([]Segment(nil), segs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Hole != sorted[j].Hole {
			return sorted[i].Hole < sorted[j].Hole
		}
		return sorted[i].From < sorted[j].From
	})

	var reach float64
	for i, cur := range sorted {
		if i == 0 || cur.Hole != sorted[i-1].Hole {
			reach = cur.To
			continue
		}
		switch {
		case cur.From < reach:
			overlaps = append(overlaps, Segment{Hole: cur.Hole, From: cur.From, To: math.Min(cur.To, reach)})
		case cur.From > reach:
			gaps = append(gaps, Segment{Hole: cur.Hole, From: reach, To: cur.From})
		}
		reach = math.Max(reach, cur.To)
	}
	return overlaps, gaps
}
