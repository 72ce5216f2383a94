package reconcile

import (
	"fmt"

	"drill-eda/core/table"
	"drill-eda/core/utils"
)

// depthRow is the shared part of both interval kinds after parsing.
type depthRow struct {
	hole HoleID
	from float64
	to   float64
}

// parseDepthRow reads hole/from/to of row r. A non-nil Issue means the row
// violates the interval invariants.
func parseDepthRow(t *table.Table, r, holeCol, fromCol, toCol int) (depthRow, *Issue) {
	hole := HoleID(t.Cell(r, holeCol))
	row := depthRow{hole: hole}
	issue := func(kind IssueKind, detail string) *Issue {
		return &Issue{Source: t.Name, Row: r, Hole: hole, Kind: kind, Detail: detail}
	}

	if hole == "" {
		return row, issue(IssueMissingHole, "hole id is empty")
	}

	from, ok, err := utils.ToFloat(t.Cell(r, fromCol))
	if err != nil || !ok {
		return row, issue(IssueBadDepth, fmt.Sprintf("from %q is not a depth", t.Cell(r, fromCol)))
	}
	to, ok, err := utils.ToFloat(t.Cell(r, toCol))
	if err != nil || !ok {
		return row, issue(IssueBadDepth, fmt.Sprintf("to %q is not a depth", t.Cell(r, toCol)))
	}
	row.from, row.to = from, to

	if from >= to {
		return row, issue(IssueEmptyInterval, fmt.Sprintf("from %s is not below to %s", utils.FormatFloat(from), utils.FormatFloat(to)))
	}
	return row, nil
}

// ExtractLithology converts a lithology table into intervals.
// Rows violating the interval invariants are returned as issues and left out.
// Seq is the row index in t.
func ExtractLithology(t *table.Table, m LithologyMapping) ([]LithologyInterval, []Issue, error) {
	if err := m.Validate(t); err != nil {
		return nil, nil, err
	}
	holeCol, _ := t.Index(m.HoleID)
	fromCol, _ := t.Index(m.From)
	toCol, _ := t.Index(m.To)
	rockCol, _ := t.Index(m.Rock)

	out := make([]LithologyInterval, 0, t.Len())
	var issues []Issue
	for r := range t.Rows {
		row, issue := parseDepthRow(t, r, holeCol, fromCol, toCol)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		out = append(out, LithologyInterval{
			Hole: row.hole,
			From: row.from,
			To:   row.to,
			Rock: t.Cell(r, rockCol),
			Seq:  r,
		})
	}
	return out, issues, nil
}

// ExtractAssay converts an assay table into intervals.
// Non-numeric assay cells read as missing and are reported as IssueBadValue.
func ExtractAssay(t *table.Table, m AssayMapping) ([]AssayInterval, []Issue, error) {
	if err := m.Validate(t); err != nil {
		return nil, nil, err
	}
	holeCol, _ := t.Index(m.HoleID)
	fromCol, _ := t.Index(m.From)
	toCol, _ := t.Index(m.To)
	valueCols := make([]int, len(m.AssayColumns))
	for i, c := range m.AssayColumns {
		valueCols[i], _ = t.Index(c)
	}

	out := make([]AssayInterval, 0, t.Len())
	var issues []Issue
	for r := range t.Rows {
		row, issue := parseDepthRow(t, r, holeCol, fromCol, toCol)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}

		values := make([]Value, len(valueCols))
		for i, c := range valueCols {
			f, ok, err := utils.ToFloat(t.Cell(r, c))
			if err != nil {
				issues = append(issues, Issue{
					Source: t.Name,
					Row:    r,
					Hole:   row.hole,
					Kind:   IssueBadValue,
					Detail: fmt.Sprintf("%s: %v", m.AssayColumns[i], err),
				})
				continue
			}
			if ok {
				values[i] = Some(f)
			}
		}

		out = append(out, AssayInterval{
			Hole:   row.hole,
			From:   row.from,
			To:     row.to,
			Values: values,
			Seq:    r,
		})
	}
	return out, issues, nil
}
