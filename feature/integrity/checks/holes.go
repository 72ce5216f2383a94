package checks

import (
	"drill-eda/core/reconcile"
	"drill-eda/core/table"
)

// HoleReport compares the hole ids of the two sources.
type HoleReport struct {
	LithologyHoles     int                `json:"lithology_holes"`
	AssayHoles         int                `json:"assay_holes"`
	CommonHoles        int                `json:"common_holes"`
	MissingInAssay     []reconcile.HoleID `json:"missing_in_assay"`
	MissingInLithology []reconcile.HoleID `json:"missing_in_lithology"`
	Status             string             `json:"status"` // "ok", "mismatch"
}

// CheckHoles lists hole ids present in one table but not the other. Every
// non-empty hole id cell counts, including rows that reconciliation would drop.
func CheckHoles(lith, assay *table.Table, lm reconcile.LithologyMapping, am reconcile.AssayMapping) (*HoleReport, error) {
	if err := lm.Validate(lith); err != nil {
		return nil, err
	}
	if err := am.Validate(assay); err != nil {
		return nil, err
	}

	lithHoles := holeSet(lith.Distinct(lm.HoleID))
	assayHoles := holeSet(assay.Distinct(am.HoleID))
	diff := reconcile.DiffHoles(lithHoles, assayHoles)

	report := &HoleReport{
		LithologyHoles:     len(lithHoles),
		AssayHoles:         len(assayHoles),
		CommonHoles:        len(reconcile.Intersect(lithHoles, assayHoles)),
		MissingInAssay:     nonNil(diff.MissingInAssay),
		MissingInLithology: nonNil(diff.MissingInLithology),
		Status:             "ok",
	}
	if !diff.Empty() {
		report.Status = "mismatch"
	}
	return report, nil
}

func holeSet(ids []string) reconcile.HoleSet {
	set := make(reconcile.HoleSet, len(ids))
	for _, id := range ids {
		set[reconcile.HoleID(id)] = struct{}{}
	}
	return set
}

func nonNil(ids []reconcile.HoleID) []reconcile.HoleID {
	if ids == nil {
		return []reconcile.HoleID{}
	}
	return ids
}
