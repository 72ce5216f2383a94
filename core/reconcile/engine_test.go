package reconcile

import (
	"context"
	"testing"

	"drill-eda/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLithMapping  = LithologyMapping{HoleID: "HOLEID", From: "FROM", To: "TO", Rock: "LITH"}
	testAssayMapping = AssayMapping{HoleID: "HOLEID", From: "FROM", To: "TO", AssayColumns: []string{"AU", "CU"}}
)

func lithTable(rows ...[]string) *table.Table {
	return table.New("lithology.csv", []string{"HOLEID", "FROM", "TO", "LITH"}, rows)
}

func assayTable(rows ...[]string) *table.Table {
	return table.New("assay.csv", []string{"HOLEID", "FROM", "TO", "AU", "CU"}, rows)
}

// TestReconcile_ContainmentExample joins one lithology interval against two assay intervals.
func TestReconcile_ContainmentExample(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "10", "A"})
	assay := assayTable(
		[]string{"H1", "0", "5", "1.0", ""},
		[]string{"H1", "5", "10", "2.0", ""},
	)

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{})
	require.NoError(t, err)

	rows := res.Table.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, HoleID("H1"), rows[0].Hole)
	assert.Equal(t, 0.0, rows[0].From)
	assert.Equal(t, 5.0, rows[0].To)
	assert.Equal(t, "A", rows[0].Rock)
	assert.Equal(t, Some(1.0), rows[0].Values[0])
	assert.False(t, rows[0].Values[1].Valid)

	assert.Equal(t, 5.0, rows[1].From)
	assert.Equal(t, 10.0, rows[1].To)
	assert.Equal(t, "A", rows[1].Rock)
	assert.Equal(t, Some(2.0), rows[1].Values[0])
}

// TestReconcile_HolePresence checks that a hole appears iff it is in both sources.
func TestReconcile_HolePresence(t *testing.T) {
	lith := lithTable(
		[]string{"H1", "0", "10", "A"},
		[]string{"H2", "0", "10", "B"},
	)
	assay := assayTable(
		[]string{"H1", "0", "10", "1", "2"},
		[]string{"H3", "0", "10", "1", "2"},
	)

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{})
	require.NoError(t, err)

	assert.Equal(t, []HoleID{"H1"}, res.Table.Holes())
	assert.Equal(t, 1, res.Report.Holes)
	assert.Equal(t, []HoleID{"H2"}, res.Report.Diff.MissingInAssay)
	assert.Equal(t, []HoleID{"H3"}, res.Report.Diff.MissingInLithology)
}

// TestReconcile_NoCommonHoles yields an empty table, not an error.
func TestReconcile_NoCommonHoles(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "10", "A"})
	assay := assayTable([]string{"H2", "0", "10", "1", "2"})

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Table.Len())
	assert.Empty(t, res.Table.Holes())
}

// TestReconcile_MissingCoverage keeps rows without a covering assay interval.
func TestReconcile_MissingCoverage(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "20", "A"})
	assay := assayTable([]string{"H1", "5", "10", "3.5", "0.1"})

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{})
	require.NoError(t, err)

	rows := res.Table.Rows()
	require.Len(t, rows, 3)

	for _, i := range []int{0, 2} {
		assert.Equal(t, "A", rows[i].Rock)
		for _, v := range rows[i].Values {
			assert.False(t, v.Valid)
		}
	}
	assert.Equal(t, Some(3.5), rows[1].Values[0])
	assert.Equal(t, Some(0.1), rows[1].Values[1])
}

// TestReconcile_MissingRock leaves the rock unknown below the logged lithology.
func TestReconcile_MissingRock(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "5", "A"})
	assay := assayTable([]string{"H1", "0", "10", "1", "2"})

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{})
	require.NoError(t, err)

	rows := res.Table.Rows()
	require.Len(t, rows, 2)
	assert.True(t, rows[0].HasRock)
	assert.False(t, rows[1].HasRock)
	assert.Equal(t, Some(1.0), rows[1].Values[0])
}

// TestReconcile_BreakpointCount checks strictly increasing breakpoints and row count per hole.
func TestReconcile_BreakpointCount(t *testing.T) {
	lith := lithTable(
		[]string{"H1", "0", "3", "A"},
		[]string{"H1", "3", "7.5", "B"},
		[]string{"H1", "7.5", "12", "C"},
		[]string{"H2", "10", "20", "A"},
	)
	assay := assayTable(
		[]string{"H1", "0", "2", "1", "1"},
		[]string{"H1", "2", "3", "1", "1"},
		[]string{"H1", "3", "9", "1", "1"},
		[]string{"H1", "9", "14", "1", "1"},
		[]string{"H2", "12", "20", "1", "1"},
	)

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{Workers: 2})
	require.NoError(t, err)

	l, _, err := ExtractLithology(lith, testLithMapping)
	require.NoError(t, err)
	a, _, err := ExtractAssay(assay, testAssayMapping)
	require.NoError(t, err)
	bps := Breakpoints(l, a)

	perHole := map[HoleID]int{}
	for _, r := range res.Table.Rows() {
		perHole[r.Hole]++
	}
	for hole, b := range bps {
		for i := 1; i < len(b); i++ {
			assert.Less(t, b[i-1], b[i])
		}
		assert.Equal(t, len(b)-1, perHole[hole], "hole %s", hole)
	}
	assert.Equal(t, []float64{0, 2, 3, 7.5, 9, 12, 14}, bps["H1"])
}

// TestReconcile_Combine runs the lithology merger before the join.
func TestReconcile_Combine(t *testing.T) {
	lith := lithTable(
		[]string{"H1", "0", "5", "SED1"},
		[]string{"H1", "5", "8", "SED2"},
		[]string{"H1", "8", "12", "GRN"},
	)
	assay := assayTable([]string{"H1", "0", "12", "1", "2"})

	opts := Options{
		Combine:  true,
		Grouping: Grouping{{Codes: []string{"SED1", "SED2"}, Target: "SED"}},
	}
	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, opts)
	require.NoError(t, err)

	rows := res.Table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "SED", rows[0].Rock)
	assert.Equal(t, 8.0, rows[0].To)
	assert.Equal(t, "GRN", rows[1].Rock)
	assert.Equal(t, 2, res.Report.CombinedIntervals)
	assert.Len(t, res.Lithology, 2)
}

func TestReconcile_CombineWithoutGrouping(t *testing.T) {
	lith := lithTable(
		[]string{"H1", "0", "5", "SED"},
		[]string{"H1", "5", "8", "SED"},
	)
	assay := assayTable([]string{"H1", "0", "8", "1", "2"})

	res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{Combine: true})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Table.Len(), "same-code neighbours stay apart without a grouping")
	assert.Zero(t, res.Report.CombinedIntervals)
	assert.Len(t, res.Lithology, 2)
}

func TestReconcile_ConfigurationErrors(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "10", "A"})
	assay := assayTable([]string{"H1", "0", "10", "1", "2"})

	tests := []struct {
		name string
		lm   LithologyMapping
		am   AssayMapping
		opts Options
		key  string
	}{
		{
			name: "Missing rock key",
			lm:   LithologyMapping{HoleID: "HOLEID", From: "FROM", To: "TO"},
			am:   testAssayMapping,
			key:  "lithology.rock",
		},
		{
			name: "Unknown assay column",
			lm:   testLithMapping,
			am:   AssayMapping{HoleID: "HOLEID", From: "FROM", To: "TO", AssayColumns: []string{"ZN"}},
			key:  "assay.assay_columns",
		},
		{
			name: "No assay columns",
			lm:   testLithMapping,
			am:   AssayMapping{HoleID: "HOLEID", From: "FROM", To: "TO"},
			key:  "assay.assay_columns",
		},
		{
			name: "Unknown policy",
			lm:   testLithMapping,
			am:   testAssayMapping,
			opts: Options{Policy: "ignore"},
			key:  "quality_policy",
		},
		{
			name: "Duplicated grouping code",
			lm:   testLithMapping,
			am:   testAssayMapping,
			opts: Options{Combine: true, Grouping: Grouping{
				{Codes: []string{"A"}, Target: "X"},
				{Codes: []string{"A"}, Target: "Y"},
			}},
			key: "grouping[1].codes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconcile(context.Background(), lith, assay, tt.lm, tt.am, tt.opts)
			require.Error(t, err)
			var ce *ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.key, ce.Key)
		})
	}
}

func TestReconcile_QualityPolicy(t *testing.T) {
	lith := lithTable(
		[]string{"H1", "0", "10", "A"},
		[]string{"H1", "10", "10", "B"},
		[]string{"H1", "x", "12", "C"},
	)
	assay := assayTable([]string{"H1", "0", "10", "abc", "2"})

	t.Run("Skip", func(t *testing.T) {
		res, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{Policy: PolicySkip})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Table.Len())
		assert.False(t, res.Table.At(0).Values[0].Valid)
		assert.Equal(t, Some(2.0), res.Table.At(0).Values[1])

		kinds := map[IssueKind]int{}
		for _, is := range res.Report.Issues {
			kinds[is.Kind]++
		}
		assert.Equal(t, 1, kinds[IssueEmptyInterval])
		assert.Equal(t, 1, kinds[IssueBadDepth])
		assert.Equal(t, 1, kinds[IssueBadValue])
	})

	t.Run("Reject", func(t *testing.T) {
		_, err := Reconcile(context.Background(), lith, assay, testLithMapping, testAssayMapping, Options{Policy: PolicyReject})
		require.Error(t, err)
		var de *DataQualityError
		require.ErrorAs(t, err, &de)
		assert.Len(t, de.Issues, 2)
		assert.True(t, IsDataQualityError(err))
		assert.Contains(t, err.Error(), "2 invalid rows")
	})
}

func TestReconcile_Cancelled(t *testing.T) {
	lith := lithTable([]string{"H1", "0", "10", "A"})
	assay := assayTable([]string{"H1", "0", "10", "1", "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Reconcile(ctx, lith, assay, testLithMapping, testAssayMapping, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestJoin_ParallelOrdering checks hole order and per-hole ordering with many workers.
func TestJoin_ParallelOrdering(t *testing.T) {
	var lith []LithologyInterval
	var assay []AssayInterval
	holes := []HoleID{"D", "B", "C", "A"}
	for _, h := range holes {
		for d := 0; d < 10; d++ {
			lith = append(lith, LithologyInterval{Hole: h, From: float64(d), To: float64(d + 1), Rock: "R", Seq: len(lith)})
		}
		assay = append(assay, AssayInterval{Hole: h, From: 0, To: 10, Values: []Value{Some(1)}, Seq: len(assay)})
	}

	merged, err := Join(context.Background(), lith, assay, []string{"AU"}, Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, []HoleID{"A", "B", "C", "D"}, merged.Holes())
	rows := merged.Rows()
	require.Len(t, rows, 40)
	for i := 1; i < len(rows); i++ {
		if rows[i].Hole == rows[i-1].Hole {
			assert.Less(t, rows[i-1].From, rows[i].From)
		}
	}
}
