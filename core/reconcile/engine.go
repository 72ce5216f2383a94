package reconcile

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"drill-eda/core/table"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls a reconciliation run.
type Options struct {
	// Combine enables the lithology merger (remap + consecutive merge).
	Combine bool
	// Grouping remaps raw rock codes before merging. Ignored unless Combine is set.
	Grouping Grouping
	// Policy handles rows violating the interval invariants. Empty means PolicySkip.
	Policy QualityPolicy
	// Workers bounds the number of holes joined concurrently. Zero means GOMAXPROCS.
	Workers int
	// Logger receives stage summaries and skipped rows. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks the options before any row is read.
func (o Options) Validate() error {
	if !o.Policy.IsValid() {
		return &ConfigurationError{Key: "quality_policy", Reason: fmt.Sprintf("unknown policy %q (want skip or reject)", o.Policy)}
	}
	if o.Workers < 0 {
		return &ConfigurationError{Key: "workers", Reason: "must not be negative"}
	}
	if o.Combine {
		if _, err := o.Grouping.Lookup(); err != nil {
			return err
		}
	}
	return nil
}

// Report summarises a run.
type Report struct {
	RunID              string        `json:"run_id"`
	LithologyRows      int           `json:"lithology_rows"`
	AssayRows          int           `json:"assay_rows"`
	LithologyIntervals int           `json:"lithology_intervals"`
	AssayIntervals     int           `json:"assay_intervals"`
	CombinedIntervals  int           `json:"combined_intervals,omitempty"`
	Holes              int           `json:"holes"`
	Intervals          int           `json:"intervals"`
	Diff               HoleDiff      `json:"hole_diff"`
	Issues             []Issue       `json:"issues"`
	Duration           time.Duration `json:"duration_ns"`
}

// Result is the outcome of a run.
type Result struct {
	// Table is the merged interval table.
	Table *MergedTable
	// Lithology is the lithology actually joined: filtered to common holes and,
	// when combining, remapped and merged.
	Lithology []LithologyInterval
	// Report summarises the run.
	Report Report
}

// Reconcile runs the full pipeline on two raw tables.
//
// Mappings and options are validated before any processing and reported as
// *ConfigurationError. Rows violating the interval invariants are dropped with
// a warning under PolicySkip and abort the run with *DataQualityError under
// PolicyReject.
func Reconcile(ctx context.Context, lithTable, assayTable *table.Table, lm LithologyMapping, am AssayMapping, opts Options) (*Result, error) {
	start := time.Now()
	log := opts.logger()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := lm.Validate(lithTable); err != nil {
		return nil, err
	}
	if err := am.Validate(assayTable); err != nil {
		return nil, err
	}

	lith, lithIssues, err := ExtractLithology(lithTable, lm)
	if err != nil {
		return nil, err
	}
	assay, assayIssues, err := ExtractAssay(assayTable, am)
	if err != nil {
		return nil, err
	}
	issues := make([]Issue, 0, len(lithIssues)+len(assayIssues))
	issues = append(issues, lithIssues...)
	issues = append(issues, assayIssues...)

	if err := applyPolicy(issues, opts.Policy, log); err != nil {
		return nil, err
	}

	diff := DiffHoles(LithologyHoles(lith), AssayHoles(assay))
	lith, assay, common := CommonHoles(lith, assay)
	log.Debug("Filtered sources to common holes",
		zap.Int("holes", len(common)),
		zap.Int("missing_in_assay", len(diff.MissingInAssay)),
		zap.Int("missing_in_lithology", len(diff.MissingInLithology)),
	)

	report := Report{
		LithologyRows:      lithTable.Len(),
		AssayRows:          assayTable.Len(),
		LithologyIntervals: len(lith),
		AssayIntervals:     len(assay),
		Holes:              len(common),
		Diff:               diff,
		Issues:             issues,
	}

	// Combining needs a grouping; without one the intervals pass through as loaded.
	if opts.Combine && len(opts.Grouping) > 0 {
		lith, err = Merge(lith, opts.Grouping)
		if err != nil {
			return nil, err
		}
		report.CombinedIntervals = len(lith)
		log.Debug("Combined lithology intervals", zap.Int("before", report.LithologyIntervals), zap.Int("after", len(lith)))
	}

	merged, err := Join(ctx, lith, assay, am.AssayColumns, opts)
	if err != nil {
		return nil, err
	}

	report.RunID = merged.RunID()
	report.Intervals = merged.Len()
	report.Duration = time.Since(start)

	log.Info("Reconciliation completed",
		zap.String("run_id", report.RunID),
		zap.Int("holes", report.Holes),
		zap.Int("intervals", report.Intervals),
		zap.Int("issues", len(report.Issues)),
		zap.Duration("duration", report.Duration),
	)

	return &Result{Table: merged, Lithology: lith, Report: report}, nil
}

// applyPolicy logs row-dropping issues under PolicySkip and turns them into a
// DataQualityError under PolicyReject. Value issues are logged only.
func applyPolicy(issues []Issue, policy QualityPolicy, log *zap.Logger) error {
	var dropping []Issue
	for _, is := range issues {
		if is.DropsRow() {
			dropping = append(dropping, is)
		}
	}
	if policy == PolicyReject && len(dropping) > 0 {
		return &DataQualityError{Issues: dropping}
	}
	for _, is := range issues {
		fields := []zap.Field{
			zap.String("source", is.Source),
			zap.Int("row", is.Row),
			zap.String("hole", string(is.Hole)),
			zap.String("kind", string(is.Kind)),
			zap.String("detail", is.Detail),
		}
		if is.DropsRow() {
			log.Warn("Skipping invalid interval", fields...)
		} else {
			log.Warn("Treating unreadable assay value as missing", fields...)
		}
	}
	return nil
}

// Join aligns and joins typed intervals hole by hole. Every hole present in
// either input is processed; callers wanting the common universe filter with
// CommonHoles first. Holes run concurrently on up to opts.Workers goroutines
// and the table lists them in ascending id order.
func Join(ctx context.Context, lith []LithologyInterval, assay []AssayInterval, assayColumns []string, opts Options) (*MergedTable, error) {
	lithByHole, assayByHole, holes := byHole(lith, assay)

	// One slot per hole; each task writes only its own slot.
	slots := make([][]Row, len(holes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, hole := range holes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hl, ha := lithByHole[hole], assayByHole[hole]
			spans := alignHole(hl, ha)
			slots[i] = JoinHole(hole, spans, hl, ha, len(assayColumns))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reconciliation aborted: %w", err)
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	rows := make([]Row, 0, total)
	for _, s := range slots {
		rows = append(rows, s...)
	}

	return newMergedTable(assayColumns, rows), nil
}

// sortedLithology orders intervals by (hole, from), keeping source order on ties.
func sortedLithology(in []LithologyInterval) []LithologyInterval {
	out := append([]LithologyInterval(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hole != out[j].Hole {
			return out[i].Hole < out[j].Hole
		}
		return out[i].From < out[j].From
	})
	return out
}
