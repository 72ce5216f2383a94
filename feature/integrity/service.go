package integrity

import (
	"context"

	"drill-eda/core/config"
	"drill-eda/core/reconcile"
	"drill-eda/core/storage"
	"drill-eda/core/table"
	"drill-eda/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sources resolves and loads job sources. *drillhole.Service implements it.
type Sources interface {
	// Confine restricts the file locations of a client-supplied job.
	Confine(job *config.Job) error
	Source(loc config.Location) (table.Source, error)
	LoadTables(ctx context.Context, job *config.Job) (*table.Table, *table.Table, error)
}

// Report combines every integrity check of a job.
type Report struct {
	Sources   []checks.SourceReport  `json:"sources"`
	Holes     *checks.HoleReport     `json:"holes,omitempty"`
	Intervals *checks.IntervalReport `json:"intervals,omitempty"`
	Errors    []string               `json:"errors"`
}

// Service handles integrity checks.
type Service struct {
	sources Sources
	env     checks.Env
	logger  *zap.Logger
	jobPath string
}

// NewService creates a new integrity service. jobPath is the job checked by
// default; it is read on every call so edits apply without a restart.
func NewService(sources Sources, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, jobPath string) *Service {
	return &Service{
		sources: sources,
		env:     checks.Env{Client: client, Bucket: bucket, DB: db},
		logger:  logger,
		jobPath: jobPath,
	}
}

// DefaultJob loads the configured job file.
func (s *Service) DefaultJob() (*config.Job, error) {
	if s.jobPath == "" {
		return nil, &reconcile.ConfigurationError{Key: "reconcile.job_path", Reason: "no job file configured"}
	}
	return config.LoadJob(s.jobPath)
}

// CheckSources verifies that both sources exist and carry the mapped columns.
func (s *Service) CheckSources(ctx context.Context, job *config.Job) ([]checks.SourceReport, error) {
	lithSrc, err := s.sources.Source(job.Lithology.Location)
	if err != nil {
		return nil, err
	}
	assaySrc, err := s.sources.Source(job.Assay.Location)
	if err != nil {
		return nil, err
	}

	lithCols := []string{job.Lithology.Columns.HoleID, job.Lithology.Columns.From, job.Lithology.Columns.To, job.Lithology.Columns.Rock}
	assayCols := append([]string{job.Assay.Columns.HoleID, job.Assay.Columns.From, job.Assay.Columns.To}, job.Assay.Columns.AssayColumns...)

	return []checks.SourceReport{
		checks.CheckSource(ctx, s.env, "lithology", job.Lithology.Location, lithSrc, lithCols),
		checks.CheckSource(ctx, s.env, "assay", job.Assay.Location, assaySrc, assayCols),
	}, nil
}

// CheckHoles compares the hole ids of both sources.
func (s *Service) CheckHoles(ctx context.Context, job *config.Job) (*checks.HoleReport, error) {
	lith, assay, err := s.sources.LoadTables(ctx, job)
	if err != nil {
		return nil, err
	}
	report, err := checks.CheckHoles(lith, assay, job.Lithology.Columns, job.Assay.Columns)
	if err != nil {
		return nil, err
	}
	if report.Status != "ok" {
		s.logger.Warn("Hole ids differ between sources",
			zap.Int("missing_in_assay", len(report.MissingInAssay)),
			zap.Int("missing_in_lithology", len(report.MissingInLithology)),
		)
	}
	return report, nil
}

// CheckIntervals scans both sources for invalid, overlapping and gapped intervals.
func (s *Service) CheckIntervals(ctx context.Context, job *config.Job) (*checks.IntervalReport, error) {
	lith, assay, err := s.sources.LoadTables(ctx, job)
	if err != nil {
		return nil, err
	}
	return checks.CheckIntervals(lith, assay, job.Lithology.Columns, job.Assay.Columns)
}

// CheckAll runs every check, loading the tables once. Failed checks are
// listed in Errors rather than aborting the report.
func (s *Service) CheckAll(ctx context.Context, job *config.Job) *Report {
	report := &Report{Sources: []checks.SourceReport{}, Errors: []string{}}

	if srcs, err := s.CheckSources(ctx, job); err != nil {
		report.Errors = append(report.Errors, "sources: "+err.Error())
	} else {
		report.Sources = srcs
	}

	lith, assay, err := s.sources.LoadTables(ctx, job)
	if err != nil {
		report.Errors = append(report.Errors, "load: "+err.Error())
		return report
	}

	if holes, err := checks.CheckHoles(lith, assay, job.Lithology.Columns, job.Assay.Columns); err != nil {
		report.Errors = append(report.Errors, "holes: "+err.Error())
	} else {
		report.Holes = holes
	}

	if ivs, err := checks.CheckIntervals(lith, assay, job.Lithology.Columns, job.Assay.Columns); err != nil {
		report.Errors = append(report.Errors, "intervals: "+err.Error())
	} else {
		report.Intervals = ivs
	}
	return report
}
