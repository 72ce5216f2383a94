package drillhole

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"drill-eda/core/config"
	"drill-eda/core/reconcile"
	"drill-eda/core/storage"
	"drill-eda/core/table"
	"drill-eda/feature/drillhole/analysis"
	"drill-eda/feature/drillhole/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service runs reconciliation jobs and serves analyses of the latest result.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	db       *gorm.DB
	defaults reconcile.Config
	cache    *reconcile.Cache
	latest   atomic.Pointer[reconcile.Result]
	// latestJob names the sources of latest; its database tables are never export targets.
	latestJob atomic.Pointer[config.Job]
}

// NewService creates a new drillhole service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, defaults reconcile.Config) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		logger:   logger,
		db:       db,
		defaults: defaults,
		cache:    reconcile.NewCache(defaults.CacheTTL()),
	}
}

// Source resolves a job location into a table source.
func (s *Service) Source(loc config.Location) (table.Source, error) {
	switch loc.Kind {
	case config.KindFile:
		return table.FileSource{Path: loc.Path}, nil
	case config.KindObject:
		if s.client == nil {
			return nil, fmt.Errorf("%s: no storage client configured", loc)
		}
		return table.ObjectSource{Client: s.client, Bucket: s.bucket, Object: loc.Object}, nil
	case config.KindDatabase:
		if s.db == nil {
			return nil, fmt.Errorf("%s: no database connection", loc)
		}
		return table.DBSource{DB: s.db, Table: loc.Table}, nil
	default:
		return nil, loc.Validate("source")
	}
}

// Confine restricts the file locations of a job received from a client to the
// configured data directory.
func (s *Service) Confine(job *config.Job) error {
	return job.Confine(s.defaults.DataDir)
}

// ConfineLocation is Confine for a single export target.
func (s *Service) ConfineLocation(loc config.Location) (config.Location, error) {
	if err := loc.Validate("export"); err != nil {
		return loc, err
	}
	return loc.Confine("export", s.defaults.DataDir)
}

// LoadTables reads both source tables of a job concurrently.
func (s *Service) LoadTables(ctx context.Context, job *config.Job) (*table.Table, *table.Table, error) {
	lithSrc, err := s.Source(job.Lithology.Location)
	if err != nil {
		return nil, nil, err
	}
	assaySrc, err := s.Source(job.Assay.Location)
	if err != nil {
		return nil, nil, err
	}

	var lith, assay *table.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := lithSrc.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load lithology: %w", err)
		}
		lith = t
		return nil
	})
	g.Go(func() error {
		t, err := assaySrc.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load assay: %w", err)
		}
		assay = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.logger.Debug("Loaded source tables",
		zap.String("lithology", lithSrc.Describe()),
		zap.Int("lithology_rows", lith.Len()),
		zap.String("assay", assaySrc.Describe()),
		zap.Int("assay_rows", assay.Len()),
	)
	return lith, assay, nil
}

// Run validates and executes a job, makes its result the latest one and
// exports it when the job names an export target. Identical jobs within the
// cache TTL reuse the previous result.
func (s *Service) Run(ctx context.Context, job *config.Job) (*models.RunSummary, error) {
	start := time.Now()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	res, hit, err := s.cache.GetOrRun(ctx, job.Fingerprint(), func(ctx context.Context) (*reconcile.Result, error) {
		lith, assay, err := s.LoadTables(ctx, job)
		if err != nil {
			return nil, err
		}
		opts := job.Options(s.defaults)
		opts.Logger = s.logger
		return reconcile.Reconcile(ctx, lith, assay, job.Lithology.Columns, job.Assay.Columns, opts)
	})
	if err != nil {
		return nil, err
	}
	s.latest.Store(res)
	s.latestJob.Store(job)

	if hit {
		s.logger.Info("Reusing cached reconciliation", zap.String("run_id", res.Report.RunID))
	}

	summary := &models.RunSummary{
		RunID:       res.Report.RunID,
		Cached:      hit,
		Report:      res.Report,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	if job.Export != nil {
		exp, err := s.Export(ctx, res.Table, *job.Export)
		if err != nil {
			return nil, err
		}
		summary.Export = exp
	}

	summary.ExecutionTime = time.Since(start).String()
	return summary, nil
}

// Latest returns the result of the most recent successful run.
func (s *Service) Latest() (*reconcile.Result, error) {
	res := s.latest.Load()
	if res == nil {
		return nil, reconcile.ErrStateNotReady
	}
	return res, nil
}

// Table returns the merged table of the most recent successful run.
func (s *Service) Table() (*reconcile.MergedTable, error) {
	res, err := s.Latest()
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// InvalidateCache drops every cached result, forcing the next run to reload its sources.
func (s *Service) InvalidateCache() {
	s.cache.Purge()
}

// OreWaste splits the latest table's rock classes by mean grade.
func (s *Service) OreWaste(grade string, cutoff float64) (*analysis.OreWasteSplit, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return analysis.OreWaste(t, grade, cutoff)
}

// Filter returns the rows of the latest table matching f.
func (s *Service) Filter(f analysis.Filters) (*reconcile.MergedTable, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return analysis.Filter(t, f)
}

// Describe summarises the latest table's rows of one rock class.
func (s *Service) Describe(rock string) (*analysis.Description, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return analysis.Describe(t, rock)
}

// Histogram bins one numeric column of the latest table.
func (s *Service) Histogram(column string, opts analysis.HistogramOptions) (*analysis.HistogramResult, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return analysis.Histogram(t, column, opts)
}
