package cmd

import (
	"fmt"

	"drill-eda/core/config"
	"drill-eda/core/database"
	"drill-eda/core/logger"
	"drill-eda/core/storage"
	"drill-eda/feature/drillhole"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what CLI commands share: configuration, logger and backends.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
}

// newApp loads configuration and creates the logger and storage client.
// The database is connected on demand by connectDB.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &app{cfg: cfg, logger: logg, client: client}, nil
}

// jobPath returns the --job flag or the configured job file.
func (a *app) jobPath() string {
	if jobFlag != "" {
		return jobFlag
	}
	return a.cfg.Reconcile.JobPath
}

// loadJob reads the job and connects the database when the job uses one.
func (a *app) loadJob() (*config.Job, error) {
	job, err := config.LoadJob(a.jobPath())
	if err != nil {
		return nil, err
	}
	if usesDatabase(job) {
		if err := a.connectDB(); err != nil {
			return nil, err
		}
	}
	return job, nil
}

func (a *app) connectDB() error {
	if a.db != nil {
		return nil
	}
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}
	a.db = db
	return nil
}

func (a *app) drillhole() *drillhole.Service {
	return drillhole.NewService(a.client, a.cfg.Storage.Bucket, a.logger, a.db, a.cfg.Reconcile)
}

func usesDatabase(job *config.Job) bool {
	if job.Lithology.Kind == config.KindDatabase || job.Assay.Kind == config.KindDatabase {
		return true
	}
	return job.Export != nil && job.Export.Kind == config.KindDatabase
}
