// Package config provides configuration management for drill-eda.
//
// Service settings come from environment variables (optionally seeded from a
// .env file) through Viper; defaults live in `default` struct tags of each
// section and are registered by reflection so that AutomaticEnv picks them up.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details for database sources and exports
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Reconcile: worker count, result cache TTL, default quality policy, job file
//
// # Jobs
//
// A Job describes one reconciliation: where the lithology and assay tables
// come from, their column mappings, the optional lithology grouping and where
// to export the merged table. Jobs are read from YAML, TOML or JSON files with
// LoadJob, or decoded from JSON request bodies with ParseJob.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	job, err := config.LoadJob(cfg.Reconcile.JobPath)
package config
