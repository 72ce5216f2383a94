package reconcile

import "time"

// Config holds service-level defaults for reconciliation runs.
type Config struct {
	// Workers bounds the holes joined concurrently. Zero means GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// CacheTTLSeconds keeps identical job results for this long. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// QualityPolicy is used by jobs that do not set their own (skip, reject).
	QualityPolicy string `mapstructure:"quality_policy" default:"skip"`
	// JobPath is the job file used by the integrity endpoints and CLI defaults.
	JobPath string `mapstructure:"job_path" default:"job.yaml"`
	// DataDir roots file locations received over HTTP. Empty disables them.
	DataDir string `mapstructure:"data_dir" default:"data"`
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
