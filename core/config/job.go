package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"drill-eda/core/reconcile"

	"github.com/spf13/viper"
)

// Location kinds.
const (
	KindFile     = "file"
	KindObject   = "object"
	KindDatabase = "database"
)

// Location points at a table: a local CSV file, a CSV object in the
// configured bucket, or a database table.
type Location struct {
	Kind   string `mapstructure:"kind" json:"kind"`
	Path   string `mapstructure:"path" json:"path,omitempty"`
	Object string `mapstructure:"object" json:"object,omitempty"`
	Table  string `mapstructure:"table" json:"table,omitempty"`
	// Replace allows an export to overwrite an existing database table.
	Replace bool `mapstructure:"replace" json:"replace,omitempty"`
}

// Validate checks that the location names what its kind needs.
func (l Location) Validate(key string) error {
	switch l.Kind {
	case KindFile:
		if l.Path == "" {
			return &reconcile.ConfigurationError{Key: key + ".path", Reason: "is required for file locations"}
		}
	case KindObject:
		if l.Object == "" {
			return &reconcile.ConfigurationError{Key: key + ".object", Reason: "is required for object locations"}
		}
	case KindDatabase:
		if l.Table == "" {
			return &reconcile.ConfigurationError{Key: key + ".table", Reason: "is required for database locations"}
		}
	case "":
		return &reconcile.ConfigurationError{Key: key + ".kind", Reason: "is required (file, object or database)"}
	default:
		return &reconcile.ConfigurationError{Key: key + ".kind", Reason: fmt.Sprintf("unknown kind %q", l.Kind)}
	}
	return nil
}

// String renders the location for logs.
func (l Location) String() string {
	switch l.Kind {
	case KindFile:
		return "file:" + l.Path
	case KindObject:
		return "object:" + l.Object
	case KindDatabase:
		return "database:" + l.Table
	default:
		return l.Kind
	}
}

// Confine resolves a file location against dir. Absolute paths and paths
// escaping dir are rejected; an empty dir rejects every file location.
// Other kinds are returned unchanged.
func (l Location) Confine(key, dir string) (Location, error) {
	if l.Kind != KindFile {
		return l, nil
	}
	if dir == "" {
		return l, &reconcile.ConfigurationError{Key: key + ".path", Reason: "file locations are disabled (no data directory configured)"}
	}
	clean := filepath.Clean(l.Path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return l, &reconcile.ConfigurationError{Key: key + ".path", Reason: fmt.Sprintf("%q must be a relative path inside the data directory", l.Path)}
	}
	l.Path = filepath.Join(dir, clean)
	return l, nil
}

// LithologySource locates the lithology table and maps its columns.
type LithologySource struct {
	Location `mapstructure:",squash"`
	Columns  reconcile.LithologyMapping `mapstructure:"columns" json:"columns"`
}

// AssaySource locates the assay table and maps its columns.
type AssaySource struct {
	Location `mapstructure:",squash"`
	Columns  reconcile.AssayMapping `mapstructure:"columns" json:"columns"`
}

// Job describes one reconciliation run.
type Job struct {
	Lithology LithologySource `mapstructure:"lithology" json:"lithology"`
	Assay     AssaySource     `mapstructure:"assay" json:"assay"`
	// Combine enables the lithology merger with Grouping.
	Combine  bool               `mapstructure:"combine" json:"combine"`
	Grouping reconcile.Grouping `mapstructure:"grouping" json:"grouping,omitempty"`
	// QualityPolicy overrides the service default (skip, reject).
	QualityPolicy reconcile.QualityPolicy `mapstructure:"quality_policy" json:"quality_policy,omitempty"`
	// Workers overrides the service default worker count.
	Workers int `mapstructure:"workers" json:"workers,omitempty"`
	// Export optionally names where the merged table is written.
	Export *Location `mapstructure:"export" json:"export,omitempty"`
}

// Validate checks the job shape. Column existence is checked once the
// tables are loaded.
func (j *Job) Validate() error {
	if err := j.Lithology.Location.Validate("lithology"); err != nil {
		return err
	}
	if err := j.Assay.Location.Validate("assay"); err != nil {
		return err
	}
	if err := j.Lithology.Columns.Validate(nil); err != nil {
		return err
	}
	if err := j.Assay.Columns.Validate(nil); err != nil {
		return err
	}
	if j.Export != nil {
		if err := j.Export.Validate("export"); err != nil {
			return err
		}
	}
	return j.Options(reconcile.Config{}).Validate()
}

// Confine applies Location.Confine to every location of the job.
func (j *Job) Confine(dir string) error {
	var err error
	if j.Lithology.Location, err = j.Lithology.Location.Confine("lithology", dir); err != nil {
		return err
	}
	if j.Assay.Location, err = j.Assay.Location.Confine("assay", dir); err != nil {
		return err
	}
	if j.Export != nil {
		loc, err := j.Export.Confine("export", dir)
		if err != nil {
			return err
		}
		j.Export = &loc
	}
	return nil
}

// Options builds engine options, falling back to the service defaults.
func (j *Job) Options(defaults reconcile.Config) reconcile.Options {
	policy := j.QualityPolicy
	if policy == "" {
		policy = reconcile.QualityPolicy(defaults.QualityPolicy)
	}
	workers := j.Workers
	if workers == 0 {
		workers = defaults.Workers
	}
	return reconcile.Options{
		Combine:  j.Combine,
		Grouping: j.Grouping,
		Policy:   policy,
		Workers:  workers,
	}
}

// Fingerprint identifies the job for result caching. Export targets do not
// change the result and are left out.
func (j *Job) Fingerprint() string {
	clone := *j
	clone.Export = nil
	data, err := json.Marshal(clone)
	if err != nil {
		return ""
	}
	return string(data)
}

// LoadJob reads a job file. The format follows the extension (yaml, yml, toml, json).
func LoadJob(path string) (*Job, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", path, err)
	}

	var job Job
	if err := v.Unmarshal(&job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// ParseJob decodes a JSON job, as sent to the HTTP API.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &reconcile.ConfigurationError{Key: "job", Reason: "invalid JSON: " + err.Error()}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}
