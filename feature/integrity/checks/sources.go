package checks

import (
	"context"
	"errors"
	"fmt"
	"os"

	"drill-eda/core/config"
	"drill-eda/core/database"
	"drill-eda/core/storage"
	"drill-eda/core/table"

	"gorm.io/gorm"
)

// SourceReport describes whether a job source can be read and carries the mapped columns.
type SourceReport struct {
	Source         string   `json:"source"`
	Location       string   `json:"location"`
	Exists         bool     `json:"exists"`
	Rows           int      `json:"rows"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
	Error          string   `json:"error,omitempty"`
}

// Env gives the checks access to the configured backends.
type Env struct {
	Client storage.Client
	Bucket string
	DB     *gorm.DB
}

// LocationExists reports whether the location's file, object or table exists.
func LocationExists(ctx context.Context, env Env, loc config.Location) (bool, error) {
	switch loc.Kind {
	case config.KindFile:
		_, err := os.Stat(loc.Path)
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	case config.KindObject:
		if env.Client == nil {
			return false, fmt.Errorf("no storage client configured")
		}
		exists, err := env.Client.BucketExists(ctx, env.Bucket)
		if err != nil {
			return false, fmt.Errorf("failed to check bucket existence: %w", err)
		}
		if !exists {
			return false, fmt.Errorf("bucket %s does not exist", env.Bucket)
		}
		return storage.ObjectExists(ctx, env.Client, env.Bucket, loc.Object)
	case config.KindDatabase:
		if env.DB == nil {
			return false, fmt.Errorf("database connection is nil")
		}
		cols, err := database.GetTableColumns(env.DB, loc.Table)
		if err != nil {
			return false, err
		}
		return len(cols) > 0, nil
	default:
		return false, loc.Validate("source")
	}
}

// MissingColumns lists the required columns absent from a loaded table.
func MissingColumns(t *table.Table, required []string) []string {
	missing := []string{}
	for _, col := range required {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// MissingTableColumns lists the required columns absent from a database table
// without reading its rows.
func MissingTableColumns(db *gorm.DB, name string, required []string) ([]string, error) {
	cols, err := database.GetTableColumns(db, name)
	if err != nil {
		return nil, err
	}
	missing := []string{}
	for _, col := range required {
		if !database.HasColumn(cols, col) {
			missing = append(missing, col)
		}
	}
	return missing, nil
}

// CheckSource verifies that a source exists and carries the required columns.
// Database tables are inspected through their schema; files and objects are loaded.
func CheckSource(ctx context.Context, env Env, name string, loc config.Location, src table.Source, required []string) SourceReport {
	report := SourceReport{
		Source:         name,
		Location:       loc.String(),
		MissingColumns: []string{},
		Status:         "ok",
	}
	fail := func(err error) SourceReport {
		report.Status = "error"
		report.Error = err.Error()
		return report
	}

	exists, err := LocationExists(ctx, env, loc)
	if err != nil {
		return fail(err)
	}
	report.Exists = exists
	if !exists {
		return fail(fmt.Errorf("%s not found", loc))
	}

	if loc.Kind == config.KindDatabase {
		missing, err := MissingTableColumns(env.DB, loc.Table, required)
		if err != nil {
			return fail(err)
		}
		report.MissingColumns = missing
		var count int64
		if err := env.DB.WithContext(ctx).Table(loc.Table).Count(&count).Error; err != nil {
			return fail(fmt.Errorf("failed to count rows: %w", err))
		}
		report.Rows = int(count)
	} else {
		t, err := src.Load(ctx)
		if err != nil {
			return fail(err)
		}
		report.Rows = t.Len()
		report.MissingColumns = MissingColumns(t, required)
	}

	if len(report.MissingColumns) > 0 {
		report.Status = "error"
	}
	return report
}
