package drillhole

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"drill-eda/core/config"
	"drill-eda/core/database"
	"drill-eda/core/reconcile"
	"drill-eda/core/storage"
	"drill-eda/core/table"
	"drill-eda/feature/drillhole/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const exportBatchSize = 500

// Export writes a merged table to a file, a storage object or a database table.
// Files and objects are overwritten; database tables need loc.Replace.
func (s *Service) Export(ctx context.Context, t *reconcile.MergedTable, loc config.Location) (*models.ExportResult, error) {
	if t == nil {
		return nil, reconcile.ErrStateNotReady
	}
	if err := loc.Validate("export"); err != nil {
		return nil, err
	}

	var err error
	switch loc.Kind {
	case config.KindFile:
		err = exportFile(loc.Path, t)
	case config.KindObject:
		err = s.exportObject(ctx, loc.Object, t)
	case config.KindDatabase:
		err = s.exportDatabase(ctx, loc, t)
	}
	if err != nil {
		return nil, fmt.Errorf("export to %s failed: %w", loc, err)
	}

	s.logger.Info("Exported merged table",
		zap.String("run_id", t.RunID()),
		zap.String("target", loc.String()),
		zap.Int("rows", t.Len()),
	)
	return &models.ExportResult{
		RunID:    t.RunID(),
		Kind:     loc.Kind,
		Location: loc.String(),
		Rows:     t.Len(),
	}, nil
}

// ExportLatest exports the table of the latest run.
func (s *Service) ExportLatest(ctx context.Context, loc config.Location) (*models.ExportResult, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	return s.Export(ctx, t, loc)
}

func exportFile(path string, t *reconcile.MergedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(f, t.Columns(), t.Records()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Service) exportObject(ctx context.Context, object string, t *reconcile.MergedTable) error {
	if s.client == nil {
		return fmt.Errorf("no storage client configured")
	}
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t.Columns(), t.Records()); err != nil {
		return err
	}
	_, err := storage.Upload(ctx, s.client, s.bucket, object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv")
	return err
}

func (s *Service) exportDatabase(ctx context.Context, loc config.Location, t *reconcile.MergedTable) error {
	if s.db == nil {
		return fmt.Errorf("no database connection")
	}
	if s.protectedTable(loc.Table) {
		return &reconcile.ConfigurationError{Key: "export.table", Reason: fmt.Sprintf("%q is a source or run log table and cannot be replaced", loc.Table)}
	}
	return ExportTable(s.db.WithContext(ctx), loc.Table, t, loc.Replace)
}

// protectedTable reports whether name is the run log or a database source of
// the latest job.
func (s *Service) protectedTable(name string) bool {
	if strings.EqualFold(name, models.RunRecord{}.TableName()) {
		return true
	}
	job := s.latestJob.Load()
	if job == nil {
		return false
	}
	for _, src := range []config.Location{job.Lithology.Location, job.Assay.Location} {
		if src.Kind == config.KindDatabase && strings.EqualFold(src.Table, name) {
			return true
		}
	}
	return false
}

// ExportTable writes the merged table into the named SQL table and records
// the run in reconcile_runs. Text columns are VARCHAR, numeric columns DOUBLE,
// missing cells NULL. An existing table is only overwritten when replace is set.
//
// Rows are written to a staging table first, so a failed insert leaves the
// existing table untouched. On MySQL the swap is a single RENAME TABLE; other
// drivers rename in two steps and restore the old table if the second fails.
func ExportTable(db *gorm.DB, name string, t *reconcile.MergedTable, replace bool) error {
	m := db.Migrator()
	exists := m.HasTable(name)
	if exists && !replace {
		return &reconcile.ConfigurationError{Key: "export.replace", Reason: fmt.Sprintf("table %q already exists, set replace to overwrite it", name)}
	}

	staging := name + stagingSuffix
	if m.HasTable(staging) {
		if err := m.DropTable(staging); err != nil {
			return fmt.Errorf("failed to drop stale %s: %w", staging, err)
		}
	}
	if err := createTable(db, staging, t); err != nil {
		return err
	}
	if err := fillTable(db, staging, t); err != nil {
		_ = m.DropTable(staging)
		return err
	}
	if err := swapTable(db, name, staging, exists); err != nil {
		_ = m.DropTable(staging)
		return err
	}

	if err := db.AutoMigrate(&models.RunRecord{}); err != nil {
		return fmt.Errorf("failed to migrate run log: %w", err)
	}
	return db.Create(&models.RunRecord{
		RunID:      t.RunID(),
		TargetName: name,
		Holes:      len(t.Holes()),
		Intervals:  t.Len(),
		Columns:    strings.Join(t.Columns(), ","),
		CreatedAt:  t.CreatedAt(),
	}).Error
}

const (
	stagingSuffix  = "_staging"
	previousSuffix = "_previous"
)

func createTable(db *gorm.DB, name string, t *reconcile.MergedTable) error {
	stmt := &gorm.Statement{DB: db}
	columns := t.Columns()
	defs := make([]string, len(columns))
	for i, col := range columns {
		typ := "DOUBLE"
		if kind, _ := t.Kind(col); kind == reconcile.KindText {
			typ = "VARCHAR(255)"
		}
		defs[i] = stmt.Quote(col) + " " + typ
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", stmt.Quote(name), strings.Join(defs, ", "))
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return nil
}

func fillTable(db *gorm.DB, name string, t *reconcile.MergedTable) error {
	if t.Len() == 0 {
		return nil
	}
	columns := t.Columns()
	records := make([]map[string]interface{}, t.Len())
	for i := range records {
		records[i] = record(t, i, columns)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(name).CreateInBatches(records, exportBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", name, err)
		}
		return nil
	})
}

// swapTable moves staging into place under name.
func swapTable(db *gorm.DB, name, staging string, exists bool) error {
	m := db.Migrator()
	if !exists {
		if err := m.RenameTable(staging, name); err != nil {
			return fmt.Errorf("failed to rename %s: %w", staging, err)
		}
		return nil
	}

	previous := name + previousSuffix
	if m.HasTable(previous) {
		if err := m.DropTable(previous); err != nil {
			return fmt.Errorf("failed to drop stale %s: %w", previous, err)
		}
	}

	if db.Dialector.Name() == database.DriverMySQL {
		err := db.Exec("RENAME TABLE ? TO ?, ? TO ?",
			clause.Table{Name: name}, clause.Table{Name: previous},
			clause.Table{Name: staging}, clause.Table{Name: name},
		).Error
		if err != nil {
			return fmt.Errorf("failed to swap %s: %w", name, err)
		}
	} else {
		if err := m.RenameTable(name, previous); err != nil {
			return fmt.Errorf("failed to rename %s: %w", name, err)
		}
		if err := m.RenameTable(staging, name); err != nil {
			_ = m.RenameTable(previous, name)
			return fmt.Errorf("failed to rename %s: %w", staging, err)
		}
	}
	return m.DropTable(previous)
}

func record(t *reconcile.MergedTable, i int, columns []string) map[string]interface{} {
	rec := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		if kind, _ := t.Kind(col); kind == reconcile.KindText {
			if v, ok := t.Text(i, col); ok {
				rec[col] = v
			} else {
				rec[col] = nil
			}
			continue
		}
		if v := t.Number(i, col); v.Valid {
			rec[col] = v.Float
		} else {
			rec[col] = nil
		}
	}
	return rec
}
