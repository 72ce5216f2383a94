package table

import (
	"context"
	"fmt"
	"os"

	"drill-eda/core/storage"
	"drill-eda/core/utils"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// Source loads a Table from some backing store.
type Source interface {
	// Load reads the full table.
	Load(ctx context.Context) (*Table, error)
	// Describe returns a short human readable location used in logs.
	Describe() string
}

// FileSource reads a CSV file from the local filesystem.
type FileSource struct {
	Path string
}

// Load opens and parses the file.
func (s FileSource) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadCSV(s.Path, f)
}

// Describe returns the file path.
func (s FileSource) Describe() string {
	return "file:" + s.Path
}

// ObjectSource reads a CSV object from a storage bucket.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Object string
}

// Load downloads and parses the object.
func (s ObjectSource) Load(ctx context.Context) (*Table, error) {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.Bucket)
	}

	reader, err := s.Client.GetObject(ctx, s.Bucket, s.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", s.Object, err)
	}
	defer reader.Close()

	return ReadCSV(s.Object, reader)
}

// Describe returns the bucket/object location.
func (s ObjectSource) Describe() string {
	return "object:" + s.Bucket + "/" + s.Object
}

// DBSource reads every row of a SQL table.
type DBSource struct {
	DB    *gorm.DB
	Table string
}

// Load queries the table and stringifies every cell. NULL becomes an empty cell.
func (s DBSource) Load(ctx context.Context) (*Table, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database source %s: no database connection", s.Table)
	}

	// Raw rows keep the source column order, which Find into maps does not.
	dbRows, err := s.DB.WithContext(ctx).Table(s.Table).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.Table, err)
	}
	defer dbRows.Close()

	columns, err := dbRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var rows [][]string
	for dbRows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := dbRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = utils.ToString(v)
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.Table, err)
	}

	return New(s.Table, columns, rows), nil
}

// Describe returns the table name.
func (s DBSource) Describe() string {
	return "database:" + s.Table
}
