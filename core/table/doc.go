// Package table provides the tabular input layer for drillhole reconciliation.
//
// A Table is a header plus rows of string cells, the lowest common denominator
// of the formats drillhole logs arrive in (CSV exports, database tables,
// spreadsheets saved to object storage). Typed interpretation of cells is left
// to the consumer, which declares the columns it needs through a mapping.
//
// # Sources
//
// Tables are produced by a Source:
//   - FileSource: a CSV file on the local filesystem.
//   - ObjectSource: a CSV object in an S3/MinIO bucket (via core/storage).
//   - DBSource: a SQL table read through GORM (MySQL or SQLite).
//
// # Usage
//
//	src := table.FileSource{Path: "lithology.csv"}
//	t, err := src.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	idx, ok := t.Index("HOLEID")
package table
