// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application
// configuration. Drillhole logs are often kept in site databases; the
// connection serves as a table source for reconciliation jobs and as an
// export target for merged interval tables.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so that job column mappings
// can be validated against a database source before any row is read.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "lithology")
package database
