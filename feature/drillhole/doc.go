// Package drillhole serves lithology/assay reconciliation over HTTP.
//
// The Service loads the two source tables of a job (local CSV files, CSV
// objects in the storage bucket, or database tables), runs the reconciliation
// engine and keeps the resulting merged table as the latest result. Analyses
// (ore/waste split, filtering, descriptive statistics, histograms) read that
// table; before the first successful run they fail with
// reconcile.ErrStateNotReady, which the handler reports as 409 Conflict.
//
// # Routes
//
//   - POST /drillhole/reconcile: run a job (JSON body).
//   - GET /drillhole/table: latest merged table (format=csv for CSV).
//   - GET /drillhole/lithology: lithology intervals joined in the latest run.
//   - GET /drillhole/orewaste?grade=&cutoff=: ore/waste split.
//   - POST /drillhole/filter: filtered merged table.
//   - GET /drillhole/stats/:rock: descriptive statistics of a rock class.
//   - GET /drillhole/histogram/:column: binned column distribution.
//   - POST /drillhole/export: write the latest table to a file, object or database table.
//
// Configuration and data quality errors map to 400.
package drillhole
