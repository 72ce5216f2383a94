// Package integrity provides health checks for drillhole source data.
//
// Unlike the 'drillhole' package which reconciles the sources, this package
// reports problems that would make a reconciliation silently lose data.
//
// # Checks Provided
//
//   - Sources: Checks that the lithology and assay files, objects or database tables exist and carry the mapped columns.
//   - Holes: Lists hole ids present in only one of the two tables.
//   - Intervals: Lists rows with an empty hole id, unreadable depths, from not below to, or unreadable assay values, plus overlapping and gapped coverage per hole.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks on the configured job (POST with a job body to check another job).
//   - GET /integrity/sources : Runs the source check.
//   - GET /integrity/holes : Runs the hole id diagnostic.
//   - GET /integrity/intervals : Runs the interval quality scan.
package integrity
