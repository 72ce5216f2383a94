// Package utils provides common conversion helpers for the drill-eda application.
// It includes cell parsing for numeric columns (with the missing-value spellings
// found in drillhole exports) and value stringification for database reads.
package utils
