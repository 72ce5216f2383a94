package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStateNotReady is returned by read-only operations invoked before a
// reconciliation run has produced a MergedTable.
var ErrStateNotReady = errors.New("no merged table available: run a reconciliation first")

// ConfigurationError reports an invalid column mapping or option.
// It is raised before any row is processed.
type ConfigurationError struct {
	// Key is the configuration key at fault (e.g. "lithology.rock").
	Key string
	// Column is the referenced column, if any.
	Column string
	// Reason describes the problem.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("configuration error: %s: column %q %s", e.Key, e.Column, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// DataQualityError aborts a run under PolicyReject.
type DataQualityError struct {
	Issues []Issue
}

func (e *DataQualityError) Error() string {
	const maxShow = 5
	parts := make([]string, 0, maxShow)
	for i, is := range e.Issues {
		if i == maxShow {
			break
		}
		parts = append(parts, fmt.Sprintf("%s row %d: %s", is.Source, is.Row, is.Detail))
	}
	msg := fmt.Sprintf("data quality: %d invalid rows: %s", len(e.Issues), strings.Join(parts, "; "))
	if len(e.Issues) > maxShow {
		msg += fmt.Sprintf("; and %d more", len(e.Issues)-maxShow)
	}
	return msg
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsDataQualityError reports whether err wraps a DataQualityError.
func IsDataQualityError(err error) bool {
	var de *DataQualityError
	return errors.As(err, &de)
}
