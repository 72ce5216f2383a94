package models

import (
	"drill-eda/core/reconcile"
)

// RunSummary is returned after a reconciliation run.
type RunSummary struct {
	RunID         string           `json:"run_id"`
	Cached        bool             `json:"cached"`
	Report        reconcile.Report `json:"report"`
	Export        *ExportResult    `json:"export,omitempty"`
	GeneratedAt   string           `json:"generated_at"`
	ExecutionTime string           `json:"execution_time"`
}

// ExportResult describes a written merged table.
type ExportResult struct {
	RunID    string `json:"run_id"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}

// LithologyInterval is the JSON form of a joined lithology interval.
type LithologyInterval struct {
	Hole string  `json:"hole"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Rock string  `json:"rock"`
}

// FromLithology converts engine intervals for the API.
func FromLithology(in []reconcile.LithologyInterval) []LithologyInterval {
	out := make([]LithologyInterval, len(in))
	for i, iv := range in {
		out[i] = LithologyInterval{Hole: string(iv.Hole), From: iv.From, To: iv.To, Rock: iv.Rock}
	}
	return out
}
