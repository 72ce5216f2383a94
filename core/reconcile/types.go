package reconcile

import (
	"encoding/json"
	"math"
)

// HoleID identifies a drillhole. It is opaque and only compared for equality
// and ordering.
type HoleID string

// Value is a numeric measurement that may be missing.
type Value struct {
	Float float64
	Valid bool
}

// Missing is the explicit absent value.
var Missing = Value{}

// Some wraps a present measurement.
func Some(f float64) Value {
	return Value{Float: f, Valid: true}
}

// MarshalJSON encodes a missing value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Missing
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// LithologyInterval is a depth interval [From, To) carrying a rock code.
type LithologyInterval struct {
	Hole HoleID
	From float64
	To   float64
	Rock string
	// Seq is the explicit source order used for first-match tie breaking.
	Seq int
}

// AssayInterval is a depth interval [From, To) carrying measured values,
// ordered like the declared assay columns.
type AssayInterval struct {
	Hole   HoleID
	From   float64
	To     float64
	Values []Value
	// Seq is the explicit source order used for first-match tie breaking.
	Seq int
}

// Span is an output interval skeleton.
type Span struct {
	From float64
	To   float64
}

// Group maps a set of raw rock codes to a single replacement code.
type Group struct {
	Codes  []string `mapstructure:"codes" json:"codes"`
	Target string   `mapstructure:"target" json:"target"`
}

// Grouping is an ordered list of rock code groups.
type Grouping []Group

// QualityPolicy decides what happens to rows violating interval invariants.
type QualityPolicy string

const (
	// PolicySkip logs and drops only the offending row.
	PolicySkip QualityPolicy = "skip"
	// PolicyReject aborts the whole run.
	PolicyReject QualityPolicy = "reject"
)

// IsValid reports whether the policy is known. The empty policy means PolicySkip.
func (p QualityPolicy) IsValid() bool {
	switch p {
	case "", PolicySkip, PolicyReject:
		return true
	default:
		return false
	}
}

// IssueKind classifies a data quality finding.
type IssueKind string

const (
	// IssueEmptyInterval is a row with from >= to.
	IssueEmptyInterval IssueKind = "from_not_below_to"
	// IssueBadDepth is a row whose from or to is missing or not a finite number.
	IssueBadDepth IssueKind = "bad_depth"
	// IssueMissingHole is a row without a hole id.
	IssueMissingHole IssueKind = "missing_hole_id"
	// IssueBadValue is an assay cell that is not a number; the value reads as missing.
	IssueBadValue IssueKind = "bad_value"
)

// Issue describes one data quality finding in a source table.
type Issue struct {
	Source string    `json:"source"`
	Row    int       `json:"row"`
	Hole   HoleID    `json:"hole,omitempty"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// DropsRow reports whether the issue removes the row from the run.
func (i Issue) DropsRow() bool {
	return i.Kind != IssueBadValue
}
