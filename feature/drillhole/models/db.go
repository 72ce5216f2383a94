package models

import (
	"time"
)

// RunRecord logs a merged table exported to the database.
type RunRecord struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	RunID      string    `gorm:"column:run_id;size:36;index"`
	TargetName string    `gorm:"column:target_table;size:128"`
	Holes      int       `gorm:"column:holes"`
	Intervals  int       `gorm:"column:intervals"`
	Columns    string    `gorm:"column:columns"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (RunRecord) TableName() string {
	return "reconcile_runs"
}
