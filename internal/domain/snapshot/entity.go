package snapshot

import "time"

// Snapshot is one precomputed performance record, written by the
// nightly batch job. This service only reads snapshots and must work
// correctly when none exist for a date.
type Snapshot struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Date            time.Time
	Period          string
	AttendanceScore float64
	TaskScore       float64
	OverallScore    float64
	Rank            int
	Tier            string
}

const (
	PeriodDaily   = "daily"
	PeriodMonthly = "monthly"
)
