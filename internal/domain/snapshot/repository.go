package snapshot

import (
	"context"
	"time"
)

// PeriodAverage is one point of the score trend: company-wide averages
// for a month ("YYYY-MM") or a day ("YYYY-MM-DD")
type PeriodAverage struct {
	Period     string  `json:"period"`
	Overall    float64 `json:"overall"`
	Attendance float64 `json:"attendance"`
	Tasks      float64 `json:"tasks"`
}

// SnapshotRepository defines the interface for reading precomputed
// performance snapshots
type SnapshotRepository interface {
	// ListByDate returns all snapshot rows for a company, date and
	// period, optionally filtered by department, ordered by rank
	ListByDate(ctx context.Context, companyID string, departmentID *string, date time.Time, period string) ([]Snapshot, error)

	// MonthlyAverages returns per-month score averages between start and
	// end, ordered by month ascending, in single query
	MonthlyAverages(ctx context.Context, companyID string, departmentID *string, start, end time.Time) ([]PeriodAverage, error)

	// DailyAverages returns per-day score averages between start and
	// end, ordered by day ascending, in single query
	DailyAverages(ctx context.Context, companyID string, departmentID *string, start, end time.Time) ([]PeriodAverage, error)
}
