package task

import (
	"context"
	"time"
)

// Distribution combines task status counts for a window in single query
type Distribution struct {
	CompletedOnTime int64
	CompletedLate   int64
	Overdue         int64
	Open            int64
	DueTotal        int64
}

// TrendPoint is one local calendar day of the task trend, keyed by due date
type TrendPoint struct {
	Date            string `json:"date"` // Format: "YYYY-MM-DD", company timezone
	DueTotal        int64  `json:"due_total"`
	CompletedOnTime int64  `json:"completed_on_time"`
	CompletedLate   int64  `json:"completed_late"`
	Overdue         int64  `json:"overdue"`
}

// TaskRepository defines the interface for task record access
type TaskRepository interface {
	// ListDueInRange returns task records with a due date between start
	// (inclusive) and end (exclusive) UTC instants, optionally restricted
	// to a set of assignees. One batched call regardless of headcount.
	ListDueInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]Record, error)

	// Distribution returns status counts for due tasks in the window
	Distribution(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*Distribution, error)

	// DailyTrend returns per-day counts grouped by the company's local
	// calendar day of the due date
	DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]TrendPoint, error)
}
