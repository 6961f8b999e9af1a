package attendance

import (
	"context"
	"time"
)

// DayStats combines present/on-time/late counts for one day
type DayStats struct {
	Present int64
	OnTime  int64
	Late    int64
}

// TrendPoint is one local calendar day of the attendance trend
type TrendPoint struct {
	Date    string `json:"date"` // Format: "YYYY-MM-DD", company timezone
	OnTime  int64  `json:"on_time"`
	Late    int64  `json:"late"`
	Present int64  `json:"present"`
}

// AttendanceRepository defines the interface for attendance event access
type AttendanceRepository interface {
	// ListEventsInRange returns raw clock-in events for a company between
	// start (inclusive) and end (exclusive) UTC instants, optionally
	// restricted to a set of employees. One batched call regardless of
	// how many employees the window covers.
	ListEventsInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]Event, error)

	// DayStats returns present/on-time/late counts for one day in single query
	DayStats(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*DayStats, error)

	// DailyTrend returns per-day counts grouped by the company's local
	// calendar day (tz is an IANA zone name applied inside the query)
	DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]TrendPoint, error)
}
