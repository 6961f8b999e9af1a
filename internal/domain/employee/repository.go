package employee

import (
	"context"
	"time"
)

// HeadcountPoint is one month of the growth trend
type HeadcountPoint struct {
	Month     string `json:"month"` // Format: "YYYY-MM"
	Employees int64  `json:"employees"`
}

// EmployeeRepository defines the interface for directory access
type EmployeeRepository interface {
	// ListActiveForRanking returns active, non-deleted employees of a
	// company, optionally filtered by department. Owners are excluded:
	// they administer the company and do not compete on the leaderboard.
	ListActiveForRanking(ctx context.Context, companyID string, departmentID *string) ([]Employee, error)

	// CountActive returns the active headcount in single query
	CountActive(ctx context.Context, companyID string, departmentID *string) (int64, error)

	// MonthlyHeadcount returns active headcount per month between start and end,
	// derived from hire and termination dates, in single query
	MonthlyHeadcount(ctx context.Context, companyID string, start, end time.Time) ([]HeadcountPoint, error)
}
