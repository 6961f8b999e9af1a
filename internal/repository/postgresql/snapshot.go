package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
)

type snapshotRepositoryImpl struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) snapshot.SnapshotRepository {
	return &snapshotRepositoryImpl{db: db}
}

// ListByDate returns all snapshot rows for a company, date and period,
// optionally filtered by department, ordered by rank
func (r *snapshotRepositoryImpl) ListByDate(ctx context.Context, companyID string, departmentID *string, date time.Time, period string) ([]snapshot.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.employee_id, s.date, s.period,
			   s.attendance_score, s.task_score, s.overall_score, s.rank, s.tier
		FROM performance_snapshots s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.company_id = $1
		  AND s.date = $2
		  AND s.period = $3
		  AND e.deleted_at IS NULL
	`
	args := []interface{}{companyID, date, period}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $4"
		args = append(args, *departmentID)
	}
	query += " ORDER BY s.rank"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []snapshot.Snapshot
	for rows.Next() {
		var s snapshot.Snapshot
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.Date, &s.Period,
			&s.AttendanceScore, &s.TaskScore, &s.OverallScore, &s.Rank, &s.Tier,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// MonthlyAverages returns per-month score averages in single query
func (r *snapshotRepositoryImpl) MonthlyAverages(ctx context.Context, companyID string, departmentID *string, start, end time.Time) ([]snapshot.PeriodAverage, error) {
	return r.averages(ctx, companyID, departmentID, start, end, "YYYY-MM")
}

// DailyAverages returns per-day score averages in single query
func (r *snapshotRepositoryImpl) DailyAverages(ctx context.Context, companyID string, departmentID *string, start, end time.Time) ([]snapshot.PeriodAverage, error) {
	return r.averages(ctx, companyID, departmentID, start, end, "YYYY-MM-DD")
}

func (r *snapshotRepositoryImpl) averages(ctx context.Context, companyID string, departmentID *string, start, end time.Time, format string) ([]snapshot.PeriodAverage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(s.date, $4) AS period,
			   ROUND(AVG(s.overall_score)::numeric, 1)::float8 AS overall,
			   ROUND(AVG(s.attendance_score)::numeric, 1)::float8 AS attendance,
			   ROUND(AVG(s.task_score)::numeric, 1)::float8 AS tasks
		FROM performance_snapshots s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.company_id = $1
		  AND s.period = 'daily'
		  AND s.date >= $2 AND s.date < $3
		  AND e.deleted_at IS NULL
	`
	args := []interface{}{companyID, start, end, format}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $5"
		args = append(args, *departmentID)
	}
	query += `
		GROUP BY to_char(s.date, $4)
		ORDER BY period
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get score averages: %w", err)
	}
	defer rows.Close()

	var points []snapshot.PeriodAverage
	for rows.Next() {
		var p snapshot.PeriodAverage
		if err := rows.Scan(&p.Period, &p.Overall, &p.Attendance, &p.Tasks); err != nil {
			return nil, fmt.Errorf("failed to scan score average: %w", err)
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
