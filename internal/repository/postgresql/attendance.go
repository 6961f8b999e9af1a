package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListEventsInRange returns raw clock-in events for a company between
// start (inclusive) and end (exclusive), optionally restricted to a
// set of employees. Dedup happens in the scoring engine, not here.
func (r *attendanceRepositoryImpl) ListEventsInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, clock_in, clock_out, is_late
		FROM attendance_events
		WHERE company_id = $1
		  AND clock_in >= $2 AND clock_in < $3
	`
	args := []interface{}{companyID, start, end}

	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($4)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY clock_in"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.ClockIn, &ev.ClockOut, &ev.Late); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// DayStats returns present/on-time/late counts for one day in single
// query. The inner distinct-on keeps only the latest event per
// employee, mirroring the engine's most-recent-wins rule.
func (r *attendanceRepositoryImpl) DayStats(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*attendance.DayStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) AS present,
			   COALESCE(SUM(CASE WHEN NOT is_late THEN 1 ELSE 0 END), 0) AS on_time,
			   COALESCE(SUM(CASE WHEN is_late THEN 1 ELSE 0 END), 0) AS late
		FROM (
			SELECT DISTINCT ON (a.employee_id) a.employee_id, a.is_late
			FROM attendance_events a
			JOIN employees e ON e.id = a.employee_id
			WHERE a.company_id = $1
			  AND a.clock_in >= $2 AND a.clock_in < $3
			  AND e.deleted_at IS NULL
	`
	args := []interface{}{companyID, start, end}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $4"
		args = append(args, *departmentID)
	}
	query += `
			ORDER BY a.employee_id, a.clock_in DESC
		) d
	`

	var stats attendance.DayStats
	err := q.QueryRow(ctx, query, args...).Scan(&stats.Present, &stats.OnTime, &stats.Late)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance day stats: %w", err)
	}
	return &stats, nil
}

// DailyTrend returns per-day counts grouped by the company's local
// calendar day. tz is an IANA zone name applied inside the query so
// day boundaries match the company calendar, not the server's.
func (r *attendanceRepositoryImpl) DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]attendance.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(day, 'YYYY-MM-DD') AS date,
			   COALESCE(SUM(CASE WHEN NOT is_late THEN 1 ELSE 0 END), 0) AS on_time,
			   COALESCE(SUM(CASE WHEN is_late THEN 1 ELSE 0 END), 0) AS late,
			   COUNT(*) AS present
		FROM (
			SELECT DISTINCT ON (a.employee_id, ((a.clock_in AT TIME ZONE $4)::date))
				   ((a.clock_in AT TIME ZONE $4)::date) AS day, a.is_late
			FROM attendance_events a
			JOIN employees e ON e.id = a.employee_id
			WHERE a.company_id = $1
			  AND a.clock_in >= $2 AND a.clock_in < $3
			  AND e.deleted_at IS NULL
	`
	args := []interface{}{companyID, start, end, tz}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $5"
		args = append(args, *departmentID)
	}
	query += `
			ORDER BY a.employee_id, ((a.clock_in AT TIME ZONE $4)::date), a.clock_in DESC
		) d
		GROUP BY day
		ORDER BY day
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance trend: %w", err)
	}
	defer rows.Close()

	var points []attendance.TrendPoint
	for rows.Next() {
		var p attendance.TrendPoint
		if err := rows.Scan(&p.Date, &p.OnTime, &p.Late, &p.Present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance trend point: %w", err)
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
