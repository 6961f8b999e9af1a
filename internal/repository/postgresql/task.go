package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
	// assigneeCol is resolved once at construction. Databases migrated
	// from the legacy schema still carry assigned_to; fresh ones carry
	// assignee_id. Never re-probed per request.
	assigneeCol string
}

// NewTaskRepository constructs the repository and detects which column
// holds a task's assignee
func NewTaskRepository(ctx context.Context, db *database.DB) (task.TaskRepository, error) {
	col, err := detectAssigneeColumn(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to detect task assignee column: %w", err)
	}
	return &taskRepositoryImpl{db: db, assigneeCol: col}, nil
}

func detectAssigneeColumn(ctx context.Context, db *database.DB) (string, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'tasks'
		  AND column_name IN ('assignee_id', 'assigned_to')
		ORDER BY CASE column_name WHEN 'assignee_id' THEN 0 ELSE 1 END
		LIMIT 1
	`

	var col string
	err := db.QueryRow(ctx, query).Scan(&col)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Fresh schema without the legacy column
			return "assignee_id", nil
		}
		return "", err
	}
	return col, nil
}

// ListDueInRange returns task records with a due date inside the
// window, optionally restricted to a set of assignees. One batched
// query regardless of headcount.
func (r *taskRepositoryImpl) ListDueInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]task.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, company_id, %s, title, due_at, completed_at, status
		FROM tasks
		WHERE company_id = $1
		  AND due_at >= $2 AND due_at < $3
	`, r.assigneeCol)
	args := []interface{}{companyID, start, end}

	if len(employeeIDs) > 0 {
		query += fmt.Sprintf(" AND %s = ANY($4)", r.assigneeCol)
		args = append(args, employeeIDs)
	}
	query += " ORDER BY due_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	defer rows.Close()

	var records []task.Record
	for rows.Next() {
		var rec task.Record
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.AssigneeID, &rec.Title, &rec.DueAt, &rec.CompletedAt, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Distribution returns status counts for due tasks in the window in
// single query. Cancelled tasks count toward due_total but carry no
// display slice.
func (r *taskRepositoryImpl) Distribution(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*task.Distribution, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(CASE WHEN t.status = 'completed' AND t.completed_at <= t.due_at THEN 1 ELSE 0 END), 0) AS completed_on_time,
			   COALESCE(SUM(CASE WHEN t.status = 'completed' AND (t.completed_at IS NULL OR t.completed_at > t.due_at) THEN 1 ELSE 0 END), 0) AS completed_late,
			   COALESCE(SUM(CASE WHEN t.status = 'open' AND t.due_at < NOW() THEN 1 ELSE 0 END), 0) AS overdue,
			   COALESCE(SUM(CASE WHEN t.status = 'open' AND t.due_at >= NOW() THEN 1 ELSE 0 END), 0) AS open,
			   COUNT(*) AS due_total
		FROM tasks t
		JOIN employees e ON e.id = t.%s
		WHERE t.company_id = $1
		  AND t.due_at >= $2 AND t.due_at < $3
		  AND e.deleted_at IS NULL
	`, r.assigneeCol)
	args := []interface{}{companyID, start, end}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $4"
		args = append(args, *departmentID)
	}

	var dist task.Distribution
	err := q.QueryRow(ctx, query, args...).Scan(
		&dist.CompletedOnTime, &dist.CompletedLate, &dist.Overdue, &dist.Open, &dist.DueTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get task distribution: %w", err)
	}
	return &dist, nil
}

// DailyTrend returns per-day counts grouped by the company's local
// calendar day of the due date
func (r *taskRepositoryImpl) DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]task.TrendPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT to_char((t.due_at AT TIME ZONE $4)::date, 'YYYY-MM-DD') AS date,
			   COUNT(*) AS due_total,
			   COALESCE(SUM(CASE WHEN t.status = 'completed' AND t.completed_at <= t.due_at THEN 1 ELSE 0 END), 0) AS completed_on_time,
			   COALESCE(SUM(CASE WHEN t.status = 'completed' AND (t.completed_at IS NULL OR t.completed_at > t.due_at) THEN 1 ELSE 0 END), 0) AS completed_late,
			   COALESCE(SUM(CASE WHEN t.status = 'open' AND t.due_at < NOW() THEN 1 ELSE 0 END), 0) AS overdue
		FROM tasks t
		JOIN employees e ON e.id = t.%s
		WHERE t.company_id = $1
		  AND t.due_at >= $2 AND t.due_at < $3
		  AND e.deleted_at IS NULL
	`, r.assigneeCol)
	args := []interface{}{companyID, start, end, tz}

	if departmentID != nil && *departmentID != "" {
		query += " AND e.department_id = $5"
		args = append(args, *departmentID)
	}
	query += `
		GROUP BY (t.due_at AT TIME ZONE $4)::date
		ORDER BY (t.due_at AT TIME ZONE $4)::date
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get task trend: %w", err)
	}
	defer rows.Close()

	var points []task.TrendPoint
	for rows.Next() {
		var p task.TrendPoint
		if err := rows.Scan(&p.Date, &p.DueTotal, &p.CompletedOnTime, &p.CompletedLate, &p.Overdue); err != nil {
			return nil, fmt.Errorf("failed to scan task trend point: %w", err)
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
