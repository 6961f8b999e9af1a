package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kinetichr/pulse-backend-go/internal/domain/employee"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// ListActiveForRanking returns active, non-deleted employees excluding
// the owner role, optionally filtered by department. One batched query
// regardless of headcount.
func (r *employeeRepositoryImpl) ListActiveForRanking(ctx context.Context, companyID string, departmentID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, department_id, full_name, email, avatar_url, role, hire_date, termination_date
		FROM employees
		WHERE company_id = $1
		  AND deleted_at IS NULL
		  AND termination_date IS NULL
		  AND role <> 'owner'
	`
	args := []interface{}{companyID}

	if departmentID != nil && *departmentID != "" {
		query += " AND department_id = $2"
		args = append(args, *departmentID)
	}
	query += " ORDER BY full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for ranking: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.DepartmentID, &e.FullName, &e.Email,
			&e.AvatarURL, &e.Role, &e.HireDate, &e.TerminationDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// CountActive returns the active headcount in single query
func (r *employeeRepositoryImpl) CountActive(ctx context.Context, companyID string, departmentID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM employees
		WHERE company_id = $1
		  AND deleted_at IS NULL
		  AND termination_date IS NULL
	`
	args := []interface{}{companyID}

	if departmentID != nil && *departmentID != "" {
		query += " AND department_id = $2"
		args = append(args, *departmentID)
	}

	var count int64
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}

// MonthlyHeadcount returns active headcount per month between start and
// end, derived from hire and termination dates, in single query
func (r *employeeRepositoryImpl) MonthlyHeadcount(ctx context.Context, companyID string, start, end time.Time) ([]employee.HeadcountPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(m.month, 'YYYY-MM') AS month,
			   COUNT(e.id) AS employees
		FROM generate_series(
			date_trunc('month', $2::timestamptz),
			date_trunc('month', $3::timestamptz),
			interval '1 month'
		) AS m(month)
		LEFT JOIN employees e
			ON e.company_id = $1
			AND e.deleted_at IS NULL
			AND e.hire_date < m.month + interval '1 month'
			AND (e.termination_date IS NULL OR e.termination_date >= m.month)
		GROUP BY m.month
		ORDER BY m.month
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly headcount: %w", err)
	}
	defer rows.Close()

	var points []employee.HeadcountPoint
	for rows.Next() {
		var p employee.HeadcountPoint
		if err := rows.Scan(&p.Month, &p.Employees); err != nil {
			return nil, fmt.Errorf("failed to scan headcount point: %w", err)
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
