package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kinetichr/pulse-backend-go/internal/domain/company"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID returns one company row
func (r *companyRepositoryImpl) GetByID(ctx context.Context, companyID string) (*company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, COALESCE(timezone, ''), created_at, updated_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var c company.Company
	err := q.QueryRow(ctx, query, companyID).Scan(
		&c.ID, &c.Name, &c.Timezone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// GetScoringSettings returns the KPI settings row joined with the
// company timezone. ErrSettingsNotFound signals the caller to apply
// defaults; it is not a failure.
func (r *companyRepositoryImpl) GetScoringSettings(ctx context.Context, companyID string) (*company.ScoringSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT k.company_id, k.attendance_weight, k.task_weight, k.working_days, COALESCE(c.timezone, '')
		FROM company_kpi_settings k
		JOIN companies c ON c.id = k.company_id
		WHERE k.company_id = $1 AND c.deleted_at IS NULL
	`

	var settings company.ScoringSettings
	var workingDays []int32
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.CompanyID, &settings.AttendanceWeight, &settings.TaskWeight, &workingDays, &settings.Timezone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get scoring settings: %w", err)
	}

	settings.WorkingDays = isoWeekdays(workingDays)
	return &settings, nil
}

// isoWeekdays converts ISO weekday numbers (1 = Monday .. 7 = Sunday)
// to time.Weekday values
func isoWeekdays(days []int32) company.Weekdays {
	result := make(company.Weekdays, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			continue
		}
		result = append(result, time.Weekday(d%7))
	}
	return result
}
