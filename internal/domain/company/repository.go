package company

import "context"

// CompanyRepository defines the interface for company settings access
type CompanyRepository interface {
	// GetByID returns one company row
	GetByID(ctx context.Context, companyID string) (*Company, error)

	// GetScoringSettings returns the KPI settings for a company.
	// Returns ErrSettingsNotFound when the company has never configured
	// them; callers apply the documented defaults.
	GetScoringSettings(ctx context.Context, companyID string) (*ScoringSettings, error)
}
