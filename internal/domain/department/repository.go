package department

import "context"

// DepartmentRepository defines the interface for department lookups
type DepartmentRepository interface {
	// ListByCompany returns all departments of a company ordered by name
	ListByCompany(ctx context.Context, companyID string) ([]Department, error)
}
