package employee

import "time"

type Employee struct {
	ID              string
	CompanyID       string
	DepartmentID    *string
	FullName        string
	Email           string
	AvatarURL       *string
	Role            string
	HireDate        time.Time
	TerminationDate *time.Time
	DeletedAt       *time.Time
}

// Roles. Owners administer the company and are excluded from ranking.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)
