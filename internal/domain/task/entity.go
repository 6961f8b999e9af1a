package task

import "time"

// Record is one task as tracked by the task-management service.
// Records without a due date carry no scoring signal and are excluded
// from the on-time ratio.
type Record struct {
	ID          string
	CompanyID   string
	AssigneeID  string
	Title       string
	DueAt       *time.Time
	CompletedAt *time.Time
	Status      string
}

const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// CompletedOnTime reports whether the record was completed no later
// than its due date. Records without both timestamps never qualify.
func (r Record) CompletedOnTime() bool {
	if r.Status != StatusCompleted || r.DueAt == nil || r.CompletedAt == nil {
		return false
	}
	return !r.CompletedAt.After(*r.DueAt)
}
