package attendance

import "time"

// Event is one clock-in record as captured by the attendance service.
// Events are immutable once recorded. The capture service aims for one
// event per employee per local calendar day, but retries can duplicate
// them; scoring collapses same-day events keeping the latest clock-in.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	ClockIn    time.Time
	ClockOut   *time.Time
	Late       bool
}
