package performance

import (
	"time"

	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
)

// Presence summarizes one employee's deduplicated attendance for a window
type Presence struct {
	PresentDays int
	LateDays    int
}

// CollapseDaily collapses attendance events to at most one per employee
// per local calendar day, keeping the event with the latest clock-in.
// Capture retries can record the same day twice; the most recent event
// carries the authoritative late flag. Runs before any scoring.
func CollapseDaily(events []attendance.Event, loc *time.Location) map[string]map[string]attendance.Event {
	if loc == nil {
		loc = time.UTC
	}

	byEmployee := make(map[string]map[string]attendance.Event)
	for _, ev := range events {
		day := ev.ClockIn.In(loc).Format("2006-01-02")
		days, ok := byEmployee[ev.EmployeeID]
		if !ok {
			days = make(map[string]attendance.Event)
			byEmployee[ev.EmployeeID] = days
		}
		current, exists := days[day]
		if !exists || ev.ClockIn.After(current.ClockIn) {
			days[day] = ev
		}
	}
	return byEmployee
}

// SummarizePresence reduces collapsed events to per-employee day counts
func SummarizePresence(byEmployee map[string]map[string]attendance.Event) map[string]Presence {
	result := make(map[string]Presence, len(byEmployee))
	for employeeID, days := range byEmployee {
		p := Presence{PresentDays: len(days)}
		for _, ev := range days {
			if ev.Late {
				p.LateDays++
			}
		}
		result[employeeID] = p
	}
	return result
}
