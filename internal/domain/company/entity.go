package company

import (
	"time"
)

type Company struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScoringSettings are the per-company KPI settings read by the
// performance engine. Weights are integers and do not have to sum
// to 100; the aggregator normalizes by their sum.
type ScoringSettings struct {
	CompanyID        string
	AttendanceWeight int
	TaskWeight       int
	WorkingDays      Weekdays
	Timezone         string
}

// Weekdays is the set of weekdays a company expects attendance on.
type Weekdays []time.Weekday

func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Location resolves the configured timezone, falling back to UTC when
// the identifier is missing or invalid. Day-boundary math must never
// run in the server's local zone.
func (s *ScoringSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultWorkingDays is the Monday through Friday calendar applied when
// a company has no explicit working-day configuration.
func DefaultWorkingDays() Weekdays {
	return Weekdays{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}
