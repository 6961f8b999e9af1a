package performance

import (
	"time"
)

// Window is a resolved scoring window: a pair of inclusive calendar
// dates anchored at midnight in the company's timezone. All day math
// runs in that zone; comparing raw UTC instants shifts days for any
// company outside UTC.
type Window struct {
	Start time.Time
	End   time.Time
	Loc   *time.Location
}

// ResolveWindow produces the concrete window for a request. Explicit
// "YYYY-MM-DD" overrides win when both parse and are ordered; otherwise
// the window ends today (company time) and reaches back lookbackDays
// calendar days. A nil location falls back to UTC.
func ResolveWindow(loc *time.Location, startDate, endDate string, lookbackDays int, now time.Time) Window {
	if loc == nil {
		loc = time.UTC
	}

	if startDate != "" && endDate != "" {
		start, errStart := time.ParseInLocation("2006-01-02", startDate, loc)
		end, errEnd := time.ParseInLocation("2006-01-02", endDate, loc)
		if errStart == nil && errEnd == nil && !start.After(end) {
			return Window{Start: start, End: end, Loc: loc}
		}
	}

	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	start := end.AddDate(0, 0, -(lookbackDays - 1))
	return Window{Start: start, End: end, Loc: loc}
}

// Days returns the number of calendar days in the window, inclusive.
// Counted by date arithmetic, not by dividing elapsed time: DST
// transitions make some local days 23 or 25 hours long.
func (w Window) Days() int {
	days := 0
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// UTCBounds returns the half-open instant range [start, end) covering
// the window, for use as query bounds against timestamptz columns.
func (w Window) UTCBounds() (time.Time, time.Time) {
	return w.Start.UTC(), w.End.AddDate(0, 0, 1).UTC()
}

// StartDate returns the inclusive start as "YYYY-MM-DD"
func (w Window) StartDate() string {
	return w.Start.Format("2006-01-02")
}

// EndDate returns the inclusive end as "YYYY-MM-DD"
func (w Window) EndDate() string {
	return w.End.Format("2006-01-02")
}

// EndDateUTC returns the end calendar date re-anchored at UTC midnight,
// the representation DATE columns round-trip through pgx.
func (w Window) EndDateUTC() time.Time {
	return time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
}
