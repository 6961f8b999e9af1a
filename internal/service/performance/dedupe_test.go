package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
)

func event(employeeID string, clockIn time.Time, late bool) attendance.Event {
	return attendance.Event{
		ID:         employeeID + clockIn.Format(time.RFC3339),
		EmployeeID: employeeID,
		CompanyID:  "company-1",
		ClockIn:    clockIn,
		Late:       late,
	}
}

func TestCollapseDaily_LatestEventWins(t *testing.T) {
	t.Parallel()
	events := []attendance.Event{
		event("emp-1", time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC), false),
		// A capture retry recorded the same day again, this time late
		event("emp-1", time.Date(2025, 9, 1, 9, 30, 0, 0, time.UTC), true),
		event("emp-1", time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC), false),
	}

	collapsed := CollapseDaily(events, time.UTC)

	require.Len(t, collapsed["emp-1"], 2)
	assert.True(t, collapsed["emp-1"]["2025-09-01"].Late)
	assert.False(t, collapsed["emp-1"]["2025-09-02"].Late)
}

func TestCollapseDaily_DayBoundaryFollowsCompanyTimezone(t *testing.T) {
	t.Parallel()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 22:00 UTC on Sep 1 is 05:00 Sep 2 in Jakarta
	events := []attendance.Event{
		event("emp-1", time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC), false),
		event("emp-1", time.Date(2025, 9, 1, 22, 0, 0, 0, time.UTC), false),
	}

	utcDays := CollapseDaily(events, time.UTC)
	require.Len(t, utcDays["emp-1"], 1)

	jakartaDays := CollapseDaily(events, jakarta)
	require.Len(t, jakartaDays["emp-1"], 2)
	assert.Contains(t, jakartaDays["emp-1"], "2025-09-01")
	assert.Contains(t, jakartaDays["emp-1"], "2025-09-02")
}

func TestSummarizePresence(t *testing.T) {
	t.Parallel()
	events := []attendance.Event{
		event("emp-1", time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC), true),
		event("emp-1", time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC), false),
		event("emp-1", time.Date(2025, 9, 3, 8, 0, 0, 0, time.UTC), true),
		event("emp-2", time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC), false),
	}

	presence := SummarizePresence(CollapseDaily(events, time.UTC))

	assert.Equal(t, Presence{PresentDays: 3, LateDays: 2}, presence["emp-1"])
	assert.Equal(t, Presence{PresentDays: 1, LateDays: 0}, presence["emp-2"])
}
