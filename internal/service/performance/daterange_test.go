package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow_DefaultLookback(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 9, 30, 15, 30, 0, 0, time.UTC)

	w := ResolveWindow(time.UTC, "", "", 30, now)

	assert.Equal(t, "2025-09-01", w.StartDate())
	assert.Equal(t, "2025-09-30", w.EndDate())
	assert.Equal(t, 30, w.Days())
}

func TestResolveWindow_ExplicitDatesTakePrecedence(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 9, 30, 15, 30, 0, 0, time.UTC)

	w := ResolveWindow(time.UTC, "2025-06-01", "2025-06-15", 30, now)

	assert.Equal(t, "2025-06-01", w.StartDate())
	assert.Equal(t, "2025-06-15", w.EndDate())
	assert.Equal(t, 15, w.Days())
}

func TestResolveWindow_InvalidExplicitDatesFallBack(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 9, 30, 15, 30, 0, 0, time.UTC)

	// Reversed order
	w := ResolveWindow(time.UTC, "2025-06-15", "2025-06-01", 30, now)
	assert.Equal(t, "2025-09-30", w.EndDate())

	// Garbage input
	w = ResolveWindow(time.UTC, "not-a-date", "2025-06-15", 30, now)
	assert.Equal(t, "2025-09-30", w.EndDate())
}

func TestResolveWindow_NilLocationDefaultsToUTC(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 9, 30, 15, 30, 0, 0, time.UTC)

	w := ResolveWindow(nil, "", "", 30, now)

	assert.Equal(t, time.UTC, w.Loc)
}

func TestResolveWindow_CompanyTimezoneShiftsTheDay(t *testing.T) {
	t.Parallel()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 18:00 UTC on Sep 30 is already Oct 1 in Jakarta (UTC+7)
	now := time.Date(2025, 9, 30, 18, 0, 0, 0, time.UTC)

	w := ResolveWindow(jakarta, "", "", 30, now)

	assert.Equal(t, "2025-10-01", w.EndDate())
}

func TestWindow_UTCBounds(t *testing.T) {
	t.Parallel()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	w := ResolveWindow(jakarta, "2025-09-01", "2025-09-30", 30, time.Time{})
	start, end := w.UTCBounds()

	// Jakarta midnight is 17:00 UTC the previous day
	assert.Equal(t, time.Date(2025, 8, 31, 17, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 9, 30, 17, 0, 0, 0, time.UTC), end)
}

func TestWindow_EndDateUTC(t *testing.T) {
	t.Parallel()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	w := ResolveWindow(jakarta, "2025-09-01", "2025-09-30", 30, time.Time{})

	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), w.EndDateUTC())
}
