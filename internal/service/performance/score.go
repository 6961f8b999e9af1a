package performance

import (
	"math"

	"github.com/kinetichr/pulse-backend-go/internal/domain/company"
	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
)

// clampScore keeps every score inside [0, 100]
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// CountWorkingDays returns how many calendar days in the window fall on
// a configured working weekday, evaluated in the window's timezone
func CountWorkingDays(w Window, workingDays company.Weekdays) int {
	count := 0
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if workingDays.Contains(d.Weekday()) {
			count++
		}
	}
	return count
}

// AttendanceScore converts deduplicated presence into a 0-100 score:
// the expected-vs-actual presence ratio, minus latePenalty percentage
// points per late day. expectedDays of zero scores 0, never divides.
func AttendanceScore(presentDays, lateDays, expectedDays int, latePenalty float64) float64 {
	if expectedDays <= 0 {
		return 0
	}
	score := float64(presentDays)/float64(expectedDays)*100 - float64(lateDays)*latePenalty
	return clampScore(score)
}

// TaskTotals summarizes one employee's due tasks for a window
type TaskTotals struct {
	DueTotal int
	OnTime   int
}

// SummarizeTasks reduces due-task records to per-assignee totals.
// Every record with a due date in the window counts toward DueTotal,
// whatever its status.
func SummarizeTasks(records []task.Record) map[string]TaskTotals {
	result := make(map[string]TaskTotals)
	for _, r := range records {
		t := result[r.AssigneeID]
		t.DueTotal++
		if r.CompletedOnTime() {
			t.OnTime++
		}
		result[r.AssigneeID] = t
	}
	return result
}

// TaskScore converts task totals into a 0-100 on-time-completion ratio.
// No due tasks means no task signal: score 0, not a silent 100.
func TaskScore(onTime, dueTotal int) float64 {
	if dueTotal <= 0 {
		return 0
	}
	return clampScore(float64(onTime) / float64(dueTotal) * 100)
}

// OverallScore blends the two component scores using the configured
// weights. A zero total weight scores 0 rather than propagating NaN.
func OverallScore(attendanceScore, taskScore float64, attendanceWeight, taskWeight int) float64 {
	totalWeight := attendanceWeight + taskWeight
	if totalWeight <= 0 {
		return 0
	}
	return (attendanceScore*float64(attendanceWeight) + taskScore*float64(taskWeight)) / float64(totalWeight)
}

// DisplayScore rounds an overall score for presentation. Ranking always
// uses the unrounded value.
func DisplayScore(overall float64) int {
	return int(math.Round(overall))
}
