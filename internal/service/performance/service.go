package performance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kinetichr/pulse-backend-go/internal/config"
	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/company"
	"github.com/kinetichr/pulse-backend-go/internal/domain/employee"
	"github.com/kinetichr/pulse-backend-go/internal/domain/performance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
)

const (
	// defaultLookbackDays is the window for leaderboard views
	defaultLookbackDays = 30
	// trendLookbackDays is the window for the long score trend
	trendLookbackDays = 180
	// dailyTrendDays is the short fallback when snapshot history is too
	// thin for a monthly series
	dailyTrendDays = 14
	// minTrendMonths is how many distinct snapshot months a monthly
	// series needs before it is preferred over the daily fallback
	minTrendMonths = 2
)

type PerformanceServiceImpl struct {
	cfg         config.ScoringConfig
	companies   company.CompanyRepository
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	tasks       task.TaskRepository
	snapshots   snapshot.SnapshotRepository
	tiers       performance.TierPolicy
	logger      *slog.Logger

	// now is swapped in tests
	now func() time.Time
}

func NewPerformanceService(
	cfg config.ScoringConfig,
	companies company.CompanyRepository,
	employees employee.EmployeeRepository,
	attendances attendance.AttendanceRepository,
	tasks task.TaskRepository,
	snapshots snapshot.SnapshotRepository,
	logger *slog.Logger,
) performance.PerformanceService {
	return &PerformanceServiceImpl{
		cfg:         cfg,
		companies:   companies,
		employees:   employees,
		attendances: attendances,
		tasks:       tasks,
		snapshots:   snapshots,
		tiers:       FixedTierPolicy{},
		logger:      logger,
		now:         time.Now,
	}
}

// Settings returns the company's scoring settings, falling back to the
// configured defaults (and the company's own timezone) when no KPI
// settings row exists.
func (s *PerformanceServiceImpl) Settings(ctx context.Context, companyID string) (*company.ScoringSettings, error) {
	settings, err := s.companies.GetScoringSettings(ctx, companyID)
	if err == nil {
		if len(settings.WorkingDays) == 0 {
			settings.WorkingDays = company.DefaultWorkingDays()
		}
		return settings, nil
	}
	if !errors.Is(err, company.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load scoring settings: %w", err)
	}

	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company for default settings: %w", err)
	}

	return &company.ScoringSettings{
		CompanyID:        companyID,
		AttendanceWeight: s.cfg.AttendanceWeight,
		TaskWeight:       s.cfg.TaskWeight,
		WorkingDays:      company.DefaultWorkingDays(),
		Timezone:         comp.Timezone,
	}, nil
}

// Leaderboard returns ranked entries for the query window. Snapshot
// rows for the window's end date are preferred; when none exist the
// scores are recomputed live from raw records in three batched queries.
func (s *PerformanceServiceImpl) Leaderboard(ctx context.Context, q performance.Query, limit int) ([]performance.RankedEntry, error) {
	settings, err := s.Settings(ctx, q.CompanyID)
	if err != nil {
		return nil, err
	}

	window := ResolveWindow(settings.Location(), q.StartDate, q.EndDate, defaultLookbackDays, s.now())

	snaps, err := s.snapshots.ListByDate(ctx, q.CompanyID, q.DepartmentID, window.EndDateUTC(), snapshot.PeriodDaily)
	if err != nil {
		// The snapshot store is an optimization; a failed read falls
		// through to the live path instead of failing the request.
		s.logger.Warn("snapshot lookup failed, falling back to live computation",
			slog.String("company_id", q.CompanyID), slog.Any("error", err))
		snaps = nil
	}

	var entries []performance.RankedEntry
	if len(snaps) > 0 {
		entries, err = s.leaderboardFromSnapshots(ctx, q, snaps)
	} else {
		entries, err = s.liveLeaderboard(ctx, q, settings, window)
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// leaderboardFromSnapshots joins precomputed rows with the directory.
// Rank and tier come from the snapshot as written by the batch job.
func (s *PerformanceServiceImpl) leaderboardFromSnapshots(ctx context.Context, q performance.Query, snaps []snapshot.Snapshot) ([]performance.RankedEntry, error) {
	members, err := s.employees.ListActiveForRanking(ctx, q.CompanyID, q.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for snapshot leaderboard: %w", err)
	}

	byID := make(map[string]employee.Employee, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	entries := make([]performance.RankedEntry, 0, len(snaps))
	for _, snap := range snaps {
		member, ok := byID[snap.EmployeeID]
		if !ok {
			// Snapshot refers to someone no longer rankable (left the
			// company or the department filter excludes them).
			continue
		}
		entries = append(entries, performance.RankedEntry{
			EmployeeScore: performance.EmployeeScore{
				EmployeeID: member.ID,
				FullName:   member.FullName,
				Email:      member.Email,
				AvatarURL:  member.AvatarURL,
				Role:       member.Role,
				Attendance: snap.AttendanceScore,
				Tasks:      snap.TaskScore,
				Overall:    snap.OverallScore,
			},
			Rank: snap.Rank,
			Tier: snap.Tier,
		})
	}
	return entries, nil
}

// liveLeaderboard recomputes scores from raw records. Exactly three
// store round-trips regardless of headcount: employees, attendance
// events, due tasks. Per-employee aggregation failures are logged and
// skipped so one malformed record cannot blank the leaderboard.
func (s *PerformanceServiceImpl) liveLeaderboard(ctx context.Context, q performance.Query, settings *company.ScoringSettings, window Window) ([]performance.RankedEntry, error) {
	members, err := s.employees.ListActiveForRanking(ctx, q.CompanyID, q.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(members) == 0 {
		return []performance.RankedEntry{}, nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	start, end := window.UTCBounds()

	events, err := s.attendances.ListEventsInRange(ctx, q.CompanyID, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	records, err := s.tasks.ListDueInRange(ctx, q.CompanyID, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}

	presence := SummarizePresence(CollapseDaily(events, window.Loc))
	taskTotals := SummarizeTasks(records)
	expectedDays := CountWorkingDays(window, settings.WorkingDays)

	scores := make([]performance.EmployeeScore, 0, len(members))
	for _, member := range members {
		score, err := s.scoreEmployee(member, presence[member.ID], taskTotals[member.ID], expectedDays, settings)
		if err != nil {
			s.logger.Warn("skipping employee in live scoring",
				slog.String("employee_id", member.ID), slog.Any("error", err))
			continue
		}
		scores = append(scores, score)
	}

	return Rank(scores, s.tiers), nil
}

func (s *PerformanceServiceImpl) scoreEmployee(member employee.Employee, presence Presence, totals TaskTotals, expectedDays int, settings *company.ScoringSettings) (performance.EmployeeScore, error) {
	if member.ID == "" {
		return performance.EmployeeScore{}, fmt.Errorf("employee record without id")
	}
	if presence.PresentDays < 0 || totals.DueTotal < 0 {
		return performance.EmployeeScore{}, fmt.Errorf("negative aggregate for employee %s", member.ID)
	}

	attendanceScore := AttendanceScore(presence.PresentDays, presence.LateDays, expectedDays, s.cfg.LatePenalty)
	taskScore := TaskScore(totals.OnTime, totals.DueTotal)

	return performance.EmployeeScore{
		EmployeeID: member.ID,
		FullName:   member.FullName,
		Email:      member.Email,
		AvatarURL:  member.AvatarURL,
		Role:       member.Role,
		Attendance: attendanceScore,
		Tasks:      taskScore,
		Overall:    OverallScore(attendanceScore, taskScore, settings.AttendanceWeight, settings.TaskWeight),
	}, nil
}

// ScoreTrend returns the score time series over the long trend window:
// monthly snapshot averages when at least two months of history exist,
// otherwise a daily series over the most recent two weeks.
func (s *PerformanceServiceImpl) ScoreTrend(ctx context.Context, q performance.Query) ([]snapshot.PeriodAverage, error) {
	settings, err := s.Settings(ctx, q.CompanyID)
	if err != nil {
		return nil, err
	}

	window := ResolveWindow(settings.Location(), q.StartDate, q.EndDate, trendLookbackDays, s.now())
	start, end := window.UTCBounds()

	monthly, err := s.snapshots.MonthlyAverages(ctx, q.CompanyID, q.DepartmentID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly score averages: %w", err)
	}
	if len(monthly) >= minTrendMonths {
		return monthly, nil
	}

	shortWindow := Window{
		Start: window.End.AddDate(0, 0, -(dailyTrendDays - 1)),
		End:   window.End,
		Loc:   window.Loc,
	}
	shortStart, shortEnd := shortWindow.UTCBounds()

	daily, err := s.snapshots.DailyAverages(ctx, q.CompanyID, q.DepartmentID, shortStart, shortEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily score averages: %w", err)
	}
	return daily, nil
}
