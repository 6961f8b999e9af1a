package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kinetichr/pulse-backend-go/internal/config"
	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/dashboard"
	"github.com/kinetichr/pulse-backend-go/internal/domain/department"
	"github.com/kinetichr/pulse-backend-go/internal/domain/employee"
	domainPerformance "github.com/kinetichr/pulse-backend-go/internal/domain/performance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
	"github.com/kinetichr/pulse-backend-go/internal/service/performance"
)

// growthTrendMonths is the span of the headcount growth series
const growthTrendMonths = 12

type DashboardServiceImpl struct {
	cfg         config.ScoringConfig
	perf        domainPerformance.PerformanceService
	departments department.DepartmentRepository
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	tasks       task.TaskRepository
	logger      *slog.Logger

	// now is swapped in tests
	now func() time.Time
}

func NewDashboardService(
	cfg config.ScoringConfig,
	perf domainPerformance.PerformanceService,
	departments department.DepartmentRepository,
	employees employee.EmployeeRepository,
	attendances attendance.AttendanceRepository,
	tasks task.TaskRepository,
	logger *slog.Logger,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		cfg:         cfg,
		perf:        perf,
		departments: departments,
		employees:   employees,
		attendances: attendances,
		tasks:       tasks,
		logger:      logger,
		now:         time.Now,
	}
}

// GetDashboard assembles the combined dashboard using parallel
// goroutines, one section each. Sections share only the resolved date
// range and department filter, so they are safe to fan out. A failed
// section degrades to its zero value; the request errors only when
// every section failed.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (*dashboard.DashboardResponse, error) {
	settings, err := s.perf.Settings(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	loc := settings.Location()
	window := performance.ResolveWindow(loc, req.StartDate, req.EndDate, 30, s.now())
	start, end := window.UTCBounds()

	rangeResp := dashboard.RangeResponse{StartDate: window.StartDate(), EndDate: window.EndDate()}

	leaderboardQuery := domainPerformance.Query{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		StartDate:    window.StartDate(),
		EndDate:      window.EndDate(),
	}
	// The score trend keeps its own long default window unless the
	// caller overrode the dates explicitly.
	trendQuery := domainPerformance.Query{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	var (
		departments []department.Department
		overview    dashboard.OverviewResponse
		leaderboard []dashboard.LeaderboardEntry
		attSection  dashboard.AttendanceSection
		taskSection dashboard.TaskSection
		growth      dashboard.GrowthSection
		scoreTrend  []snapshot.PeriodAverage
		sectionErrs [7]error
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Department filter options
	g.Go(func() error {
		result, err := s.departments.ListByCompany(gCtx, req.CompanyID)
		if err != nil {
			sectionErrs[0] = s.degrade("departments", err)
			return nil
		}
		departments = result
		return nil
	})

	// 2. Overview counts
	g.Go(func() error {
		result, err := s.buildOverview(gCtx, req, loc, start, end)
		if err != nil {
			sectionErrs[1] = s.degrade("overview", err)
			return nil
		}
		overview = *result
		return nil
	})

	// 3. Leaderboard (top N)
	g.Go(func() error {
		entries, err := s.perf.Leaderboard(gCtx, leaderboardQuery, s.cfg.LeaderboardLimit)
		if err != nil {
			sectionErrs[2] = s.degrade("leaderboard", err)
			return nil
		}
		leaderboard = toLeaderboardEntries(entries)
		return nil
	})

	// 4. Attendance distribution + trend (1 query, distribution summed in memory)
	g.Go(func() error {
		trend, err := s.attendances.DailyTrend(gCtx, req.CompanyID, req.DepartmentID, start, end, loc.String())
		if err != nil {
			sectionErrs[3] = s.degrade("attendance", err)
			return nil
		}
		attSection = buildAttendanceSection(rangeResp, trend)
		return nil
	})

	// 5. Task distribution + trend
	g.Go(func() error {
		dist, err := s.tasks.Distribution(gCtx, req.CompanyID, req.DepartmentID, start, end)
		if err != nil {
			sectionErrs[4] = s.degrade("tasks", err)
			return nil
		}
		trend, err := s.tasks.DailyTrend(gCtx, req.CompanyID, req.DepartmentID, start, end, loc.String())
		if err != nil {
			sectionErrs[4] = s.degrade("tasks", err)
			return nil
		}
		taskSection = buildTaskSection(rangeResp, dist, trend)
		return nil
	})

	// 6. Growth trend
	g.Go(func() error {
		growthStart := s.now().In(loc).AddDate(0, -(growthTrendMonths - 1), 0)
		trend, err := s.employees.MonthlyHeadcount(gCtx, req.CompanyID, growthStart, s.now().In(loc))
		if err != nil {
			sectionErrs[5] = s.degrade("growth", err)
			return nil
		}
		growth = dashboard.GrowthSection{Trend: trend}
		return nil
	})

	// 7. Score trend
	g.Go(func() error {
		trend, err := s.perf.ScoreTrend(gCtx, trendQuery)
		if err != nil {
			sectionErrs[6] = s.degrade("score_trend", err)
			return nil
		}
		scoreTrend = trend
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Every section failing means the store is down, not a degraded
	// section; surface a single error instead of an all-empty dashboard.
	failed := 0
	var firstErr error
	for _, e := range sectionErrs {
		if e != nil {
			failed++
			if firstErr == nil {
				firstErr = e
			}
		}
	}
	if failed == len(sectionErrs) {
		return nil, fmt.Errorf("dashboard unavailable: %w", firstErr)
	}

	return &dashboard.DashboardResponse{
		Departments: emptyIfNil(departments),
		Filters: dashboard.FiltersResponse{
			DepartmentID: req.DepartmentID,
			StartDate:    window.StartDate(),
			EndDate:      window.EndDate(),
		},
		Overview:    overview,
		Leaderboard: emptyIfNil(leaderboard),
		Attendance:  attSection,
		Tasks:       taskSection,
		Growth:      growth,
		ScoreTrend:  emptyIfNil(scoreTrend),
	}, nil
}

// GetScoreTrend returns the long-window score trend on its own
func (s *DashboardServiceImpl) GetScoreTrend(ctx context.Context, req dashboard.DashboardRequest) ([]snapshot.PeriodAverage, error) {
	trend, err := s.perf.ScoreTrend(ctx, domainPerformance.Query{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return emptyIfNil(trend), nil
}

func (s *DashboardServiceImpl) degrade(section string, err error) error {
	s.logger.Warn("dashboard section degraded", slog.String("section", section), slog.Any("error", err))
	return err
}

// buildOverview issues the three overview counts sequentially inside
// one fan-out slot
func (s *DashboardServiceImpl) buildOverview(ctx context.Context, req dashboard.DashboardRequest, loc *time.Location, start, end time.Time) (*dashboard.OverviewResponse, error) {
	total, err := s.employees.CountActive(ctx, req.CompanyID, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	local := s.now().In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	todayEnd := todayStart.AddDate(0, 0, 1)

	today, err := s.attendances.DayStats(ctx, req.CompanyID, req.DepartmentID, todayStart.UTC(), todayEnd.UTC())
	if err != nil {
		return nil, err
	}

	dist, err := s.tasks.Distribution(ctx, req.CompanyID, req.DepartmentID, start, end)
	if err != nil {
		return nil, err
	}

	absent := total - today.Present
	if absent < 0 {
		absent = 0
	}

	var completionRate float64
	if dist.DueTotal > 0 {
		completionRate = float64(dist.CompletedOnTime+dist.CompletedLate) / float64(dist.DueTotal) * 100
	}

	return &dashboard.OverviewResponse{
		TotalEmployees: total,
		AttendanceToday: dashboard.AttendanceTodayResponse{
			Present: today.Present,
			OnTime:  today.OnTime,
			Late:    today.Late,
			Absent:  absent,
		},
		TaskCompletionRate: completionRate,
	}, nil
}

func buildAttendanceSection(r dashboard.RangeResponse, trend []attendance.TrendPoint) dashboard.AttendanceSection {
	var onTime, late int64
	for _, p := range trend {
		onTime += p.OnTime
		late += p.Late
	}
	return dashboard.AttendanceSection{
		Range: r,
		Distribution: []dashboard.DistributionSlice{
			{Name: "On Time", Value: onTime},
			{Name: "Late", Value: late},
		},
		Trend: emptyIfNil(trend),
	}
}

func buildTaskSection(r dashboard.RangeResponse, dist *task.Distribution, trend []task.TrendPoint) dashboard.TaskSection {
	return dashboard.TaskSection{
		Range: r,
		Distribution: []dashboard.DistributionSlice{
			{Name: "Completed On Time", Value: dist.CompletedOnTime},
			{Name: "Completed Late", Value: dist.CompletedLate},
			{Name: "Overdue", Value: dist.Overdue},
			{Name: "Open", Value: dist.Open},
		},
		DueTotal: dist.DueTotal,
		Trend:    emptyIfNil(trend),
	}
}

func toLeaderboardEntries(entries []domainPerformance.RankedEntry) []dashboard.LeaderboardEntry {
	result := make([]dashboard.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, dashboard.LeaderboardEntry{
			Rank: e.Rank,
			Tier: e.Tier,
			Employee: dashboard.EmployeeSummary{
				ID:     e.EmployeeID,
				Name:   e.FullName,
				Email:  e.Email,
				Avatar: e.AvatarURL,
				Role:   e.Role,
			},
			Scores: dashboard.ScoresResponse{
				Overall:    performance.DisplayScore(e.Overall),
				Attendance: e.Attendance,
				Tasks:      e.Tasks,
			},
		})
	}
	return result
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
