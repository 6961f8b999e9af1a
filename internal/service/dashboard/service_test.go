package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetichr/pulse-backend-go/internal/config"
	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/company"
	"github.com/kinetichr/pulse-backend-go/internal/domain/dashboard"
	"github.com/kinetichr/pulse-backend-go/internal/domain/department"
	"github.com/kinetichr/pulse-backend-go/internal/domain/employee"
	domainPerformance "github.com/kinetichr/pulse-backend-go/internal/domain/performance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
)

type fakePerf struct {
	settings       *company.ScoringSettings
	settingsErr    error
	entries        []domainPerformance.RankedEntry
	leaderboardErr error
	trend          []snapshot.PeriodAverage
	trendErr       error

	gotLeaderboardQuery domainPerformance.Query
	gotTrendQuery       domainPerformance.Query
}

func (f *fakePerf) Settings(ctx context.Context, companyID string) (*company.ScoringSettings, error) {
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakePerf) Leaderboard(ctx context.Context, q domainPerformance.Query, limit int) ([]domainPerformance.RankedEntry, error) {
	f.gotLeaderboardQuery = q
	if f.leaderboardErr != nil {
		return nil, f.leaderboardErr
	}
	return f.entries, nil
}

func (f *fakePerf) ScoreTrend(ctx context.Context, q domainPerformance.Query) ([]snapshot.PeriodAverage, error) {
	f.gotTrendQuery = q
	if f.trendErr != nil {
		return nil, f.trendErr
	}
	return f.trend, nil
}

type fakeDepartmentRepo struct {
	departments []department.Department
	err         error
}

func (f *fakeDepartmentRepo) ListByCompany(ctx context.Context, companyID string) ([]department.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.departments, nil
}

type fakeEmployeeRepo struct {
	count        int64
	countErr     error
	headcount    []employee.HeadcountPoint
	headcountErr error
}

func (f *fakeEmployeeRepo) ListActiveForRanking(ctx context.Context, companyID string, departmentID *string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) CountActive(ctx context.Context, companyID string, departmentID *string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeEmployeeRepo) MonthlyHeadcount(ctx context.Context, companyID string, start, end time.Time) ([]employee.HeadcountPoint, error) {
	if f.headcountErr != nil {
		return nil, f.headcountErr
	}
	return f.headcount, nil
}

type fakeAttendanceRepo struct {
	day      *attendance.DayStats
	dayErr   error
	trend    []attendance.TrendPoint
	trendErr error
}

func (f *fakeAttendanceRepo) ListEventsInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]attendance.Event, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) DayStats(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*attendance.DayStats, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	return f.day, nil
}

func (f *fakeAttendanceRepo) DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]attendance.TrendPoint, error) {
	if f.trendErr != nil {
		return nil, f.trendErr
	}
	return f.trend, nil
}

type fakeTaskRepo struct {
	dist     *task.Distribution
	distErr  error
	trend    []task.TrendPoint
	trendErr error
}

func (f *fakeTaskRepo) ListDueInRange(ctx context.Context, companyID string, employeeIDs []string, start, end time.Time) ([]task.Record, error) {
	return nil, nil
}

func (f *fakeTaskRepo) Distribution(ctx context.Context, companyID string, departmentID *string, start, end time.Time) (*task.Distribution, error) {
	if f.distErr != nil {
		return nil, f.distErr
	}
	return f.dist, nil
}

func (f *fakeTaskRepo) DailyTrend(ctx context.Context, companyID string, departmentID *string, start, end time.Time, tz string) ([]task.TrendPoint, error) {
	if f.trendErr != nil {
		return nil, f.trendErr
	}
	return f.trend, nil
}

func happyPerf() *fakePerf {
	avatar := "https://cdn.example.com/alice.png"
	return &fakePerf{
		settings: &company.ScoringSettings{
			CompanyID:        "company-1",
			AttendanceWeight: 40,
			TaskWeight:       60,
			WorkingDays:      company.DefaultWorkingDays(),
			Timezone:         "UTC",
		},
		entries: []domainPerformance.RankedEntry{
			{
				EmployeeScore: domainPerformance.EmployeeScore{
					EmployeeID: "emp-alice",
					FullName:   "Alice",
					Email:      "alice@example.com",
					AvatarURL:  &avatar,
					Role:       employee.RoleEmployee,
					Attendance: 80.909,
					Tasks:      60,
					Overall:    68.364,
				},
				Rank: 1,
				Tier: domainPerformance.TierDiamond,
			},
		},
		trend: []snapshot.PeriodAverage{
			{Period: "2025-08", Overall: 71.3},
			{Period: "2025-09", Overall: 74.8},
		},
	}
}

func newTestService(perf *fakePerf, departments *fakeDepartmentRepo, employees *fakeEmployeeRepo, attendances *fakeAttendanceRepo, tasks *fakeTaskRepo) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		cfg:         config.ScoringConfig{AttendanceWeight: 40, TaskWeight: 60, LatePenalty: 5, LeaderboardLimit: 20},
		perf:        perf,
		departments: departments,
		employees:   employees,
		attendances: attendances,
		tasks:       tasks,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
		},
	}
}

func happyFakes() (*fakePerf, *fakeDepartmentRepo, *fakeEmployeeRepo, *fakeAttendanceRepo, *fakeTaskRepo) {
	perf := happyPerf()
	departments := &fakeDepartmentRepo{departments: []department.Department{
		{ID: "dept-1", Name: "Engineering", CompanyID: "company-1"},
	}}
	employees := &fakeEmployeeRepo{
		count: 10,
		headcount: []employee.HeadcountPoint{
			{Month: "2025-08", Employees: 9},
			{Month: "2025-09", Employees: 10},
		},
	}
	attendances := &fakeAttendanceRepo{
		day: &attendance.DayStats{Present: 7, OnTime: 5, Late: 2},
		trend: []attendance.TrendPoint{
			{Date: "2025-09-29", OnTime: 5, Late: 1, Present: 6},
			{Date: "2025-09-30", OnTime: 4, Late: 2, Present: 6},
		},
	}
	tasks := &fakeTaskRepo{
		dist: &task.Distribution{CompletedOnTime: 4, CompletedLate: 2, Overdue: 1, Open: 3, DueTotal: 10},
		trend: []task.TrendPoint{
			{Date: "2025-09-30", DueTotal: 3, CompletedOnTime: 2},
		},
	}
	return perf, departments, employees, attendances, tasks
}

func TestGetDashboard_AssemblesAllSections(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	svc := newTestService(perf, departments, employees, attendances, tasks)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.NoError(t, err)

	// Filters echo the resolved default window
	assert.Equal(t, "2025-09-01", resp.Filters.StartDate)
	assert.Equal(t, "2025-09-30", resp.Filters.EndDate)

	require.Len(t, resp.Departments, 1)
	assert.Equal(t, "Engineering", resp.Departments[0].Name)

	assert.Equal(t, int64(10), resp.Overview.TotalEmployees)
	assert.Equal(t, int64(7), resp.Overview.AttendanceToday.Present)
	assert.Equal(t, int64(3), resp.Overview.AttendanceToday.Absent)
	assert.InDelta(t, 60, resp.Overview.TaskCompletionRate, 0.001)

	require.Len(t, resp.Leaderboard, 1)
	entry := resp.Leaderboard[0]
	assert.Equal(t, 1, entry.Rank)
	assert.Equal(t, domainPerformance.TierDiamond, entry.Tier)
	assert.Equal(t, "emp-alice", entry.Employee.ID)
	assert.Equal(t, 68, entry.Scores.Overall)
	assert.InDelta(t, 80.909, entry.Scores.Attendance, 0.001)

	// Attendance distribution is summed from the trend
	require.Len(t, resp.Attendance.Distribution, 2)
	assert.Equal(t, dashboard.DistributionSlice{Name: "On Time", Value: 9}, resp.Attendance.Distribution[0])
	assert.Equal(t, dashboard.DistributionSlice{Name: "Late", Value: 3}, resp.Attendance.Distribution[1])
	assert.Equal(t, "2025-09-01", resp.Attendance.Range.StartDate)

	require.Len(t, resp.Tasks.Distribution, 4)
	assert.Equal(t, dashboard.DistributionSlice{Name: "Completed On Time", Value: 4}, resp.Tasks.Distribution[0])
	assert.Equal(t, int64(10), resp.Tasks.DueTotal)

	require.Len(t, resp.Growth.Trend, 2)
	require.Len(t, resp.ScoreTrend, 2)

	// The leaderboard sees the resolved window; the score trend keeps
	// its own long default because the caller sent no dates
	assert.Equal(t, "2025-09-01", perf.gotLeaderboardQuery.StartDate)
	assert.Equal(t, "", perf.gotTrendQuery.StartDate)
	assert.Equal(t, "", perf.gotTrendQuery.EndDate)
}

func TestGetDashboard_ExplicitDatesReachEverySection(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	svc := newTestService(perf, departments, employees, attendances, tasks)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{
		CompanyID: "company-1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", resp.Filters.StartDate)
	assert.Equal(t, "2025-06-15", resp.Filters.EndDate)
	assert.Equal(t, "2025-06-01", perf.gotLeaderboardQuery.StartDate)
	assert.Equal(t, "2025-06-15", perf.gotTrendQuery.EndDate)
}

func TestGetDashboard_SettingsErrorIsFatal(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	perf.settingsErr = company.ErrCompanyNotFound
	svc := newTestService(perf, departments, employees, attendances, tasks)

	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestGetDashboard_FailedSectionDegradesToEmpty(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	perf.leaderboardErr = errors.New("snapshot store down")
	svc := newTestService(perf, departments, employees, attendances, tasks)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.NoError(t, err)
	assert.Empty(t, resp.Leaderboard)

	// Everything else still renders
	assert.Equal(t, int64(10), resp.Overview.TotalEmployees)
	require.Len(t, resp.Departments, 1)
	require.Len(t, resp.ScoreTrend, 2)
}

func TestGetDashboard_AllSectionsFailedIsAnError(t *testing.T) {
	t.Parallel()
	boom := errors.New("database down")
	perf, departments, employees, attendances, tasks := happyFakes()
	perf.leaderboardErr = boom
	perf.trendErr = boom
	departments.err = boom
	employees.countErr = boom
	employees.headcountErr = boom
	attendances.trendErr = boom
	tasks.distErr = boom
	svc := newTestService(perf, departments, employees, attendances, tasks)

	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard unavailable")
}

func TestGetDashboard_AbsentNeverNegative(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	employees.count = 5
	attendances.day = &attendance.DayStats{Present: 8, OnTime: 8}
	svc := newTestService(perf, departments, employees, attendances, tasks)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Overview.AttendanceToday.Absent)
}

func TestGetDashboard_ZeroDueTasksMeansZeroCompletionRate(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	tasks.dist = &task.Distribution{}
	svc := newTestService(perf, departments, employees, attendances, tasks)

	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Overview.TaskCompletionRate)
}

func TestGetScoreTrend_PassesFiltersThrough(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	svc := newTestService(perf, departments, employees, attendances, tasks)

	dept := "11111111-1111-1111-1111-111111111111"
	trend, err := svc.GetScoreTrend(context.Background(), dashboard.DashboardRequest{
		CompanyID:    "company-1",
		DepartmentID: &dept,
		StartDate:    "2025-03-01",
	})

	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, &dept, perf.gotTrendQuery.DepartmentID)
	assert.Equal(t, "2025-03-01", perf.gotTrendQuery.StartDate)
}

func TestGetScoreTrend_EmptyHistoryIsAnEmptySlice(t *testing.T) {
	t.Parallel()
	perf, departments, employees, attendances, tasks := happyFakes()
	perf.trend = nil
	svc := newTestService(perf, departments, employees, attendances, tasks)

	trend, err := svc.GetScoreTrend(context.Background(), dashboard.DashboardRequest{CompanyID: "company-1"})

	require.NoError(t, err)
	assert.NotNil(t, trend)
	assert.Empty(t, trend)
}
