package dashboard

import (
	"github.com/kinetichr/pulse-backend-go/internal/domain/attendance"
	"github.com/kinetichr/pulse-backend-go/internal/domain/department"
	"github.com/kinetichr/pulse-backend-go/internal/domain/employee"
	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
	"github.com/kinetichr/pulse-backend-go/internal/domain/task"
)

// DashboardRequest scopes one dashboard request. DepartmentID and the
// date overrides come from query parameters; CompanyID from the JWT.
type DashboardRequest struct {
	CompanyID    string
	DepartmentID *string
	StartDate    string // Format: "YYYY-MM-DD", optional
	EndDate      string // Format: "YYYY-MM-DD", optional
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Departments []department.Department  `json:"departments"`
	Filters     FiltersResponse          `json:"filters"`
	Overview    OverviewResponse         `json:"overview"`
	Leaderboard []LeaderboardEntry       `json:"leaderboard"`
	Attendance  AttendanceSection        `json:"attendance"`
	Tasks       TaskSection              `json:"tasks"`
	Growth      GrowthSection            `json:"growth"`
	ScoreTrend  []snapshot.PeriodAverage `json:"score_trend"`
}

// FiltersResponse echoes the resolved filter so clients render the
// window that was actually computed
type FiltersResponse struct {
	DepartmentID *string `json:"department_id"`
	StartDate    string  `json:"start_date"` // Format: "YYYY-MM-DD"
	EndDate      string  `json:"end_date"`   // Format: "YYYY-MM-DD"
}

// ========== OVERVIEW ==========

type OverviewResponse struct {
	TotalEmployees     int64                   `json:"total_employees"`
	AttendanceToday    AttendanceTodayResponse `json:"attendance_today"`
	TaskCompletionRate float64                 `json:"task_completion_rate"`
}

type AttendanceTodayResponse struct {
	Present int64 `json:"present"`
	OnTime  int64 `json:"on_time"`
	Late    int64 `json:"late"`
	Absent  int64 `json:"absent"` // active headcount minus present
}

// ========== LEADERBOARD ==========

type LeaderboardEntry struct {
	Rank     int             `json:"rank"`
	Tier     string          `json:"tier"`
	Employee EmployeeSummary `json:"employee"`
	Scores   ScoresResponse  `json:"scores"`
}

type EmployeeSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
	Role   string  `json:"role"`
}

type ScoresResponse struct {
	Overall    int     `json:"overall"` // rounded for display
	Attendance float64 `json:"attendance"`
	Tasks      float64 `json:"tasks"`
}

// ========== ATTENDANCE SECTION ==========

type AttendanceSection struct {
	Range        RangeResponse           `json:"range"`
	Distribution []DistributionSlice     `json:"distribution"`
	Trend        []attendance.TrendPoint `json:"trend"`
}

// ========== TASK SECTION ==========

type TaskSection struct {
	Range        RangeResponse       `json:"range"`
	Distribution []DistributionSlice `json:"distribution"`
	DueTotal     int64               `json:"due_total"`
	Trend        []task.TrendPoint   `json:"trend"`
}

// DistributionSlice is one pie-chart slice
type DistributionSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type RangeResponse struct {
	StartDate string `json:"start_date"` // Format: "YYYY-MM-DD"
	EndDate   string `json:"end_date"`   // Format: "YYYY-MM-DD"
}

// ========== GROWTH ==========

type GrowthSection struct {
	Trend []employee.HeadcountPoint `json:"trend"`
}
