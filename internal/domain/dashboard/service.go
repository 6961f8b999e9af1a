package dashboard

import (
	"context"

	"github.com/kinetichr/pulse-backend-go/internal/domain/snapshot"
)

// DashboardService assembles the company performance dashboard
type DashboardService interface {
	// GetDashboard returns the combined dashboard for a company,
	// optionally scoped to one department
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)

	// GetScoreTrend returns the long-window score trend on its own
	GetScoreTrend(ctx context.Context, req DashboardRequest) ([]snapshot.PeriodAverage, error)
}
