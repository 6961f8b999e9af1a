package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kinetichr/pulse-backend-go/internal/domain/dashboard"
	"github.com/kinetichr/pulse-backend-go/internal/handler/http/response"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/validator"
)

type DashboardHandler interface {
	// GetDashboard returns the combined performance dashboard
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetScoreTrend returns the long-window score trend
	GetScoreTrend(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// getCompanyID extracts company_id from JWT claims
func getCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in claims")
	}
	return companyID, nil
}

// parseRequest builds the dashboard request from JWT claims and query
// parameters. Malformed dates are rejected rather than silently
// replaced, so clients notice their filter never applied.
func parseRequest(r *http.Request) (dashboard.DashboardRequest, error) {
	companyID, err := getCompanyID(r.Context())
	if err != nil {
		return dashboard.DashboardRequest{}, err
	}

	req := dashboard.DashboardRequest{CompanyID: companyID}

	if dept := r.URL.Query().Get("department_id"); dept != "" {
		if !validator.IsValidUUID(dept) {
			return dashboard.DashboardRequest{}, validator.ValidationErrors{
				{Field: "department_id", Message: "department_id must be a valid UUID"},
			}
		}
		req.DepartmentID = &dept
	}

	var errs validator.ValidationErrors
	if start := r.URL.Query().Get("start_date"); start != "" {
		if _, ok := validator.IsValidDate(start); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
		req.StartDate = start
	}
	if end := r.URL.Query().Get("end_date"); end != "" {
		if _, ok := validator.IsValidDate(end); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
		req.EndDate = end
	}
	if len(errs) > 0 {
		return dashboard.DashboardRequest{}, errs
	}

	return req, nil
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetScoreTrend handles GET /dashboard/score-trend
func (h *dashboardHandlerImpl) GetScoreTrend(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetScoreTrend(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
