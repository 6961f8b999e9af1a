package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/kinetichr/pulse-backend-go/internal/config"
	appHTTP "github.com/kinetichr/pulse-backend-go/internal/handler/http"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/database"
	"github.com/kinetichr/pulse-backend-go/internal/pkg/jwt"
	"github.com/kinetichr/pulse-backend-go/internal/repository/postgresql"
	dashboardService "github.com/kinetichr/pulse-backend-go/internal/service/dashboard"
	performanceService "github.com/kinetichr/pulse-backend-go/internal/service/performance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pulse-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	snapshotRepo := postgresql.NewSnapshotRepository(db)

	// Task repo probes the assignee column once, here, at startup
	taskRepo, err := postgresql.NewTaskRepository(context.Background(), db)
	if err != nil {
		logger.Error("failed to initialize task repository", slog.Any("error", err))
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	performanceSvc := performanceService.NewPerformanceService(
		cfg.Scoring,
		companyRepo,
		employeeRepo,
		attendanceRepo,
		taskRepo,
		snapshotRepo,
		logger,
	)
	dashboardSvc := dashboardService.NewDashboardService(
		cfg.Scoring,
		performanceSvc,
		departmentRepo,
		employeeRepo,
		attendanceRepo,
		taskRepo,
		logger,
	)

	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(logger, JWTService, dashboardHandler, cfg.App.FrontendURL)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", slog.String("addr", port))
	if err := http.ListenAndServe(port, router); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
