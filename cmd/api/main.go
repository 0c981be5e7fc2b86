package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/facility-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/facility-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/facility-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/facility-attendance-go/internal/service/attendance"
	reportService "github.com/cmlabs-hris/facility-attendance-go/internal/service/report"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	storeRepo := postgresql.NewStoreRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	opts := attendanceService.Options{
		BreakCapMinutes: cfg.Attendance.BreakCapMinutes,
		Location:        cfg.Attendance.Location,
	}
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, storeRepo, opts)
	sessionSvc := attendanceService.NewSessionService(attendanceRepo, employeeRepo, storeRepo, opts)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	sessionHandler := appHTTP.NewSessionHandler(sessionSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterConfig{
			CORSOrigins: cfg.App.CORSOrigins,
			Env:         cfg.App.Env,
			Version:     version,
		},
		attendanceHandler,
		sessionHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "addr", "http://localhost"+port, "timezone", cfg.Attendance.TimeZone)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
