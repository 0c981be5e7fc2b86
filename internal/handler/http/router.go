package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the environment-dependent router settings.
type RouterConfig struct {
	CORSOrigins []string
	Env         string
	Version     string
}

func NewRouter(
	JWTService jwt.Service,
	cfg RouterConfig,
	attendanceHandler AttendanceHandler,
	sessionHandler SessionHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "facility-attendance"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", storeCodeHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", attendanceHandler.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/date/{date}", attendanceHandler.GetByDate)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewStore)).Get("/store/{storeCode}", attendanceHandler.GetByStore)
				r.With(middleware.RequirePermission(user.PermissionAttendanceStats)).Get("/stats", attendanceHandler.Stats)
				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/export", reportHandler.ExportAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceMark)).Post("/", attendanceHandler.Mark)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", attendanceHandler.Get)
					r.With(middleware.RequirePermission(user.PermissionAttendanceUpdate)).Put("/", attendanceHandler.Update)
					r.With(middleware.RequirePermission(user.PermissionAttendanceVerify)).Put("/verify", attendanceHandler.Verify)
				})
			})

			r.Route("/attendance-manager", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceSession))
					r.Post("/checkin", sessionHandler.CheckIn)
					r.Post("/start-break", sessionHandler.StartBreak)
					r.Post("/end-break", sessionHandler.EndBreak)
					r.Post("/checkout", sessionHandler.CheckOut)
					r.Get("/status", sessionHandler.Status)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceHistory)).Get("/employee-history", sessionHandler.EmployeeHistory)
			})
		})
	})

	return r
}
