package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Group      GroupHandler
	Holiday    HolidayHandler
	Report     ReportHandler
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(app config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance"),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(app.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", h.Attendance.CheckIn)
			r.Post("/check-out", h.Attendance.CheckOut)
			r.Get("/", h.Attendance.List)
			r.Get("/{id}", h.Attendance.Get)

			r.With(middleware.RequireManager).Post("/patch", h.Attendance.Patch)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Post("/", h.Leave.Submit)
			r.Get("/", h.Leave.List)
			r.Get("/balance", h.Leave.Balance)
			r.Get("/{id}", h.Leave.Get)
			r.Post("/{id}/cancel", h.Leave.Cancel)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/{id}/approve", h.Leave.Approve)
				r.Post("/{id}/reject", h.Leave.Reject)
			})
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Post("/", h.Overtime.Submit)
			r.Get("/", h.Overtime.List)
			r.Get("/{id}", h.Overtime.Get)
			r.Post("/{id}/cancel", h.Overtime.Cancel)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/{id}/approve", h.Overtime.Approve)
				r.Post("/{id}/reject", h.Overtime.Reject)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.Get("/", h.Group.List)
			r.Post("/", h.Group.Create)
			r.Get("/resolve/{employeeID}", h.Group.Resolve)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Group.Get)
				r.Put("/", h.Group.Update)
				r.Delete("/", h.Group.Delete)
				r.Post("/members", h.Group.AddMembers)
				r.Delete("/members/{employeeID}", h.Group.RemoveMember)

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", h.Group.ListShifts)
					r.Post("/", h.Group.CreateShift)
					r.Get("/{shiftID}", h.Group.GetShift)
					r.Put("/{shiftID}", h.Group.UpdateShift)
					r.Delete("/{shiftID}", h.Group.DeleteShift)
				})
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.Holiday.List)
			r.Get("/{id}", h.Holiday.Get)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", h.Holiday.Create)
				r.Put("/{id}", h.Holiday.Update)
				r.Delete("/{id}", h.Holiday.Delete)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.RequireManager)
			r.Get("/status", h.Report.StatusHistogram)
			r.Get("/worked-minutes", h.Report.WorkedMinutes)
			r.Get("/leave-hours", h.Report.LeaveHours)
			r.Get("/overtime-hours", h.Report.OvertimeHours)
			r.Get("/summary", h.Report.Summary)
			r.Get("/export", h.Report.Export)
		})
	})

	return r
}
