/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. CORS:          Cross-origin requests for frontend
  3. RequestLogger: Structured request logging (httplog over slog)
  4. CleanPath:     Path normalization
  5. Recoverer:     Panic recovery (500 instead of crash)
  6. Heartbeat:     Liveness endpoint at /ping

ROUTE GROUPS:
  /api/employees/*     Employee management, balances, departure quota
  /api/leaves/*        Leave records
  /api/departures/*    Early departure records
  /api/holidays/*      Public holiday calendar
  /api/holiday-work/*  Holiday-work compensation records
  /api/adjustments/*   Manual balance adjustments
  /api/policy          Company weekend policy
  /api/reports/*       Bulk balance reports

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions carries the environment-driven router settings.
type RouterOptions struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-engine"),
	)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Get("/{id}/balance", h.GetBalance)
			r.Get("/{id}/departure-quota", h.GetDepartureQuota)
		})

		// Leave routes
		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", h.ListLeaves)
			r.Post("/", h.CreateLeave)
			r.Put("/{id}", h.ReplaceLeave)
			r.Delete("/{id}", h.DeleteLeave)
		})

		// Departure routes
		r.Route("/departures", func(r chi.Router) {
			r.Get("/", h.ListDepartures)
			r.Post("/", h.CreateDeparture)
			r.Put("/{id}", h.ReplaceDeparture)
			r.Delete("/{id}", h.DeleteDeparture)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Holiday-work compensation routes
		r.Route("/holiday-work", func(r chi.Router) {
			r.Get("/", h.ListHolidayWork)
			r.Post("/", h.CreateHolidayWork)
			r.Delete("/{id}", h.DeleteHolidayWork)
		})

		// Adjustment routes
		r.Route("/adjustments", func(r chi.Router) {
			r.Get("/", h.ListAdjustments)
			r.Post("/", h.CreateAdjustment)
			r.Delete("/{id}", h.DeleteAdjustment)
		})

		// Policy routes
		r.Route("/policy", func(r chi.Router) {
			r.Get("/", h.GetPolicy)
			r.Put("/", h.UpdatePolicy)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/annual-balances", h.GetAnnualBalanceReport)
		})
	})

	return r
}
