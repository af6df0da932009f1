package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/handler"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/middleware"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LoanHandler      *handler.LoanHandler
	PaymentHandler   *handler.PaymentHandler
	RuleHandler      *handler.RuleHandler
	SweepHandler     *handler.SweepHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Loans
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Get("/{id}/schedule", cfg.LoanHandler.GetSchedule)
			r.Post("/{id}/close", cfg.LoanHandler.Close)
			r.Post("/{id}/payments", cfg.PaymentHandler.Create)
			r.Get("/{id}/installments/{seq}", cfg.PaymentHandler.GetInstallment)
		})

		// Penalty rules
		r.Route("/rules", func(r chi.Router) {
			r.Post("/", cfg.RuleHandler.Create)
			r.Get("/", cfg.RuleHandler.List)
			r.Get("/active", cfg.RuleHandler.GetActive)
			r.Get("/{id}", cfg.RuleHandler.Get)
			r.Post("/{id}/activate", cfg.RuleHandler.Activate)
			r.Post("/{id}/deactivate", cfg.RuleHandler.Deactivate)
		})

		// Accrual sweeps
		r.Post("/sweeps", cfg.SweepHandler.Run)
	})

	return r
}
