package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tradesim/walletd/internal/adapter/http/handler"
	"github.com/tradesim/walletd/internal/adapter/http/middleware"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/auth"
	"github.com/tradesim/walletd/internal/infrastructure/metrics"
	"github.com/tradesim/walletd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler    *handler.WalletHandler
	UserHandler      *handler.UserHandler
	AuthHandler      *handler.AuthHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Registration and login stay open
		r.Post("/users", cfg.UserHandler.Create)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			} else {
				r.Use(middleware.OptionalAuth(cfg.JWTManager))
			}

			r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

			// Users
			r.Get("/users", cfg.UserHandler.List)
			r.Get("/users/{id}", cfg.UserHandler.Get)

			// Wallets
			r.Route("/wallets/{userID}", func(r chi.Router) {
				r.Get("/", cfg.WalletHandler.Get)
				r.Get("/entries", cfg.WalletHandler.ListEntries)
				r.Get("/verify", cfg.WalletHandler.Verify)

				r.Group(func(r chi.Router) {
					if cfg.AuthEnabled {
						r.Use(middleware.RequireRole(domain.RoleOperator))
					}
					r.Post("/entries", cfg.WalletHandler.Record)
				})

				r.Group(func(r chi.Router) {
					if cfg.AuthEnabled {
						r.Use(middleware.RequireRole(domain.RoleAdmin))
					}
					r.Post("/reset", cfg.WalletHandler.Reset)
					if cfg.AuditHandler != nil {
						r.Get("/audit", cfg.AuditHandler.ListForWallet)
					}
				})
			})
		})
	})

	return r
}
