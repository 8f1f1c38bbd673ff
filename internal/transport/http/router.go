package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"steamlens/internal/config"
	apierrors "steamlens/internal/errors"
	"steamlens/internal/infrastructure"
)

// RouterOptions carries the dependencies of the HTTP surface.
type RouterOptions struct {
	Service        DatasetServiceInterface
	Logger         *slog.Logger
	Metrics        *infrastructure.Metrics
	RateLimit      config.RateLimitConfig
	MetricsHandler http.Handler // mounted at /metrics when set
	Version        string
}

// NewRouter assembles the chi router with the full middleware chain and all
// API routes.
func NewRouter(opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger, opts.Metrics))
	r.Use(middleware.Recoverer)
	if opts.RateLimit.Enabled {
		limiter := rate.NewLimiter(rate.Limit(opts.RateLimit.RPS), opts.RateLimit.Burst)
		r.Use(RateLimit(limiter))
	}

	health := NewHealthHandler(opts.Service, opts.Version)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", health.Routes())
		r.Get("/version", health.GetVersion)
		r.Mount("/catalog", NewCatalogHandler(opts.Service, logger, errorHandler).Routes())
		r.Mount("/regression", NewRegressionHandler(opts.Service, logger, errorHandler).Routes())
	})

	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}

	return r
}
