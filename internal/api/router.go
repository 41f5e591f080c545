// internal/api/router.go

// Package api serves the career form endpoint and health checks over chi.
package api

import (
	"context"
	"net/http"
	"time"

	"career-workers/internal/career"
	"career-workers/internal/common/config"
	"career-workers/internal/common/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is a dependency checked by GET /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Service *career.Service
	Config  config.HTTPConfig
	Logger  logger.Logger
	// Checks maps a dependency name to its readiness check.
	Checks map[string]Pinger
}

type Handler struct {
	service        *career.Service
	logger         logger.Logger
	checks         map[string]Pinger
	maxUploadBytes int64
}

func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	maxUpload := opts.Config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &Handler{
		service:        opts.Service,
		logger:         opts.Logger.WithFields(map[string]interface{}{"component": "http"}),
		checks:         opts.Checks,
		maxUploadBytes: maxUpload,
	}
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(opts Options) http.Handler {
	h := NewHandler(opts)

	origins := opts.Config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/career", func(r chi.Router) {
		if opts.Config.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.Config.RateLimit, time.Minute))
		}
		r.Post("/", h.Recommend)
		r.Get("/history/{userID}", h.History)
	})

	return r
}

// NewServer wraps the router in an http.Server using the configured timeouts.
func NewServer(opts Options) *http.Server {
	return &http.Server{
		Addr:         opts.Config.Address,
		Handler:      NewRouter(opts),
		ReadTimeout:  config.GetDuration(opts.Config.ReadTimeout),
		WriteTimeout: config.GetDuration(opts.Config.WriteTimeout),
	}
}
