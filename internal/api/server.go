// Package api wires the HTTP surface of the bill-splitting service:
// router, middleware, and handler registration.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartsplit-app/smartsplit-backend/internal/api/handlers"
	"github.com/smartsplit-app/smartsplit-backend/internal/api/middleware"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
	"github.com/smartsplit-app/smartsplit-backend/internal/obs"
)

// Config holds API server configuration.
type Config struct {
	Port            int
	AllowedOrigins  []string
	DefaultCurrency string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		DefaultCurrency: "GBP",
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	metrics    *obs.HTTPMetrics
}

// NewServer creates a new API server. Passing a nil registry uses the
// default Prometheus registerer.
func NewServer(cfg Config, repo storage.Repository, logger *slog.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultConfig().DefaultCurrency
	}

	var registerer prometheus.Registerer
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if reg != nil {
		registerer = reg
		gatherer = reg
	}

	s := &Server{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		repo:    repo,
		metrics: obs.NewHTTPMetrics("smartsplit", registerer),
	}

	s.setupMiddleware()
	s.setupRoutes(gatherer)

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(middleware.Logging(s.logger))
	s.router.Use(s.metrics.Middleware)
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	// Prometheus scrape endpoint
	s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Bills
		billsHandler := handlers.NewBillsHandler(s.repo, s.config.DefaultCurrency)
		r.Post("/bills", billsHandler.Create)
		r.Get("/bills", billsHandler.List)
		r.Get("/bills/{id}", billsHandler.Get)
		r.Put("/bills/{id}", billsHandler.Update)
		r.Delete("/bills/{id}", billsHandler.Delete)

		// Items and diners on a bill
		r.Post("/bills/{id}/items", billsHandler.AddItems)
		r.Put("/bills/{id}/items/{itemID}", billsHandler.UpdateItem)
		r.Post("/bills/{id}/diners", billsHandler.AddDiner)
		r.Post("/bills/{id}/items/{itemID}/assignments/{dinerID}", billsHandler.ToggleAssignment)
		r.Put("/bills/{id}/service-charge", billsHandler.SetServiceCharge)

		// Computed split
		splitHandler := handlers.NewSplitHandler(s.repo)
		r.Get("/bills/{id}/split", splitHandler.Get)

		// Service-charge menu
		ratesHandler := handlers.NewRatesHandler()
		r.Get("/service-rates", ratesHandler.Get)

		// Stats
		statsHandler := handlers.NewStatsHandler(s.repo)
		r.Get("/stats", statsHandler.Get)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
