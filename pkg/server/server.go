// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/titlelens/pkg/config"
	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
)

const (
	compressLevel = 5
	corsMaxAge    = 300
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTracer sets the tracer used for request spans. Defaults to a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) { s.tracer = tracer }
}

// WithREDMetrics records request rate, errors and duration on red.
func WithREDMetrics(red *observability.REDMetrics) Option {
	return func(s *Server) { s.red = red }
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

// WithCORS allows cross-origin requests from origins.
func WithCORS(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithRenderOptions sets the options passed to every renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(s *Server) { s.renderOpts = opts }
}

// WithClock overrides the time source used in health responses.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	dash           *dashboard.Dashboard
	router         *chi.Mux
	logger         *slog.Logger
	tracer         trace.Tracer
	red            *observability.REDMetrics
	metricsHandler http.Handler
	corsOrigins    []string
	renderOpts     []render.Option
	now            func() time.Time
}

// New creates a Server over dash with all routes configured.
func New(dash *dashboard.Dashboard, opts ...Option) *Server {
	s := &Server{
		dash:   dash,
		router: chi.NewRouter(),
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("titlelens"),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(observability.HTTPMiddleware(s.tracer, s.red, s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(compressLevel))

	if len(s.corsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         corsMaxAge,
		}))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)

	if s.metricsHandler != nil {
		s.router.Handle("/metrics", s.metricsHandler)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleCharts)
			r.Get("/{chart}", s.handleChart)
		})

		r.Get("/filter", s.handleGetFilter)
		r.Put("/filter", s.handlePutFilter)
		r.Get("/records/count", s.handleRecordCount)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFound(r.Context(), w, "not found", s.logger)
	})
}

// Run listens on cfg.Addr() and serves until ctx is cancelled, then shuts
// down gracefully within cfg.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	return s.Serve(ctx, listener, cfg)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener, cfg config.ServerConfig) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- srv.Serve(listener)
	}()

	s.logger.InfoContext(ctx, "dashboard server listening",
		"addr", listener.Addr().String(),
		"records", s.dash.Len())

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	s.logger.InfoContext(shutdownCtx, "dashboard server shutting down")

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}
