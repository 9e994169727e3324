// Package server exposes the engine over HTTP.
//
// Routes:
//
//	POST /v1/{operation}         bead array in, operation result out
//	POST /v1/batch/{operation}   array of bead arrays in, array of results out
//	POST /v1/render?format=svg   bead array in, rendered graph out
//	GET  /v1/operations          registered operations
//	GET  /v1/metrics             timing targets and live counters
//	GET  /healthz                liveness and build info
//
// Failures are encoded as {"code": "...", "message": "..."} with a status
// derived from the error code. Every response carries an X-Request-ID.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/beadgraph/pkg/observability"
	"github.com/matzehuels/beadgraph/pkg/pipeline"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 32 << 20

// Server serves analyses from a pipeline.Runner.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	counters *observability.Counters
	maxBody  int64
}

// Option configures a Server.
type Option func(*Server)

// WithCounters exposes c at /v1/metrics. The caller registers c as hooks.
func WithCounters(c *observability.Counters) Option {
	return func(s *Server) { s.counters = c }
}

// WithMaxBody overrides DefaultMaxBody.
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a server. A nil logger selects log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, maxBody: DefaultMaxBody}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(s.accessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(s.maxBody))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/operations", s.handleOperations)
		r.Get("/metrics", s.handleMetrics)
		r.Post("/render", s.handleRender)
		r.Post("/batch/{operation}", s.handleBatch)
		r.Post("/{operation}", s.handleAnalyze)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
