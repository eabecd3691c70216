// Package api exposes the HTTP interface for the crawler service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/newsburst/headline-crawler/internal/crawler"
	"github.com/newsburst/headline-crawler/internal/metrics"
)

// Runner executes a crawl over a date range; *crawler.Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, start, end time.Time, extract crawler.ExtractFunc) (*crawler.HeadlineSet, error)
}

// Server wires HTTP handlers to the crawl engine.
type Server struct {
	router  chi.Router
	engine  Runner
	extract crawler.ExtractFunc
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes. The extractor is
// fixed at construction; every submitted crawl uses it.
func NewServer(engine Runner, extract crawler.ExtractFunc, logger *zap.Logger) *Server {
	metrics.Init()
	s := &Server{
		engine:  engine,
		extract: extract,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/crawls", s.submitCrawl)
	})

	s.router = r
	return s
}

// Router returns the configured handler for mounting on an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := metrics.NewStatusRecorder(w)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
