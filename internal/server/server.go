// internal/server/server.go

// Package server exposes the NLU pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventory-nlu/internal/common/cache"
	"inventory-nlu/internal/common/config"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/service"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New builds the server with all routes registered.
func New(cfg config.ServerConfig, svc *service.Service, resultCache *cache.ResultCache, log logger.Logger) *Server {
	h := &Handler{svc: svc, cache: resultCache, log: log}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/detect-intent", h.DetectIntent)
		r.Post("/parse-response", h.ParseResponse)
		r.Post("/extract-book", h.ExtractBook)
	})
	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Mount("/debug", middleware.Profiler())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      r,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger: log.With(map[string]interface{}{"component": "http_server"}),
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"address": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
