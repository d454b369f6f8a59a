// Package server provides the HTTP trigger for the sheet importer.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/app"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/importer"
	"github.com/bapireddyintent-ghl/ghl-netlify-importer/internal/notifications"
)

// ImportRunner executes one import request. *importer.Importer satisfies it.
type ImportRunner interface {
	Run(ctx context.Context, req importer.Request) (importer.Result, error)
}

// Server is the HTTP server wrapping the import driver.
type Server struct {
	importer ImportRunner
	notifier *notifications.Client
	router   *chi.Mux
	server   *http.Server
}

// New creates a Server. notifier may be nil when summary notifications
// are not configured.
func New(imp ImportRunner, notifier *notifications.Client) *Server {
	s := &Server{
		importer: imp,
		notifier: notifier,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Post("/import", s.handleImport)
	s.router.Get("/healthz", s.handleHealth)
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests.
func (s *Server) Start(cfg app.ServerConfig) error {
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Info().Str("addr", cfg.Addr()).Msg("Server listening")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// requestLogger emits one structured event per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{Message: message, Error: detail})
}
