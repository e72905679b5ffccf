package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"TrendEngine/internal/analysis"
	"TrendEngine/internal/config"
	"TrendEngine/internal/ports"
)

// Server exposes stored briefs and on-demand analysis over HTTP.
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer builds the router. repo may be nil, in which case the brief
// endpoints answer 503.
func NewServer(cfg config.ServerConfig, repo ports.SnapshotRepository, reg *analysis.Registry, topN int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = analysis.DefaultRegistry()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	h := &handlers{repo: repo, registry: reg, topN: topN, logger: logger}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/briefs", func(r chi.Router) {
			r.Get("/", h.listBriefs)
			r.Get("/latest", h.latestBrief)
			r.Get("/{date}", h.briefByDate)
		})

		r.Post("/analyze", h.analyze)
	})

	return &Server{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router: router,
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
