// Package server exposes the chart engine over HTTP: the dashboard page, the
// rendered frame in several formats, a small JSON API and a per-session
// websocket carrying gestures in and frames out.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/config"
	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/storage"
)

// Server is the HTTP front of the dashboard service.
type Server struct {
	cfg      *config.Config
	sessions *engine.Manager
	store    storage.Client
	log      zerolog.Logger
}

// New creates a server over the given session registry and snapshot store.
func New(cfg *config.Config, sessions *engine.Manager, store storage.Client, log zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		log:      log,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/chart.svg", s.handleChartSVG)
	r.Get("/chart.png", s.handleChartPNG)
	r.Get("/echarts", s.handleECharts)
	r.Get("/api/view", s.handleGetView)
	r.Post("/api/view", s.handlePostView)
	r.Post("/api/regenerate", s.handleRegenerate)
	r.Post("/api/snapshot", s.handleSaveSnapshot)
	r.Get("/snapshots", s.handleListSnapshots)
	r.Get("/snapshots/*", s.handleGetSnapshot)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("port", s.cfg.Port).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.sessions.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
