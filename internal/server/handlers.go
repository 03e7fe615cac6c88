package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suraj0791/stockcharts/internal/config"
	"github.com/Suraj0791/stockcharts/internal/dashboard"
	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/storage"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// handleIndex opens a new session seeded from the URL parameters and serves
// the dashboard page. The page's websocket attaches to the session by id.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Open()
	session.ApplyView(view.UpdateFromQuery(r.URL.Query()))

	update, err := session.Snapshot(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	_, entities, _, err := session.Data(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}

	page, err := dashboard.BuildPage(update, entities, config.GetVersion())
	if err != nil {
		s.httpError(w, "failed to build page", err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Session-ID", session.ID())
	w.Write([]byte(page))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"sessions":  s.sessions.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	update, err := session.Snapshot(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	if update.Loading || update.SVG == "" {
		s.httpError(w, "chart not ready", nil, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(update.SVG))
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	dataset, entities, state, err := session.Data(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	if len(dataset) == 0 {
		s.httpError(w, "chart not ready", nil, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := dashboard.RenderPNG(w, dataset, entities, state); err != nil {
		s.log.Error().Err(err).Msg("png export failed")
	}
}

func (s *Server) handleECharts(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	dataset, entities, state, err := session.Data(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	if len(dataset) == 0 {
		s.httpError(w, "chart not ready", nil, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.RenderECharts(w, dataset, entities, state); err != nil {
		s.log.Error().Err(err).Msg("echarts export failed")
	}
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	update, err := session.Snapshot(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, update.View)
}

func (s *Server) handlePostView(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	var update view.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.httpError(w, "invalid view update", err, http.StatusBadRequest)
		return
	}
	session.ApplyView(update)

	snapshot, err := session.Snapshot(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot.View)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	session.Regenerate()
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "regenerating"})
}

// handleSaveSnapshot persists the session's current frame to the snapshot
// store.
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	session := s.sessionFrom(w, r)
	if session == nil {
		return
	}
	update, err := session.Snapshot(r.Context())
	if err != nil {
		s.httpError(w, "session unavailable", err, http.StatusInternalServerError)
		return
	}
	if update.Loading || update.SVG == "" {
		s.httpError(w, "chart not ready", nil, http.StatusConflict)
		return
	}

	now := time.Now().UTC()
	path, err := s.store.Save(r.Context(), []byte(update.SVG), storage.SnapshotFileName(now, "svg"), now)
	if err != nil {
		s.httpError(w, "failed to store snapshot", err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}

	paths, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.httpError(w, "failed to list snapshots", err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": paths,
		"count":     len(paths),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" || strings.Contains(path, "..") {
		s.httpError(w, "invalid snapshot path", nil, http.StatusBadRequest)
		return
	}

	data, err := s.store.Load(r.Context(), path)
	if err != nil {
		s.httpError(w, "snapshot not found", err, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", storage.ContentType(path))
	w.Write(data)
}

// sessionFrom resolves the session query parameter, writing the error
// response itself when the session is missing or unknown.
func (s *Server) sessionFrom(w http.ResponseWriter, r *http.Request) *engine.Session {
	id := r.URL.Query().Get("session")
	if id == "" {
		s.httpError(w, "session parameter required", nil, http.StatusBadRequest)
		return nil
	}
	session := s.sessions.Get(id)
	if session == nil {
		s.httpError(w, "unknown session", nil, http.StatusNotFound)
		return nil
	}
	return session
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) httpError(w http.ResponseWriter, message string, err error, status int) {
	if err != nil {
		s.log.Warn().Err(err).Str("message", message).Msg("request failed")
	}
	http.Error(w, message, status)
}
