package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/arcade/internal/logger"
)

// handleHealth is the liveness probe: the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type readyResponse struct {
	Status     string   `json:"status"`
	Migrations []string `json:"migrations,omitempty"`
}

// handleReady is the readiness probe: 200 with the applied schema migrations
// when the database answers, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		writeJSON(w, r, http.StatusServiceUnavailable, readyResponse{Status: "database unavailable"})
		return
	}

	migrations, err := s.DB.AppliedMigrations(ctx)
	if err != nil {
		log.Warn("readiness check failed - migrations: %v", err)
		writeJSON(w, r, http.StatusServiceUnavailable, readyResponse{Status: "schema unavailable"})
		return
	}
	if len(migrations) == 0 {
		log.Warn("readiness check failed - no migrations applied")
		writeJSON(w, r, http.StatusServiceUnavailable, readyResponse{Status: "schema not migrated"})
		return
	}

	writeJSON(w, r, http.StatusOK, readyResponse{Status: "ready", Migrations: migrations})
}
