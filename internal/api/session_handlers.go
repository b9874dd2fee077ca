package api

import (
	"net/http"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	sess, err := s.SessionService.StartSession(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.SessionService.GetSession(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.SessionService.EndSession(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.SessionService.Summary(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}
