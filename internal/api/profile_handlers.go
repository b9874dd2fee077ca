package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/arcade/internal/logger"
)

type createProfileRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("listing profiles")

	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if raw, ok := requestProfileID(r); ok && raw == strconv.FormatInt(id, 10) {
		clearProfileCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfileStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if _, err := s.ProfileService.GetProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetStats(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
