package api

import (
	"net/http"

	"github.com/vytor/arcade/internal/errors"
)

type startMatchRequest struct {
	Tier string `json:"tier"`
}

type playMoveRequest struct {
	Cell *int `json:"cell"`
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req startMatchRequest
	if err := decodeJSON(r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.MatchService.StartMatch(r.Context(), sessionID, profile.ID, req.Tier)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, state)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.MatchService.GetMatch(r.Context(), id, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handlePlayMove(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req playMoveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Cell == nil {
		handleError(w, r, errors.NewValidationError("cell", "is required"))
		return
	}

	state, err := s.MatchService.PlayMove(r.Context(), id, profile.ID, *req.Cell)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, state)
}
