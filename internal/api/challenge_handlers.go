package api

import (
	"net/http"

	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/services"
)

type startChallengeRequest struct {
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
}

type aiMoveRequest struct {
	Board string `json:"board"`
	Tier  string `json:"tier"`
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"challenges": challenge.Catalog()})
}

func (s *Server) handleStartChallenge(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req startChallengeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	kind, err := challenge.ParseKind(req.Kind)
	if err != nil {
		handleError(w, r, errors.NewValidationError("kind", "unknown challenge kind"))
		return
	}

	started, err := s.SessionService.StartChallenge(r.Context(), sessionID, profile.ID, kind, req.Difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, started)
}

func (s *Server) handleSubmitChallenge(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	runID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var sub services.ChallengeSubmission
	if err := decodeJSON(r, &sub, true); err != nil {
		handleError(w, r, err)
		return
	}

	run, err := s.SessionService.SubmitChallenge(r.Context(), runID, profile.ID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"run": run, "outcome": run.Outcome()})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	runID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.SessionService.GetRun(r.Context(), runID, profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	var req aiMoveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.MatchService.AIMove(r.Context(), req.Board, req.Tier)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}
