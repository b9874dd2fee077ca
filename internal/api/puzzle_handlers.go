package api

import (
	"net/http"

	"github.com/vytor/arcade/internal/errors"
)

type startPuzzleRequest struct {
	PuzzleID string `json:"puzzle_id"`
}

type submitPuzzleRequest struct {
	Moves []string `json:"moves"`
}

func (s *Server) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"puzzles": s.PuzzleService.ListPuzzles(r.Context())})
}

func (s *Server) handleStartPuzzle(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req startPuzzleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}

	started, err := s.PuzzleService.StartPuzzle(r.Context(), sessionID, profile.ID, req.PuzzleID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, started)
}

func (s *Server) handleSubmitPuzzle(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	runID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitPuzzleRequest
	if err := decodeJSON(r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.Moves) == 0 {
		handleError(w, r, errors.NewValidationError("moves", "at least one move is required"))
		return
	}

	sub, err := s.PuzzleService.SubmitPuzzle(r.Context(), runID, profile.ID, req.Moves)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, sub)
}
