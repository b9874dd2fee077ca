package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)
		r.Get("/profiles/{id}/stats", s.handleProfileStats)

		r.Get("/challenges", s.handleChallenges)
		r.Get("/puzzles", s.handlePuzzles)
		r.Post("/ai/move", s.handleAIMove)

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Post("/sessions", s.handleStartSession)
			r.Get("/sessions/{id}", s.handleGetSession)
			r.Post("/sessions/{id}/end", s.handleEndSession)
			r.Get("/sessions/{id}/summary", s.handleSessionSummary)
			r.Post("/sessions/{id}/challenges", s.handleStartChallenge)
			r.Post("/sessions/{id}/matches", s.handleStartMatch)
			r.Post("/sessions/{id}/puzzles", s.handleStartPuzzle)

			r.Get("/runs/{id}", s.handleGetRun)
			r.Post("/runs/{id}/submit", s.handleSubmitChallenge)
			r.Post("/runs/{id}/puzzle", s.handleSubmitPuzzle)

			r.Get("/matches/{id}", s.handleGetMatch)
			r.Post("/matches/{id}/moves", s.handlePlayMove)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFoundRoute)
	})
	return r
}
