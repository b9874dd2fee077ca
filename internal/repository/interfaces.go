package repository

import (
	"context"
	"time"

	"github.com/vytor/arcade/internal/models"
)

// Lookups by id return sql.ErrNoRows when the row does not exist.

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// SessionRepository handles play session data access
type SessionRepository interface {
	Create(ctx context.Context, profileID int64, token string, startedAt time.Time) (*models.Session, error)
	Get(ctx context.Context, id int64) (*models.Session, error)
	Complete(ctx context.Context, id int64, completedAt time.Time) error
	ListByProfile(ctx context.Context, profileID int64, limit int) ([]models.Session, error)
}

// RunRepository handles challenge run data access
type RunRepository interface {
	Create(ctx context.Context, run models.ChallengeRun) (int64, error)
	Get(ctx context.Context, id int64) (*models.ChallengeRun, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.ChallengeRun, error)
	Finish(ctx context.Context, id int64, outcome models.ChallengeOutcome, finishedAt time.Time, questions []models.QuestionResult) error
	Questions(ctx context.Context, runID int64) ([]models.QuestionResult, error)
}

// MatchRepository handles tic-tac-toe match data access
type MatchRepository interface {
	Create(ctx context.Context, m models.Match) (int64, error)
	Get(ctx context.Context, id int64) (*models.Match, error)
	Update(ctx context.Context, m models.Match, fromBoard string) error
}

// StatsRepository handles the cached per-profile statistics
type StatsRepository interface {
	Get(ctx context.Context, profileID int64) (*models.ProfileStats, error)
	Save(ctx context.Context, stats models.ProfileStats) error
	// CompletedSessionOutcomes returns the finished-run outcomes of every
	// completed session of the profile, one slice per session.
	CompletedSessionOutcomes(ctx context.Context, profileID int64) ([][]models.ChallengeOutcome, error)
}
