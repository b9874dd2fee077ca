package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, profileID int64) (*models.ProfileStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching cached stats: profile_id=%d", profileID)

	var s models.ProfileStats
	err := r.db.QueryRowContext(ctx, `
SELECT profile_id, sessions_played, challenges_played, total_score, best_session_score,
       success_rate_percent, average_accuracy_percent, updated_at
FROM profile_stats
WHERE profile_id = ?
`, profileID).Scan(&s.ProfileID, &s.SessionsPlayed, &s.ChallengesPlayed, &s.TotalScore, &s.BestSessionScore,
		&s.SuccessRatePercent, &s.AverageAccuracyPercent, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no cached stats: profile_id=%d", profileID)
		} else {
			log.Error("failed to get cached stats: %v", err)
		}
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Save(ctx context.Context, s models.ProfileStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("saving cached stats: profile_id=%d", s.ProfileID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO profile_stats (
    profile_id, sessions_played, challenges_played, total_score, best_session_score,
    success_rate_percent, average_accuracy_percent, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id) DO UPDATE SET
    sessions_played = excluded.sessions_played,
    challenges_played = excluded.challenges_played,
    total_score = excluded.total_score,
    best_session_score = excluded.best_session_score,
    success_rate_percent = excluded.success_rate_percent,
    average_accuracy_percent = excluded.average_accuracy_percent,
    updated_at = excluded.updated_at
`, s.ProfileID, s.SessionsPlayed, s.ChallengesPlayed, s.TotalScore, s.BestSessionScore,
		s.SuccessRatePercent, s.AverageAccuracyPercent, s.UpdatedAt)
	if err != nil {
		log.Error("failed to save cached stats: %v", err)
	}
	return err
}

func (r *statsRepository) CompletedSessionOutcomes(ctx context.Context, profileID int64) ([][]models.ChallengeOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading completed session outcomes: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT s.id, r.id, r.success, r.time_spent_seconds, r.score, r.accuracy
FROM sessions s
LEFT JOIN challenge_runs r ON r.session_id = s.id AND r.finished_at IS NOT NULL
WHERE s.profile_id = ? AND s.completed_at IS NOT NULL
ORDER BY s.id ASC, r.id ASC
`, profileID)
	if err != nil {
		log.Error("failed to query session outcomes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var (
		out     [][]models.ChallengeOutcome
		current int64
	)
	for rows.Next() {
		var (
			sessionID int64
			runID     sql.NullInt64
			success   sql.NullBool
			spent     sql.NullFloat64
			score     sql.NullInt64
			accuracy  sql.NullFloat64
		)
		if err := rows.Scan(&sessionID, &runID, &success, &spent, &score, &accuracy); err != nil {
			log.Error("failed to scan session outcome row: %v", err)
			return nil, err
		}
		if len(out) == 0 || sessionID != current {
			out = append(out, []models.ChallengeOutcome{})
			current = sessionID
		}
		if !runID.Valid {
			continue
		}
		last := len(out) - 1
		out[last] = append(out[last], models.ChallengeOutcome{
			Success:          success.Bool,
			TimeSpentSeconds: spent.Float64,
			Score:            int(score.Int64),
			Accuracy:         floatPtr(accuracy),
		})
	}
	log.Debug("loaded outcomes for %d completed sessions", len(out))
	return out, rows.Err()
}
