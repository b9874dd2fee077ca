package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/session"
	"github.com/vytor/arcade/internal/timer"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetStats(ctx context.Context, profileID int64) (*models.ProfileStats, error)
	RefreshStats(ctx context.Context, profileID int64) error
}

type statsService struct {
	statsRepo repository.StatsRepository
	clock     timer.Clock
}

// NewStatsService creates a new StatsService. A nil clock uses the system clock.
func NewStatsService(statsRepo repository.StatsRepository, clock timer.Clock) StatsService {
	if clock == nil {
		clock = timer.SystemClock{}
	}
	return &statsService{statsRepo: statsRepo, clock: clock}
}

func (s *statsService) GetStats(ctx context.Context, profileID int64) (*models.ProfileStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile stats: profile_id=%d", profileID)

	stats, err := s.statsRepo.Get(ctx, profileID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			// nothing played yet
			return &models.ProfileStats{ProfileID: profileID}, nil
		}
		log.Error("failed to get profile stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return stats, nil
}

func (s *statsService) RefreshStats(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("refreshing profile stats: profile_id=%d", profileID)

	sessions, err := s.statsRepo.CompletedSessionOutcomes(ctx, profileID)
	if err != nil {
		log.Error("failed to load session outcomes: %v", err)
		return errors.NewInternalError(err)
	}

	stats := BuildProfileStats(profileID, sessions)
	stats.UpdatedAt = s.clock.Now().UTC()

	if err := s.statsRepo.Save(ctx, stats); err != nil {
		log.Error("failed to save profile stats: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("profile stats refreshed: profile_id=%d, sessions=%d, total_score=%d",
		profileID, stats.SessionsPlayed, stats.TotalScore)
	return nil
}

// BuildProfileStats rolls the outcomes of completed sessions up into profile
// statistics. Rates are computed over every outcome, not averaged per session.
func BuildProfileStats(profileID int64, sessions [][]models.ChallengeOutcome) models.ProfileStats {
	stats := models.ProfileStats{ProfileID: profileID, SessionsPlayed: len(sessions)}

	var all []models.ChallengeOutcome
	for _, outcomes := range sessions {
		total := session.TotalScore(outcomes)
		stats.BestSessionScore = max(stats.BestSessionScore, total)
		all = append(all, outcomes...)
	}

	summary := session.Summarize(all)
	stats.ChallengesPlayed = summary.Challenges
	stats.TotalScore = summary.TotalScore
	stats.SuccessRatePercent = summary.SuccessRatePercent
	stats.AverageAccuracyPercent = summary.AverageAccuracyPercent
	return stats
}
