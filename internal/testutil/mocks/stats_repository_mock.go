package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arcade/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context, profileID int64) (*models.ProfileStats, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileStats), args.Error(1)
}

func (m *MockStatsRepository) Save(ctx context.Context, stats models.ProfileStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) CompletedSessionOutcomes(ctx context.Context, profileID int64) ([][]models.ChallengeOutcome, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]models.ChallengeOutcome), args.Error(1)
}
