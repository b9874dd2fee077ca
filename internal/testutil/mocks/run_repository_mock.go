package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arcade/internal/models"
)

// MockRunRepository is a mock implementation of repository.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run models.ChallengeRun) (int64, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRunRepository) Get(ctx context.Context, id int64) (*models.ChallengeRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeRun), args.Error(1)
}

func (m *MockRunRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.ChallengeRun, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChallengeRun), args.Error(1)
}

func (m *MockRunRepository) Finish(ctx context.Context, id int64, outcome models.ChallengeOutcome, finishedAt time.Time, questions []models.QuestionResult) error {
	args := m.Called(ctx, id, outcome, finishedAt, questions)
	return args.Error(0)
}

func (m *MockRunRepository) Questions(ctx context.Context, runID int64) ([]models.QuestionResult, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuestionResult), args.Error(1)
}
