package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/arcade/internal/models"
)

// MockMatchRepository is a mock implementation of repository.MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match models.Match) (int64, error) {
	args := m.Called(ctx, match)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMatchRepository) Get(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) Update(ctx context.Context, match models.Match, fromBoard string) error {
	args := m.Called(ctx, match, fromBoard)
	return args.Error(0)
}
