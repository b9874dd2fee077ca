package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueStatsRefresh(profileID int64) error {
	args := m.Called(profileID)
	return args.Error(0)
}
