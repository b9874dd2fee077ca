package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/opponent"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/services"
	"github.com/vytor/arcade/internal/testutil/mocks"
)

type matchFixture struct {
	sessions *mocks.MockSessionRepository
	runs     *mocks.MockRunRepository
	matches  *mocks.MockMatchRepository
	svc      services.MatchService
}

func newMatchFixture(clock *fixedClock) *matchFixture {
	f := &matchFixture{
		sessions: new(mocks.MockSessionRepository),
		runs:     new(mocks.MockRunRepository),
		matches:  new(mocks.MockMatchRepository),
	}
	f.svc = services.NewMatchService(f.sessions, f.runs, f.matches, opponent.NewRand(7), time.Second, clock)
	return f
}

func (f *matchFixture) withMatch(boardText string) {
	f.matches.On("Get", mock.Anything, int64(3)).Return(&models.Match{
		ID: 3, RunID: 55, Tier: "optimal", Board: boardText, HumanMark: "X", Status: models.MatchInProgress,
	}, nil)
	f.runs.On("Get", mock.Anything, int64(55)).Return(runOf(models.KindTicTacToe, 100, 120), nil)
	f.sessions.On("Get", mock.Anything, int64(10)).Return(openSessionOf(1), nil)
}

func TestMatchService_StartMatch(t *testing.T) {
	f := newMatchFixture(clockAt(0))

	f.sessions.On("Get", mock.Anything, int64(10)).Return(openSessionOf(1), nil)
	f.runs.On("Create", mock.Anything, mock.MatchedBy(func(r models.ChallengeRun) bool {
		return r.Kind == models.KindTicTacToe && r.BaseScore == 100
	})).Return(int64(55), nil)
	f.matches.On("Create", mock.Anything, mock.MatchedBy(func(m models.Match) bool {
		return m.RunID == 55 && m.Tier == "optimal" && m.Board == "_________" && m.HumanMark == "X"
	})).Return(int64(3), nil)

	state, err := f.svc.StartMatch(context.Background(), 10, 1, "hard")
	require.NoError(t, err)
	assert.Equal(t, int64(3), state.Match.ID)
	assert.Equal(t, models.MatchInProgress, state.Match.Status)
	assert.Nil(t, state.Run)
}

func TestMatchService_StartMatch_BadTier(t *testing.T) {
	f := newMatchFixture(clockAt(0))

	_, err := f.svc.StartMatch(context.Background(), 10, 1, "grandmaster")
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestMatchService_PlayMove_HumanWins(t *testing.T) {
	f := newMatchFixture(clockAt(30 * time.Second))
	f.withMatch("XX_OO____")

	f.matches.On("Update", mock.Anything, mock.MatchedBy(func(m models.Match) bool {
		return m.Board == "XXXOO____" && m.Status == models.MatchHumanWon
	}), "XX_OO____").Return(nil)
	want := models.ChallengeOutcome{Success: true, TimeSpentSeconds: 30, Score: 138}
	f.runs.On("Finish", mock.Anything, int64(55), want, mock.Anything, []models.QuestionResult(nil)).Return(nil)

	state, err := f.svc.PlayMove(context.Background(), 3, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, state.AIMove)
	assert.Equal(t, []int{0, 1, 2}, state.Match.WinningLine)
	require.NotNil(t, state.Run)
	assert.Equal(t, 138, state.Run.Score)
	f.matches.AssertExpectations(t)
	f.runs.AssertExpectations(t)
}

func TestMatchService_PlayMove_AIReplies(t *testing.T) {
	f := newMatchFixture(clockAt(10 * time.Second))
	f.withMatch("X___O____")

	f.matches.On("Update", mock.Anything, mock.MatchedBy(func(m models.Match) bool {
		return m.Status == models.MatchInProgress
	}), "X___O____").Return(nil)

	state, err := f.svc.PlayMove(context.Background(), 3, 1, 8)
	require.NoError(t, err)
	require.NotNil(t, state.AIMove)
	assert.Nil(t, state.Run)

	b := state.Match.Board
	assert.Equal(t, byte('X'), b[8])
	assert.Equal(t, byte('O'), b[*state.AIMove])
	f.runs.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_PlayMove_AIWins(t *testing.T) {
	f := newMatchFixture(clockAt(10 * time.Second))
	// the player ignores the threat on the middle row
	f.withMatch("X__OO___X")

	f.matches.On("Update", mock.Anything, mock.MatchedBy(func(m models.Match) bool {
		return m.Status == models.MatchAIWon
	}), "X__OO___X").Return(nil)
	f.runs.On("Finish", mock.Anything, int64(55), models.ChallengeOutcome{TimeSpentSeconds: 10}, mock.Anything, mock.Anything).Return(nil)

	state, err := f.svc.PlayMove(context.Background(), 3, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, state.AIMove)
	assert.Equal(t, 5, *state.AIMove)
	assert.Equal(t, []int{3, 4, 5}, state.Match.WinningLine)
	assert.False(t, state.Run.Success)
	assert.Equal(t, 0, state.Run.Score)
}

func TestMatchService_PlayMove_TimedOut(t *testing.T) {
	f := newMatchFixture(clockAt(3 * time.Minute))
	f.withMatch("X___O____")

	f.matches.On("Update", mock.Anything, mock.MatchedBy(func(m models.Match) bool {
		return m.Status == models.MatchTimedOut && m.Board == "X___O____"
	}), "X___O____").Return(nil)
	f.runs.On("Finish", mock.Anything, int64(55), models.ChallengeOutcome{TimeSpentSeconds: 120}, mock.Anything, mock.Anything).Return(nil)

	state, err := f.svc.PlayMove(context.Background(), 3, 1, 8)
	require.NoError(t, err)
	assert.True(t, state.Match.Over())
	assert.Equal(t, 0, state.Run.Score)
}

func TestMatchService_PlayMove_ConcurrentMove(t *testing.T) {
	f := newMatchFixture(clockAt(10 * time.Second))
	f.withMatch("X___O____")

	f.matches.On("Update", mock.Anything, mock.Anything, "X___O____").Return(repository.ErrMatchChanged)

	_, err := f.svc.PlayMove(context.Background(), 3, 1, 8)
	requireAppError(t, err, errors.ErrCodeConflict)
	f.runs.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_PlayMove_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		board string
		cell  int
		code  string
	}{
		{"cell taken", "X___O____", 4, errors.ErrCodeValidation},
		{"out of range", "X___O____", 9, errors.ErrCodeValidation},
		{"not player's turn", "X________", 4, errors.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(clockAt(time.Second))
			f.withMatch(tt.board)

			_, err := f.svc.PlayMove(context.Background(), 3, 1, tt.cell)
			requireAppError(t, err, tt.code)
			f.matches.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMatchService_PlayMove_MatchOver(t *testing.T) {
	f := newMatchFixture(clockAt(time.Second))
	f.matches.On("Get", mock.Anything, int64(3)).Return(&models.Match{
		ID: 3, RunID: 55, Tier: "easy", Board: "XXXOO____", HumanMark: "X", Status: models.MatchHumanWon,
	}, nil)
	f.runs.On("Get", mock.Anything, int64(55)).Return(runOf(models.KindTicTacToe, 100, 120), nil)
	f.sessions.On("Get", mock.Anything, int64(10)).Return(openSessionOf(1), nil)

	_, err := f.svc.PlayMove(context.Background(), 3, 1, 8)
	requireAppError(t, err, errors.ErrCodeConflict)
}

func TestMatchService_GetMatch_OtherProfile(t *testing.T) {
	f := newMatchFixture(clockAt(time.Second))
	f.withMatch("X___O____")

	_, err := f.svc.GetMatch(context.Background(), 3, 2)
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestMatchService_AIMove(t *testing.T) {
	f := newMatchFixture(clockAt(0))

	res, err := f.svc.AIMove(context.Background(), "XX_OO____", "optimal")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cell, "X to move takes the win")
	assert.Equal(t, "XXXOO____", res.Board)
	assert.Equal(t, "won", res.Status)
	assert.Equal(t, "X", res.Winner)
	assert.Equal(t, []int{0, 1, 2}, res.WinningLine)

	res, err = f.svc.AIMove(context.Background(), "XX__O____", "optimal")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cell, "O blocks")
	assert.Equal(t, "ongoing", res.Status)
}

func TestMatchService_AIMove_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		board string
		tier  string
		code  string
	}{
		{"short board", "XO", "medium", errors.ErrCodeValidation},
		{"unreachable board", "XXX______", "medium", errors.ErrCodeValidation},
		{"finished game", "XXXOO____", "medium", errors.ErrCodeBadRequest},
		{"unknown tier", "_________", "impossible", errors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(clockAt(0))
			_, err := f.svc.AIMove(context.Background(), tt.board, tt.tier)
			requireAppError(t, err, tt.code)
		})
	}
}
