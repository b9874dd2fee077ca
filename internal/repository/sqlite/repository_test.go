package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/repository/sqlite"
	"github.com/vytor/arcade/internal/testutil"
)

type RepositorySuite struct {
	suite.Suite
	db       *sql.DB
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	runs     repository.RunRepository
	matches  repository.MatchRepository
	stats    repository.StatsRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.profiles = sqlite.NewProfileRepository(s.db)
	s.sessions = sqlite.NewSessionRepository(s.db)
	s.runs = sqlite.NewRunRepository(s.db)
	s.matches = sqlite.NewMatchRepository(s.db)
	s.stats = sqlite.NewStatsRepository(s.db)
}

func (s *RepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *RepositorySuite) newSession(username string) *models.Session {
	ctx := context.Background()
	p, err := s.profiles.Upsert(ctx, username)
	s.Require().NoError(err)
	sess, err := s.sessions.Create(ctx, p.ID, "token-"+username, time.Now().UTC())
	s.Require().NoError(err)
	return sess
}

func (s *RepositorySuite) newRun(sessionID int64, kind models.ChallengeKind) int64 {
	id, err := s.runs.Create(context.Background(), models.ChallengeRun{
		SessionID:        sessionID,
		Kind:             kind,
		BaseScore:        100,
		TimeLimitSeconds: 30,
		StartedAt:        time.Now().UTC(),
	})
	s.Require().NoError(err)
	return id
}

func (s *RepositorySuite) TestProfile_UpsertIsIdempotent() {
	ctx := context.Background()

	first, err := s.profiles.Upsert(ctx, "ada")
	s.Require().NoError(err)
	second, err := s.profiles.Upsert(ctx, "ada")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID)

	_, err = s.profiles.Upsert(ctx, "grace")
	s.Require().NoError(err)

	all, err := s.profiles.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(all, 2)
	s.Assert().Equal("ada", all[0].Username)
}

func (s *RepositorySuite) TestProfile_GetNotFound() {
	p, err := s.profiles.Get(context.Background(), 12345)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	s.Assert().Nil(p)
}

func (s *RepositorySuite) TestProfile_DeleteCascades() {
	ctx := context.Background()
	sess := s.newSession("ada")
	runID := s.newRun(sess.ID, models.KindMathQuiz)

	s.Require().NoError(s.profiles.Delete(ctx, sess.ProfileID))

	_, err := s.sessions.Get(ctx, sess.ID)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	_, err = s.runs.Get(ctx, runID)
	s.Assert().ErrorIs(err, sql.ErrNoRows)

	s.Assert().ErrorIs(s.profiles.Delete(ctx, sess.ProfileID), sql.ErrNoRows)
}

func (s *RepositorySuite) TestSession_CreateAndComplete() {
	ctx := context.Background()
	sess := s.newSession("ada")
	s.Assert().Nil(sess.CompletedAt)
	s.Assert().Equal("token-ada", sess.Token)

	s.Require().NoError(s.sessions.Complete(ctx, sess.ID, time.Now().UTC()))

	got, err := s.sessions.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.Assert().NotNil(got.CompletedAt)

	s.Assert().ErrorIs(s.sessions.Complete(ctx, sess.ID, time.Now().UTC()), repository.ErrAlreadyCompleted)
	s.Assert().ErrorIs(s.sessions.Complete(ctx, 999, time.Now().UTC()), sql.ErrNoRows)
}

func (s *RepositorySuite) TestSession_ListByProfile() {
	ctx := context.Background()
	sess := s.newSession("ada")
	_, err := s.sessions.Create(ctx, sess.ProfileID, "second", time.Now().UTC().Add(time.Minute))
	s.Require().NoError(err)

	all, err := s.sessions.ListByProfile(ctx, sess.ProfileID, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Assert().Equal("second", all[0].Token, "newest first")

	limited, err := s.sessions.ListByProfile(ctx, sess.ProfileID, 1)
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)
}

func (s *RepositorySuite) TestRun_FinishOnce() {
	ctx := context.Background()
	sess := s.newSession("ada")
	runID := s.newRun(sess.ID, models.KindPatternRecognition)

	run, err := s.runs.Get(ctx, runID)
	s.Require().NoError(err)
	s.Assert().False(run.Finished())

	accuracy := 75.0
	outcome := models.ChallengeOutcome{Success: true, TimeSpentSeconds: 12.5, Score: 315, Accuracy: &accuracy}
	questions := []models.QuestionResult{
		{Correct: true, Attempts: 1, Difficulty: models.DifficultyEasy},
		{Correct: false, HintUsed: true, Attempts: 3, Difficulty: models.DifficultyHard},
	}
	s.Require().NoError(s.runs.Finish(ctx, runID, outcome, time.Now().UTC(), questions))

	run, err = s.runs.Get(ctx, runID)
	s.Require().NoError(err)
	s.Assert().True(run.Finished())
	s.Assert().Equal(outcome, run.Outcome())

	second := models.ChallengeOutcome{Success: false, Score: 1}
	s.Assert().ErrorIs(s.runs.Finish(ctx, runID, second, time.Now().UTC(), nil), repository.ErrAlreadyFinished)

	run, err = s.runs.Get(ctx, runID)
	s.Require().NoError(err)
	s.Assert().Equal(315, run.Score, "outcome is immutable")

	qs, err := s.runs.Questions(ctx, runID)
	s.Require().NoError(err)
	s.Assert().Equal(questions, qs)

	s.Assert().ErrorIs(s.runs.Finish(ctx, 999, outcome, time.Now().UTC(), nil), sql.ErrNoRows)
}

func (s *RepositorySuite) TestRun_ListBySessionAndPuzzle() {
	ctx := context.Background()
	sess := s.newSession("ada")
	first := s.newRun(sess.ID, models.KindMathQuiz)

	puzzleRun, err := s.runs.Create(ctx, models.ChallengeRun{
		SessionID:        sess.ID,
		Kind:             models.KindChessPuzzle,
		BaseScore:        150,
		TimeLimitSeconds: 180,
		StartedAt:        time.Now().UTC(),
		PuzzleID:         "back-rank",
	})
	s.Require().NoError(err)

	runs, err := s.runs.ListBySession(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Assert().Equal(first, runs[0].ID)
	s.Assert().Equal(puzzleRun, runs[1].ID)
	s.Assert().Equal("", runs[0].PuzzleID)
	s.Assert().Equal("back-rank", runs[1].PuzzleID)
	s.Assert().Nil(runs[0].Accuracy)
}

func (s *RepositorySuite) TestMatch_UpdateOnlyWhileInProgress() {
	ctx := context.Background()
	sess := s.newSession("ada")
	runID := s.newRun(sess.ID, models.KindTicTacToe)

	now := time.Now().UTC()
	id, err := s.matches.Create(ctx, models.Match{
		RunID: runID, Tier: "optimal", Board: "_________", HumanMark: "X",
		Status: models.MatchInProgress, CreatedAt: now, UpdatedAt: now,
	})
	s.Require().NoError(err)

	m, err := s.matches.Get(ctx, id)
	s.Require().NoError(err)
	m.Board = "X___O____"
	s.Require().NoError(s.matches.Update(ctx, *m, "_________"))

	m.Board = "XXXOO____"
	m.Status = models.MatchHumanWon
	s.Require().NoError(s.matches.Update(ctx, *m, "X___O____"))

	got, err := s.matches.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("XXXOO____", got.Board)
	s.Assert().True(got.Over())

	got.Board = "_________"
	s.Assert().ErrorIs(s.matches.Update(ctx, *got, "XXXOO____"), repository.ErrMatchChanged)

	_, err = s.matches.Create(ctx, models.Match{RunID: runID, Tier: "easy", Board: "_________", HumanMark: "X", Status: models.MatchInProgress, CreatedAt: now, UpdatedAt: now})
	s.Assert().Error(err, "one match per run")
}

func (s *RepositorySuite) TestMatch_UpdateRejectsStaleBoard() {
	ctx := context.Background()
	sess := s.newSession("ada")
	runID := s.newRun(sess.ID, models.KindTicTacToe)

	now := time.Now().UTC()
	id, err := s.matches.Create(ctx, models.Match{
		RunID: runID, Tier: "optimal", Board: "X___O____", HumanMark: "X",
		Status: models.MatchInProgress, CreatedAt: now, UpdatedAt: now,
	})
	s.Require().NoError(err)

	// two moves computed from the same read
	first, err := s.matches.Get(ctx, id)
	s.Require().NoError(err)
	second := *first

	first.Board = "XO__O___X"
	s.Require().NoError(s.matches.Update(ctx, *first, "X___O____"))

	second.Board = "X___O_XO_"
	s.Assert().ErrorIs(s.matches.Update(ctx, second, "X___O____"), repository.ErrMatchChanged)

	got, err := s.matches.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("XO__O___X", got.Board, "the first move is kept")

	s.Assert().ErrorIs(s.matches.Update(ctx, models.Match{ID: 999, Status: models.MatchInProgress}, "_________"), repository.ErrMatchChanged)
}

func (s *RepositorySuite) TestStats_SaveAndGet() {
	ctx := context.Background()
	sess := s.newSession("ada")

	_, err := s.stats.Get(ctx, sess.ProfileID)
	s.Assert().ErrorIs(err, sql.ErrNoRows)

	st := models.ProfileStats{ProfileID: sess.ProfileID, SessionsPlayed: 2, TotalScore: 400, BestSessionScore: 250, SuccessRatePercent: 50, UpdatedAt: time.Now().UTC()}
	s.Require().NoError(s.stats.Save(ctx, st))
	st.SessionsPlayed = 3
	s.Require().NoError(s.stats.Save(ctx, st))

	got, err := s.stats.Get(ctx, sess.ProfileID)
	s.Require().NoError(err)
	s.Assert().Equal(3, got.SessionsPlayed)
	s.Assert().Equal(250, got.BestSessionScore)
}

func (s *RepositorySuite) TestStats_CompletedSessionOutcomes() {
	ctx := context.Background()
	sess := s.newSession("ada")

	finished := s.newRun(sess.ID, models.KindMathQuiz)
	s.newRun(sess.ID, models.KindReactionTime) // never finished
	s.Require().NoError(s.runs.Finish(ctx, finished, models.ChallengeOutcome{Success: true, Score: 120}, time.Now().UTC(), nil))

	open, err := s.sessions.Create(ctx, sess.ProfileID, "open", time.Now().UTC())
	s.Require().NoError(err)
	openRun := s.newRun(open.ID, models.KindMathQuiz)
	s.Require().NoError(s.runs.Finish(ctx, openRun, models.ChallengeOutcome{Score: 999}, time.Now().UTC(), nil))

	empty, err := s.sessions.Create(ctx, sess.ProfileID, "empty", time.Now().UTC())
	s.Require().NoError(err)

	s.Require().NoError(s.sessions.Complete(ctx, sess.ID, time.Now().UTC()))
	s.Require().NoError(s.sessions.Complete(ctx, empty.ID, time.Now().UTC()))

	outcomes, err := s.stats.CompletedSessionOutcomes(ctx, sess.ProfileID)
	s.Require().NoError(err)
	s.Require().Len(outcomes, 2, "open session is excluded")
	s.Require().Len(outcomes[0], 1)
	s.Assert().Equal(120, outcomes[0][0].Score)
	s.Assert().Empty(outcomes[1])
}
