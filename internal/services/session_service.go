package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/jobs"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/scoring"
	"github.com/vytor/arcade/internal/session"
	"github.com/vytor/arcade/internal/timer"
)

// SessionDetail is a session with its runs and the summary derived from them.
type SessionDetail struct {
	Session *models.Session       `json:"session"`
	Runs    []models.ChallengeRun `json:"runs"`
	Summary models.SessionSummary `json:"summary"`
}

// RunDetail is a run with the per-question results stored when it finished.
type RunDetail struct {
	Run       *models.ChallengeRun    `json:"run"`
	Questions []models.QuestionResult `json:"questions"`
}

// ChallengeContent is the generated material of a run. Answers are included:
// the browser grades locally and submits the question results.
type ChallengeContent struct {
	MathQuestions []challenge.MathQuestion `json:"math_questions,omitempty"`
	Patterns      []challenge.Pattern      `json:"patterns,omitempty"`
}

// StartedChallenge is returned when a run begins.
type StartedChallenge struct {
	Run        *models.ChallengeRun `json:"run"`
	Definition challenge.Definition `json:"definition"`
	Content    *ChallengeContent    `json:"content,omitempty"`
}

// ChallengeSubmission is what the browser reports when a challenge ends. Time
// spent is measured on the server. Without an accuracy, question results give
// one.
type ChallengeSubmission struct {
	Success   bool                    `json:"success"`
	RawScore  float64                 `json:"raw_score"`
	Accuracy  *float64                `json:"accuracy"`
	Questions []models.QuestionResult `json:"questions"`
}

// SessionService handles play sessions and the challenges played in them
type SessionService interface {
	StartSession(ctx context.Context, profileID int64) (*models.Session, error)
	GetSession(ctx context.Context, sessionID, profileID int64) (*SessionDetail, error)
	EndSession(ctx context.Context, sessionID, profileID int64) (*SessionDetail, error)
	Summary(ctx context.Context, sessionID, profileID int64) (*models.SessionSummary, error)
	StartChallenge(ctx context.Context, sessionID, profileID int64, kind models.ChallengeKind, difficulty string) (*StartedChallenge, error)
	SubmitChallenge(ctx context.Context, runID, profileID int64, sub ChallengeSubmission) (*models.ChallengeRun, error)
	GetRun(ctx context.Context, runID, profileID int64) (*RunDetail, error)
}

type sessionService struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	runRepo     repository.RunRepository
	jobQueue    jobs.JobQueue
	generator   *challenge.Generator
	clock       timer.Clock
}

// NewSessionService creates a new SessionService. A nil clock uses the system clock.
func NewSessionService(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	runRepo repository.RunRepository,
	jobQueue jobs.JobQueue,
	generator *challenge.Generator,
	clock timer.Clock,
) SessionService {
	if clock == nil {
		clock = timer.SystemClock{}
	}
	return &sessionService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		runRepo:     runRepo,
		jobQueue:    jobQueue,
		generator:   generator,
		clock:       clock,
	}
}

func (s *sessionService) StartSession(ctx context.Context, profileID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: profile_id=%d", profileID)

	if _, err := s.profileRepo.Get(ctx, profileID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("profile", profileID)
		}
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	sess, err := s.sessionRepo.Create(ctx, profileID, uuid.NewString(), s.clock.Now().UTC())
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("session started: id=%d, profile_id=%d", sess.ID, profileID)
	return sess, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID, profileID int64) (*SessionDetail, error) {
	logger.FromContext(ctx).Debug("getting session: id=%d", sessionID)

	sess, err := ownedSession(ctx, s.sessionRepo, sessionID, profileID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, sess)
}

func (s *sessionService) detail(ctx context.Context, sess *models.Session) (*SessionDetail, error) {
	runs, err := s.runRepo.ListBySession(ctx, sess.ID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list session runs: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if runs == nil {
		runs = []models.ChallengeRun{}
	}
	return &SessionDetail{
		Session: sess,
		Runs:    runs,
		Summary: session.Summarize(session.Outcomes(runs)),
	}, nil
}

func (s *sessionService) EndSession(ctx context.Context, sessionID, profileID int64) (*SessionDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending session: id=%d", sessionID)

	sess, err := openSession(ctx, s.sessionRepo, sessionID, profileID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	if err := s.sessionRepo.Complete(ctx, sessionID, now); err != nil {
		if stderrors.Is(err, repository.ErrAlreadyCompleted) {
			return nil, errors.NewConflictError("session has already ended")
		}
		log.Error("failed to complete session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	sess.CompletedAt = &now

	// Stats catch up on the next completed session if the queue is saturated.
	if err := s.jobQueue.EnqueueStatsRefresh(profileID); err != nil {
		log.Warn("failed to enqueue stats refresh: profile_id=%d, err=%v", profileID, err)
	}

	detail, err := s.detail(ctx, sess)
	if err != nil {
		return nil, err
	}
	log.Info("session ended: id=%d, challenges=%d, total_score=%d",
		sessionID, detail.Summary.Challenges, detail.Summary.TotalScore)
	return detail, nil
}

func (s *sessionService) Summary(ctx context.Context, sessionID, profileID int64) (*models.SessionSummary, error) {
	detail, err := s.GetSession(ctx, sessionID, profileID)
	if err != nil {
		return nil, err
	}
	return &detail.Summary, nil
}

func (s *sessionService) StartChallenge(ctx context.Context, sessionID, profileID int64, kind models.ChallengeKind, difficulty string) (*StartedChallenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting challenge: session_id=%d, kind=%s, difficulty=%s", sessionID, kind, difficulty)

	def, err := challenge.Lookup(kind)
	if err != nil {
		return nil, errors.NewValidationError("kind", "unknown challenge kind")
	}
	switch kind {
	case models.KindTicTacToe:
		return nil, errors.NewBadRequestError("tic-tac-toe is played through the matches endpoint")
	case models.KindChessPuzzle:
		return nil, errors.NewBadRequestError("chess puzzles are played through the puzzles endpoint")
	}

	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	if _, err := openSession(ctx, s.sessionRepo, sessionID, profileID); err != nil {
		return nil, err
	}

	run, err := createRun(ctx, s.runRepo, sessionID, def, "", s.clock)
	if err != nil {
		return nil, err
	}

	started := &StartedChallenge{Run: run, Definition: def}
	switch kind {
	case models.KindMathQuiz:
		started.Content = &ChallengeContent{MathQuestions: s.generator.MathQuiz(def.Questions, d)}
	case models.KindPatternRecognition:
		started.Content = &ChallengeContent{Patterns: s.generator.Patterns(def.Questions, d)}
	}

	log.Info("challenge started: run_id=%d, kind=%s", run.ID, kind)
	return started, nil
}

func (s *sessionService) SubmitChallenge(ctx context.Context, runID, profileID int64, sub ChallengeSubmission) (*models.ChallengeRun, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting challenge: run_id=%d", runID)

	run, err := openRun(ctx, s.sessionRepo, s.runRepo, runID, profileID, "")
	if err != nil {
		return nil, err
	}

	switch run.Kind {
	case models.KindTicTacToe:
		return nil, errors.NewBadRequestError("tic-tac-toe runs finish when the match ends")
	case models.KindChessPuzzle:
		return nil, errors.NewBadRequestError("chess puzzle runs are submitted through the puzzle endpoint")
	}

	def, err := challenge.Lookup(run.Kind)
	if err != nil {
		log.Error("run %d has unknown kind %q", run.ID, run.Kind)
		return nil, errors.NewInternalError(err)
	}
	for i, q := range sub.Questions {
		if q.Attempts < 0 {
			return nil, errors.NewValidationError("questions", "attempts cannot be negative")
		}
		if _, err := ParseDifficulty(string(q.Difficulty)); err != nil || q.Difficulty == "" {
			return nil, errors.NewValidationError("questions", fmt.Sprintf("question %d has an invalid difficulty", i+1))
		}
	}

	if sub.Accuracy == nil {
		sub.Accuracy = scoring.QuestionAccuracy(sub.Questions)
	}

	spent, expired := elapsed(s.clock, run)
	if expired && def.Mode == models.ModeTimed {
		log.Debug("run %d submitted after its time limit", run.ID)
		sub.Success = false
	}

	outcome := scoring.Finalize(runParameters(def, run), def.Rules, scoring.Submission{
		Success:          sub.Success,
		TimeSpentSeconds: spent,
		RawScore:         sub.RawScore,
		Accuracy:         sub.Accuracy,
		Questions:        sub.Questions,
	})

	return finishRun(ctx, s.runRepo, run, outcome, s.clock.Now().UTC(), sub.Questions)
}

func (s *sessionService) GetRun(ctx context.Context, runID, profileID int64) (*RunDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting challenge run: id=%d", runID)

	run, err := s.runRepo.Get(ctx, runID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("challenge run", runID)
		}
		log.Error("failed to get challenge run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if _, err := ownedSession(ctx, s.sessionRepo, run.SessionID, profileID); err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, errors.NewNotFoundError("challenge run", runID)
		}
		return nil, err
	}

	questions, err := s.runRepo.Questions(ctx, runID)
	if err != nil {
		log.Error("failed to load question results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if questions == nil {
		questions = []models.QuestionResult{}
	}
	return &RunDetail{Run: run, Questions: questions}, nil
}

// ParseDifficulty accepts easy, medium or hard; empty means medium.
func ParseDifficulty(s string) (models.Difficulty, error) {
	switch d := models.Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return models.DifficultyMedium, nil
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return d, nil
	}
	return "", errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
}
