package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/vytor/arcade/internal/board"
	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/opponent"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/scoring"
	"github.com/vytor/arcade/internal/timer"
)

// MatchState is a match after a request, with the run it finished if it ended.
type MatchState struct {
	Match  *models.Match        `json:"match"`
	Run    *models.ChallengeRun `json:"run,omitempty"`
	AIMove *int                 `json:"ai_move,omitempty"`
}

// AIMoveResult is the answer of a stateless policy call.
type AIMoveResult struct {
	Cell        int    `json:"cell"`
	Board       string `json:"board"`
	Status      string `json:"status"`
	Winner      string `json:"winner,omitempty"`
	WinningLine []int  `json:"winning_line,omitempty"`
}

// MatchService handles tic-tac-toe matches against the AI
type MatchService interface {
	StartMatch(ctx context.Context, sessionID, profileID int64, tier string) (*MatchState, error)
	GetMatch(ctx context.Context, matchID, profileID int64) (*MatchState, error)
	PlayMove(ctx context.Context, matchID, profileID int64, cell int) (*MatchState, error)
	AIMove(ctx context.Context, boardText, tier string) (*AIMoveResult, error)
}

type matchService struct {
	sessionRepo repository.SessionRepository
	runRepo     repository.RunRepository
	matchRepo   repository.MatchRepository
	rng         opponent.Rand
	aiTimeout   time.Duration
	clock       timer.Clock
}

// NewMatchService creates a new MatchService. aiTimeout bounds every AI move;
// a nil rng or clock uses the system source.
func NewMatchService(
	sessionRepo repository.SessionRepository,
	runRepo repository.RunRepository,
	matchRepo repository.MatchRepository,
	rng opponent.Rand,
	aiTimeout time.Duration,
	clock timer.Clock,
) MatchService {
	if rng == nil {
		rng = opponent.SystemRand()
	}
	if clock == nil {
		clock = timer.SystemClock{}
	}
	return &matchService{
		sessionRepo: sessionRepo,
		runRepo:     runRepo,
		matchRepo:   matchRepo,
		rng:         rng,
		aiTimeout:   aiTimeout,
		clock:       clock,
	}
}

func (s *matchService) StartMatch(ctx context.Context, sessionID, profileID int64, tier string) (*MatchState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting match: session_id=%d, tier=%s", sessionID, tier)

	t, err := opponent.ParseTier(tier)
	if err != nil {
		return nil, errors.NewValidationError("tier", "must be 'easy', 'medium', or 'optimal'")
	}

	if _, err := openSession(ctx, s.sessionRepo, sessionID, profileID); err != nil {
		return nil, err
	}

	def, err := challenge.Lookup(models.KindTicTacToe)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	run, err := createRun(ctx, s.runRepo, sessionID, def, "", s.clock)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	m := models.Match{
		RunID:     run.ID,
		Tier:      string(t),
		Board:     board.Board{}.String(),
		HumanMark: board.X.String(),
		Status:    models.MatchInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.matchRepo.Create(ctx, m)
	if err != nil {
		log.Error("failed to create match: %v", err)
		return nil, errors.NewInternalError(err)
	}
	m.ID = id

	log.Info("match started: id=%d, run_id=%d, tier=%s", id, run.ID, t)
	return &MatchState{Match: &m}, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID, profileID int64) (*MatchState, error) {
	logger.FromContext(ctx).Debug("getting match: id=%d", matchID)

	m, run, _, err := s.ownedMatch(ctx, matchID, profileID)
	if err != nil {
		return nil, err
	}
	if err := withWinningLine(m); err != nil {
		return nil, errors.NewInternalError(err)
	}

	state := &MatchState{Match: m}
	if run.Finished() {
		state.Run = run
	}
	return state, nil
}

func (s *matchService) ownedMatch(ctx context.Context, matchID, profileID int64) (*models.Match, *models.ChallengeRun, *models.Session, error) {
	log := logger.FromContext(ctx)

	m, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, errors.NewNotFoundError("match", matchID)
		}
		log.Error("failed to get match: %v", err)
		return nil, nil, nil, errors.NewInternalError(err)
	}

	run, err := s.runRepo.Get(ctx, m.RunID)
	if err != nil {
		log.Error("failed to get match run: %v", err)
		return nil, nil, nil, errors.NewInternalError(err)
	}
	sess, err := ownedSession(ctx, s.sessionRepo, run.SessionID, profileID)
	if err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, nil, nil, errors.NewNotFoundError("match", matchID)
		}
		return nil, nil, nil, err
	}
	return m, run, sess, nil
}

// PlayMove applies the player's move and the AI reply. Nothing is stored when
// the AI misses its deadline, so the same move can be sent again.
func (s *matchService) PlayMove(ctx context.Context, matchID, profileID int64, cell int) (*MatchState, error) {
	log := logger.FromContext(ctx)
	log.Debug("playing move: match_id=%d, cell=%d", matchID, cell)

	m, run, sess, err := s.ownedMatch(ctx, matchID, profileID)
	if err != nil {
		return nil, err
	}
	if m.Over() {
		return nil, errors.NewConflictError("match is already over")
	}
	if sess.CompletedAt != nil {
		return nil, errors.NewConflictError("session has already ended")
	}

	readBoard := m.Board
	b, err := board.Parse(readBoard)
	if err != nil {
		log.Error("stored board of match %d is corrupt: %v", m.ID, err)
		return nil, errors.NewInternalError(err)
	}
	human, err := board.ParseMark(m.HumanMark)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	if _, expired := elapsed(s.clock, run); expired {
		log.Info("match %d ran out of time", m.ID)
		m.Status = models.MatchTimedOut
		return s.finish(ctx, m, readBoard, run, scoring.MatchLoss, nil)
	}

	if b.Turn() != human {
		return nil, errors.NewConflictError("it is not the player's turn")
	}
	b, err = b.Apply(cell, human)
	if err != nil {
		switch {
		case stderrors.Is(err, board.ErrOutOfRange):
			return nil, errors.NewValidationError("cell", "must be between 0 and 8")
		case stderrors.Is(err, board.ErrCellTaken):
			return nil, errors.NewValidationError("cell", "is already taken")
		}
		return nil, errors.NewBadRequestError(err.Error())
	}

	var aiCell *int
	if !board.Evaluate(b).Terminal() {
		policy, err := opponent.New(opponent.Tier(m.Tier), s.rng)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}

		moveCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
		reply, err := opponent.SelectMove(moveCtx, policy, b, human.Opponent())
		cancel()
		if err != nil {
			if stderrors.Is(err, opponent.ErrNoMove) {
				log.Warn("AI did not answer within %v: match_id=%d", s.aiTimeout, m.ID)
				return nil, errors.NewUnavailableError("the opponent did not answer in time, try again", err)
			}
			log.Error("AI move failed: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if b, err = b.Apply(reply, human.Opponent()); err != nil {
			log.Error("AI picked an illegal cell %d: %v", reply, err)
			return nil, errors.NewInternalError(err)
		}
		aiCell = &reply
	}

	m.Board = b.String()
	res := board.Evaluate(b)
	if !res.Terminal() {
		m.UpdatedAt = s.clock.Now().UTC()
		if err := s.matchRepo.Update(ctx, *m, readBoard); err != nil {
			return nil, s.updateError(ctx, err)
		}
		return &MatchState{Match: m, AIMove: aiCell}, nil
	}

	result := scoring.MatchDraw
	m.Status = models.MatchDraw
	if res.Status == board.Won {
		if res.Winner == human {
			result, m.Status = scoring.MatchWin, models.MatchHumanWon
		} else {
			result, m.Status = scoring.MatchLoss, models.MatchAIWon
		}
		m.WinningLine = res.Line[:]
	}
	return s.finish(ctx, m, readBoard, run, result, aiCell)
}

func (s *matchService) finish(ctx context.Context, m *models.Match, readBoard string, run *models.ChallengeRun, result scoring.MatchResult, aiCell *int) (*MatchState, error) {
	def, err := challenge.Lookup(models.KindTicTacToe)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := s.clock.Now().UTC()
	m.UpdatedAt = now
	if err := s.matchRepo.Update(ctx, *m, readBoard); err != nil {
		return nil, s.updateError(ctx, err)
	}

	spent, _ := elapsed(s.clock, run)
	outcome := scoring.Finalize(runParameters(def, run), def.Rules, scoring.Submission{
		TimeSpentSeconds: spent,
		Match:            result,
	})
	done, err := finishRun(ctx, s.runRepo, run, outcome, now, nil)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("match over: id=%d, status=%s, score=%d", m.ID, m.Status, outcome.Score)
	return &MatchState{Match: m, Run: done, AIMove: aiCell}, nil
}

func (s *matchService) updateError(ctx context.Context, err error) error {
	if stderrors.Is(err, repository.ErrMatchChanged) {
		return errors.NewConflictError("match changed by another move, reload it")
	}
	logger.FromContext(ctx).Error("failed to update match: %v", err)
	return errors.NewInternalError(err)
}

func (s *matchService) AIMove(ctx context.Context, boardText, tier string) (*AIMoveResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("stateless AI move: board=%s, tier=%s", boardText, tier)

	b, err := board.Parse(boardText)
	if err != nil {
		return nil, errors.NewValidationError("board", err.Error())
	}
	if err := b.Validate(); err != nil {
		return nil, errors.NewValidationError("board", err.Error())
	}
	if board.Evaluate(b).Terminal() {
		return nil, errors.NewBadRequestError("game is already over")
	}
	t, err := opponent.ParseTier(tier)
	if err != nil {
		return nil, errors.NewValidationError("tier", "must be 'easy', 'medium', or 'optimal'")
	}
	policy, err := opponent.New(t, s.rng)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	me := b.Turn()
	moveCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()
	cell, err := opponent.SelectMove(moveCtx, policy, b, me)
	if err != nil {
		if stderrors.Is(err, opponent.ErrNoMove) {
			return nil, errors.NewUnavailableError("the opponent did not answer in time", err)
		}
		return nil, errors.NewInternalError(err)
	}

	next, err := b.Apply(cell, me)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	res := board.Evaluate(next)
	out := &AIMoveResult{Cell: cell, Board: next.String(), Status: res.Status.String()}
	if res.Status == board.Won {
		out.Winner = res.Winner.String()
		out.WinningLine = res.Line[:]
	}
	return out, nil
}

// withWinningLine fills the derived WinningLine of a stored match.
func withWinningLine(m *models.Match) error {
	b, err := board.Parse(m.Board)
	if err != nil {
		return err
	}
	if res := board.Evaluate(b); res.Status == board.Won {
		m.WinningLine = res.Line[:]
	}
	return nil
}
