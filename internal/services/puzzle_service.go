package services

import (
	"context"
	"math/rand/v2"

	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/chesspuzzle"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/scoring"
	"github.com/vytor/arcade/internal/timer"
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type defaultPicker struct{}

func (defaultPicker) IntN(n int) int { return rand.IntN(n) }

// PuzzleChallenge is a started chess puzzle run.
type PuzzleChallenge struct {
	Run    *models.ChallengeRun `json:"run"`
	Puzzle models.ChessPuzzle   `json:"puzzle"`
}

// PuzzleSubmission is the graded line and the finished run.
type PuzzleSubmission struct {
	Run    *models.ChallengeRun `json:"run"`
	Result models.PuzzleResult  `json:"result"`
}

// PuzzleService handles chess puzzle challenges
type PuzzleService interface {
	ListPuzzles(ctx context.Context) []models.ChessPuzzle
	StartPuzzle(ctx context.Context, sessionID, profileID int64, puzzleID string) (*PuzzleChallenge, error)
	SubmitPuzzle(ctx context.Context, runID, profileID int64, moves []string) (*PuzzleSubmission, error)
}

type puzzleService struct {
	library     *chesspuzzle.Library
	sessionRepo repository.SessionRepository
	runRepo     repository.RunRepository
	picker      Picker
	clock       timer.Clock
}

// NewPuzzleService creates a new PuzzleService. A nil picker or clock uses the
// system source.
func NewPuzzleService(
	library *chesspuzzle.Library,
	sessionRepo repository.SessionRepository,
	runRepo repository.RunRepository,
	picker Picker,
	clock timer.Clock,
) PuzzleService {
	if picker == nil {
		picker = defaultPicker{}
	}
	if clock == nil {
		clock = timer.SystemClock{}
	}
	return &puzzleService{
		library:     library,
		sessionRepo: sessionRepo,
		runRepo:     runRepo,
		picker:      picker,
		clock:       clock,
	}
}

func (s *puzzleService) ListPuzzles(ctx context.Context) []models.ChessPuzzle {
	logger.FromContext(ctx).Debug("listing puzzles: count=%d", s.library.Len())
	return s.library.List()
}

func (s *puzzleService) StartPuzzle(ctx context.Context, sessionID, profileID int64, puzzleID string) (*PuzzleChallenge, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting puzzle: session_id=%d, puzzle_id=%s", sessionID, puzzleID)

	if s.library.Len() == 0 {
		return nil, errors.NewUnavailableError("no chess puzzles are loaded", nil)
	}

	var puzzle models.ChessPuzzle
	if puzzleID == "" {
		puzzle = s.library.At(s.picker.IntN(s.library.Len()))
	} else {
		p, ok := s.library.Get(puzzleID)
		if !ok {
			return nil, errors.NewNotFoundError("puzzle", puzzleID)
		}
		puzzle = p
	}

	if _, err := openSession(ctx, s.sessionRepo, sessionID, profileID); err != nil {
		return nil, err
	}

	def, err := challenge.Lookup(models.KindChessPuzzle)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	run, err := createRun(ctx, s.runRepo, sessionID, def, puzzle.ID, s.clock)
	if err != nil {
		return nil, err
	}

	log.Info("puzzle started: run_id=%d, puzzle_id=%s", run.ID, puzzle.ID)
	return &PuzzleChallenge{Run: run, Puzzle: puzzle}, nil
}

func (s *puzzleService) SubmitPuzzle(ctx context.Context, runID, profileID int64, moves []string) (*PuzzleSubmission, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting puzzle line: run_id=%d, moves=%v", runID, moves)

	run, err := openRun(ctx, s.sessionRepo, s.runRepo, runID, profileID, models.KindChessPuzzle)
	if err != nil {
		return nil, err
	}

	puzzle, ok := s.library.Get(run.PuzzleID)
	if !ok {
		log.Error("run %d references unknown puzzle %q", run.ID, run.PuzzleID)
		return nil, errors.NewUnavailableError("puzzle is no longer available", nil)
	}

	result, err := chesspuzzle.Check(puzzle, moves)
	if err != nil {
		log.Error("failed to check puzzle %s: %v", puzzle.ID, err)
		return nil, errors.NewInternalError(err)
	}

	def, err := challenge.Lookup(models.KindChessPuzzle)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	spent, expired := elapsed(s.clock, run)
	accuracy := chesspuzzle.Accuracy(result)
	outcome := scoring.Finalize(runParameters(def, run), def.Rules, scoring.Submission{
		Success:          result.Solved && !expired,
		TimeSpentSeconds: spent,
		Accuracy:         &accuracy,
	})

	done, err := finishRun(ctx, s.runRepo, run, outcome, s.clock.Now().UTC(), nil)
	if err != nil {
		return nil, err
	}
	return &PuzzleSubmission{Run: done, Result: result}, nil
}
