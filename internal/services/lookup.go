package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/vytor/arcade/internal/challenge"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
	"github.com/vytor/arcade/internal/timer"
)

// ownedSession loads a session and checks that it belongs to profileID. A
// session of another profile is reported as not found.
func ownedSession(ctx context.Context, sessions repository.SessionRepository, sessionID, profileID int64) (*models.Session, error) {
	log := logger.FromContext(ctx)

	sess, err := sessions.Get(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("session", sessionID)
		}
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if sess.ProfileID != profileID {
		log.Warn("session %d does not belong to profile %d", sessionID, profileID)
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return sess, nil
}

// openSession is ownedSession for operations that need the session to still
// accept challenges.
func openSession(ctx context.Context, sessions repository.SessionRepository, sessionID, profileID int64) (*models.Session, error) {
	sess, err := ownedSession(ctx, sessions, sessionID, profileID)
	if err != nil {
		return nil, err
	}
	if sess.CompletedAt != nil {
		return nil, errors.NewConflictError("session has already ended")
	}
	return sess, nil
}

// openRun loads an unfinished run of kind and the open session it belongs to.
func openRun(ctx context.Context, sessions repository.SessionRepository, runs repository.RunRepository, runID, profileID int64, kind models.ChallengeKind) (*models.ChallengeRun, error) {
	log := logger.FromContext(ctx)

	run, err := runs.Get(ctx, runID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("challenge run", runID)
		}
		log.Error("failed to get challenge run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if _, err := openSession(ctx, sessions, run.SessionID, profileID); err != nil {
		return nil, err
	}
	if kind != "" && run.Kind != kind {
		return nil, errors.NewBadRequestError("challenge run is not a " + string(kind) + " run")
	}
	if run.Finished() {
		return nil, errors.NewConflictError("challenge run is already finished")
	}
	return run, nil
}

// finishRun stores the outcome of a run and returns the finished run. A run
// finished concurrently is reported as a conflict.
func finishRun(ctx context.Context, runs repository.RunRepository, run *models.ChallengeRun, outcome models.ChallengeOutcome, finishedAt time.Time, questions []models.QuestionResult) (*models.ChallengeRun, error) {
	log := logger.FromContext(ctx)

	if err := runs.Finish(ctx, run.ID, outcome, finishedAt, questions); err != nil {
		if stderrors.Is(err, repository.ErrAlreadyFinished) {
			return nil, errors.NewConflictError("challenge run is already finished")
		}
		log.Error("failed to finish challenge run: %v", err)
		return nil, errors.NewInternalError(err)
	}

	done := *run
	done.FinishedAt = &finishedAt
	done.Success = outcome.Success
	done.TimeSpentSeconds = outcome.TimeSpentSeconds
	done.Score = outcome.Score
	done.Accuracy = outcome.Accuracy

	log.Info("challenge run finished: id=%d, kind=%s, success=%t, score=%d",
		run.ID, run.Kind, outcome.Success, outcome.Score)
	return &done, nil
}

// runParameters are the catalog parameters of a run with the values that were
// stored when it started.
func runParameters(def challenge.Definition, run *models.ChallengeRun) models.ChallengeParameters {
	params := def.ChallengeParameters
	params.BaseScore = run.BaseScore
	params.TimeLimitSeconds = run.TimeLimitSeconds
	return params
}

// elapsed measures a run against its time limit on clock. Time spent never
// exceeds the limit.
func elapsed(clock timer.Clock, run *models.ChallengeRun) (spent float64, expired bool) {
	cd := timer.Resume(clock, run.StartedAt, timer.Seconds(run.TimeLimitSeconds))
	spent = cd.ElapsedSeconds()
	if cd.Expired() {
		return run.TimeLimitSeconds, true
	}
	return spent, false
}

// createRun starts a run of def in a session, stamping the start time on clock.
func createRun(ctx context.Context, runs repository.RunRepository, sessionID int64, def challenge.Definition, puzzleID string, clock timer.Clock) (*models.ChallengeRun, error) {
	run := models.ChallengeRun{
		SessionID:        sessionID,
		Kind:             def.Kind,
		BaseScore:        def.BaseScore,
		TimeLimitSeconds: def.TimeLimitSeconds,
		StartedAt:        clock.Now().UTC(),
		PuzzleID:         puzzleID,
	}

	id, err := runs.Create(ctx, run)
	if err != nil {
		logger.FromContext(ctx).Error("failed to create challenge run: %v", err)
		return nil, errors.NewInternalError(err)
	}
	run.ID = id
	return &run, nil
}
