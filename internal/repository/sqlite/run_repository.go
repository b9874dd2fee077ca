package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
)

var runColumns = []string{
	"id", "session_id", "kind", "base_score", "time_limit_seconds", "started_at",
	"finished_at", "success", "time_spent_seconds", "score", "accuracy", "puzzle_id",
}

type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository implementation
func NewRunRepository(db *sql.DB) repository.RunRepository {
	return &runRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.ChallengeRun, error) {
	var (
		run      models.ChallengeRun
		accuracy sql.NullFloat64
		puzzleID sql.NullString
	)
	err := row.Scan(&run.ID, &run.SessionID, &run.Kind, &run.BaseScore, &run.TimeLimitSeconds, &run.StartedAt,
		&run.FinishedAt, &run.Success, &run.TimeSpentSeconds, &run.Score, &accuracy, &puzzleID)
	if err != nil {
		return nil, err
	}
	run.Accuracy = floatPtr(accuracy)
	run.PuzzleID = puzzleID.String
	return &run, nil
}

func (r *runRepository) Create(ctx context.Context, run models.ChallengeRun) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("creating challenge run: session_id=%d, kind=%s", run.SessionID, run.Kind)

	var puzzleID sql.NullString
	if run.PuzzleID != "" {
		puzzleID = sql.NullString{String: run.PuzzleID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO challenge_runs (session_id, kind, base_score, time_limit_seconds, started_at, puzzle_id)
VALUES (?, ?, ?, ?, ?, ?)
`, run.SessionID, run.Kind, run.BaseScore, run.TimeLimitSeconds, run.StartedAt, puzzleID)
	if err != nil {
		log.Error("failed to create challenge run: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("challenge run created: id=%d", id)
	return id, nil
}

func (r *runRepository) Get(ctx context.Context, id int64) (*models.ChallengeRun, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("getting challenge run: id=%d", id)

	query, args, err := sqlBuilder.Select(runColumns...).From("challenge_runs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("challenge run not found: id=%d", id)
		} else {
			log.Error("failed to get challenge run: %v", err)
		}
		return nil, err
	}
	return run, nil
}

func (r *runRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.ChallengeRun, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing challenge runs: session_id=%d", sessionID)

	query, args, err := sqlBuilder.
		Select(runColumns...).
		From("challenge_runs").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list challenge runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var runs []models.ChallengeRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			log.Error("failed to scan challenge run row: %v", err)
			return nil, err
		}
		runs = append(runs, *run)
	}
	log.Debug("found %d challenge runs", len(runs))
	return runs, rows.Err()
}

// Finish writes the outcome of a run exactly once. A second call returns
// repository.ErrAlreadyFinished and leaves the stored outcome untouched.
func (r *runRepository) Finish(ctx context.Context, id int64, outcome models.ChallengeOutcome, finishedAt time.Time, questions []models.QuestionResult) error {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("finishing challenge run: id=%d, score=%d, success=%t", id, outcome.Score, outcome.Success)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE challenge_runs
SET finished_at = ?, success = ?, time_spent_seconds = ?, score = ?, accuracy = ?
WHERE id = ? AND finished_at IS NULL
`, finishedAt, outcome.Success, outcome.TimeSpentSeconds, outcome.Score, nullableFloat(outcome.Accuracy), id)
		if err != nil {
			log.Error("failed to write outcome: %v", err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists int
			if err := tx.QueryRowContext(ctx, `SELECT 1 FROM challenge_runs WHERE id = ?`, id).Scan(&exists); err != nil {
				return err
			}
			log.Warn("challenge run %d already finished", id)
			return repository.ErrAlreadyFinished
		}

		if len(questions) == 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO question_results (run_id, position, correct, hint_used, attempts, difficulty)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			log.Error("failed to prepare question insert: %v", err)
			return err
		}
		defer stmt.Close()

		for i, q := range questions {
			if _, err := stmt.ExecContext(ctx, id, i, q.Correct, q.HintUsed, q.Attempts, string(q.Difficulty)); err != nil {
				log.Error("failed to insert question result %d: %v", i, err)
				return err
			}
		}
		return nil
	})
}

func (r *runRepository) Questions(ctx context.Context, runID int64) ([]models.QuestionResult, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing question results: run_id=%d", runID)

	rows, err := r.db.QueryContext(ctx, `
SELECT correct, hint_used, attempts, difficulty
FROM question_results
WHERE run_id = ?
ORDER BY position ASC
`, runID)
	if err != nil {
		log.Error("failed to list question results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.QuestionResult
	for rows.Next() {
		var q models.QuestionResult
		if err := rows.Scan(&q.Correct, &q.HintUsed, &q.Attempts, &q.Difficulty); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
