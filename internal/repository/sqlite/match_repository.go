package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
)

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new MatchRepository implementation
func NewMatchRepository(db *sql.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, m models.Match) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("match_repo")
	log.Debug("creating match: run_id=%d, tier=%s", m.RunID, m.Tier)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO matches (run_id, tier, board, human_mark, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, m.RunID, m.Tier, m.Board, m.HumanMark, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		log.Error("failed to create match: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *matchRepository) Get(ctx context.Context, id int64) (*models.Match, error) {
	log := logger.FromContext(ctx).WithPrefix("match_repo")
	log.Debug("getting match: id=%d", id)

	var m models.Match
	err := r.db.QueryRowContext(ctx, `
SELECT id, run_id, tier, board, human_mark, status, created_at, updated_at
FROM matches
WHERE id = ?
`, id).Scan(&m.ID, &m.RunID, &m.Tier, &m.Board, &m.HumanMark, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("match not found: id=%d", id)
		} else {
			log.Error("failed to get match: %v", err)
		}
		return nil, err
	}
	return &m, nil
}

// Update stores the board and status, provided the match is still in progress
// on fromBoard. Otherwise it returns repository.ErrMatchChanged and writes nothing.
func (r *matchRepository) Update(ctx context.Context, m models.Match, fromBoard string) error {
	log := logger.FromContext(ctx).WithPrefix("match_repo")
	log.Debug("updating match: id=%d, status=%s", m.ID, m.Status)

	query, args, err := sqlBuilder.Update("matches").
		Set("board", m.Board).
		Set("status", m.Status).
		Set("updated_at", m.UpdatedAt).
		Where(squirrel.Eq{"id": m.ID, "status": models.MatchInProgress, "board": fromBoard}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update match: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read affected rows: %v", err)
		return err
	}
	if n == 0 {
		log.Debug("match changed concurrently: id=%d", m.ID)
		return repository.ErrMatchChanged
	}
	return nil
}
