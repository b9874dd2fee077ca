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

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, profileID int64, token string, startedAt time.Time) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: profile_id=%d", profileID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (token, profile_id, started_at)
VALUES (?, ?, ?)
`, token, profileID, startedAt)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	var s models.Session
	err := r.db.QueryRowContext(ctx, `
SELECT id, token, profile_id, started_at, completed_at
FROM sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.Token, &s.ProfileID, &s.StartedAt, &s.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: id=%d", id)
		} else {
			log.Error("failed to get session: %v", err)
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Complete(ctx context.Context, id int64, completedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("completing session: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE sessions SET completed_at = ?
WHERE id = ? AND completed_at IS NULL
`, completedAt, id)
		if err != nil {
			log.Error("failed to complete session: %v", err)
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n > 0 {
			return err
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		return repository.ErrAlreadyCompleted
	})
}

func (r *sessionRepository) ListByProfile(ctx context.Context, profileID int64, limit int) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: profile_id=%d, limit=%d", profileID, limit)

	query := sqlBuilder.
		Select("id", "token", "profile_id", "started_at", "completed_at").
		From("sessions").
		Where(squirrel.Eq{"profile_id": profileID}).
		OrderBy("started_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Token, &s.ProfileID, &s.StartedAt, &s.CompletedAt); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}
