package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/arcade/internal/logger"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (username)
VALUES (?)
ON CONFLICT(username) DO NOTHING
`, username); err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at
FROM profiles
WHERE username = ?
`, username).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		log.Error("failed to load upserted profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, created_at
FROM profiles
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at
FROM profiles
WHERE id = ?
`, id).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found: id=%d", id)
		} else {
			log.Error("failed to get profile: %v", err)
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile; sessions, runs, matches and cached stats go with
// it through ON DELETE CASCADE.
func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile %d: %v", id, err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	log.Debug("profile %d deleted with cascading data", id)
	return nil
}
