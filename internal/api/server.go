package api

import (
	"context"

	"github.com/vytor/arcade/internal/services"
)

// Database is what the readiness check asks of the store.
type Database interface {
	PingContext(ctx context.Context) error
	AppliedMigrations(ctx context.Context) ([]string, error)
}

type Server struct {
	DB             Database
	ProfileService services.ProfileService
	SessionService services.SessionService
	MatchService   services.MatchService
	PuzzleService  services.PuzzleService
	StatsService   services.StatsService
}
