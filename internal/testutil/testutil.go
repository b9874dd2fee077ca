package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// Foreign keys are enabled and the pool is pinned to one connection.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
