package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/errors"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func clockAt(offset time.Duration) *fixedClock {
	return &fixedClock{now: t0.Add(offset)}
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := errors.As(err)
	require.True(t, ok, "expected *AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}
