package services_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/models"
	"github.com/vytor/arcade/internal/services"
	"github.com/vytor/arcade/internal/testutil/mocks"
)

func TestProfileService_CreateProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("Upsert", mock.Anything, "ada").Return(&models.Profile{ID: 1, Username: "ada"}, nil)

	p, err := svc.CreateProfile(context.Background(), "  ada ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_Validation(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	svc := services.NewProfileService(repo)

	_, err := svc.CreateProfile(context.Background(), "   ")
	requireAppError(t, err, errors.ErrCodeValidation)

	_, err = svc.CreateProfile(context.Background(), strings.Repeat("a", 33))
	requireAppError(t, err, errors.ErrCodeValidation)

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("Get", mock.Anything, int64(7)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetProfile(context.Background(), 7)
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestProfileService_DeleteProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	svc := services.NewProfileService(repo)

	repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(sql.ErrNoRows)

	require.NoError(t, svc.DeleteProfile(context.Background(), 1))
	requireAppError(t, svc.DeleteProfile(context.Background(), 2), errors.ErrCodeNotFound)
}
