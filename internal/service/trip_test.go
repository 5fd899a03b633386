package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

func newTestTripService(t *testing.T) (TripService, *mocks.MockTripRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockTripRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewTripService(repoMock, logger), repoMock
}

func TestCreateTrip_Success(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	trip := &models.Trip{
		OwnerID:   uuid.New(),
		Title:     "Goa, winter break",
		StartDate: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC),
	}

	// Expectations
	repoMock.EXPECT().
		Create(ctx, trip).
		DoAndReturn(func(_ context.Context, tr *models.Trip) error {
			tr.ID = uuid.New()
			return nil
		}).
		Times(1)

	// Act
	err := service.CreateTrip(ctx, trip)

	// Assertions
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, trip.ID)
}

func TestCreateTrip_RepositoryError(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	dbError := fmt.Errorf("connection refused")

	// Expectations
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		Return(dbError).
		Times(1)

	// Act
	err := service.CreateTrip(ctx, &models.Trip{OwnerID: uuid.New()})

	// Assertions
	require.Error(t, err)
	assert.ErrorIs(t, err, dbError)
}

func TestListTrips_Success(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	expected := []*models.Trip{
		{ID: uuid.New(), OwnerID: ownerID, Title: "Trip A"},
		{ID: uuid.New(), OwnerID: ownerID, Title: "Trip B"},
	}

	// Expectations
	repoMock.EXPECT().
		ListByOwner(ctx, ownerID).
		Return(expected, nil).
		Times(1)

	// Act
	trips, err := service.ListTrips(ctx, ownerID)

	// Assertions
	require.NoError(t, err)
	assert.Equal(t, expected, trips)
}

func TestUpdateTrip_Success(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	tripID := uuid.New()
	newTitle := "Goa, extended"
	update := models.TripUpdate{Title: &newTitle}
	updated := &models.Trip{ID: tripID, Title: newTitle}

	// Expectations
	repoMock.EXPECT().
		Update(ctx, tripID, update).
		Return(updated, nil).
		Times(1)

	// Act
	trip, err := service.UpdateTrip(ctx, tripID, update)

	// Assertions
	require.NoError(t, err)
	assert.Equal(t, updated, trip)
}

func TestUpdateTrip_NotFound(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	tripID := uuid.New()

	// Expectations
	repoMock.EXPECT().
		Update(ctx, tripID, gomock.Any()).
		Return(nil, models.ErrNotFound).
		Times(1)

	// Act
	trip, err := service.UpdateTrip(ctx, tripID, models.TripUpdate{})

	// Assertions
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, trip)
}

func TestDeleteTrip_Success(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	tripID := uuid.New()

	// Expectations
	repoMock.EXPECT().
		Delete(ctx, tripID).
		Return(nil).
		Times(1)

	// Act
	err := service.DeleteTrip(ctx, tripID)

	// Assertions
	require.NoError(t, err)
}

func TestDeleteTrip_RepositoryError(t *testing.T) {
	// Setup
	service, repoMock := newTestTripService(t)
	ctx := context.Background()
	dbError := fmt.Errorf("connection refused")

	// Expectations
	repoMock.EXPECT().
		Delete(ctx, gomock.Any()).
		Return(dbError).
		Times(1)

	// Act
	err := service.DeleteTrip(ctx, uuid.New())

	// Assertions
	require.Error(t, err)
	assert.ErrorIs(t, err, dbError)
}
