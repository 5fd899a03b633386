package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/models"
)

// TripRepository defines the contract for the trip store.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Trip, error)
	Update(ctx context.Context, id uuid.UUID, update models.TripUpdate) (*models.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripService defines the contract for trip management.
//
// Update and Delete operate on the bare trip id without checking that the
// caller owns the record. That matches the exposed API contract.
type TripService interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	ListTrips(ctx context.Context, ownerID uuid.UUID) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, update models.TripUpdate) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error
}

type tripService struct {
	repo   TripRepository
	logger *logrus.Logger
}

func NewTripService(repo TripRepository, logger *logrus.Logger) TripService {
	return &tripService{
		repo:   repo,
		logger: logger,
	}
}

// CreateTrip persists a new trip. Field validation happens at the HTTP
// boundary; this layer only persists.
func (s *tripService) CreateTrip(ctx context.Context, trip *models.Trip) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "trip",
		"method":   "CreateTrip",
		"owner_id": trip.OwnerID,
	})
	log.Info("Attempting to create a new trip")

	if err := s.repo.Create(ctx, trip); err != nil {
		log.WithError(err).Error("Failed to create trip in repository")
		return fmt.Errorf("service: could not create trip: %w", err)
	}

	log.WithField("trip_id", trip.ID).Info("Trip created successfully")
	return nil
}

// ListTrips returns the caller's trips, newest start date first.
func (s *tripService) ListTrips(ctx context.Context, ownerID uuid.UUID) ([]*models.Trip, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "trip",
		"method":   "ListTrips",
		"owner_id": ownerID,
	})

	trips, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		log.WithError(err).Error("Failed to list trips from repository")
		return nil, fmt.Errorf("service: could not list trips: %w", err)
	}

	log.WithField("count", len(trips)).Info("Trips listed successfully")
	return trips, nil
}

// UpdateTrip applies a partial update by id.
func (s *tripService) UpdateTrip(ctx context.Context, id uuid.UUID, update models.TripUpdate) (*models.Trip, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "trip",
		"method":  "UpdateTrip",
		"trip_id": id,
	})
	log.Info("Attempting to update trip")

	trip, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Attempted to update a non-existent trip")
			return nil, models.ErrNotFound
		}
		log.WithError(err).Error("Failed to update trip in repository")
		return nil, fmt.Errorf("service: could not update trip: %w", err)
	}

	log.Info("Trip updated successfully")
	return trip, nil
}

// DeleteTrip removes a trip by id. Success is acknowledged whether or not
// the record existed.
func (s *tripService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "trip",
		"method":  "DeleteTrip",
		"trip_id": id,
	})
	log.Info("Attempting to delete trip")

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete trip in repository")
		return fmt.Errorf("service: could not delete trip: %w", err)
	}

	log.Info("Trip deleted successfully")
	return nil
}
