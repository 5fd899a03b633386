package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/service"
)

type TripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) service.TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a new trip for its owner.
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (owner_id, title, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		trip.OwnerID,
		trip.Title,
		trip.StartDate,
		trip.EndDate,
		trip.Notes,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// ListByOwner returns all trips of one owner, newest start date first.
func (r *TripRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Trip, error) {
	query := `
		SELECT id, owner_id, title, start_date, end_date, notes, created_at, updated_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY start_date DESC;
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]*models.Trip, 0)
	for rows.Next() {
		trip := &models.Trip{}
		err := rows.Scan(
			&trip.ID,
			&trip.OwnerID,
			&trip.Title,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Notes,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return trips, nil
}

// Update applies a partial update by bare id and returns the updated trip.
// The lookup is not owner-scoped, matching the exposed API contract.
func (r *TripRepository) Update(ctx context.Context, id uuid.UUID, update models.TripUpdate) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		UPDATE trips SET
			title = COALESCE($1, title),
			start_date = COALESCE($2, start_date),
			end_date = COALESCE($3, end_date),
			notes = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, owner_id, title, start_date, end_date, notes, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		update.Title,
		update.StartDate,
		update.EndDate,
		update.Notes,
		id,
	).Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Title,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Notes,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("trip with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return trip, nil
}

// Delete removes a trip by id. Deleting an id that does not exist is still
// success: the caller only cares that the record is gone afterwards.
func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM trips WHERE id = $1;`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}
