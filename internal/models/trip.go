package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip belongs to exactly one owner. Listings are always scoped by OwnerID.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripUpdate is a partial update. Nil pointers mean "leave as is".
type TripUpdate struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}
