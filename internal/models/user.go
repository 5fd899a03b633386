package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. PasswordHash never leaves the backend:
// responses are built from the JSON-visible fields only.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate carries the profile fields a caller may change.
// Nil pointers mean "leave as is". The password is not updatable here.
type UserUpdate struct {
	Name  *string
	Email *string
}
