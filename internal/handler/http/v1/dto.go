package v1

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest DTO for creating an account
// @Description DTO for creating an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest DTO for authenticating an account
// @Description DTO for authenticating an account
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest DTO for a partial profile update. The password is
// not updatable through this endpoint.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// UserResponse is the public view of an account. The password hash is
// never part of it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse DTO returned by register and login
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// CreateTripRequest DTO for creating a trip. Dates are ISO-8601 strings
// (RFC 3339 or YYYY-MM-DD).
type CreateTripRequest struct {
	Title     string `json:"title" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateTripRequest DTO for a partial trip update
type UpdateTripRequest struct {
	Title     *string `json:"title"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     *string `json:"notes"`
}

// TripResponse DTO for a trip record
type TripResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationDTO is the loose location accepted by the generic report
// endpoint: any object shape passes, fields are taken as given.
type LocationDTO struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Place string  `json:"place,omitempty"`
}

// StrictLocationDTO is the location required by the panic, emergency and
// E-FIR flows. Lat and Lng are pointers so presence is checked explicitly:
// 0/0 (equator, prime meridian) is a valid coordinate and must pass.
type StrictLocationDTO struct {
	Lat   *float64 `json:"lat" validate:"required,latitude"`
	Lng   *float64 `json:"lng" validate:"required,longitude"`
	Place string   `json:"place,omitempty"`
}

// ReportIncidentRequest DTO for a generic incident report
type ReportIncidentRequest struct {
	Type        string       `json:"type" validate:"required"`
	Location    *LocationDTO `json:"location"`
	Description string       `json:"description,omitempty"`
}

// PanicRequest DTO for the panic and emergency flows
type PanicRequest struct {
	Location    *StrictLocationDTO `json:"location"`
	Description string             `json:"description,omitempty"`
}

// EFIRRequest DTO for an E-FIR filing. Details is carried verbatim.
type EFIRRequest struct {
	Location    *StrictLocationDTO `json:"location"`
	Description string             `json:"description,omitempty"`
	Details     map[string]any     `json:"details,omitempty"`
}

// IncidentResponse DTO for an incident record
type IncidentResponse struct {
	ID          uuid.UUID      `json:"id"`
	ReporterID  uuid.UUID      `json:"reporter_id"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Location    *LocationDTO   `json:"location,omitempty"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IncidentMessageResponse wraps the created incident with a human-readable
// confirmation, mirroring the panic/emergency/E-FIR response shape.
type IncidentMessageResponse struct {
	Message  string            `json:"message"`
	Incident *IncidentResponse `json:"incident"`
}
