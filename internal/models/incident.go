package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident types created by the specialized reporting flows. The generic
// report endpoint accepts any caller-supplied type string.
const (
	IncidentTypePanic     = "panic"
	IncidentTypeEmergency = "emergency"
	IncidentTypeEFIR      = "efir"
)

// IncidentStatusReported is the only status reachable in this core.
// Transitions (investigating, resolved, closed) belong to the resolution
// workflow, which lives outside this service.
const IncidentStatusReported = "reported"

// Location is a geographic point with an optional human-readable place name.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Place string  `json:"place,omitempty"`
}

// Incident is a report filed by a user. Location is nil when a generic
// report was submitted without one. Details is only populated by the
// E-FIR flow and is stored verbatim.
type Incident struct {
	ID          uuid.UUID      `json:"id"`
	ReporterID  uuid.UUID      `json:"reporter_id"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Location    *Location      `json:"location,omitempty"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
