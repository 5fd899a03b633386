package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/service"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create inserts a new incident record. Location may be nil for generic
// reports; ST_MakePoint is strict, so NULL coordinates yield a NULL point.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	var lat, lng *float64
	var place *string
	if incident.Location != nil {
		lat = &incident.Location.Lat
		lng = &incident.Location.Lng
		if incident.Location.Place != "" {
			place = &incident.Location.Place
		}
	}

	var details []byte
	if incident.Details != nil {
		var err error
		details, err = json.Marshal(incident.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal incident details: %w", err)
		}
	}

	query := `
		INSERT INTO incidents (reporter_id, type, description, location, place, status, details)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.ReporterID,
		incident.Type,
		incident.Description,
		lng,
		lat,
		place,
		incident.Status,
		details,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

const incidentColumns = `
	id,
	reporter_id,
	type,
	description,
	ST_Y(location::geometry) as latitude,
	ST_X(location::geometry) as longitude,
	place,
	status,
	details,
	created_at,
	updated_at`

// GetByID returns an incident by its UUID.
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListAll returns every incident, newest first. The listing is deliberately
// not scoped to the caller.
func (r *IncidentRepository) ListAll(ctx context.Context) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var lat, lng *float64
	var place *string
	var details []byte

	err := row.Scan(
		&incident.ID,
		&incident.ReporterID,
		&incident.Type,
		&incident.Description,
		&lat,
		&lng,
		&place,
		&incident.Status,
		&details,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lng != nil {
		incident.Location = &models.Location{Lat: *lat, Lng: *lng}
		if place != nil {
			incident.Location.Place = *place
		}
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &incident.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal incident details: %w", err)
		}
	}
	return incident, nil
}

// GetIncidentFromCache tries to fetch an incident from Redis.
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache stores an incident in Redis. Incidents are never updated
// or deleted through this service, so a short TTL is the only expiry needed.
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}
