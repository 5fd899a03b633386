package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/notifier"
)

// IncidentRepository defines the contract for the incident store.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListAll(ctx context.Context) ([]*models.Incident, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
}

// IncidentService defines the contract for incident reporting. The four
// creation entry points share one persistence path and differ only in the
// type they stamp and how strictly the HTTP boundary validates location.
type IncidentService interface {
	ReportIncident(ctx context.Context, incident *models.Incident) error
	ReportPanic(ctx context.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error)
	ReportEmergency(ctx context.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error)
	ReportEFIR(ctx context.Context, reporterID uuid.UUID, location models.Location, description string, details map[string]any) (*models.Incident, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context) ([]*models.Incident, error)
}

type incidentService struct {
	repo      IncidentRepository
	publisher notifier.Publisher
	logger    *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, publisher notifier.Publisher, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ReportIncident persists a generic report and broadcasts it to connected
// observers. The publish is fire-and-forget: a notifier failure is logged
// but never fails the write.
func (s *incidentService) ReportIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "ReportIncident",
		"reporter_id": incident.ReporterID,
		"type":        incident.Type,
	})
	log.Info("Attempting to report a new incident")

	if incident.Status == "" {
		incident.Status = models.IncidentStatusReported
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not report incident: %w", err)
	}

	event := notifier.IncidentEvent{
		Event:     "incident_reported",
		Timestamp: time.Now(),
		Incident:  incident,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish incident event, continuing")
	}

	log.WithField("incident_id", incident.ID).Info("Incident reported successfully")
	return nil
}

// ReportPanic files a panic-button incident at the given location.
func (s *incidentService) ReportPanic(ctx context.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error) {
	return s.createTyped(ctx, "ReportPanic", &models.Incident{
		ReporterID:  reporterID,
		Type:        models.IncidentTypePanic,
		Location:    &location,
		Description: description,
		Status:      models.IncidentStatusReported,
	})
}

// ReportEmergency files an emergency incident at the given location.
// TODO: notify authorities (SMS/email/push) once the notification service exists.
func (s *incidentService) ReportEmergency(ctx context.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error) {
	return s.createTyped(ctx, "ReportEmergency", &models.Incident{
		ReporterID:  reporterID,
		Type:        models.IncidentTypeEmergency,
		Location:    &location,
		Description: description,
		Status:      models.IncidentStatusReported,
	})
}

// ReportEFIR files an electronic FIR with an optional free-form details payload.
// TODO: forward the filing to the police-records integration once it exists.
func (s *incidentService) ReportEFIR(ctx context.Context, reporterID uuid.UUID, location models.Location, description string, details map[string]any) (*models.Incident, error) {
	return s.createTyped(ctx, "ReportEFIR", &models.Incident{
		ReporterID:  reporterID,
		Type:        models.IncidentTypeEFIR,
		Location:    &location,
		Description: description,
		Details:     details,
		Status:      models.IncidentStatusReported,
	})
}

func (s *incidentService) createTyped(ctx context.Context, method string, incident *models.Incident) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      method,
		"reporter_id": incident.ReporterID,
		"type":        incident.Type,
	})
	log.Info("Attempting to file incident")

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not file %s incident: %w", incident.Type, err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident filed successfully")
	return incident, nil
}

// GetIncident fetches an incident by ID, trying the cache first.
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache, falling back to DB")
	}
	if cached != nil {
		log.Info("Incident fetched from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Incident not found")
			return nil, models.ErrNotFound
		}
		log.WithError(err).Error("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident, continuing")
	}

	log.Info("Incident fetched successfully")
	return incident, nil
}

// ListIncidents returns every incident, newest first. The listing is global
// to any authenticated caller until role-based scoping lands.
func (s *incidentService) ListIncidents(ctx context.Context) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
	})

	incidents, err := s.repo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}
