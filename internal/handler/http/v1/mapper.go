package v1

import "github.com/tourguard/tourist-safety-backend/internal/models"

// ModelToUserResponse converts a domain user to its public view.
func ModelToUserResponse(model *models.User) *UserResponse {
	return &UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ModelToTripResponse converts a domain trip to its response DTO.
func ModelToTripResponse(model *models.Trip) *TripResponse {
	return &TripResponse{
		ID:        model.ID,
		OwnerID:   model.OwnerID,
		Title:     model.Title,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		Notes:     model.Notes,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ModelsToTripResponses converts a slice of trips to response DTOs.
func ModelsToTripResponses(models []*models.Trip) []*TripResponse {
	responses := make([]*TripResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToTripResponse(model)
	}
	return responses
}

// ModelToIncidentResponse converts a domain incident to its response DTO.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:          model.ID,
		ReporterID:  model.ReporterID,
		Type:        model.Type,
		Description: model.Description,
		Status:      model.Status,
		Details:     model.Details,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.Location != nil {
		resp.Location = &LocationDTO{
			Lat:   model.Location.Lat,
			Lng:   model.Location.Lng,
			Place: model.Location.Place,
		}
	}
	return resp
}

// ModelsToIncidentResponses converts a slice of incidents to response DTOs.
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// strictLocationToModel converts a validated strict location DTO. The
// caller has already checked Lat and Lng are present.
func strictLocationToModel(dto *StrictLocationDTO) models.Location {
	return models.Location{
		Lat:   *dto.Lat,
		Lng:   *dto.Lng,
		Place: dto.Place,
	}
}

// looseLocationToModel converts the generic report's loose location.
func looseLocationToModel(dto *LocationDTO) *models.Location {
	if dto == nil {
		return nil
	}
	return &models.Location{
		Lat:   dto.Lat,
		Lng:   dto.Lng,
		Place: dto.Place,
	}
}
