package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/auth"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/service"
)

type Handler struct {
	authService     service.AuthService
	tripService     service.TripService
	incidentService service.IncidentService
	tokens          *auth.JWTManager
	logger          *logrus.Logger
	validate        *validator.Validate
}

func NewHandler(
	authService service.AuthService,
	tripService service.TripService,
	incidentService service.IncidentService,
	tokens *auth.JWTManager,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		authService:     authService,
		tripService:     tripService,
		incidentService: incidentService,
		tokens:          tokens,
		logger:          logger,
		validate:        validator.New(),
	}
}

// parseDate accepts the two ISO-8601 shapes clients send: a full RFC 3339
// timestamp or a bare calendar date.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// @Summary Register a new account
// @Description Create a new user account and return it with a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Validation error or email already in use"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
			return
		}
		log.WithError(err).Error("Failed to register user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: ModelToUserResponse(user), Token: token})
}

// @Summary Log in
// @Description Authenticate email and password and return a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		log.WithError(err).Error("Failed to log in user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: ModelToUserResponse(user), Token: token})
}

// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "getProfile").WithField("user_id", userID)

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.WithError(err).Error("Failed to get profile from service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Update the caller's profile
// @Description Partially update name and/or email. The password cannot be changed here.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile [put]
func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "updateProfile").WithField("user_id", userID)

	var input UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, models.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.WithError(err).Error("Failed to update profile in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Create a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trip body CreateTripRequest true "Trip creation request"
// @Success 201 {object} TripResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /trip/create [post]
func (h *Handler) createTrip(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "createTrip").WithField("user_id", userID)

	var input CreateTripRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "startDate must be an ISO-8601 date"})
		return
	}
	// No cross-field check against startDate: an endDate in the past of
	// startDate is accepted, matching the exposed API contract.
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "endDate must be an ISO-8601 date"})
		return
	}

	trip := &models.Trip{
		OwnerID:   userID,
		Title:     input.Title,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     input.Notes,
	}
	if err := h.tripService.CreateTrip(c.Request.Context(), trip); err != nil {
		log.WithError(err).Error("Failed to create trip in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, ModelToTripResponse(trip))
}

// @Summary List the caller's trips
// @Description Trips owned by the authenticated caller, newest start date first.
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TripResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /trip [get]
func (h *Handler) listTrips(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "listTrips").WithField("user_id", userID)

	trips, err := h.tripService.ListTrips(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list trips from service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToTripResponses(trips))
}

// @Summary Update a trip
// @Description Partial update by trip id.
// @Tags Trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param trip body UpdateTripRequest true "Trip update request"
// @Success 200 {object} TripResponse
// @Failure 400 {object} map[string]string "Invalid trip ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Trip not found"
// @Router /trip/{id} [put]
func (h *Handler) updateTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid trip ID"})
		return
	}
	log := h.logger.WithField("method", "updateTrip").WithField("id", id)

	var input UpdateTripRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	update := models.TripUpdate{
		Title: input.Title,
		Notes: input.Notes,
	}
	if input.StartDate != nil {
		startDate, err := parseDate(*input.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "startDate must be an ISO-8601 date"})
			return
		}
		update.StartDate = &startDate
	}
	if input.EndDate != nil {
		endDate, err := parseDate(*input.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "endDate must be an ISO-8601 date"})
			return
		}
		update.EndDate = &endDate
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Trip not found"})
			return
		}
		log.WithError(err).Error("Failed to update trip in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToTripResponse(trip))
}

// @Summary Delete a trip
// @Description Deleting an id that does not exist still acknowledges success.
// @Tags Trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Invalid trip ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /trip/{id} [delete]
func (h *Handler) deleteTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid trip ID"})
		return
	}
	log := h.logger.WithField("method", "deleteTrip").WithField("id", id)

	if err := h.tripService.DeleteTrip(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to delete trip in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Report an incident
// @Description Generic incident report. Location is optional here; the specialized flows require it.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body ReportIncidentRequest true "Incident report request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incident/report [post]
func (h *Handler) reportIncident(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "reportIncident").WithField("user_id", userID)

	var input ReportIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	incident := &models.Incident{
		ReporterID:  userID,
		Type:        input.Type,
		Description: input.Description,
		Location:    looseLocationToModel(input.Location),
	}
	if err := h.incidentService.ReportIncident(c.Request.Context(), incident); err != nil {
		log.WithError(err).Error("Failed to report incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Report a panic incident
// @Description Panic-button flow. Location with lat and lng is mandatory; 0/0 is a valid coordinate.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body PanicRequest true "Panic request"
// @Success 201 {object} IncidentMessageResponse
// @Failure 400 {object} map[string]string "Missing or invalid location"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incident/panic [post]
func (h *Handler) panicIncident(c *gin.Context) {
	h.reportWithLocation(c, "panicIncident", "Panic incident reported",
		func(ctx *gin.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error) {
			return h.incidentService.ReportPanic(ctx.Request.Context(), reporterID, location, description)
		})
}

// @Summary Report an emergency incident
// @Description Emergency flow. Notification of authorities is handled by an external collaborator.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body PanicRequest true "Emergency request"
// @Success 201 {object} IncidentMessageResponse
// @Failure 400 {object} map[string]string "Missing or invalid location"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incident/emergency [post]
func (h *Handler) emergencyIncident(c *gin.Context) {
	h.reportWithLocation(c, "emergencyIncident", "Emergency incident reported",
		func(ctx *gin.Context, reporterID uuid.UUID, location models.Location, description string) (*models.Incident, error) {
			return h.incidentService.ReportEmergency(ctx.Request.Context(), reporterID, location, description)
		})
}

// reportWithLocation implements the shared panic/emergency contract: bind,
// check location presence explicitly (so lat=0 or lng=0 still passes),
// validate bounds, file the incident.
func (h *Handler) reportWithLocation(
	c *gin.Context,
	method, message string,
	report func(*gin.Context, uuid.UUID, models.Location, string) (*models.Incident, error),
) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", method).WithField("user_id", userID)

	var input PanicRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if input.Location == nil || input.Location.Lat == nil || input.Location.Lng == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Location with lat & lng is required"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	incident, err := report(c, userID, strictLocationToModel(input.Location), input.Description)
	if err != nil {
		log.WithError(err).Error("Failed to file incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, IncidentMessageResponse{
		Message:  message,
		Incident: ModelToIncidentResponse(incident),
	})
}

// @Summary Submit an E-FIR
// @Description Electronic First Information Report with an optional free-form details payload.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body EFIRRequest true "E-FIR request"
// @Success 201 {object} IncidentMessageResponse
// @Failure 400 {object} map[string]string "Missing or invalid location"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incident/efir [post]
func (h *Handler) efirIncident(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	log := h.logger.WithField("method", "efirIncident").WithField("user_id", userID)

	var input EFIRRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if input.Location == nil || input.Location.Lat == nil || input.Location.Lng == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Location with lat & lng is required"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	incident, err := h.incidentService.ReportEFIR(c.Request.Context(), userID, strictLocationToModel(input.Location), input.Description, input.Details)
	if err != nil {
		log.WithError(err).Error("Failed to file E-FIR in service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, IncidentMessageResponse{
		Message:  "E-FIR submitted successfully",
		Incident: ModelToIncidentResponse(incident),
	})
}

// @Summary List all incidents
// @Description Every incident, newest first. Visible to any authenticated caller.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incident [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	incidents, err := h.incidentService.ListIncidents(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get an incident by ID
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incident/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Incident not found"})
			return
		}
		log.WithError(err).Error("Failed to get incident from service")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}
