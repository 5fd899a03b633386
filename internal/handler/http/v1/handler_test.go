package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourguard/tourist-safety-backend/internal/auth"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"github.com/tourguard/tourist-safety-backend/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	authService     *mocks.MockAuthService
	tripService     *mocks.MockTripService
	incidentService *mocks.MockIncidentService
	tokens          *auth.JWTManager
}

// newTestHandler wires the handler with mocked services and a real token
// manager behind a test router.
func newTestHandler(t *testing.T) (testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		authService:     mocks.NewMockAuthService(ctrl),
		tripService:     mocks.NewMockTripService(ctrl),
		incidentService: mocks.NewMockIncidentService(ctrl),
		tokens:          auth.NewJWTManager("test-secret", time.Hour),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	handler := NewHandler(m.authService, m.tripService, m.incidentService, m.tokens, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest performs an HTTP request against the test router.
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearerHeader(t *testing.T, tokens *auth.JWTManager, userID uuid.UUID) map[string]string {
	token, err := tokens.Generate(userID)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func jsonBody(t *testing.T, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["message"]
}

func TestRegister_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	user := &models.User{ID: userID, Name: "Alice", Email: "alice@example.com"}

	m.authService.EXPECT().
		Register(gomock.Any(), "Alice", "alice@example.com", "s3cret").
		Return(user, "signed-token", nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	}))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, userID, resp.User.ID)
}

func TestRegister_Handler_EmailInUse(t *testing.T) {
	m, router := newTestHandler(t)

	m.authService.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, "", models.ErrEmailInUse).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use", decodeMessage(t, w))
}

func TestRegister_Handler_MissingFields(t *testing.T) {
	// No service expectation: validation rejects before the service is hit.
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodPost, "/api/auth/register", jsonBody(t, RegisterRequest{
		Name: "Alice",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	m.authService.EXPECT().
		Login(gomock.Any(), "alice@example.com", "s3cret").
		Return(user, "signed-token", nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestLogin_Handler_InvalidCredentials(t *testing.T) {
	m, router := newTestHandler(t)

	m.authService.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, "", models.ErrInvalidCredentials).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeMessage(t, w))
}

func TestMiddleware_MissingToken(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/profile", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeMessage(t, w))
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Token abc123",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeMessage(t, w))
}

func TestMiddleware_InvalidToken(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, w))
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	_, router := newTestHandler(t)
	expired := auth.NewJWTManager("test-secret", -time.Minute)
	token, err := expired.Generate(uuid.New())
	require.NoError(t, err)

	w := makeRequest(router, http.MethodGet, "/api/profile", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, w))
}

func TestGetProfile_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	user := &models.User{ID: userID, Name: "Alice", Email: "alice@example.com"}

	m.authService.EXPECT().
		GetProfile(gomock.Any(), userID).
		Return(user, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/profile", nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestUpdateProfile_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	newName := "Alice B."
	updated := &models.User{ID: userID, Name: newName, Email: "alice@example.com"}

	m.authService.EXPECT().
		UpdateProfile(gomock.Any(), userID, models.UserUpdate{Name: &newName}).
		Return(updated, nil).
		Times(1)

	w := makeRequest(router, http.MethodPut, "/api/profile", jsonBody(t, UpdateProfileRequest{
		Name: &newName,
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, newName, resp.Name)
}

func TestCreateTrip_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	m.tripService.EXPECT().
		CreateTrip(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, trip *models.Trip) error {
			assert.Equal(t, userID, trip.OwnerID)
			assert.Equal(t, "Goa, winter break", trip.Title)
			assert.Equal(t, time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC), trip.StartDate)
			trip.ID = uuid.New()
			return nil
		}).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/trip/create", jsonBody(t, CreateTripRequest{
		Title:     "Goa, winter break",
		StartDate: "2026-12-20",
		EndDate:   "2026-12-28",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp TripResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.OwnerID)
}

func TestCreateTrip_Handler_EndBeforeStartAccepted(t *testing.T) {
	// The API contract has no cross-field date check: a reversed range is
	// stored as sent.
	m, router := newTestHandler(t)
	userID := uuid.New()

	m.tripService.EXPECT().
		CreateTrip(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/trip/create", jsonBody(t, CreateTripRequest{
		Title:     "Backwards trip",
		StartDate: "2026-12-28",
		EndDate:   "2026-12-20",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateTrip_Handler_BadDate(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	w := makeRequest(router, http.MethodPost, "/api/trip/create", jsonBody(t, CreateTripRequest{
		Title:     "Goa",
		StartDate: "not-a-date",
		EndDate:   "2026-12-28",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "startDate must be an ISO-8601 date", decodeMessage(t, w))
}

func TestListTrips_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	trips := []*models.Trip{
		{ID: uuid.New(), OwnerID: userID, Title: "Trip A"},
		{ID: uuid.New(), OwnerID: userID, Title: "Trip B"},
	}

	m.tripService.EXPECT().
		ListTrips(gomock.Any(), userID).
		Return(trips, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/trip", nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var resp []TripResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestUpdateTrip_Handler_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	tripID := uuid.New()
	newTitle := "Renamed"

	m.tripService.EXPECT().
		UpdateTrip(gomock.Any(), tripID, gomock.Any()).
		Return(nil, models.ErrNotFound).
		Times(1)

	w := makeRequest(router, http.MethodPut, "/api/trip/"+tripID.String(), jsonBody(t, UpdateTripRequest{
		Title: &newTitle,
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Trip not found", decodeMessage(t, w))
}

func TestUpdateTrip_Handler_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	newTitle := "Renamed"

	w := makeRequest(router, http.MethodPut, "/api/trip/not-a-uuid", jsonBody(t, UpdateTripRequest{
		Title: &newTitle,
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTrip_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	tripID := uuid.New()

	m.tripService.EXPECT().
		DeleteTrip(gomock.Any(), tripID).
		Return(nil).
		Times(1)

	w := makeRequest(router, http.MethodDelete, "/api/trip/"+tripID.String(), nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["ok"])
}

func TestReportIncident_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	m.incidentService.EXPECT().
		ReportIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.Incident) error {
			assert.Equal(t, userID, incident.ReporterID)
			assert.Equal(t, "theft", incident.Type)
			require.NotNil(t, incident.Location)
			assert.Equal(t, 48.8584, incident.Location.Lat)
			incident.ID = uuid.New()
			incident.Status = models.IncidentStatusReported
			return nil
		}).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/incident/report", jsonBody(t, ReportIncidentRequest{
		Type:        "theft",
		Description: "Wallet stolen",
		Location:    &LocationDTO{Lat: 48.8584, Lng: 2.2945},
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.ReporterID)
	assert.Equal(t, models.IncidentStatusReported, resp.Status)
}

func TestReportIncident_Handler_NoLocation(t *testing.T) {
	// Location is optional on the generic report endpoint.
	m, router := newTestHandler(t)
	userID := uuid.New()

	m.incidentService.EXPECT().
		ReportIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.Incident) error {
			assert.Nil(t, incident.Location)
			return nil
		}).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/incident/report", jsonBody(t, ReportIncidentRequest{
		Type: "harassment",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestPanic_Handler_ZeroCoordinatesAccepted(t *testing.T) {
	// 0/0 is a real place in the Gulf of Guinea, not a missing location.
	m, router := newTestHandler(t)
	userID := uuid.New()
	zero := 0.0

	m.incidentService.EXPECT().
		ReportPanic(gomock.Any(), userID, models.Location{Lat: 0, Lng: 0}, "").
		Return(&models.Incident{
			ID:         uuid.New(),
			ReporterID: userID,
			Type:       models.IncidentTypePanic,
			Location:   &models.Location{Lat: 0, Lng: 0},
			Status:     models.IncidentStatusReported,
		}, nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/incident/panic", jsonBody(t, PanicRequest{
		Location: &StrictLocationDTO{Lat: &zero, Lng: &zero},
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Panic incident reported", resp.Message)
	require.NotNil(t, resp.Incident)
	assert.Equal(t, models.IncidentTypePanic, resp.Incident.Type)
}

func TestPanic_Handler_MissingLng(t *testing.T) {
	// No service expectation: the request must be rejected before any write.
	m, router := newTestHandler(t)
	userID := uuid.New()
	lat := 48.8584

	w := makeRequest(router, http.MethodPost, "/api/incident/panic", jsonBody(t, PanicRequest{
		Location: &StrictLocationDTO{Lat: &lat},
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location with lat & lng is required", decodeMessage(t, w))
}

func TestPanic_Handler_MissingLocation(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	w := makeRequest(router, http.MethodPost, "/api/incident/panic", jsonBody(t, PanicRequest{
		Description: "help",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location with lat & lng is required", decodeMessage(t, w))
}

func TestPanic_Handler_LatitudeOutOfRange(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	lat, lng := 95.0, 10.0

	w := makeRequest(router, http.MethodPost, "/api/incident/panic", jsonBody(t, PanicRequest{
		Location: &StrictLocationDTO{Lat: &lat, Lng: &lng},
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmergency_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	lat, lng := 28.6139, 77.209

	m.incidentService.EXPECT().
		ReportEmergency(gomock.Any(), userID, models.Location{Lat: lat, Lng: lng}, "medical emergency").
		Return(&models.Incident{
			ID:         uuid.New(),
			ReporterID: userID,
			Type:       models.IncidentTypeEmergency,
			Status:     models.IncidentStatusReported,
		}, nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/incident/emergency", jsonBody(t, PanicRequest{
		Location:    &StrictLocationDTO{Lat: &lat, Lng: &lng},
		Description: "medical emergency",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Emergency incident reported", resp.Message)
}

func TestEFIR_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	lat, lng := 28.6139, 77.209
	details := map[string]any{"passport_no": "X1234567"}

	m.incidentService.EXPECT().
		ReportEFIR(gomock.Any(), userID, models.Location{Lat: lat, Lng: lng}, "lost documents", details).
		Return(&models.Incident{
			ID:         uuid.New(),
			ReporterID: userID,
			Type:       models.IncidentTypeEFIR,
			Details:    details,
			Status:     models.IncidentStatusReported,
		}, nil).
		Times(1)

	w := makeRequest(router, http.MethodPost, "/api/incident/efir", jsonBody(t, EFIRRequest{
		Location:    &StrictLocationDTO{Lat: &lat, Lng: &lng},
		Description: "lost documents",
		Details:     details,
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "E-FIR submitted successfully", resp.Message)
	require.NotNil(t, resp.Incident)
	assert.Equal(t, "X1234567", resp.Incident.Details["passport_no"])
}

func TestEFIR_Handler_MissingLocation(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	w := makeRequest(router, http.MethodPost, "/api/incident/efir", jsonBody(t, EFIRRequest{
		Description: "lost documents",
	}), bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Location with lat & lng is required", decodeMessage(t, w))
}

func TestListIncidents_Handler_Success(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	incidents := []*models.Incident{
		{ID: uuid.New(), Type: models.IncidentTypePanic, Status: models.IncidentStatusReported},
		{ID: uuid.New(), Type: "theft", Status: models.IncidentStatusReported},
	}

	m.incidentService.EXPECT().
		ListIncidents(gomock.Any()).
		Return(incidents, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incident", nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetIncident_Handler_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	incidentID := uuid.New()

	m.incidentService.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, models.ErrNotFound).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incident/"+incidentID.String(), nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Incident not found", decodeMessage(t, w))
}

func TestGetIncident_Handler_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()

	w := makeRequest(router, http.MethodGet, "/api/incident/not-a-uuid", nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIncident_Handler_ServerError(t *testing.T) {
	m, router := newTestHandler(t)
	userID := uuid.New()
	incidentID := uuid.New()

	m.incidentService.EXPECT().
		GetIncident(gomock.Any(), incidentID).
		Return(nil, fmt.Errorf("connection refused")).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incident/"+incidentID.String(), nil, bearerHeader(t, m.tokens, userID))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal detail never leaks to the client.
	assert.Equal(t, "Server error", decodeMessage(t, w))
}
