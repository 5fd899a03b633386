package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourguard/tourist-safety-backend/internal/models"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWTManager_Parse_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestJWTManager_Parse_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("another-secret", time.Hour)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestJWTManager_Parse_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Parse("not.a.token")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestJWTManager_Parse_WrongSigningMethod(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	// alg=none tokens must never be accepted, whatever the payload says.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Parse(signed)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestJWTManager_Parse_NonUUIDSubject(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.Parse(signed)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
