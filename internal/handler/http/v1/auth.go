package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/auth"
)

// userIDKey is the gin context key the middleware stores the caller
// identity under.
const userIDKey = "userID"

// JWTAuthMiddleware gates every protected endpoint: it resolves the bearer
// token to a user id before any repository code runs. Missing, malformed,
// forged and expired tokens all get the same generic rejection.
func JWTAuthMiddleware(tokens *auth.JWTManager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.Parse(tokenString)
		if err != nil {
			log.Warn("Invalid or expired token presented")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// callerID returns the authenticated user id the middleware attached.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
