package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	// Everything below requires a valid bearer token.
	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(h.tokens, h.logger))

	profile := protected.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
	}

	trips := protected.Group("/trip")
	{
		trips.POST("/create", h.createTrip)
		trips.GET("", h.listTrips)
		trips.PUT("/:id", h.updateTrip)
		trips.DELETE("/:id", h.deleteTrip)
	}

	incidents := protected.Group("/incident")
	{
		incidents.POST("/report", h.reportIncident)
		incidents.POST("/panic", h.panicIncident)
		incidents.POST("/emergency", h.emergencyIncident)
		incidents.POST("/efir", h.efirIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
	}
}
