package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/bangladiet/backend/internal/api"
	"github.com/pageza/bangladiet/backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *api.HealthHandler
	Auth    *api.AuthHandler
	Profile *api.ProfileHandler
	Food    *api.FoodHandler
	Meals   *api.MealHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())
	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", h.Health.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)
	h.Food.RegisterRoutes(v1)
	h.Meals.RegisterRoutes(v1)

	return router
}
