package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http/middleware"
)

// RegisterRoutes registers all API routes on the Echo instance.
// Every route under /api/v1 requires a valid bearer token; health and the
// Swagger UI stay open.
func RegisterRoutes(e *echo.Echo, handler *TripHandler, jwtSecret string) {
	e.GET("/health", handler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))

	api.POST("/sessions", handler.CreateSession)
	api.GET("/sessions/:id", handler.GetSession)
	api.POST("/sessions/:id/search", handler.StartSearch)
	api.PUT("/sessions/:id/flight", handler.ChooseFlight)
	api.PUT("/sessions/:id/hotel", handler.ChooseHotel)
	api.POST("/sessions/:id/tours", handler.AdvanceToTours)
	api.POST("/sessions/:id/tours/toggle", handler.ToggleTour)
	api.POST("/sessions/:id/back", handler.BackToSelecting)
	api.POST("/sessions/:id/summary", handler.Summarize)
	api.POST("/sessions/:id/save", handler.Save)

	api.GET("/cities", handler.SearchCities)

	api.GET("/simulations", handler.ListSimulations)
	api.POST("/simulations", handler.ImportSimulation)
	api.DELETE("/simulations/:id", handler.DeleteSimulation)
}
