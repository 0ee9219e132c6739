// Package v1 provides the chat API handlers.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riyan-hx/Lumid.ai/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the chat API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/state", h.GetState)

	// Sessions
	e.GET("/v1/sessions", h.ListSessions)
	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/current", h.GetCurrentSession)
	e.GET("/v1/sessions/:session_id", h.GetSession)
	e.POST("/v1/sessions/:session_id/select", h.SelectSession)
	e.DELETE("/v1/sessions/:session_id", h.DeleteSession)
	e.GET("/v1/sessions/:session_id/export", h.ExportSession)

	// Turns
	e.POST("/v1/turns", h.SubmitTurn)
	e.POST("/v1/turns/retry", h.RetryTurn)
	e.DELETE("/v1/error", h.DismissError)

	// Activities
	e.GET("/v1/activities", h.ListActivities)
	e.POST("/v1/activities/:action", h.StartActivity)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"sessions": len(h.service.Sessions()),
	})
}

// GetState returns the full chat state snapshot.
// GET /v1/state
func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Snapshot())
}
