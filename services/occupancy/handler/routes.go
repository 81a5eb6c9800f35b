package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/services/occupancy"
	httpHandler "github.com/mwangi/kodisha/services/occupancy/handler/http"
)

// Handler combines the HTTP handlers for the occupancy service
type Handler struct {
	occupancyHTTP *httpHandler.OccupancyHandler
}

// NewHandler creates a new combined handler
func NewHandler(occupancyUC occupancy.OccupancyUC) *Handler {
	return &Handler{
		occupancyHTTP: httpHandler.NewOccupancyHandler(occupancyUC),
	}
}

// RegisterRoutes registers all occupancy HTTP routes. Termination is a
// back-office operation, API key required.
func (h *Handler) RegisterRoutes(e *echo.Echo, apiKey *middleware.APIKeyMiddleware) {
	internal := e.Group("/internal", apiKey.Require())
	internal.POST("/occupancies/:occupancyID/terminate", h.occupancyHTTP.TerminateOccupancy)
}
