package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/reservations"
	httpHandler "github.com/mwangi/kodisha/services/reservations/handler/http"
)

// Handler combines the HTTP handlers for the reservations service
type Handler struct {
	reservationsHTTP *httpHandler.ReservationsHandler
	cfg              *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(reservationUC reservations.ReservationUC, cfg *models.Config) *Handler {
	return &Handler{
		reservationsHTTP: httpHandler.NewReservationsHandler(reservationUC),
		cfg:              cfg,
	}
}

// RegisterRoutes registers all reservation HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Tenant-facing routes, JWT required
	group := e.Group("/reservations", middleware.JWTAuthMiddleware(h.cfg.JWT, "tenant"))
	group.POST("", h.reservationsHTTP.CreateReservation)
	group.GET("/:reservationID", h.reservationsHTTP.GetReservation)
	group.DELETE("/:reservationID", h.reservationsHTTP.CancelReservation)
}
