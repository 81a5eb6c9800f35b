package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/internal/pkg/models"
	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
	"github.com/mwangi/kodisha/internal/utils"
	"github.com/mwangi/kodisha/services/reservations"
)

// ReservationsHandler handles HTTP requests for reservation operations
type ReservationsHandler struct {
	reservationUC reservations.ReservationUC
}

// NewReservationsHandler creates a new reservation HTTP handler
func NewReservationsHandler(reservationUC reservations.ReservationUC) *ReservationsHandler {
	return &ReservationsHandler{
		reservationUC: reservationUC,
	}
}

// CreateReservation handles the tenant request to hold a property
func (h *ReservationsHandler) CreateReservation(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Reservations.CreateReservation")

	tenantID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated tenant")
	}

	var req models.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.PropertyID == "" {
		return utils.BadRequestResponse(c, "Property ID is required")
	}

	reservation, err := h.reservationUC.CreateReservation(c.Request().Context(), tenantID, req)
	if err != nil {
		if errors.Is(err, reservations.ErrPropertyUnavailable) {
			return utils.ConflictResponse(c, "Property is not available")
		}
		logger.Error("Failed to create reservation",
			logger.String("tenant_id", tenantID.String()),
			logger.String("property_id", req.PropertyID),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to create reservation")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Reservation created", models.ReservationResponse{
		Reservation: reservation,
		AmountDue:   reservation.AmountDue.String(),
		Currency:    reservation.Currency,
	})
}

// GetReservation handles the tenant request to read a reservation
func (h *ReservationsHandler) GetReservation(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Reservations.GetReservation")

	tenantID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated tenant")
	}

	reservationID, err := uuid.Parse(c.Param("reservationID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid reservation ID")
	}

	reservation, err := h.reservationUC.GetReservation(c.Request().Context(), tenantID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			return utils.NotFoundResponse(c, "Reservation not found")
		case errors.Is(err, reservations.ErrNotReservationOwner):
			return utils.ForbiddenResponse(c, "Reservation belongs to another tenant")
		}
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to get reservation")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Reservation retrieved", models.ReservationResponse{
		Reservation: reservation,
		AmountDue:   reservation.AmountDue.String(),
		Currency:    reservation.Currency,
	})
}

// CancelReservation handles the tenant request to release a held property
func (h *ReservationsHandler) CancelReservation(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Reservations.CancelReservation")

	tenantID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated tenant")
	}

	reservationID, err := uuid.Parse(c.Param("reservationID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid reservation ID")
	}

	reservation, err := h.reservationUC.CancelReservation(c.Request().Context(), tenantID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			return utils.NotFoundResponse(c, "Reservation not found")
		case errors.Is(err, reservations.ErrNotReservationOwner):
			return utils.ForbiddenResponse(c, "Reservation belongs to another tenant")
		case errors.Is(err, reservations.ErrAlreadyPaid):
			return utils.ConflictResponse(c, "Reservation already paid, contact support for a refund")
		case errors.Is(err, reservations.ErrInvalidTransition):
			return utils.ConflictResponse(c, "Reservation can no longer be cancelled")
		}
		logger.Error("Failed to cancel reservation",
			logger.String("reservation_id", reservationID.String()),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to cancel reservation")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Reservation cancelled", models.ReservationResponse{
		Reservation: reservation,
		AmountDue:   reservation.AmountDue.String(),
		Currency:    reservation.Currency,
	})
}
