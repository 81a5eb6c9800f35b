package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
	"github.com/mwangi/kodisha/internal/utils"
	"github.com/mwangi/kodisha/services/occupancy"
)

// OccupancyHandler handles HTTP requests for occupancy operations
type OccupancyHandler struct {
	occupancyUC occupancy.OccupancyUC
}

// NewOccupancyHandler creates a new occupancy HTTP handler
func NewOccupancyHandler(occupancyUC occupancy.OccupancyUC) *OccupancyHandler {
	return &OccupancyHandler{
		occupancyUC: occupancyUC,
	}
}

// TerminateOccupancy handles the back-office request to end a tenancy
// before its paid period runs out
func (h *OccupancyHandler) TerminateOccupancy(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Occupancy.TerminateOccupancy")

	occupancyID, err := uuid.Parse(c.Param("occupancyID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid occupancy ID")
	}

	occ, err := h.occupancyUC.TerminateOccupancy(c.Request().Context(), occupancyID)
	if err != nil {
		if errors.Is(err, occupancy.ErrOccupancyNotLive) {
			return utils.NotFoundResponse(c, "Occupancy not found or already ended")
		}
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to terminate occupancy")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Occupancy terminated", occ)
}
