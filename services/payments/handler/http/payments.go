package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/internal/pkg/models"
	nrpkg "github.com/mwangi/kodisha/internal/pkg/newrelic"
	"github.com/mwangi/kodisha/internal/utils"
	"github.com/mwangi/kodisha/services/payments"
	"github.com/mwangi/kodisha/services/reservations"
)

// PaymentsHandler handles HTTP requests for payment operations
type PaymentsHandler struct {
	paymentUC payments.PaymentUC
}

// NewPaymentsHandler creates a new payment HTTP handler
func NewPaymentsHandler(paymentUC payments.PaymentUC) *PaymentsHandler {
	return &PaymentsHandler{
		paymentUC: paymentUC,
	}
}

// InitiatePayment handles the tenant request to start a payment attempt
func (h *PaymentsHandler) InitiatePayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.InitiatePayment")

	tenantID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Missing authenticated tenant")
	}

	provider := models.PaymentProvider(c.Param("provider"))
	if !provider.Valid() {
		return utils.NotFoundResponse(c, "Unknown payment provider")
	}

	var req models.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.ReservationID == "" {
		return utils.BadRequestResponse(c, "Reservation ID is required")
	}

	result, err := h.paymentUC.InitiatePayment(c.Request().Context(), tenantID, provider, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			return utils.NotFoundResponse(c, "Reservation not found")
		case errors.Is(err, reservations.ErrNotReservationOwner):
			return utils.ForbiddenResponse(c, "Reservation belongs to another tenant")
		case errors.Is(err, payments.ErrReservationNotPayable):
			return utils.ConflictResponse(c, "Reservation cannot accept payments")
		case errors.Is(err, payments.ErrNoOpenInvoice):
			return utils.ConflictResponse(c, "Nothing left to pay on this reservation")
		case errors.Is(err, payments.ErrMsisdnRequired):
			return utils.BadRequestResponse(c, "Msisdn is required for this provider")
		}
		logger.Error("Failed to initiate payment",
			logger.String("provider", string(provider)),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadGatewayResponse(c, "Payment provider is unavailable")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment initiated", result)
}

// Callback receives provider webhook deliveries.
//
// Deliveries are acknowledged with 200 once durably recorded, even when
// processing is a no-op or authentication failed, so providers stop
// redelivering. Only an unknown provider path is refused.
func (h *PaymentsHandler) Callback(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.Callback")

	provider := models.PaymentProvider(c.Param("provider"))
	if !provider.Valid() {
		return utils.NotFoundResponse(c, "Unknown payment provider")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read request body")
	}

	nrpkg.AddTransactionAttribute(txn, "payment.provider", string(provider))

	if err := h.paymentUC.HandleCallback(c.Request().Context(), provider, c.Request(), body); err != nil {
		if errors.Is(err, payments.ErrUnknownProvider) {
			return utils.NotFoundResponse(c, "Unknown payment provider")
		}
		logger.Error("Failed to record callback",
			logger.String("provider", string(provider)),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to record callback")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Callback accepted", nil)
}

// VerifyTransaction handles the internal reconcile request for one
// transaction.
func (h *PaymentsHandler) VerifyTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Payments.VerifyTransaction")

	transactionID, err := uuid.Parse(c.Param("transactionID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	payment, err := h.paymentUC.VerifyTransaction(c.Request().Context(), transactionID)
	if err != nil {
		if errors.Is(err, payments.ErrTransactionNotFound) {
			return utils.NotFoundResponse(c, "Payment transaction not found")
		}
		logger.Error("Failed to verify transaction",
			logger.String("transaction_id", transactionID.String()),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadGatewayResponse(c, "Failed to verify transaction with provider")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transaction verified", payment)
}
