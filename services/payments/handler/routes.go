package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/mwangi/kodisha/internal/pkg/middleware"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/payments"
	httpHandler "github.com/mwangi/kodisha/services/payments/handler/http"
)

// Handler combines the HTTP handlers for the payments service
type Handler struct {
	paymentsHTTP *httpHandler.PaymentsHandler
	cfg          *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(paymentUC payments.PaymentUC, cfg *models.Config) *Handler {
	return &Handler{
		paymentsHTTP: httpHandler.NewPaymentsHandler(paymentUC),
		cfg:          cfg,
	}
}

// RegisterRoutes registers all payment HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, apiKey *middleware.APIKeyMiddleware) {
	group := e.Group("/payments")

	// Tenant-facing initiation, JWT required
	group.POST("/:provider/initiate", h.paymentsHTTP.InitiatePayment, middleware.JWTAuthMiddleware(h.cfg.JWT, "tenant"))

	// Provider callbacks authenticate themselves per provider
	group.POST("/:provider/callback", h.paymentsHTTP.Callback)

	// Internal reconcile route, API key required
	internal := e.Group("/internal", apiKey.Require())
	internal.POST("/payments/:transactionID/verify", h.paymentsHTTP.VerifyTransaction)
}
