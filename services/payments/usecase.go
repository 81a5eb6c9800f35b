package payments

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// PaymentUC defines the interface for payment business logic
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/mwangi/kodisha/services/payments PaymentUC
type PaymentUC interface {
	// InitiatePayment starts a payment attempt against the reservation's
	// open invoice through the named provider.
	InitiatePayment(ctx context.Context, tenantID uuid.UUID, provider models.PaymentProvider, req models.InitiatePaymentRequest) (*models.InitiateResult, error)

	// HandleCallback ingests one provider callback delivery. Processing is
	// idempotent: duplicate and concurrent deliveries of the same provider
	// reference are absorbed without double-applying.
	HandleCallback(ctx context.Context, provider models.PaymentProvider, r *http.Request, body []byte) error

	// VerifyTransaction reconciles one transaction against the provider's
	// authoritative record and applies the result if it is terminal.
	VerifyTransaction(ctx context.Context, transactionID uuid.UUID) (*models.PaymentTransaction, error)

	// VerifyPending sweeps initiated transactions whose callbacks are
	// overdue and reconciles each against its provider.
	VerifyPending(ctx context.Context) error
}
