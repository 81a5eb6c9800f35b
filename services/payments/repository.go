package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// PaymentRepo defines the interface for payment persistence
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/mwangi/kodisha/services/payments PaymentRepo
type PaymentRepo interface {
	// GetPayableReservation returns the reservation if it belongs to the
	// tenant and can still accept payment attempts.
	GetPayableReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error)

	// GetOpenInvoice returns the oldest unsettled invoice for the
	// reservation, or ErrNoOpenInvoice.
	GetOpenInvoice(ctx context.Context, reservationID uuid.UUID) (*models.Invoice, error)

	// CreateTransaction inserts a new initiated payment transaction
	CreateTransaction(ctx context.Context, payment *models.PaymentTransaction) error

	// SetProviderReference stores the reference the provider assigned at
	// initiation, so later callbacks can be matched to the transaction.
	SetProviderReference(ctx context.Context, transactionID uuid.UUID, reference string) error

	// MarkTransactionFailed terminates a transaction that never reached
	// the provider.
	MarkTransactionFailed(ctx context.Context, transactionID uuid.UUID, reason string) error

	GetTransaction(ctx context.Context, transactionID uuid.UUID) (*models.PaymentTransaction, error)

	// GetTransactionByReference matches a callback to its transaction via
	// the (provider, provider_reference) unique pair.
	GetTransactionByReference(ctx context.Context, provider models.PaymentProvider, reference string) (*models.PaymentTransaction, error)

	// ListPendingVerification returns initiated transactions created
	// before the cutoff, oldest first, capped at limit.
	ListPendingVerification(ctx context.Context, cutoff time.Time, limit int) ([]*models.PaymentTransaction, error)

	// RecordWebhookEvent durably stores a callback delivery before any
	// processing happens. The stored row survives crashes mid-processing.
	RecordWebhookEvent(ctx context.Context, event *models.WebhookEvent) error

	// MarkWebhookProcessed stamps the delivery once its outcome has been
	// applied (or discarded as stale).
	MarkWebhookProcessed(ctx context.Context, eventID uuid.UUID) error
}

// LockManager serializes webhook processing per provider reference across
// engine instances.
//
//go:generate mockgen -destination=mocks/mock_lockmanager.go -package=mocks github.com/mwangi/kodisha/services/payments LockManager
type LockManager interface {
	// AcquireLock takes the reference lock; false means another worker
	// holds it.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// ReleaseLock drops the reference lock
	ReleaseLock(ctx context.Context, key string) error
}
