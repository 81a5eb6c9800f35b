package reservations

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// ApplyResult describes what a persisted payment outcome changed, so the
// usecase can publish the matching notification events after commit.
type ApplyResult struct {
	Reservation *models.Reservation
	Transaction *models.PaymentTransaction
	Occupancy   *models.Occupancy
	Extended    bool // true when a renewal payment extended an occupancy
}

// ReservationRepo defines the interface for reservation persistence.
// Multi-entity transitions run inside a single database transaction; the
// row lock on the reservation is the per-reservation serialization point.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/mwangi/kodisha/services/reservations ReservationRepo
type ReservationRepo interface {
	// CreateReservation inserts the reservation and its opening invoice
	// atomically.
	CreateReservation(ctx context.Context, reservation *models.Reservation, invoice *models.Invoice) error

	GetReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error)

	// CancelReservation applies the tenant-cancel transition. It re-checks
	// payment_status under the row lock so a racing completed payment wins.
	CancelReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error)

	// ApplyPaymentOutcome atomically moves the payment transaction to its
	// terminal status, settles the invoice, and either confirms the
	// reservation (creating its occupancy) or extends the occupancy for
	// renewal invoices. Returns ErrStaleTransition when the transaction was
	// already terminal.
	ApplyPaymentOutcome(ctx context.Context, transactionID uuid.UUID, outcome *models.PaymentOutcome) (*ApplyResult, error)
}
