package reservations

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// ReservationUC defines the interface for reservation business logic
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/mwangi/kodisha/services/reservations ReservationUC
type ReservationUC interface {
	CreateReservation(ctx context.Context, tenantID uuid.UUID, req models.CreateReservationRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error)
	CancelReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error)
	ApplyPaymentOutcome(ctx context.Context, outcome *models.PaymentOutcome) error
}
