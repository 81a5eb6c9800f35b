package reservations

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// ReservationGW defines the interface for the reservation service's
// external collaborators: the property directory and the notification
// dispatcher.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/mwangi/kodisha/services/reservations ReservationGW
type ReservationGW interface {
	// GetProperty looks up the rent basis and availability for a property
	GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error)

	// PublishReservationEvent notifies downstream consumers of a state
	// change. Fire-and-forget: failures are logged, never propagated into
	// the transition that triggered them.
	PublishReservationEvent(ctx context.Context, subject string, event models.ReservationEvent) error

	// PublishOccupancyEvent notifies downstream consumers of an occupancy
	// change tied to a payment (creation, extension).
	PublishOccupancyEvent(ctx context.Context, subject string, event models.OccupancyEvent) error
}
