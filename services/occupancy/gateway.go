package occupancy

import (
	"context"

	"github.com/mwangi/kodisha/internal/pkg/models"
)

// OccupancyGW defines the interface for publishing sweep notifications.
// The reservations gateway satisfies it; the sweeps only need the publish
// half.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/mwangi/kodisha/services/occupancy OccupancyGW
type OccupancyGW interface {
	PublishReservationEvent(ctx context.Context, subject string, event models.ReservationEvent) error
	PublishOccupancyEvent(ctx context.Context, subject string, event models.OccupancyEvent) error
}
