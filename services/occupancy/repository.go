package occupancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// OccupancyRepo defines the interface for sweep persistence. All sweep
// queries are state-conditioned and batched, and lock candidate rows with
// SKIP LOCKED so concurrent engine instances divide the work instead of
// colliding.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/mwangi/kodisha/services/occupancy OccupancyRepo
type OccupancyRepo interface {
	// ExpireStaleReservations transitions pending, unpaid reservations
	// past their hold deadline to expired and voids their open invoices.
	// Returns the reservations it transitioned.
	ExpireStaleReservations(ctx context.Context, now time.Time, limit int) ([]*models.Reservation, error)

	// MarkExpiringOccupancies transitions active occupancies whose end
	// date falls before windowEnd to expiring and opens one renewal
	// invoice per occupancy. Returns the occupancies it transitioned.
	MarkExpiringOccupancies(ctx context.Context, windowEnd time.Time, limit int) ([]*models.Occupancy, error)

	// ExpireLapsedOccupancies transitions occupancies whose end date has
	// passed to expired and voids their unpaid renewal invoices. Returns
	// the occupancies it transitioned.
	ExpireLapsedOccupancies(ctx context.Context, now time.Time, limit int) ([]*models.Occupancy, error)

	// TerminateOccupancy ends a live occupancy ahead of its paid period
	// and voids its open invoices. Returns ErrOccupancyNotLive when the
	// occupancy is missing or already ended.
	TerminateOccupancy(ctx context.Context, occupancyID uuid.UUID) (*models.Occupancy, error)
}
