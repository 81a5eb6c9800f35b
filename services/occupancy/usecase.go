package occupancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/models"
)

// OccupancyUC defines the interface for the time-based sweeps and the
// explicit termination operation. Every sweep is idempotent:
// state-conditioned updates mean a crashed or doubled run never applies a
// transition twice.
//
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/mwangi/kodisha/services/occupancy OccupancyUC
type OccupancyUC interface {
	// ExpireStaleReservations closes pending reservations whose hold has
	// lapsed without payment.
	ExpireStaleReservations(ctx context.Context) error

	// MarkExpiringOccupancies flags active occupancies entering the
	// renewal window and opens their renewal invoices.
	MarkExpiringOccupancies(ctx context.Context) error

	// ExpireLapsedOccupancies closes occupancies whose paid period has
	// ended without renewal.
	ExpireLapsedOccupancies(ctx context.Context) error

	// TerminateOccupancy ends one live occupancy explicitly, ahead of its
	// paid period.
	TerminateOccupancy(ctx context.Context, occupancyID uuid.UUID) (*models.Occupancy, error)
}
