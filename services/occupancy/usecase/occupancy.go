package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/constants"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/occupancy"
)

// OccupancyUC implements the time-based sweeps over reservations and
// occupancies.
type OccupancyUC struct {
	cfg           *models.Config
	occupancyRepo occupancy.OccupancyRepo
	occupancyGW   occupancy.OccupancyGW
}

// NewOccupancyUC creates a new occupancy usecase
func NewOccupancyUC(
	cfg *models.Config,
	occupancyRepo occupancy.OccupancyRepo,
	occupancyGW occupancy.OccupancyGW,
) *OccupancyUC {
	return &OccupancyUC{
		cfg:           cfg,
		occupancyRepo: occupancyRepo,
		occupancyGW:   occupancyGW,
	}
}

// ExpireStaleReservations closes pending reservations whose hold lapsed
// without payment.
func (uc *OccupancyUC) ExpireStaleReservations(ctx context.Context) error {
	now := time.Now().UTC()
	expired, err := uc.occupancyRepo.ExpireStaleReservations(ctx, now, uc.cfg.Scheduler.BatchSize)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	logger.Info("Expired stale reservations", logger.Int("count", len(expired)))

	for _, reservation := range expired {
		event := models.ReservationEvent{
			ReservationID: reservation.ID,
			TenantID:      reservation.TenantID,
			PropertyID:    reservation.PropertyID,
			Status:        reservation.Status,
			PaymentStatus: reservation.PaymentStatus,
			OccurredAt:    now,
		}
		if err := uc.occupancyGW.PublishReservationEvent(ctx, constants.SubjectReservationExpired, event); err != nil {
			logger.Warn("Failed to publish expiry event",
				logger.String("reservation_id", reservation.ID.String()),
				logger.Err(err))
		}
	}

	return nil
}

// MarkExpiringOccupancies flags occupancies entering the renewal window
// and opens their renewal invoices.
func (uc *OccupancyUC) MarkExpiringOccupancies(ctx context.Context) error {
	windowEnd := time.Now().UTC().AddDate(0, 0, uc.cfg.Scheduler.RenewalWindowDays)
	expiring, err := uc.occupancyRepo.MarkExpiringOccupancies(ctx, windowEnd, uc.cfg.Scheduler.BatchSize)
	if err != nil {
		return err
	}
	if len(expiring) == 0 {
		return nil
	}

	logger.Info("Marked occupancies expiring", logger.Int("count", len(expiring)))

	uc.publishOccupancyEvents(ctx, constants.SubjectOccupancyExpiring, expiring)
	return nil
}

// ExpireLapsedOccupancies closes occupancies whose paid period ended
// without a renewal payment.
func (uc *OccupancyUC) ExpireLapsedOccupancies(ctx context.Context) error {
	now := time.Now().UTC()
	lapsed, err := uc.occupancyRepo.ExpireLapsedOccupancies(ctx, now, uc.cfg.Scheduler.BatchSize)
	if err != nil {
		return err
	}
	if len(lapsed) == 0 {
		return nil
	}

	logger.Info("Expired lapsed occupancies", logger.Int("count", len(lapsed)))

	uc.publishOccupancyEvents(ctx, constants.SubjectOccupancyExpired, lapsed)
	return nil
}

// TerminateOccupancy ends one live occupancy ahead of its paid period and
// announces the termination.
func (uc *OccupancyUC) TerminateOccupancy(ctx context.Context, occupancyID uuid.UUID) (*models.Occupancy, error) {
	occ, err := uc.occupancyRepo.TerminateOccupancy(ctx, occupancyID)
	if err != nil {
		return nil, err
	}

	logger.Info("Terminated occupancy",
		logger.String("occupancy_id", occ.ID.String()),
		logger.String("reservation_id", occ.ReservationID.String()))

	uc.publishOccupancyEvents(ctx, constants.SubjectOccupancyTerminated, []*models.Occupancy{occ})
	return occ, nil
}

func (uc *OccupancyUC) publishOccupancyEvents(ctx context.Context, subject string, occupancies []*models.Occupancy) {
	now := time.Now().UTC()
	for _, occ := range occupancies {
		event := models.OccupancyEvent{
			OccupancyID:   occ.ID,
			ReservationID: occ.ReservationID,
			TenantID:      occ.TenantID,
			Status:        occ.Status,
			EndDate:       occ.EndDate,
			OccurredAt:    now,
		}
		if err := uc.occupancyGW.PublishOccupancyEvent(ctx, subject, event); err != nil {
			logger.Warn("Failed to publish occupancy event",
				logger.String("subject", subject),
				logger.String("occupancy_id", occ.ID.String()),
				logger.Err(err))
		}
	}
}
