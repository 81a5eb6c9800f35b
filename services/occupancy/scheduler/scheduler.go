package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/occupancy"
	"github.com/mwangi/kodisha/services/payments"
	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic sweeps: reservation expiry, renewal
// flagging, occupancy termination and payment reconciliation. Sweeps are
// idempotent, so overlapping or doubled runs are harmless.
type Scheduler struct {
	cfg         *models.Config
	occupancyUC occupancy.OccupancyUC
	paymentUC   payments.PaymentUC
	cron        *cron.Cron
}

// NewScheduler creates a new sweep scheduler
func NewScheduler(cfg *models.Config, occupancyUC occupancy.OccupancyUC, paymentUC payments.PaymentUC) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		occupancyUC: occupancyUC,
		paymentUC:   paymentUC,
		cron:        cron.New(),
	}
}

// Start registers the sweep jobs and starts the cron loop
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %dm", s.cfg.Scheduler.SweepInterval)

	if _, err := s.cron.AddFunc(spec, s.runSweeps); err != nil {
		return fmt.Errorf("failed to schedule sweeps: %w", err)
	}

	s.cron.Start()
	logger.Info("Sweep scheduler started", logger.String("interval", spec))
	return nil
}

// Stop halts the cron loop and returns a context that is done once running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// runSweeps runs one full sweep cycle. Each sweep gets its own error
// handling so one failing stage never starves the others.
func (s *Scheduler) runSweeps() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()

	if err := s.occupancyUC.ExpireStaleReservations(ctx); err != nil {
		logger.Error("Reservation expiry sweep failed", logger.Err(err))
	}
	if err := s.occupancyUC.MarkExpiringOccupancies(ctx); err != nil {
		logger.Error("Renewal flagging sweep failed", logger.Err(err))
	}
	if err := s.occupancyUC.ExpireLapsedOccupancies(ctx); err != nil {
		logger.Error("Occupancy lapse sweep failed", logger.Err(err))
	}
	if err := s.paymentUC.VerifyPending(ctx); err != nil {
		logger.Error("Payment reconciliation sweep failed", logger.Err(err))
	}

	logger.Debug("Sweep cycle finished", logger.Duration("took", time.Since(started)))
}
