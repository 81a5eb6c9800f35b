package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi/kodisha/internal/pkg/constants"
	"github.com/mwangi/kodisha/internal/pkg/logger"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/reservations"
	"github.com/shopspring/decimal"
)

// ReservationUC implements the reservation state machine on top of the
// ledger repository. All transition rules live here; the repository only
// enforces the ones that need the row lock.
type ReservationUC struct {
	cfg             *models.Config
	reservationRepo reservations.ReservationRepo
	reservationGW   reservations.ReservationGW
}

// NewReservationUC creates a new reservation usecase
func NewReservationUC(
	cfg *models.Config,
	reservationRepo reservations.ReservationRepo,
	reservationGW reservations.ReservationGW,
) *ReservationUC {
	return &ReservationUC{
		cfg:             cfg,
		reservationRepo: reservationRepo,
		reservationGW:   reservationGW,
	}
}

// CreateReservation opens a pending reservation for the tenant. The amount
// due is computed server-side from the directory's rent basis, never taken
// from the request.
func (uc *ReservationUC) CreateReservation(ctx context.Context, tenantID uuid.UUID, req models.CreateReservationRequest) (*models.Reservation, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, reservations.ErrReservationNotFound
	}
	if req.Months < 1 {
		req.Months = 1
	}

	property, err := uc.reservationGW.GetProperty(ctx, propertyID)
	if err != nil {
		logger.Error("Failed to look up property",
			logger.String("property_id", propertyID.String()),
			logger.Err(err))
		return nil, err
	}
	if !property.Available {
		return nil, reservations.ErrPropertyUnavailable
	}

	now := time.Now().UTC()
	amountDue := property.MonthlyRent.Mul(decimal.NewFromInt(int64(req.Months)))

	reservation := &models.Reservation{
		ID:            uuid.New(),
		TenantID:      tenantID,
		PropertyID:    propertyID,
		Status:        models.ReservationStatusPending,
		PaymentStatus: models.PaymentStatePending,
		AmountDue:     amountDue,
		Currency:      property.Currency,
		Months:        req.Months,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(uc.cfg.Scheduler.HoldTTL) * time.Hour),
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		Kind:          models.InvoiceKindReservation,
		Amount:        amountDue,
		AmountPaid:    decimal.Zero,
		Currency:      property.Currency,
		Status:        models.InvoiceStatusOpen,
		DueDate:       reservation.ExpiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.reservationRepo.CreateReservation(ctx, reservation, invoice); err != nil {
		logger.Error("Failed to create reservation",
			logger.String("tenant_id", tenantID.String()),
			logger.String("property_id", propertyID.String()),
			logger.Err(err))
		return nil, err
	}

	logger.Info("Reservation created",
		logger.String("reservation_id", reservation.ID.String()),
		logger.String("property_id", propertyID.String()),
		logger.String("amount_due", amountDue.String()))

	return reservation, nil
}

// GetReservation retrieves a reservation owned by the tenant
func (uc *ReservationUC) GetReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := uc.reservationRepo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.TenantID != tenantID {
		return nil, reservations.ErrNotReservationOwner
	}

	return reservation, nil
}

// CancelReservation closes a pending reservation on the tenant's request.
// If a completed payment committed first the repository rejects the cancel
// with ErrAlreadyPaid.
func (uc *ReservationUC) CancelReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := uc.reservationRepo.CancelReservation(ctx, tenantID, reservationID)
	if err != nil {
		return nil, err
	}

	logger.Info("Reservation cancelled",
		logger.String("reservation_id", reservationID.String()),
		logger.String("tenant_id", tenantID.String()))

	uc.publishReservationEvent(ctx, constants.SubjectReservationCancelled, reservation)

	return reservation, nil
}

// ApplyPaymentOutcome feeds a verified provider outcome into the state
// machine. The caller has already matched the outcome to a payment
// transaction; MerchantReference carries that transaction's id.
func (uc *ReservationUC) ApplyPaymentOutcome(ctx context.Context, outcome *models.PaymentOutcome) error {
	transactionID, err := uuid.Parse(outcome.MerchantReference)
	if err != nil {
		logger.Warn("Payment outcome carries an unparseable merchant reference",
			logger.String("provider", string(outcome.Provider)),
			logger.String("merchant_reference", outcome.MerchantReference))
		return reservations.ErrStaleTransition
	}

	result, err := uc.reservationRepo.ApplyPaymentOutcome(ctx, transactionID, outcome)
	if err != nil {
		return err
	}

	switch outcome.Status {
	case models.OutcomeCompleted:
		logger.Info("Payment outcome applied",
			logger.String("transaction_id", transactionID.String()),
			logger.String("reservation_id", result.Reservation.ID.String()),
			logger.String("status", string(result.Reservation.Status)))

		if result.Extended {
			uc.publishOccupancyEvent(ctx, constants.SubjectOccupancyExtended, result)
		} else if result.Occupancy != nil {
			uc.publishReservationEvent(ctx, constants.SubjectReservationConfirmed, result.Reservation)
		}
		uc.publishPaymentEvent(ctx, constants.SubjectPaymentCompleted, result.Reservation)

	case models.OutcomeFailed:
		logger.Info("Payment attempt failed",
			logger.String("transaction_id", transactionID.String()),
			logger.String("reservation_id", result.Reservation.ID.String()),
			logger.String("reason", outcome.FailureReason))

		uc.publishPaymentEvent(ctx, constants.SubjectPaymentFailed, result.Reservation)
	}

	return nil
}

// publishReservationEvent publishes fire-and-forget; failures are logged only
func (uc *ReservationUC) publishReservationEvent(ctx context.Context, subject string, reservation *models.Reservation) {
	event := models.ReservationEvent{
		ReservationID: reservation.ID,
		TenantID:      reservation.TenantID,
		PropertyID:    reservation.PropertyID,
		Status:        reservation.Status,
		PaymentStatus: reservation.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.reservationGW.PublishReservationEvent(ctx, subject, event); err != nil {
		logger.Warn("Failed to publish reservation event",
			logger.String("subject", subject),
			logger.String("reservation_id", reservation.ID.String()),
			logger.Err(err))
	}
}

func (uc *ReservationUC) publishOccupancyEvent(ctx context.Context, subject string, result *reservations.ApplyResult) {
	event := models.OccupancyEvent{
		OccupancyID:   result.Occupancy.ID,
		ReservationID: result.Occupancy.ReservationID,
		TenantID:      result.Occupancy.TenantID,
		Status:        result.Occupancy.Status,
		EndDate:       result.Occupancy.EndDate,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.reservationGW.PublishOccupancyEvent(ctx, subject, event); err != nil {
		logger.Warn("Failed to publish occupancy event",
			logger.String("subject", subject),
			logger.String("occupancy_id", result.Occupancy.ID.String()),
			logger.Err(err))
	}
}

func (uc *ReservationUC) publishPaymentEvent(ctx context.Context, subject string, reservation *models.Reservation) {
	event := models.ReservationEvent{
		ReservationID: reservation.ID,
		TenantID:      reservation.TenantID,
		PropertyID:    reservation.PropertyID,
		Status:        reservation.Status,
		PaymentStatus: reservation.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}
	if err := uc.reservationGW.PublishReservationEvent(ctx, subject, event); err != nil {
		logger.Warn("Failed to publish payment event",
			logger.String("subject", subject),
			logger.String("reservation_id", reservation.ID.String()),
			logger.Err(err))
	}
}
