package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/reservations"
)

// ReservationRepo persists reservations, invoices, payment transactions and
// occupancies. Every multi-entity transition runs in one database
// transaction with the reservation row locked first.
type ReservationRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(cfg *models.Config, db *sqlx.DB) *ReservationRepo {
	return &ReservationRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateReservation inserts the reservation and its opening invoice atomically
func (r *ReservationRepo) CreateReservation(ctx context.Context, reservation *models.Reservation, invoice *models.Invoice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reservations (
			id, tenant_id, property_id, status, payment_status,
			amount_due, currency, months, created_at, updated_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		reservation.ID,
		reservation.TenantID,
		reservation.PropertyID,
		reservation.Status,
		reservation.PaymentStatus,
		reservation.AmountDue,
		reservation.Currency,
		reservation.Months,
		reservation.CreatedAt,
		reservation.UpdatedAt,
		reservation.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (
			id, reservation_id, kind, amount, amount_paid, currency,
			status, due_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		invoice.ID,
		invoice.ReservationID,
		invoice.Kind,
		invoice.Amount,
		invoice.AmountPaid,
		invoice.Currency,
		invoice.Status,
		invoice.DueDate,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	return tx.Commit()
}

// GetReservation retrieves a reservation by id
func (r *ReservationRepo) GetReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	err := r.db.GetContext(ctx, reservation, `
		SELECT id, tenant_id, property_id, status, payment_status,
		       amount_due, currency, months, created_at, updated_at, expires_at
		FROM reservations
		WHERE id = $1
	`, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservations.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return reservation, nil
}

// CancelReservation applies the tenant-cancel transition. The payment status
// is re-checked under the row lock: if a completing webhook committed first,
// the cancellation loses and ErrAlreadyPaid is returned.
func (r *ReservationRepo) CancelReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reservation, err := lockReservation(ctx, tx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.TenantID != tenantID {
		return nil, reservations.ErrNotReservationOwner
	}
	if reservation.PaymentStatus == models.PaymentStateCompleted {
		return nil, reservations.ErrAlreadyPaid
	}
	if !reservation.Cancellable() {
		return nil, reservations.ErrInvalidTransition
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3
	`, models.ReservationStatusCancelled, now, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	// Open invoices on a cancelled reservation can never be settled
	_, err = tx.ExecContext(ctx, `
		UPDATE invoices SET status = $1, updated_at = $2
		WHERE reservation_id = $3 AND status = $4
	`, models.InvoiceStatusVoid, now, reservationID, models.InvoiceStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to void open invoices: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	reservation.Status = models.ReservationStatusCancelled
	reservation.UpdatedAt = now
	return reservation, nil
}

// ApplyPaymentOutcome moves a payment transaction to its terminal status and
// applies the consequences to invoice, reservation and occupancy in the same
// database transaction. Duplicate deliveries find the transaction already
// terminal and get ErrStaleTransition.
func (r *ReservationRepo) ApplyPaymentOutcome(ctx context.Context, transactionID uuid.UUID, outcome *models.PaymentOutcome) (*reservations.ApplyResult, error) {
	if outcome.Status == models.OutcomePending {
		return nil, reservations.ErrStaleTransition
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	payment := &models.PaymentTransaction{}
	err = tx.GetContext(ctx, payment, `
		SELECT id, reservation_id, invoice_id, provider, provider_reference,
		       status, amount, currency, COALESCE(msisdn, '') AS msisdn,
		       COALESCE(failure_reason, '') AS failure_reason, created_at, completed_at
		FROM payment_transactions
		WHERE id = $1
		FOR UPDATE
	`, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservations.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to lock payment transaction: %w", err)
	}

	if payment.Status.Terminal() {
		return nil, reservations.ErrStaleTransition
	}

	reservation, err := lockReservation(ctx, tx, payment.ReservationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &reservations.ApplyResult{Transaction: payment, Reservation: reservation}

	if outcome.Status == models.OutcomeFailed {
		if err := r.applyFailure(ctx, tx, payment, reservation, outcome, now); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit failed outcome: %w", err)
		}
		return result, nil
	}

	invoice, err := lockInvoice(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == models.InvoiceStatusPaid {
		// Another transaction already settled this invoice. The duplicate
		// settlement is parked for reconciliation; at most one transaction
		// per reservation ever becomes completed.
		_, err = tx.ExecContext(ctx, `
			UPDATE payment_transactions
			SET status = $1, completed_at = $2
			WHERE id = $3
		`, models.TransactionStatusRefundDue, now, payment.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to park duplicate settlement: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit duplicate settlement: %w", err)
		}
		return nil, reservations.ErrStaleTransition
	}

	// Record the settlement first so money is never lost, even when the
	// reservation can no longer be confirmed.
	_, err = tx.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, completed_at = $2
		WHERE id = $3
	`, models.TransactionStatusCompleted, now, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete payment transaction: %w", err)
	}
	payment.Status = models.TransactionStatusCompleted
	payment.CompletedAt = &now

	if err := r.settleInvoice(ctx, tx, payment, invoice, now); err != nil {
		return nil, err
	}

	if invoice.Status != models.InvoiceStatusPaid {
		// Partial settlement: nothing further transitions yet
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit partial settlement: %w", err)
		}
		return result, nil
	}

	switch invoice.Kind {
	case models.InvoiceKindRenewal:
		occupancy, err := r.extendOccupancy(ctx, tx, reservation, now)
		if err != nil {
			return nil, err
		}
		result.Occupancy = occupancy
		result.Extended = true

	default:
		if reservation.Status != models.ReservationStatusPending {
			// The reservation reached a terminal state while the payment was
			// in flight. The settlement is recorded for the refund process;
			// the confirmation itself is stale.
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit settlement: %w", err)
			}
			return nil, reservations.ErrStaleTransition
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE reservations
			SET status = $1, payment_status = $2, updated_at = $3
			WHERE id = $4
		`, models.ReservationStatusConfirmed, models.PaymentStateCompleted, now, reservation.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm reservation: %w", err)
		}
		reservation.Status = models.ReservationStatusConfirmed
		reservation.PaymentStatus = models.PaymentStateCompleted
		reservation.UpdatedAt = now

		occupancy, err := r.createOccupancy(ctx, tx, reservation, now)
		if err != nil {
			return nil, err
		}
		result.Occupancy = occupancy
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment outcome: %w", err)
	}

	return result, nil
}

// applyFailure records a failed attempt. The reservation stays pending so the
// tenant can retry with a new transaction.
func (r *ReservationRepo) applyFailure(ctx context.Context, tx *sqlx.Tx, payment *models.PaymentTransaction, reservation *models.Reservation, outcome *models.PaymentOutcome, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, failure_reason = $2, completed_at = $3
		WHERE id = $4
	`, models.TransactionStatusFailed, outcome.FailureReason, now, payment.ID)
	if err != nil {
		return fmt.Errorf("failed to mark payment transaction failed: %w", err)
	}
	payment.Status = models.TransactionStatusFailed
	payment.FailureReason = outcome.FailureReason

	if reservation.Status == models.ReservationStatusPending &&
		reservation.PaymentStatus != models.PaymentStateCompleted {
		_, err = tx.ExecContext(ctx, `
			UPDATE reservations SET payment_status = $1, updated_at = $2 WHERE id = $3
		`, models.PaymentStateFailed, now, reservation.ID)
		if err != nil {
			return fmt.Errorf("failed to mark reservation payment failed: %w", err)
		}
		reservation.PaymentStatus = models.PaymentStateFailed
		reservation.UpdatedAt = now
	}

	return nil
}

// lockInvoice reads the invoice under a row lock so settlement decisions
// are serialized across concurrent deliveries.
func lockInvoice(ctx context.Context, tx *sqlx.Tx, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := tx.GetContext(ctx, invoice, `
		SELECT id, reservation_id, kind, amount, amount_paid, currency,
		       status, due_date, created_at, updated_at
		FROM invoices
		WHERE id = $1
		FOR UPDATE
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoice: %w", err)
	}
	return invoice, nil
}

// settleInvoice adds the completed amount to the locked invoice and derives
// its settlement status from the running total.
func (r *ReservationRepo) settleInvoice(ctx context.Context, tx *sqlx.Tx, payment *models.PaymentTransaction, invoice *models.Invoice, now time.Time) error {
	invoice.AmountPaid = invoice.AmountPaid.Add(payment.Amount)
	if invoice.AmountPaid.GreaterThanOrEqual(invoice.Amount) {
		invoice.Status = models.InvoiceStatusPaid
	} else {
		invoice.Status = models.InvoiceStatusPartiallyPaid
	}

	_, err := tx.ExecContext(ctx, `
		UPDATE invoices SET amount_paid = $1, status = $2, updated_at = $3 WHERE id = $4
	`, invoice.AmountPaid, invoice.Status, now, invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to settle invoice: %w", err)
	}

	return nil
}

// createOccupancy inserts the occupancy for a freshly confirmed reservation.
// The unique constraint on reservation_id makes creation exactly-once; a
// conflicting insert means another delivery already created it.
func (r *ReservationRepo) createOccupancy(ctx context.Context, tx *sqlx.Tx, reservation *models.Reservation, now time.Time) (*models.Occupancy, error) {
	occupancy := &models.Occupancy{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		PropertyID:    reservation.PropertyID,
		TenantID:      reservation.TenantID,
		StartDate:     now,
		EndDate:       now.AddDate(0, reservation.Months, 0),
		MonthsPaid:    reservation.Months,
		Status:        models.OccupancyStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO occupancies (
			id, reservation_id, property_id, tenant_id, start_date, end_date,
			months_paid, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (reservation_id) DO NOTHING
	`,
		occupancy.ID,
		occupancy.ReservationID,
		occupancy.PropertyID,
		occupancy.TenantID,
		occupancy.StartDate,
		occupancy.EndDate,
		occupancy.MonthsPaid,
		occupancy.Status,
		occupancy.CreatedAt,
		occupancy.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create occupancy: %w", err)
	}

	// Re-read in case a concurrent delivery already inserted the row
	err = tx.GetContext(ctx, occupancy, `
		SELECT id, reservation_id, property_id, tenant_id, start_date, end_date,
		       months_paid, status, created_at, updated_at
		FROM occupancies
		WHERE reservation_id = $1
	`, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read occupancy: %w", err)
	}

	return occupancy, nil
}

// extendOccupancy pushes the occupancy end date out by the reservation's
// billing cadence after a renewal invoice is fully paid.
func (r *ReservationRepo) extendOccupancy(ctx context.Context, tx *sqlx.Tx, reservation *models.Reservation, now time.Time) (*models.Occupancy, error) {
	occupancy := &models.Occupancy{}
	err := tx.GetContext(ctx, occupancy, `
		SELECT id, reservation_id, property_id, tenant_id, start_date, end_date,
		       months_paid, status, created_at, updated_at
		FROM occupancies
		WHERE reservation_id = $1
		FOR UPDATE
	`, reservation.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservations.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to lock occupancy: %w", err)
	}

	occupancy.EndDate = occupancy.EndDate.AddDate(0, reservation.Months, 0)
	occupancy.MonthsPaid += reservation.Months
	occupancy.Status = models.OccupancyStatusActive
	occupancy.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		UPDATE occupancies
		SET end_date = $1, months_paid = $2, status = $3, updated_at = $4
		WHERE id = $5
	`, occupancy.EndDate, occupancy.MonthsPaid, occupancy.Status, now, occupancy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to extend occupancy: %w", err)
	}

	return occupancy, nil
}

// lockReservation reads a reservation under FOR UPDATE inside tx
func lockReservation(ctx context.Context, tx *sqlx.Tx, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	err := tx.GetContext(ctx, reservation, `
		SELECT id, tenant_id, property_id, status, payment_status,
		       amount_due, currency, months, created_at, updated_at, expires_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE
	`, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservations.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to lock reservation: %w", err)
	}

	return reservation, nil
}
