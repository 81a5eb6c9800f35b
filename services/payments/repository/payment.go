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
	"github.com/mwangi/kodisha/services/payments"
	"github.com/mwangi/kodisha/services/reservations"
)

// PaymentRepo persists payment transactions and webhook deliveries
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

// GetPayableReservation returns the reservation if the tenant owns it and
// it can still accept payment attempts.
func (r *PaymentRepo) GetPayableReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*models.Reservation, error) {
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

	if reservation.TenantID != tenantID {
		return nil, reservations.ErrNotReservationOwner
	}
	if reservation.Status == models.ReservationStatusCancelled ||
		reservation.Status == models.ReservationStatusExpired {
		return nil, payments.ErrReservationNotPayable
	}

	return reservation, nil
}

// GetOpenInvoice returns the oldest unsettled invoice for the reservation
func (r *PaymentRepo) GetOpenInvoice(ctx context.Context, reservationID uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := r.db.GetContext(ctx, invoice, `
		SELECT id, reservation_id, kind, amount, amount_paid, currency,
		       status, due_date, created_at, updated_at
		FROM invoices
		WHERE reservation_id = $1 AND status IN ($2, $3)
		ORDER BY created_at ASC
		LIMIT 1
	`, reservationID, models.InvoiceStatusOpen, models.InvoiceStatusPartiallyPaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrNoOpenInvoice
		}
		return nil, fmt.Errorf("failed to get open invoice: %w", err)
	}

	return invoice, nil
}

// CreateTransaction inserts a new initiated payment transaction
func (r *PaymentRepo) CreateTransaction(ctx context.Context, payment *models.PaymentTransaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (
			id, reservation_id, invoice_id, provider, provider_reference,
			status, amount, currency, msisdn, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		payment.ID,
		payment.ReservationID,
		payment.InvoiceID,
		payment.Provider,
		payment.ProviderReference,
		payment.Status,
		payment.Amount,
		payment.Currency,
		payment.Msisdn,
		payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	return nil
}

// SetProviderReference stores the reference assigned at initiation
func (r *PaymentRepo) SetProviderReference(ctx context.Context, transactionID uuid.UUID, reference string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions SET provider_reference = $1 WHERE id = $2
	`, reference, transactionID)
	if err != nil {
		return fmt.Errorf("failed to set provider reference: %w", err)
	}

	return nil
}

// MarkTransactionFailed terminates a transaction that never reached the
// provider. Only non-terminal rows are touched.
func (r *PaymentRepo) MarkTransactionFailed(ctx context.Context, transactionID uuid.UUID, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, failure_reason = $2, completed_at = $3
		WHERE id = $4 AND status = $5
	`, models.TransactionStatusFailed, reason, time.Now().UTC(), transactionID, models.TransactionStatusInitiated)
	if err != nil {
		return fmt.Errorf("failed to mark transaction failed: %w", err)
	}

	return nil
}

// GetTransaction retrieves a payment transaction by id
func (r *PaymentRepo) GetTransaction(ctx context.Context, transactionID uuid.UUID) (*models.PaymentTransaction, error) {
	payment := &models.PaymentTransaction{}
	err := r.db.GetContext(ctx, payment, transactionQuery+` WHERE id = $1`, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	return payment, nil
}

// GetTransactionByReference matches a callback to its transaction
func (r *PaymentRepo) GetTransactionByReference(ctx context.Context, provider models.PaymentProvider, reference string) (*models.PaymentTransaction, error) {
	payment := &models.PaymentTransaction{}
	err := r.db.GetContext(ctx, payment, transactionQuery+` WHERE provider = $1 AND provider_reference = $2`, provider, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get payment transaction by reference: %w", err)
	}

	return payment, nil
}

// ListPendingVerification returns initiated transactions older than the
// cutoff, oldest first.
func (r *PaymentRepo) ListPendingVerification(ctx context.Context, cutoff time.Time, limit int) ([]*models.PaymentTransaction, error) {
	var rows []*models.PaymentTransaction
	err := r.db.SelectContext(ctx, &rows, transactionQuery+`
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC
		LIMIT $3
	`, models.TransactionStatusInitiated, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}

	return rows, nil
}

// RecordWebhookEvent durably stores a callback delivery before processing
func (r *PaymentRepo) RecordWebhookEvent(ctx context.Context, event *models.WebhookEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO webhook_events (
			id, provider, provider_reference, payload, signature_ok, received_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		event.ID,
		event.Provider,
		event.ProviderReference,
		event.Payload,
		event.SignatureOK,
		event.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}

	return nil
}

// MarkWebhookProcessed stamps a delivery once its outcome is settled
func (r *PaymentRepo) MarkWebhookProcessed(ctx context.Context, eventID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE webhook_events SET processed_at = $1 WHERE id = $2
	`, time.Now().UTC(), eventID)
	if err != nil {
		return fmt.Errorf("failed to mark webhook processed: %w", err)
	}

	return nil
}

const transactionQuery = `
	SELECT id, reservation_id, invoice_id, provider, provider_reference,
	       status, amount, currency, COALESCE(msisdn, '') AS msisdn,
	       COALESCE(failure_reason, '') AS failure_reason, created_at, completed_at
	FROM payment_transactions`
