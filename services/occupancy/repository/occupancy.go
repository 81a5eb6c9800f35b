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
	"github.com/mwangi/kodisha/services/occupancy"
)

// OccupancyRepo implements the sweep queries. Candidate rows are locked
// with SKIP LOCKED so concurrent engine instances split the batch instead
// of serializing on it.
type OccupancyRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewOccupancyRepository creates a new occupancy repository
func NewOccupancyRepository(cfg *models.Config, db *sqlx.DB) *OccupancyRepo {
	return &OccupancyRepo{
		cfg: cfg,
		db:  db,
	}
}

// ExpireStaleReservations transitions pending, unpaid reservations past
// their hold deadline to expired and voids their open invoices.
func (r *OccupancyRepo) ExpireStaleReservations(ctx context.Context, now time.Time, limit int) ([]*models.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var expired []*models.Reservation
	err = tx.SelectContext(ctx, &expired, `
		UPDATE reservations SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM reservations
			WHERE status = $3 AND payment_status IN ($4, $5) AND expires_at < $2
			ORDER BY expires_at ASC
			LIMIT $6
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, tenant_id, property_id, status, payment_status,
		          amount_due, currency, months, created_at, updated_at, expires_at
	`,
		models.ReservationStatusExpired,
		now,
		models.ReservationStatusPending,
		models.PaymentStatePending,
		models.PaymentStateFailed,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to expire reservations: %w", err)
	}

	if len(expired) > 0 {
		if err := voidInvoices(ctx, tx, reservationIDs(expired), now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expiry sweep: %w", err)
	}

	return expired, nil
}

// MarkExpiringOccupancies transitions active occupancies inside the renewal
// window to expiring and opens one renewal invoice per occupancy. The
// NOT EXISTS guard keeps repeated sweeps from stacking invoices.
func (r *OccupancyRepo) MarkExpiringOccupancies(ctx context.Context, windowEnd time.Time, limit int) ([]*models.Occupancy, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var expiring []*models.Occupancy
	err = tx.SelectContext(ctx, &expiring, `
		UPDATE occupancies SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM occupancies
			WHERE status = $3 AND end_date <= $4
			ORDER BY end_date ASC
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, reservation_id, property_id, tenant_id, start_date, end_date,
		          months_paid, status, created_at, updated_at
	`,
		models.OccupancyStatusExpiring,
		now,
		models.OccupancyStatusActive,
		windowEnd,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark expiring occupancies: %w", err)
	}

	for _, occ := range expiring {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoices (
				id, reservation_id, kind, amount, amount_paid, currency,
				status, due_date, created_at, updated_at
			)
			SELECT $1, r.id, $2, r.amount_due, 0, r.currency, $3, $4, $5, $5
			FROM reservations r
			WHERE r.id = $6
			  AND NOT EXISTS (
				SELECT 1 FROM invoices i
				WHERE i.reservation_id = r.id AND i.kind = $2 AND i.status IN ($3, $7)
			  )
		`,
			uuid.New(),
			models.InvoiceKindRenewal,
			models.InvoiceStatusOpen,
			occ.EndDate,
			now,
			occ.ReservationID,
			models.InvoiceStatusPartiallyPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open renewal invoice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit renewal sweep: %w", err)
	}

	return expiring, nil
}

// ExpireLapsedOccupancies transitions occupancies past their end date to
// expired and voids the renewal invoices no tenant will pay.
func (r *OccupancyRepo) ExpireLapsedOccupancies(ctx context.Context, now time.Time, limit int) ([]*models.Occupancy, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lapsed []*models.Occupancy
	err = tx.SelectContext(ctx, &lapsed, `
		UPDATE occupancies SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM occupancies
			WHERE status IN ($3, $4) AND end_date < $2
			ORDER BY end_date ASC
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, reservation_id, property_id, tenant_id, start_date, end_date,
		          months_paid, status, created_at, updated_at
	`,
		models.OccupancyStatusExpired,
		now,
		models.OccupancyStatusActive,
		models.OccupancyStatusExpiring,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to expire lapsed occupancies: %w", err)
	}

	if len(lapsed) > 0 {
		ids := make([]uuid.UUID, 0, len(lapsed))
		for _, occ := range lapsed {
			ids = append(ids, occ.ReservationID)
		}
		if err := voidInvoices(ctx, tx, ids, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit lapse sweep: %w", err)
	}

	return lapsed, nil
}

// TerminateOccupancy ends a live tenancy before its paid period runs out
// and voids any invoice the tenant no longer owes.
func (r *OccupancyRepo) TerminateOccupancy(ctx context.Context, occupancyID uuid.UUID) (*models.Occupancy, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	occ := &models.Occupancy{}
	err = tx.GetContext(ctx, occ, `
		UPDATE occupancies SET status = $1, end_date = $2, updated_at = $2
		WHERE id = $3 AND status IN ($4, $5)
		RETURNING id, reservation_id, property_id, tenant_id, start_date, end_date,
		          months_paid, status, created_at, updated_at
	`,
		models.OccupancyStatusTerminated,
		now,
		occupancyID,
		models.OccupancyStatusActive,
		models.OccupancyStatusExpiring,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, occupancy.ErrOccupancyNotLive
		}
		return nil, fmt.Errorf("failed to terminate occupancy: %w", err)
	}

	if err := voidInvoices(ctx, tx, []uuid.UUID{occ.ReservationID}, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit termination: %w", err)
	}

	return occ, nil
}

// voidInvoices closes the open invoices of the given reservations
func voidInvoices(ctx context.Context, tx *sqlx.Tx, reservationIDs []uuid.UUID, now time.Time) error {
	query, args, err := sqlx.In(`
		UPDATE invoices SET status = ?, updated_at = ?
		WHERE reservation_id IN (?) AND status = ?
	`, models.InvoiceStatusVoid, now, reservationIDs, models.InvoiceStatusOpen)
	if err != nil {
		return fmt.Errorf("failed to build void query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to void invoices: %w", err)
	}

	return nil
}

func reservationIDs(rows []*models.Reservation) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
