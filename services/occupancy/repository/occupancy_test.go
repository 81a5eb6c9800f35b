package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/occupancy"
)

func newTestRepo(t *testing.T) (*OccupancyRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewOccupancyRepository(&models.Config{}, sqlxDB), mock
}

func TestExpireStaleReservations_VoidsInvoices(t *testing.T) {
	// Arrange
	repo, mock := newTestRepo(t)
	reservationID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reservations SET status").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "property_id", "status", "payment_status",
			"amount_due", "currency", "months", "created_at", "updated_at", "expires_at",
		}).AddRow(reservationID.String(), uuid.New().String(), uuid.New().String(),
			string(models.ReservationStatusExpired), string(models.PaymentStatePending),
			"25000", "KES", 1, now, now, now.Add(-time.Hour)))
	mock.ExpectExec("UPDATE invoices SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	expired, err := repo.ExpireStaleReservations(context.Background(), now, 100)

	// Assert
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, reservationID, expired[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStaleReservations_EmptyBatch(t *testing.T) {
	// Arrange
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reservations SET status").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "property_id", "status", "payment_status",
			"amount_due", "currency", "months", "created_at", "updated_at", "expires_at",
		}))
	mock.ExpectCommit()

	// Act
	expired, err := repo.ExpireStaleReservations(context.Background(), now, 100)

	// Assert: no invoice update is issued for an empty batch
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkExpiringOccupancies_OpensRenewalInvoices(t *testing.T) {
	// Arrange
	repo, mock := newTestRepo(t)
	occupancyID := uuid.New()
	reservationID := uuid.New()
	now := time.Now().UTC()
	windowEnd := now.AddDate(0, 0, 7)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE occupancies SET status").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_id", "property_id", "tenant_id", "start_date", "end_date",
			"months_paid", "status", "created_at", "updated_at",
		}).AddRow(occupancyID.String(), reservationID.String(), uuid.New().String(), uuid.New().String(),
			now.AddDate(0, -1, 0), now.AddDate(0, 0, 5), 1,
			string(models.OccupancyStatusExpiring), now, now))
	mock.ExpectExec("INSERT INTO invoices").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	expiring, err := repo.MarkExpiringOccupancies(context.Background(), windowEnd, 100)

	// Assert
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, models.OccupancyStatusExpiring, expiring[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireLapsedOccupancies(t *testing.T) {
	// Arrange
	repo, mock := newTestRepo(t)
	occupancyID := uuid.New()
	reservationID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE occupancies SET status").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_id", "property_id", "tenant_id", "start_date", "end_date",
			"months_paid", "status", "created_at", "updated_at",
		}).AddRow(occupancyID.String(), reservationID.String(), uuid.New().String(), uuid.New().String(),
			now.AddDate(0, -2, 0), now.AddDate(0, 0, -1), 1,
			string(models.OccupancyStatusExpired), now, now))
	mock.ExpectExec("UPDATE invoices SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	lapsed, err := repo.ExpireLapsedOccupancies(context.Background(), now, 100)

	// Assert
	require.NoError(t, err)
	require.Len(t, lapsed, 1)
	assert.Equal(t, models.OccupancyStatusExpired, lapsed[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTerminateOccupancy_EndsLiveTenancy(t *testing.T) {
	// Arrange
	repo, mock := newTestRepo(t)
	occupancyID := uuid.New()
	reservationID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE occupancies SET status").
		WithArgs(models.OccupancyStatusTerminated, sqlmock.AnyArg(), occupancyID,
			models.OccupancyStatusActive, models.OccupancyStatusExpiring).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_id", "property_id", "tenant_id", "start_date", "end_date",
			"months_paid", "status", "created_at", "updated_at",
		}).AddRow(occupancyID.String(), reservationID.String(), uuid.New().String(), uuid.New().String(),
			now.AddDate(0, -1, 0), now, 6,
			string(models.OccupancyStatusTerminated), now, now))
	mock.ExpectExec("UPDATE invoices SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	occ, err := repo.TerminateOccupancy(context.Background(), occupancyID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyStatusTerminated, occ.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTerminateOccupancy_AlreadyEnded(t *testing.T) {
	// Arrange: the status condition matches nothing
	repo, mock := newTestRepo(t)
	occupancyID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE occupancies SET status").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// Act
	occ, err := repo.TerminateOccupancy(context.Background(), occupancyID)

	// Assert
	assert.ErrorIs(t, err, occupancy.ErrOccupancyNotLive)
	assert.Nil(t, occ)
	assert.NoError(t, mock.ExpectationsWereMet())
}
