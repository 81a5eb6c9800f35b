package usecase

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/payments"
	"github.com/mwangi/kodisha/services/payments/mocks"
	"github.com/mwangi/kodisha/services/reservations"
	resmocks "github.com/mwangi/kodisha/services/reservations/mocks"
)

type fixture struct {
	repo     *mocks.MockPaymentRepo
	locks    *mocks.MockLockManager
	provider *mocks.MockProvider
	resUC    *resmocks.MockReservationUC
	uc       *PaymentUC
}

func newFixture(t *testing.T, providerName models.PaymentProvider) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:     mocks.NewMockPaymentRepo(ctrl),
		locks:    mocks.NewMockLockManager(ctrl),
		provider: mocks.NewMockProvider(ctrl),
		resUC:    resmocks.NewMockReservationUC(ctrl),
	}
	f.provider.EXPECT().Name().Return(providerName).AnyTimes()

	cfg := &models.Config{
		Scheduler: models.SchedulerConfig{
			VerifyAfter: 10,
			BatchSize:   100,
		},
	}
	f.uc = NewPaymentUC(cfg, f.repo, f.locks, payments.NewRegistry(f.provider), f.resUC)
	return f
}

func TestInitiatePayment_Success(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderMpesa)

	tenantID := uuid.New()
	reservationID := uuid.New()
	invoiceID := uuid.New()

	f.repo.EXPECT().
		GetPayableReservation(gomock.Any(), tenantID, reservationID).
		Return(&models.Reservation{
			ID:       reservationID,
			TenantID: tenantID,
			Status:   models.ReservationStatusPending,
		}, nil)
	f.repo.EXPECT().
		GetOpenInvoice(gomock.Any(), reservationID).
		Return(&models.Invoice{
			ID:       invoiceID,
			Amount:   decimal.NewFromInt(25000),
			Currency: "KES",
			Status:   models.InvoiceStatusOpen,
		}, nil)

	var created *models.PaymentTransaction
	f.repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.PaymentTransaction) error {
			created = p
			return nil
		})
	f.provider.EXPECT().
		Initiate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.PaymentTransaction) (*models.InitiateResult, error) {
			return &models.InitiateResult{
				TransactionID:     p.ID,
				Provider:          models.ProviderMpesa,
				ProviderReference: "ws_CO_123456",
				PollToken:         "ws_CO_123456",
			}, nil
		})
	f.repo.EXPECT().
		SetProviderReference(gomock.Any(), gomock.Any(), "ws_CO_123456").
		Return(nil)

	// Act
	result, err := f.uc.InitiatePayment(context.Background(), tenantID, models.ProviderMpesa, models.InitiatePaymentRequest{
		ReservationID: reservationID.String(),
		Msisdn:        "254700000001",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_123456", result.ProviderReference)
	require.NotNil(t, created)
	assert.Equal(t, models.TransactionStatusInitiated, created.Status)
	assert.True(t, created.Amount.Equal(decimal.NewFromInt(25000)), "transaction must carry the invoice outstanding")
	assert.Equal(t, invoiceID, created.InvoiceID)
}

func TestInitiatePayment_ProviderFailureTerminatesTransaction(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderAirtel)

	tenantID := uuid.New()
	reservationID := uuid.New()

	f.repo.EXPECT().
		GetPayableReservation(gomock.Any(), tenantID, reservationID).
		Return(&models.Reservation{ID: reservationID, TenantID: tenantID}, nil)
	f.repo.EXPECT().
		GetOpenInvoice(gomock.Any(), reservationID).
		Return(&models.Invoice{ID: uuid.New(), Amount: decimal.NewFromInt(10000), Currency: "KES"}, nil)
	f.repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		Return(nil)
	f.provider.EXPECT().
		Initiate(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("gateway timeout"))
	f.repo.EXPECT().
		MarkTransactionFailed(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	// Act
	result, err := f.uc.InitiatePayment(context.Background(), tenantID, models.ProviderAirtel, models.InitiatePaymentRequest{
		ReservationID: reservationID.String(),
		Msisdn:        "254730000001",
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestInitiatePayment_UnknownProvider(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderMpesa)

	// Act
	_, err := f.uc.InitiatePayment(context.Background(), uuid.New(), models.ProviderFlutterwave, models.InitiatePaymentRequest{
		ReservationID: uuid.New().String(),
	})

	// Assert
	assert.ErrorIs(t, err, payments.ErrUnknownProvider)
}

func TestHandleCallback_AppliesOutcome(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderMpesa)

	transactionID := uuid.New()
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: "ws_CO_123456",
		Status:            models.OutcomeCompleted,
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	f.provider.EXPECT().
		ParseCallback(gomock.Any(), gomock.Any()).
		Return(outcome, nil)

	var recorded *models.WebhookEvent
	f.repo.EXPECT().
		RecordWebhookEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.WebhookEvent) error {
			recorded = e
			return nil
		})
	f.locks.EXPECT().
		AcquireLock(gomock.Any(), "webhook:lock:mpesa:ws_CO_123456", gomock.Any()).
		Return(true, nil)
	f.locks.EXPECT().
		ReleaseLock(gomock.Any(), "webhook:lock:mpesa:ws_CO_123456").
		Return(nil)
	f.repo.EXPECT().
		GetTransactionByReference(gomock.Any(), models.ProviderMpesa, "ws_CO_123456").
		Return(&models.PaymentTransaction{
			ID:                transactionID,
			Provider:          models.ProviderMpesa,
			ProviderReference: "ws_CO_123456",
			Status:            models.TransactionStatusInitiated,
			Amount:            decimal.NewFromInt(25000),
			Currency:          "KES",
		}, nil)
	f.resUC.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *models.PaymentOutcome) error {
			assert.Equal(t, transactionID.String(), o.MerchantReference)
			return nil
		})
	f.repo.EXPECT().
		MarkWebhookProcessed(gomock.Any(), gomock.Any()).
		Return(nil)

	req := httptest.NewRequest("POST", "/payments/mpesa/callback", nil)

	// Act
	err := f.uc.HandleCallback(context.Background(), models.ProviderMpesa, req, []byte(`{}`))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.True(t, recorded.SignatureOK)
	assert.Equal(t, "ws_CO_123456", recorded.ProviderReference)
}

func TestHandleCallback_DuplicateDeliveryIsAbsorbed(t *testing.T) {
	// Arrange: a second delivery of the same reference is recorded, found
	// stale by the state machine, and still acknowledged.
	f := newFixture(t, models.ProviderMpesa)

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: "ws_CO_123456",
		Status:            models.OutcomeCompleted,
	}

	f.provider.EXPECT().ParseCallback(gomock.Any(), gomock.Any()).Return(outcome, nil)
	f.repo.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.locks.EXPECT().AcquireLock(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().ReleaseLock(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().
		GetTransactionByReference(gomock.Any(), models.ProviderMpesa, "ws_CO_123456").
		Return(&models.PaymentTransaction{
			ID:     uuid.New(),
			Status: models.TransactionStatusCompleted,
			Amount: decimal.NewFromInt(25000),
		}, nil)
	f.resUC.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), gomock.Any()).
		Return(reservations.ErrStaleTransition)
	f.repo.EXPECT().MarkWebhookProcessed(gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest("POST", "/payments/mpesa/callback", nil)

	// Act
	err := f.uc.HandleCallback(context.Background(), models.ProviderMpesa, req, []byte(`{}`))

	// Assert: stale means already applied, the delivery is acknowledged
	require.NoError(t, err)
}

func TestHandleCallback_ConcurrentDeliveryYieldsToLockHolder(t *testing.T) {
	// Arrange: another worker holds the reference lock, so this delivery
	// backs off without touching the ledger.
	f := newFixture(t, models.ProviderAirtel)

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderAirtel,
		ProviderReference: "AGW-42",
		Status:            models.OutcomeCompleted,
	}

	f.provider.EXPECT().ParseCallback(gomock.Any(), gomock.Any()).Return(outcome, nil)
	f.repo.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.locks.EXPECT().
		AcquireLock(gomock.Any(), "webhook:lock:airtel:AGW-42", gomock.Any()).
		Return(false, nil)

	req := httptest.NewRequest("POST", "/payments/airtel/callback", nil)

	// Act
	err := f.uc.HandleCallback(context.Background(), models.ProviderAirtel, req, []byte(`{}`))

	// Assert
	require.NoError(t, err)
}

func TestHandleCallback_BadSignatureIsRecordedAndAbsorbed(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderFlutterwave)

	f.provider.EXPECT().
		ParseCallback(gomock.Any(), gomock.Any()).
		Return(nil, payments.ErrInvalidSignature)

	var recorded *models.WebhookEvent
	f.repo.EXPECT().
		RecordWebhookEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.WebhookEvent) error {
			recorded = e
			return nil
		})

	req := httptest.NewRequest("POST", "/payments/flutterwave/callback", nil)

	// Act
	err := f.uc.HandleCallback(context.Background(), models.ProviderFlutterwave, req, []byte(`{}`))

	// Assert: delivery is kept for audit, flagged, and acknowledged so the
	// provider stops redelivering it
	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.False(t, recorded.SignatureOK)
}

func TestHandleCallback_UnmatchedReferenceIsAcknowledged(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderMpesa)

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: "ws_CO_unknown",
		Status:            models.OutcomeCompleted,
	}

	f.provider.EXPECT().ParseCallback(gomock.Any(), gomock.Any()).Return(outcome, nil)
	f.repo.EXPECT().RecordWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)
	f.locks.EXPECT().AcquireLock(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.locks.EXPECT().ReleaseLock(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().
		GetTransactionByReference(gomock.Any(), models.ProviderMpesa, "ws_CO_unknown").
		Return(nil, payments.ErrTransactionNotFound)

	req := httptest.NewRequest("POST", "/payments/mpesa/callback", nil)

	// Act
	err := f.uc.HandleCallback(context.Background(), models.ProviderMpesa, req, []byte(`{}`))

	// Assert
	require.NoError(t, err)
}

func TestVerifyTransaction_TerminalShortCircuits(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderFlutterwave)

	transactionID := uuid.New()
	f.repo.EXPECT().
		GetTransaction(gomock.Any(), transactionID).
		Return(&models.PaymentTransaction{
			ID:     transactionID,
			Status: models.TransactionStatusCompleted,
		}, nil)

	// Act
	payment, err := f.uc.VerifyTransaction(context.Background(), transactionID)

	// Assert: no provider call happens
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, payment.Status)
}

func TestVerifyTransaction_AppliesTerminalOutcome(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderFlutterwave)

	transactionID := uuid.New()
	initiated := &models.PaymentTransaction{
		ID:                transactionID,
		Provider:          models.ProviderFlutterwave,
		ProviderReference: transactionID.String(),
		Status:            models.TransactionStatusInitiated,
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}
	completed := &models.PaymentTransaction{
		ID:     transactionID,
		Status: models.TransactionStatusCompleted,
	}

	gomock.InOrder(
		f.repo.EXPECT().GetTransaction(gomock.Any(), transactionID).Return(initiated, nil),
		f.provider.EXPECT().Verify(gomock.Any(), initiated).Return(&models.PaymentOutcome{
			Provider:          models.ProviderFlutterwave,
			ProviderReference: transactionID.String(),
			Status:            models.OutcomeCompleted,
			Amount:            decimal.NewFromInt(25000),
		}, nil),
		f.resUC.EXPECT().ApplyPaymentOutcome(gomock.Any(), gomock.Any()).Return(nil),
		f.repo.EXPECT().GetTransaction(gomock.Any(), transactionID).Return(completed, nil),
	)

	// Act
	payment, err := f.uc.VerifyTransaction(context.Background(), transactionID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, payment.Status)
}

func TestVerifyTransaction_PendingOutcomeLeavesTransactionAlone(t *testing.T) {
	// Arrange
	f := newFixture(t, models.ProviderMpesa)

	transactionID := uuid.New()
	initiated := &models.PaymentTransaction{
		ID:       transactionID,
		Provider: models.ProviderMpesa,
		Status:   models.TransactionStatusInitiated,
	}

	f.repo.EXPECT().GetTransaction(gomock.Any(), transactionID).Return(initiated, nil)
	f.provider.EXPECT().Verify(gomock.Any(), initiated).Return(&models.PaymentOutcome{
		Status: models.OutcomePending,
	}, nil)

	// Act
	payment, err := f.uc.VerifyTransaction(context.Background(), transactionID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusInitiated, payment.Status)
}

func TestVerifyPending_SweepContinuesPastFailures(t *testing.T) {
	// Arrange: two overdue transactions; the first provider query fails,
	// the second must still be reconciled.
	f := newFixture(t, models.ProviderMpesa)

	first := &models.PaymentTransaction{
		ID:       uuid.New(),
		Provider: models.ProviderMpesa,
		Status:   models.TransactionStatusInitiated,
	}
	second := &models.PaymentTransaction{
		ID:       uuid.New(),
		Provider: models.ProviderMpesa,
		Status:   models.TransactionStatusInitiated,
	}

	f.repo.EXPECT().
		ListPendingVerification(gomock.Any(), gomock.Any(), 100).
		DoAndReturn(func(_ context.Context, cutoff time.Time, _ int) ([]*models.PaymentTransaction, error) {
			assert.True(t, cutoff.Before(time.Now()), "cutoff must be in the past")
			return []*models.PaymentTransaction{first, second}, nil
		})

	f.repo.EXPECT().GetTransaction(gomock.Any(), first.ID).Return(first, nil)
	f.provider.EXPECT().Verify(gomock.Any(), first).Return(nil, errors.New("provider down"))

	f.repo.EXPECT().GetTransaction(gomock.Any(), second.ID).Return(second, nil).Times(2)
	f.provider.EXPECT().Verify(gomock.Any(), second).Return(&models.PaymentOutcome{
		Status: models.OutcomeFailed,
	}, nil)
	f.resUC.EXPECT().ApplyPaymentOutcome(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	err := f.uc.VerifyPending(context.Background())

	// Assert
	require.NoError(t, err)
}
