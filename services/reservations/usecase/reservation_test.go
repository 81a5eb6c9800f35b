package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangi/kodisha/internal/pkg/constants"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/reservations"
	"github.com/mwangi/kodisha/services/reservations/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		Scheduler: models.SchedulerConfig{
			HoldTTL: 24,
		},
	}
}

func TestCreateReservation_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	tenantID := uuid.New()
	propertyID := uuid.New()
	rent := decimal.NewFromInt(25000)

	mockGW.EXPECT().
		GetProperty(gomock.Any(), propertyID).
		Return(&models.Property{
			ID:          propertyID,
			MonthlyRent: rent,
			Currency:    "KES",
			Available:   true,
		}, nil)

	var createdReservation *models.Reservation
	var createdInvoice *models.Invoice
	mockRepo.EXPECT().
		CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Reservation, inv *models.Invoice) error {
			createdReservation = r
			createdInvoice = inv
			return nil
		})

	// Act
	reservation, err := uc.CreateReservation(context.Background(), tenantID, models.CreateReservationRequest{
		PropertyID: propertyID.String(),
		Months:     3,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Equal(t, models.PaymentStatePending, reservation.PaymentStatus)
	assert.True(t, reservation.AmountDue.Equal(decimal.NewFromInt(75000)), "amount due must be rent times months")
	assert.Equal(t, "KES", reservation.Currency)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), reservation.ExpiresAt, 5*time.Second)

	require.NotNil(t, createdReservation)
	require.NotNil(t, createdInvoice)
	assert.Equal(t, createdReservation.ID, createdInvoice.ReservationID)
	assert.Equal(t, models.InvoiceKindReservation, createdInvoice.Kind)
	assert.True(t, createdInvoice.Amount.Equal(reservation.AmountDue))
	assert.Equal(t, models.InvoiceStatusOpen, createdInvoice.Status)
}

func TestCreateReservation_PropertyUnavailable(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	propertyID := uuid.New()
	mockGW.EXPECT().
		GetProperty(gomock.Any(), propertyID).
		Return(&models.Property{ID: propertyID, Available: false}, nil)

	// Act
	reservation, err := uc.CreateReservation(context.Background(), uuid.New(), models.CreateReservationRequest{
		PropertyID: propertyID.String(),
		Months:     1,
	})

	// Assert
	assert.ErrorIs(t, err, reservations.ErrPropertyUnavailable)
	assert.Nil(t, reservation)
}

func TestCreateReservation_DefaultsToOneMonth(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	propertyID := uuid.New()
	mockGW.EXPECT().
		GetProperty(gomock.Any(), propertyID).
		Return(&models.Property{
			ID:          propertyID,
			MonthlyRent: decimal.NewFromInt(10000),
			Currency:    "KES",
			Available:   true,
		}, nil)
	mockRepo.EXPECT().
		CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	// Act
	reservation, err := uc.CreateReservation(context.Background(), uuid.New(), models.CreateReservationRequest{
		PropertyID: propertyID.String(),
		Months:     0,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, reservation.Months)
	assert.True(t, reservation.AmountDue.Equal(decimal.NewFromInt(10000)))
}

func TestGetReservation_OwnershipEnforced(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	owner := uuid.New()
	reservationID := uuid.New()
	mockRepo.EXPECT().
		GetReservation(gomock.Any(), reservationID).
		Return(&models.Reservation{ID: reservationID, TenantID: owner}, nil).
		Times(2)

	// Act
	mine, errMine := uc.GetReservation(context.Background(), owner, reservationID)
	other, errOther := uc.GetReservation(context.Background(), uuid.New(), reservationID)

	// Assert
	require.NoError(t, errMine)
	assert.Equal(t, reservationID, mine.ID)
	assert.ErrorIs(t, errOther, reservations.ErrNotReservationOwner)
	assert.Nil(t, other)
}

func TestCancelReservation_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	tenantID := uuid.New()
	reservationID := uuid.New()
	cancelled := &models.Reservation{
		ID:       reservationID,
		TenantID: tenantID,
		Status:   models.ReservationStatusCancelled,
	}

	mockRepo.EXPECT().
		CancelReservation(gomock.Any(), tenantID, reservationID).
		Return(cancelled, nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectReservationCancelled, gomock.Any()).
		Return(nil)

	// Act
	reservation, err := uc.CancelReservation(context.Background(), tenantID, reservationID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, reservation.Status)
}

func TestCancelReservation_AlreadyPaid(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	tenantID := uuid.New()
	reservationID := uuid.New()

	// The repository re-checks payment status under the row lock; the
	// completed payment won the race, so the cancel must be rejected and
	// no event published.
	mockRepo.EXPECT().
		CancelReservation(gomock.Any(), tenantID, reservationID).
		Return(nil, reservations.ErrAlreadyPaid)

	// Act
	reservation, err := uc.CancelReservation(context.Background(), tenantID, reservationID)

	// Assert
	assert.ErrorIs(t, err, reservations.ErrAlreadyPaid)
	assert.Nil(t, reservation)
}

func TestApplyPaymentOutcome_ConfirmsReservation(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	transactionID := uuid.New()
	reservation := &models.Reservation{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		Status:        models.ReservationStatusConfirmed,
		PaymentStatus: models.PaymentStateCompleted,
	}
	occupancy := &models.Occupancy{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		TenantID:      reservation.TenantID,
		Status:        models.OccupancyStatusActive,
	}
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		ProviderReference: "QHX12345",
		MerchantReference: transactionID.String(),
		Status:            models.OutcomeCompleted,
		Amount:            decimal.NewFromInt(25000),
		Currency:          "KES",
	}

	mockRepo.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), transactionID, outcome).
		Return(&reservations.ApplyResult{
			Reservation: reservation,
			Transaction: &models.PaymentTransaction{ID: transactionID},
			Occupancy:   occupancy,
		}, nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectReservationConfirmed, gomock.Any()).
		Return(nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectPaymentCompleted, gomock.Any()).
		Return(nil)

	// Act
	err := uc.ApplyPaymentOutcome(context.Background(), outcome)

	// Assert
	require.NoError(t, err)
}

func TestApplyPaymentOutcome_RenewalExtendsOccupancy(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	transactionID := uuid.New()
	reservation := &models.Reservation{
		ID:            uuid.New(),
		Status:        models.ReservationStatusConfirmed,
		PaymentStatus: models.PaymentStateCompleted,
	}
	occupancy := &models.Occupancy{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		Status:        models.OccupancyStatusActive,
	}
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderAirtel,
		MerchantReference: transactionID.String(),
		Status:            models.OutcomeCompleted,
	}

	mockRepo.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), transactionID, outcome).
		Return(&reservations.ApplyResult{
			Reservation: reservation,
			Transaction: &models.PaymentTransaction{ID: transactionID},
			Occupancy:   occupancy,
			Extended:    true,
		}, nil)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyExtended, gomock.Any()).
		Return(nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectPaymentCompleted, gomock.Any()).
		Return(nil)

	// Act
	err := uc.ApplyPaymentOutcome(context.Background(), outcome)

	// Assert
	require.NoError(t, err)
}

func TestApplyPaymentOutcome_FailedAttempt(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	transactionID := uuid.New()
	reservation := &models.Reservation{
		ID:            uuid.New(),
		Status:        models.ReservationStatusPending,
		PaymentStatus: models.PaymentStateFailed,
	}
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderMpesa,
		MerchantReference: transactionID.String(),
		Status:            models.OutcomeFailed,
		FailureReason:     "insufficient funds",
	}

	mockRepo.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), transactionID, outcome).
		Return(&reservations.ApplyResult{
			Reservation: reservation,
			Transaction: &models.PaymentTransaction{ID: transactionID},
		}, nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectPaymentFailed, gomock.Any()).
		Return(nil)

	// Act
	err := uc.ApplyPaymentOutcome(context.Background(), outcome)

	// Assert
	require.NoError(t, err)
}

func TestApplyPaymentOutcome_StaleIsPropagatedWithoutEvents(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	transactionID := uuid.New()
	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderFlutterwave,
		MerchantReference: transactionID.String(),
		Status:            models.OutcomeCompleted,
	}

	// Duplicate delivery: the transaction is already terminal. No second
	// event may be published.
	mockRepo.EXPECT().
		ApplyPaymentOutcome(gomock.Any(), transactionID, outcome).
		Return(nil, reservations.ErrStaleTransition)

	// Act
	err := uc.ApplyPaymentOutcome(context.Background(), outcome)

	// Assert
	assert.ErrorIs(t, err, reservations.ErrStaleTransition)
}

func TestApplyPaymentOutcome_UnparseableMerchantReference(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReservationRepo(ctrl)
	mockGW := mocks.NewMockReservationGW(ctrl)
	uc := NewReservationUC(testConfig(), mockRepo, mockGW)

	outcome := &models.PaymentOutcome{
		Provider:          models.ProviderFlutterwave,
		MerchantReference: "not-a-uuid",
		Status:            models.OutcomeCompleted,
	}

	// Act
	err := uc.ApplyPaymentOutcome(context.Background(), outcome)

	// Assert
	assert.ErrorIs(t, err, reservations.ErrStaleTransition)
}
