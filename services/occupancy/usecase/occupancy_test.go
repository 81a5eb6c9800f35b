package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangi/kodisha/internal/pkg/constants"
	"github.com/mwangi/kodisha/internal/pkg/models"
	"github.com/mwangi/kodisha/services/occupancy"
	"github.com/mwangi/kodisha/services/occupancy/mocks"
)

func testConfig() *models.Config {
	return &models.Config{
		Scheduler: models.SchedulerConfig{
			SweepInterval:     5,
			HoldTTL:           24,
			RenewalWindowDays: 7,
			BatchSize:         100,
			VerifyAfter:       10,
		},
	}
}

func TestExpireStaleReservations_PublishesPerReservation(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	expired := []*models.Reservation{
		{ID: uuid.New(), TenantID: uuid.New(), Status: models.ReservationStatusExpired},
		{ID: uuid.New(), TenantID: uuid.New(), Status: models.ReservationStatusExpired},
	}

	mockRepo.EXPECT().
		ExpireStaleReservations(gomock.Any(), gomock.Any(), 100).
		Return(expired, nil)
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectReservationExpired, gomock.Any()).
		Return(nil).
		Times(2)

	// Act
	err := uc.ExpireStaleReservations(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestExpireStaleReservations_EmptySweepIsQuiet(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	mockRepo.EXPECT().
		ExpireStaleReservations(gomock.Any(), gomock.Any(), 100).
		Return(nil, nil)

	// Act: nothing to expire means nothing published
	err := uc.ExpireStaleReservations(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestMarkExpiringOccupancies_UsesRenewalWindow(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	expiring := []*models.Occupancy{
		{ID: uuid.New(), ReservationID: uuid.New(), Status: models.OccupancyStatusExpiring},
	}

	mockRepo.EXPECT().
		MarkExpiringOccupancies(gomock.Any(), gomock.Any(), 100).
		DoAndReturn(func(_ context.Context, windowEnd time.Time, _ int) ([]*models.Occupancy, error) {
			expected := time.Now().UTC().AddDate(0, 0, 7)
			assert.WithinDuration(t, expected, windowEnd, 5*time.Second)
			return expiring, nil
		})
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyExpiring, gomock.Any()).
		Return(nil)

	// Act
	err := uc.MarkExpiringOccupancies(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestExpireLapsedOccupancies_PublishEvents(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	lapsed := []*models.Occupancy{
		{ID: uuid.New(), ReservationID: uuid.New(), Status: models.OccupancyStatusExpired},
	}

	mockRepo.EXPECT().
		ExpireLapsedOccupancies(gomock.Any(), gomock.Any(), 100).
		Return(lapsed, nil)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyExpired, gomock.Any()).
		Return(nil)

	// Act
	err := uc.ExpireLapsedOccupancies(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestTerminateOccupancy_PublishesTermination(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	occupancyID := uuid.New()
	terminated := &models.Occupancy{
		ID:            occupancyID,
		ReservationID: uuid.New(),
		Status:        models.OccupancyStatusTerminated,
	}

	mockRepo.EXPECT().
		TerminateOccupancy(gomock.Any(), occupancyID).
		Return(terminated, nil)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyTerminated, gomock.Any()).
		Return(nil)

	// Act
	occ, err := uc.TerminateOccupancy(context.Background(), occupancyID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyStatusTerminated, occ.Status)
}

func TestTerminateOccupancy_AlreadyEnded(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	occupancyID := uuid.New()
	mockRepo.EXPECT().
		TerminateOccupancy(gomock.Any(), occupancyID).
		Return(nil, occupancy.ErrOccupancyNotLive)

	// Act
	occ, err := uc.TerminateOccupancy(context.Background(), occupancyID)

	// Assert
	assert.ErrorIs(t, err, occupancy.ErrOccupancyNotLive)
	assert.Nil(t, occ)
}

func TestSweeps_PublishFailuresDoNotFailTheSweep(t *testing.T) {
	// Arrange: event delivery is fire-and-forget; a broken broker must not
	// roll back or fail an already-committed sweep.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	mockRepo.EXPECT().
		ExpireLapsedOccupancies(gomock.Any(), gomock.Any(), 100).
		Return([]*models.Occupancy{{ID: uuid.New()}}, nil)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("nats unavailable"))

	// Act
	err := uc.ExpireLapsedOccupancies(context.Background())

	// Assert
	require.NoError(t, err)
}

func TestSweeps_SecondRunOverTransitionedDataIsQuiet(t *testing.T) {
	// Arrange: the state-conditioned sweep queries match nothing on a
	// second consecutive run, so it must write nothing and publish nothing.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOccupancyRepo(ctrl)
	mockGW := mocks.NewMockOccupancyGW(ctrl)
	uc := NewOccupancyUC(testConfig(), mockRepo, mockGW)

	expired := []*models.Reservation{
		{ID: uuid.New(), TenantID: uuid.New(), Status: models.ReservationStatusExpired},
	}
	expiring := []*models.Occupancy{
		{ID: uuid.New(), ReservationID: uuid.New(), Status: models.OccupancyStatusExpiring},
	}
	lapsed := []*models.Occupancy{
		{ID: uuid.New(), ReservationID: uuid.New(), Status: models.OccupancyStatusExpired},
	}

	gomock.InOrder(
		mockRepo.EXPECT().ExpireStaleReservations(gomock.Any(), gomock.Any(), 100).Return(expired, nil),
		mockRepo.EXPECT().ExpireStaleReservations(gomock.Any(), gomock.Any(), 100).Return(nil, nil),
	)
	gomock.InOrder(
		mockRepo.EXPECT().MarkExpiringOccupancies(gomock.Any(), gomock.Any(), 100).Return(expiring, nil),
		mockRepo.EXPECT().MarkExpiringOccupancies(gomock.Any(), gomock.Any(), 100).Return(nil, nil),
	)
	gomock.InOrder(
		mockRepo.EXPECT().ExpireLapsedOccupancies(gomock.Any(), gomock.Any(), 100).Return(lapsed, nil),
		mockRepo.EXPECT().ExpireLapsedOccupancies(gomock.Any(), gomock.Any(), 100).Return(nil, nil),
	)

	// Exactly one publish per transition, all from the first run
	mockGW.EXPECT().
		PublishReservationEvent(gomock.Any(), constants.SubjectReservationExpired, gomock.Any()).
		Return(nil).Times(1)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyExpiring, gomock.Any()).
		Return(nil).Times(1)
	mockGW.EXPECT().
		PublishOccupancyEvent(gomock.Any(), constants.SubjectOccupancyExpired, gomock.Any()).
		Return(nil).Times(1)

	// Act: two consecutive sweep cycles
	for i := 0; i < 2; i++ {
		require.NoError(t, uc.ExpireStaleReservations(context.Background()))
		require.NoError(t, uc.MarkExpiringOccupancies(context.Background()))
		require.NoError(t, uc.ExpireLapsedOccupancies(context.Background()))
	}
}
