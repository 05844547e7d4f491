package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hostel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestCreateBooking_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPolicyRepo := mocks.NewPolicyRepository(t)
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	db, mockRedis := redismock.NewClientMock()

	availability := services.NewAvailabilityService(mockBookingRepo, nil)
	service := services.NewBookingService(
		mockBookingRepo, availability, nil, mockPolicyRepo, mockCancellationRepo,
		mockNotifs, db, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	visitorID := uuid.New()
	hostelID := uuid.New()

	req := services.CreateBookingRequest{
		VisitorID:          visitorID.String(),
		HostelID:           hostelID.String(),
		RoomType:           "double",
		PreferredCheckIn:   "2026-02-01",
		StayDurationMonths: 6,
		QuotedRentMonthly:  8000,
		TotalAmount:        48000,
		SecurityDeposit:    8000,
		AdvanceAmount:      8000,
	}

	mockBookingRepo.On("FindActiveByHostelRoomType", ctx, hostelID, "double").Return([]domain.Booking{}, nil)
	mockBookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking"), mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingCreated, visitorID, mock.Anything).Return(nil)

	cacheKey := fmt.Sprintf("active_bookings:%s:%s", hostelID, "double")
	mockRedis.ExpectDel(cacheKey).SetVal(1)

	b, err := service.CreateBooking(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, b) {
		assert.Equal(t, domain.BookingPending, b.Status)
		assert.Contains(t, b.Reference, "HB-20260110-")
		if assert.NotNil(t, b.ExpiresAt) {
			assert.Equal(t, testNow.Add(48*time.Hour), *b.ExpiresAt)
		}
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateBooking_Fail_WindowTaken(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)

	availability := services.NewAvailabilityService(mockBookingRepo, nil)
	service := services.NewBookingService(
		mockBookingRepo, availability, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	hostelID := uuid.New()

	existing := domain.Booking{
		ID:                 uuid.New(),
		HostelID:           hostelID,
		RoomTypeRequested:  "double",
		PreferredCheckIn:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		StayDurationMonths: 6,
		Status:             domain.BookingConfirmed,
	}

	mockBookingRepo.On("FindActiveByHostelRoomType", ctx, hostelID, "double").Return([]domain.Booking{existing}, nil)

	b, err := service.CreateBooking(ctx, services.CreateBookingRequest{
		VisitorID:          uuid.New().String(),
		HostelID:           hostelID.String(),
		RoomType:           "double",
		PreferredCheckIn:   "2026-02-01",
		StayDurationMonths: 6,
	})

	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateBooking_Fail_PastCheckIn(t *testing.T) {
	service := services.NewBookingService(
		mocks.NewBookingRepository(t), nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	b, err := service.CreateBooking(context.Background(), services.CreateBookingRequest{
		VisitorID:          uuid.New().String(),
		HostelID:           uuid.New().String(),
		RoomType:           "double",
		PreferredCheckIn:   "2025-12-01",
		StayDurationMonths: 6,
	})

	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApprove_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	db, mockRedis := redismock.NewClientMock()

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mockNotifs, db, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	approverID := uuid.New()
	expiresAt := testNow.Add(48 * time.Hour)

	booking := &domain.Booking{
		ID:                uuid.New(),
		Reference:         "HB-20260110-ABC123",
		VisitorID:         uuid.New(),
		HostelID:          uuid.New(),
		RoomTypeRequested: "double",
		Status:            domain.BookingPending,
		ExpiresAt:         &expiresAt,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingApproved, booking.VisitorID, mock.Anything).Return(nil)

	cacheKey := fmt.Sprintf("active_bookings:%s:%s", booking.HostelID, "double")
	mockRedis.ExpectDel(cacheKey).SetVal(1)

	b, err := service.Approve(ctx, booking.ID, approverID)

	assert.NoError(t, err)
	if assert.NotNil(t, b) {
		assert.Equal(t, domain.BookingApproved, b.Status)
		assert.Equal(t, &approverID, b.ApprovedBy)
		assert.Nil(t, b.ExpiresAt)
	}
}

func TestApprove_Fail_InvalidTransition(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:     uuid.New(),
		Status: domain.BookingCancelled,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	b, err := service.Approve(ctx, booking.ID, uuid.New())

	assert.Nil(t, b)
	var transitionErr *domain.TransitionError
	if assert.ErrorAs(t, err, &transitionErr) {
		assert.Equal(t, domain.BookingCancelled, transitionErr.From)
		assert.Equal(t, domain.BookingApproved, transitionErr.To)
	}
}

func TestReject_Fail_MissingReason(t *testing.T) {
	service := services.NewBookingService(
		mocks.NewBookingRepository(t), nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	b, err := service.Reject(context.Background(), uuid.New(), uuid.New(), "")

	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConfirmPayment_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:     uuid.New(),
		Status: domain.BookingApproved,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)

	b, err := service.ConfirmPayment(ctx, booking.ID, "PAY-2026-0042")

	assert.NoError(t, err)
	if assert.NotNil(t, b) {
		assert.Equal(t, domain.BookingConfirmed, b.Status)
		assert.True(t, b.AdvancePaid)
		assert.Equal(t, "PAY-2026-0042", b.PaymentReference)
	}
}

func TestCancel_WithAdvancePaid_RecordsRefund(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPolicyRepo := mocks.NewPolicyRepository(t)
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mockPolicyRepo, mockCancellationRepo,
		mockNotifs, nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	actorID := uuid.New()

	booking := &domain.Booking{
		ID:               uuid.New(),
		VisitorID:        uuid.New(),
		HostelID:         uuid.New(),
		PreferredCheckIn: testNow.Add(20 * 24 * time.Hour),
		AdvanceAmount:    1000,
		AdvancePaid:      true,
		Status:           domain.BookingConfirmed,
	}

	policy := &domain.CancellationPolicy{
		ID:       uuid.New(),
		HostelID: booking.HostelID,
		Tiers: []domain.PolicyTier{
			{DaysBeforeCheckIn: 30, ChargePercentage: 10},
			{DaysBeforeCheckIn: 15, ChargePercentage: 50},
			{DaysBeforeCheckIn: 0, ChargePercentage: 100},
		},
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockPolicyRepo.On("GetActivePolicy", ctx, booking.HostelID, testNow).Return(policy, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockCancellationRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.BookingCancellation) bool {
		return c.BookingID == booking.ID &&
			c.CancellationCharge == 500 &&
			c.ChargePercentage == 50 &&
			c.RefundableAmount == 500 &&
			c.RefundStatus == domain.RefundPending
	})).Return(nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingCancelled, booking.VisitorID, mock.Anything).Return(nil)

	b, err := service.Cancel(ctx, booking.ID, actorID, "changed plans")

	assert.NoError(t, err)
	if assert.NotNil(t, b) {
		assert.Equal(t, domain.BookingCancelled, b.Status)
		assert.Equal(t, "changed plans", b.CancellationReason)
	}
}

func TestCancel_NoAdvance_SkipsRefundRecord(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPolicyRepo := mocks.NewPolicyRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	// No expectations on the cancellation repo: creating a refund record for
	// an unpaid booking must fail the test.
	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mockPolicyRepo, mocks.NewCancellationRepository(t),
		mockNotifs, nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:               uuid.New(),
		VisitorID:        uuid.New(),
		HostelID:         uuid.New(),
		PreferredCheckIn: testNow.Add(20 * 24 * time.Hour),
		AdvanceAmount:    1000,
		Status:           domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockPolicyRepo.On("GetActivePolicy", ctx, booking.HostelID, testNow).Return(nil, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingCancelled, booking.VisitorID, mock.Anything).Return(nil)

	b, err := service.Cancel(ctx, booking.ID, uuid.New(), "never paid")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestCancel_ReleasesActiveAssignment(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPolicyRepo := mocks.NewPolicyRepository(t)
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	assignmentSvc := services.NewAssignmentService(mockAssignmentRepo, mocks.NewBedRepository(t), nil, services.NewFixedClock(testNow))
	service := services.NewBookingService(
		mockBookingRepo, nil, assignmentSvc, mockPolicyRepo, mocks.NewCancellationRepository(t),
		mockNotifs, nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:               uuid.New(),
		VisitorID:        uuid.New(),
		HostelID:         uuid.New(),
		PreferredCheckIn: testNow.Add(20 * 24 * time.Hour),
		Status:           domain.BookingApproved,
	}

	assignment := &domain.BookingAssignment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		RoomID:    uuid.New(),
		BedID:     uuid.New(),
		IsActive:  true,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockPolicyRepo.On("GetActivePolicy", ctx, booking.HostelID, testNow).Return(nil, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockAssignmentRepo.On("GetActiveByBooking", ctx, booking.ID).Return(assignment, nil)
	mockAssignmentRepo.On("Deactivate", ctx, assignment).Return(nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingCancelled, booking.VisitorID, mock.Anything).Return(nil)

	b, err := service.Cancel(ctx, booking.ID, uuid.New(), "changed plans")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.False(t, assignment.IsActive)
	assert.Equal(t, "booking cancelled", assignment.DeactivationReason)
}

func TestCancel_NoAssignment_SkipsRelease(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockPolicyRepo := mocks.NewPolicyRepository(t)
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockNotifs := mocks.NewNotificationSender(t)

	assignmentSvc := services.NewAssignmentService(mockAssignmentRepo, mocks.NewBedRepository(t), nil, services.NewFixedClock(testNow))
	service := services.NewBookingService(
		mockBookingRepo, nil, assignmentSvc, mockPolicyRepo, mocks.NewCancellationRepository(t),
		mockNotifs, nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:               uuid.New(),
		VisitorID:        uuid.New(),
		HostelID:         uuid.New(),
		PreferredCheckIn: testNow.Add(20 * 24 * time.Hour),
		Status:           domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockPolicyRepo.On("GetActivePolicy", ctx, booking.HostelID, testNow).Return(nil, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.AnythingOfType("*domain.BookingStatusHistory")).Return(nil)
	mockAssignmentRepo.On("GetActiveByBooking", ctx, booking.ID).Return(nil, nil)
	mockNotifs.On("Send", ctx, domain.NotifyBookingCancelled, booking.VisitorID, mock.Anything).Return(nil)

	b, err := service.Cancel(ctx, booking.ID, uuid.New(), "changed plans")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestConvertToStudent_Fail_AlreadyConverted(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:                 uuid.New(),
		Reference:          "HB-20260110-XYZ789",
		Status:             domain.BookingCheckedIn,
		ConvertedToStudent: true,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)

	b, err := service.ConvertToStudent(ctx, booking.ID, uuid.New())

	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransition_RevertsOnPersistenceFailure(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)

	service := services.NewBookingService(
		mockBookingRepo, nil, nil, mocks.NewPolicyRepository(t), mocks.NewCancellationRepository(t),
		mocks.NewNotificationSender(t), nil, services.NewFixedClock(testNow),
	)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:     uuid.New(),
		Status: domain.BookingPending,
	}

	mockBookingRepo.On("GetByID", ctx, booking.ID).Return(booking, nil)
	mockBookingRepo.On("UpdateStatus", ctx, booking, mock.Anything).Return(errors.New("connection reset"))

	b, err := service.Approve(ctx, booking.ID, uuid.New())

	assert.Nil(t, b)
	assert.Error(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Nil(t, booking.ApprovedBy)
}
