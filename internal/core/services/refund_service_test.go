package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hostel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func tieredPolicy() *domain.CancellationPolicy {
	return &domain.CancellationPolicy{
		ID: uuid.New(),
		Tiers: []domain.PolicyTier{
			{DaysBeforeCheckIn: 30, ChargePercentage: 10},
			{DaysBeforeCheckIn: 15, ChargePercentage: 50},
			{DaysBeforeCheckIn: 0, ChargePercentage: 100},
		},
	}
}

func paidBooking(checkIn time.Time) *domain.Booking {
	return &domain.Booking{
		ID:               uuid.New(),
		PreferredCheckIn: checkIn,
		AdvanceAmount:    1000,
		AdvancePaid:      true,
	}
}

func TestCalculateRefund_TieredPolicy(t *testing.T) {
	policy := tieredPolicy()

	cases := []struct {
		name       string
		daysBefore int
		charge     float64
		pct        float64
		refundable float64
	}{
		{"45 days out hits the lenient tier", 45, 100, 10, 900},
		{"20 days out hits the middle tier", 20, 500, 50, 500},
		{"5 days out forfeits the advance", 5, 1000, 100, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := paidBooking(testNow.Add(time.Duration(tc.daysBefore) * 24 * time.Hour))

			charge, pct, refundable := services.CalculateRefund(b, policy, testNow)

			assert.Equal(t, tc.charge, charge)
			assert.Equal(t, tc.pct, pct)
			assert.Equal(t, tc.refundable, refundable)
		})
	}
}

func TestCalculateRefund_NilPolicy_FullRefund(t *testing.T) {
	b := paidBooking(testNow.Add(5 * 24 * time.Hour))

	charge, pct, refundable := services.CalculateRefund(b, nil, testNow)

	assert.Equal(t, 0.0, charge)
	assert.Equal(t, 0.0, pct)
	assert.Equal(t, 1000.0, refundable)
}

func TestCalculateRefund_NoAdvancePaid(t *testing.T) {
	b := paidBooking(testNow.Add(45 * 24 * time.Hour))
	b.AdvancePaid = false

	charge, _, refundable := services.CalculateRefund(b, tieredPolicy(), testNow)

	assert.Equal(t, 0.0, charge)
	assert.Equal(t, 0.0, refundable)
}

func TestCalculateRefund_PastCheckIn_ChargedInFull(t *testing.T) {
	b := paidBooking(testNow.Add(-3 * 24 * time.Hour))

	charge, pct, refundable := services.CalculateRefund(b, tieredPolicy(), testNow)

	assert.Equal(t, 1000.0, charge)
	assert.Equal(t, 100.0, pct)
	assert.Equal(t, 0.0, refundable)
}

func TestCalculateRefund_ChargeNeverIncreasesWithNotice(t *testing.T) {
	policy := tieredPolicy()

	prevCharge := 1001.0
	for days := 0; days <= 60; days++ {
		b := paidBooking(testNow.Add(time.Duration(days) * 24 * time.Hour))
		charge, _, _ := services.CalculateRefund(b, policy, testNow)

		assert.LessOrEqual(t, charge, prevCharge, "charge rose with %d days notice", days)
		prevCharge = charge
	}
}

func TestInitiateRefund_Success(t *testing.T) {
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	service := services.NewRefundService(mockCancellationRepo, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	cancellation := &domain.BookingCancellation{
		ID:           uuid.New(),
		BookingID:    bookingID,
		RefundStatus: domain.RefundPending,
	}

	mockCancellationRepo.On("GetByBookingID", ctx, bookingID).Return(cancellation, nil)
	mockCancellationRepo.On("Update", ctx, cancellation).Return(nil)

	c, err := service.InitiateRefund(ctx, bookingID)

	assert.NoError(t, err)
	assert.Equal(t, domain.RefundProcessing, c.RefundStatus)
}

func TestCompleteRefund_Success(t *testing.T) {
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	service := services.NewRefundService(mockCancellationRepo, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	cancellation := &domain.BookingCancellation{
		ID:           uuid.New(),
		BookingID:    bookingID,
		RefundStatus: domain.RefundProcessing,
	}

	mockCancellationRepo.On("GetByBookingID", ctx, bookingID).Return(cancellation, nil)
	mockCancellationRepo.On("Update", ctx, cancellation).Return(nil)

	c, err := service.CompleteRefund(ctx, bookingID, "TXN-2026-0099")

	assert.NoError(t, err)
	assert.Equal(t, domain.RefundCompleted, c.RefundStatus)
	assert.Equal(t, "TXN-2026-0099", c.RefundTransactionID)
}

func TestCompleteRefund_Fail_MissingTransactionID(t *testing.T) {
	service := services.NewRefundService(mocks.NewCancellationRepository(t), services.NewFixedClock(testNow))

	c, err := service.CompleteRefund(context.Background(), uuid.New(), "")

	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompleteRefund_Fail_FromPending(t *testing.T) {
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	service := services.NewRefundService(mockCancellationRepo, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	cancellation := &domain.BookingCancellation{
		ID:           uuid.New(),
		BookingID:    bookingID,
		RefundStatus: domain.RefundPending,
	}

	mockCancellationRepo.On("GetByBookingID", ctx, bookingID).Return(cancellation, nil)

	c, err := service.CompleteRefund(ctx, bookingID, "TXN-2026-0099")

	assert.Nil(t, c)
	var refundErr *domain.RefundTransitionError
	if assert.ErrorAs(t, err, &refundErr) {
		assert.Equal(t, domain.RefundPending, refundErr.From)
		assert.Equal(t, domain.RefundCompleted, refundErr.To)
	}
}

func TestFailRefund_RecordsBreakdown(t *testing.T) {
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	service := services.NewRefundService(mockCancellationRepo, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	cancellation := &domain.BookingCancellation{
		ID:           uuid.New(),
		BookingID:    bookingID,
		RefundStatus: domain.RefundProcessing,
	}

	mockCancellationRepo.On("GetByBookingID", ctx, bookingID).Return(cancellation, nil)
	mockCancellationRepo.On("Update", ctx, cancellation).Return(nil)

	c, err := service.FailRefund(ctx, bookingID, "bank rejected transfer")

	assert.NoError(t, err)
	assert.Equal(t, domain.RefundFailed, c.RefundStatus)
	assert.Contains(t, string(c.RefundBreakdown), "bank rejected transfer")
}

func TestRefundTransition_RevertsOnUpdateFailure(t *testing.T) {
	mockCancellationRepo := mocks.NewCancellationRepository(t)
	service := services.NewRefundService(mockCancellationRepo, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	cancellation := &domain.BookingCancellation{
		ID:           uuid.New(),
		BookingID:    bookingID,
		RefundStatus: domain.RefundPending,
	}

	mockCancellationRepo.On("GetByBookingID", ctx, bookingID).Return(cancellation, nil)
	mockCancellationRepo.On("Update", ctx, cancellation).Return(errors.New("connection reset"))

	c, err := service.InitiateRefund(ctx, bookingID)

	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Equal(t, domain.RefundPending, cancellation.RefundStatus)
}
