package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hostel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestCheckAvailability_NoActiveBookings(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	service := services.NewAvailabilityService(mockBookingRepo, nil)

	ctx := context.Background()
	hostelID := uuid.New()

	mockBookingRepo.On("FindActiveByHostelRoomType", ctx, hostelID, "single").Return([]domain.Booking{}, nil)

	available, err := service.CheckAvailability(ctx, hostelID, "single", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 6)

	assert.NoError(t, err)
	assert.True(t, available)
}

func TestFindConflictingBookings_OverlapCases(t *testing.T) {
	// Existing stay: 2026-03-01 for 2 months, so it ends 2026-04-30.
	existingStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := domain.Booking{
		ID:                 uuid.New(),
		PreferredCheckIn:   existingStart,
		StayDurationMonths: 2,
		Status:             domain.BookingConfirmed,
	}

	cases := []struct {
		name     string
		checkIn  time.Time
		months   int
		conflict bool
	}{
		{"starts inside existing stay", existingStart.Add(15 * 24 * time.Hour), 3, true},
		{"ends inside existing stay", existingStart.Add(-15 * 24 * time.Hour), 1, true},
		{"fully contains existing stay", existingStart.Add(-15 * 24 * time.Hour), 4, true},
		{"identical window", existingStart, 2, true},
		{"ends exactly at existing start", existingStart.Add(-30 * 24 * time.Hour), 1, false},
		{"starts exactly at existing end", existingStart.Add(60 * 24 * time.Hour), 1, false},
		{"well before", existingStart.Add(-120 * 24 * time.Hour), 2, false},
		{"well after", existingStart.Add(120 * 24 * time.Hour), 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockBookingRepo := mocks.NewBookingRepository(t)
			service := services.NewAvailabilityService(mockBookingRepo, nil)

			ctx := context.Background()
			hostelID := uuid.New()

			mockBookingRepo.On("FindActiveByHostelRoomType", ctx, hostelID, "double").Return([]domain.Booking{existing}, nil)

			conflicts, err := service.FindConflictingBookings(ctx, hostelID, "double", tc.checkIn, tc.months, uuid.Nil)

			assert.NoError(t, err)
			if tc.conflict {
				assert.Len(t, conflicts, 1)
			} else {
				assert.Empty(t, conflicts)
			}
		})
	}
}

func TestFindConflictingBookings_ExcludesOwnBooking(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	service := services.NewAvailabilityService(mockBookingRepo, nil)

	ctx := context.Background()
	hostelID := uuid.New()
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	own := domain.Booking{
		ID:                 uuid.New(),
		PreferredCheckIn:   checkIn,
		StayDurationMonths: 6,
		Status:             domain.BookingConfirmed,
	}

	mockBookingRepo.On("FindActiveByHostelRoomType", ctx, hostelID, "double").Return([]domain.Booking{own}, nil)

	conflicts, err := service.FindConflictingBookings(ctx, hostelID, "double", checkIn, 6, own.ID)

	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflictingBookings_Fail_DurationOutOfRange(t *testing.T) {
	service := services.NewAvailabilityService(mocks.NewBookingRepository(t), nil)

	ctx := context.Background()
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := service.FindConflictingBookings(ctx, uuid.New(), "double", checkIn, 0, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.FindConflictingBookings(ctx, uuid.New(), "double", checkIn, 25, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckAvailability_ServesFromCache(t *testing.T) {
	// No repository expectations: a cache hit must not touch the database.
	mockBookingRepo := mocks.NewBookingRepository(t)

	db, mockRedis := redismock.NewClientMock()
	service := services.NewAvailabilityService(mockBookingRepo, db)

	ctx := context.Background()
	hostelID := uuid.New()
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cached := []domain.Booking{{
		ID:                 uuid.New(),
		PreferredCheckIn:   checkIn,
		StayDurationMonths: 6,
		Status:             domain.BookingConfirmed,
	}}
	data, err := json.Marshal(cached)
	assert.NoError(t, err)

	cacheKey := fmt.Sprintf("active_bookings:%s:%s", hostelID, "double")
	mockRedis.ExpectGet(cacheKey).SetVal(string(data))

	available, err := service.CheckAvailability(ctx, hostelID, "double", checkIn, 6)

	assert.NoError(t, err)
	assert.False(t, available)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCheckOutDate_ThirtyDayMonths(t *testing.T) {
	checkIn := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, checkIn.Add(180*24*time.Hour), services.CheckOutDate(checkIn, 6))
}
