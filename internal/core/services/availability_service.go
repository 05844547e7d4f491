package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports"
)

const (
	MinStayMonths = 1
	MaxStayMonths = 24

	activeWindowTTL = 60 * time.Second
)

func activeWindowKey(hostelID uuid.UUID, roomType string) string {
	return fmt.Sprintf("active_bookings:%s:%s", hostelID, roomType)
}

// CheckOutDate computes the stay window end with the fixed 30-day month all
// stored bookings use.
func CheckOutDate(checkIn time.Time, durationMonths int) time.Time {
	return checkIn.Add(time.Duration(durationMonths) * 30 * 24 * time.Hour)
}

type AvailabilityService struct {
	bookings ports.BookingRepository
	cache    *redis.Client
}

func NewAvailabilityService(bookings ports.BookingRepository, cache *redis.Client) *AvailabilityService {
	return &AvailabilityService{
		bookings: bookings,
		cache:    cache,
	}
}

// CheckAvailability reports whether the requested window is free of any
// active booking (approved, confirmed or checked in) for the same hostel
// and room type.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, hostelID uuid.UUID, roomType string, checkIn time.Time, durationMonths int) (bool, error) {
	conflicts, err := s.FindConflictingBookings(ctx, hostelID, roomType, checkIn, durationMonths, uuid.Nil)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindConflictingBookings returns every active booking whose stay window
// overlaps the requested one. excludeBookingID keeps a booking being
// modified out of its own conflict set; pass uuid.Nil to exclude nothing.
func (s *AvailabilityService) FindConflictingBookings(ctx context.Context, hostelID uuid.UUID, roomType string, checkIn time.Time, durationMonths int, excludeBookingID uuid.UUID) ([]domain.Booking, error) {
	if durationMonths < MinStayMonths || durationMonths > MaxStayMonths {
		return nil, fmt.Errorf("stay duration %d months is out of range: %w", durationMonths, domain.ErrValidation)
	}

	active, err := s.activeBookings(ctx, hostelID, roomType)
	if err != nil {
		return nil, err
	}

	newStart := checkIn
	newEnd := CheckOutDate(checkIn, durationMonths)

	var conflicts []domain.Booking
	for _, b := range active {
		if excludeBookingID != uuid.Nil && b.ID == excludeBookingID {
			continue
		}
		if overlaps(newStart, newEnd, b.PreferredCheckIn, b.CheckOutDate()) {
			conflicts = append(conflicts, b)
		}
	}

	return conflicts, nil
}

// overlaps checks the three conflict cases: the new window starts inside the
// existing one, ends inside it, or fully contains it.
func overlaps(newStart, newEnd, existingStart, existingEnd time.Time) bool {
	startsInside := !newStart.Before(existingStart) && newStart.Before(existingEnd)
	endsInside := newEnd.After(existingStart) && !newEnd.After(existingEnd)
	contains := !newStart.After(existingStart) && !newEnd.Before(existingEnd)
	return startsInside || endsInside || contains
}

func (s *AvailabilityService) activeBookings(ctx context.Context, hostelID uuid.UUID, roomType string) ([]domain.Booking, error) {
	key := activeWindowKey(hostelID, roomType)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var cached []domain.Booking
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("Availability cache read failed for %s: %v", key, err)
		}
	}

	rows, err := s.bookings.FindActiveByHostelRoomType(ctx, hostelID, roomType)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, key, data, activeWindowTTL).Err(); err != nil {
				log.Printf("Availability cache write failed for %s: %v", key, err)
			}
		}
	}

	return rows, nil
}
