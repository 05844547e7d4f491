package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

type BookingRepository interface {
	// Create persists the booking together with its initial status history
	// row in one transaction.
	Create(ctx context.Context, booking *domain.Booking, history *domain.BookingStatusHistory) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	// UpdateStatus persists the booking's status and transition metadata
	// together with the history row in one transaction.
	UpdateStatus(ctx context.Context, booking *domain.Booking, history *domain.BookingStatusHistory) error
	FindActiveByHostelRoomType(ctx context.Context, hostelID uuid.UUID, roomType string) ([]domain.Booking, error)
	GetExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// ExpireBooking moves a still-pending booking to expired and appends the
	// history row atomically. A booking that already left pending is skipped.
	ExpireBooking(ctx context.Context, bookingID uuid.UUID, now time.Time) error
	GetStatusHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.BookingStatusHistory, error)
}

type BedRepository interface {
	GetByID(ctx context.Context, bedID uuid.UUID) (*domain.Bed, error)
	GetRoomByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error)
	GetCandidates(ctx context.Context, hostelID uuid.UUID, roomType string) ([]domain.BedCandidate, error)
	CountAvailable(ctx context.Context, hostelID uuid.UUID, roomType string) (int, error)
	// ReserveBed flips available -> reserved only if the bed's version still
	// matches; a lost race returns domain.ErrBedTaken.
	ReserveBed(ctx context.Context, bedID, bookingID uuid.UUID, currentVersion int) error
	ReleaseBed(ctx context.Context, bedID uuid.UUID) error
}

type AssignmentRepository interface {
	// Create inserts the assignment and its history entry in one transaction.
	// The bed must already be reserved through BedRepository.ReserveBed.
	Create(ctx context.Context, assignment *domain.BookingAssignment, history *domain.AssignmentHistory) error
	GetByID(ctx context.Context, assignmentID uuid.UUID) (*domain.BookingAssignment, error)
	// GetActiveByBooking returns (nil, nil) when no active assignment exists.
	GetActiveByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.BookingAssignment, error)
	HasActiveForBed(ctx context.Context, bedID uuid.UUID) (bool, error)
	// Deactivate flips the assignment inactive and releases its bed in one
	// transaction.
	Deactivate(ctx context.Context, assignment *domain.BookingAssignment) error
	// Reactivate flips the assignment active again and re-reserves its bed
	// with a version check; returns domain.ErrBedTaken if the bed moved on.
	Reactivate(ctx context.Context, assignment *domain.BookingAssignment, bedVersion int) error
	// Reassign updates the assignment to the new room/bed, appends history
	// and releases the old bed in one transaction. The new bed must already
	// be reserved.
	Reassign(ctx context.Context, assignment *domain.BookingAssignment, history *domain.AssignmentHistory, oldBedID uuid.UUID) error
	// Delete removes the assignment row and releases its bed; used by the
	// onboarding rollback path. Missing rows return domain.ErrNotFound.
	Delete(ctx context.Context, assignmentID uuid.UUID) error
	GetHistory(ctx context.Context, bookingID uuid.UUID) ([]domain.AssignmentHistory, error)
}

type PolicyRepository interface {
	// GetActivePolicy returns (nil, nil) when no policy is effective for the
	// hostel at the given time; callers treat that as a full refund.
	GetActivePolicy(ctx context.Context, hostelID uuid.UUID, at time.Time) (*domain.CancellationPolicy, error)
}

type CancellationRepository interface {
	Create(ctx context.Context, cancellation *domain.BookingCancellation) error
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingCancellation, error)
	Update(ctx context.Context, cancellation *domain.BookingCancellation) error
}

type StudentRepository interface {
	Create(ctx context.Context, profile *domain.StudentProfile) error
	// GetActiveByGuest returns (nil, nil) when the guest has no active profile.
	GetActiveByGuest(ctx context.Context, guestID uuid.UUID) (*domain.StudentProfile, error)
	Delete(ctx context.Context, profileID uuid.UUID) error
}

type GuestRepository interface {
	GetByID(ctx context.Context, guestID uuid.UUID) (*domain.Guest, error)
}
