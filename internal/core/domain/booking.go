package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCheckedIn BookingStatus = "checked_in"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
	BookingExpired   BookingStatus = "expired"
)

// validTransitions is the single source of truth for the booking lifecycle.
// Terminal states map to an empty slice.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingApproved, BookingRejected, BookingCancelled, BookingExpired},
	BookingApproved:  {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCompleted, BookingNoShow, BookingCancelled},
	BookingRejected:  {},
	BookingCompleted: {},
	BookingCancelled: {},
	BookingNoShow:    {},
	BookingExpired:   {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

type Booking struct {
	ID        uuid.UUID
	Reference string
	VisitorID uuid.UUID
	HostelID  uuid.UUID

	RoomTypeRequested  string
	PreferredCheckIn   time.Time
	StayDurationMonths int

	QuotedRentMonthly float64
	TotalAmount       float64
	SecurityDeposit   float64
	AdvanceAmount     float64
	AdvancePaid       bool
	PaymentReference  string

	Status BookingStatus

	ApprovedBy         *uuid.UUID
	ApprovedAt         *time.Time
	RejectedBy         *uuid.UUID
	RejectedAt         *time.Time
	RejectionReason    string
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	CancellationReason string

	ExpiresAt *time.Time

	ConvertedToStudent bool
	StudentProfileID   *uuid.UUID
	ConversionDate     *time.Time

	CreatedAt time.Time
	DeletedAt *time.Time
}

// CheckOutDate uses the fixed 30-day month that all stored booking windows
// were written with. Calendar-month arithmetic would shift every overlap
// check against existing rows, so the approximation is kept.
func (b *Booking) CheckOutDate() time.Time {
	return b.PreferredCheckIn.Add(time.Duration(b.StayDurationMonths) * 30 * 24 * time.Hour)
}

type BookingStatusHistory struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	FromStatus BookingStatus
	ToStatus   BookingStatus
	ActorID    *uuid.UUID
	Reason     string
	ChangedAt  time.Time
}
