package domain

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentChange string

const (
	AssignmentInitial      AssignmentChange = "initial"
	AssignmentReassignment AssignmentChange = "reassignment"
)

// BookingAssignment binds a booking to a specific room and bed. At most one
// row per booking is active; deactivated rows are kept for the audit trail.
type BookingAssignment struct {
	ID                 uuid.UUID
	BookingID          uuid.UUID
	RoomID             uuid.UUID
	BedID              uuid.UUID
	IsActive           bool
	AssignedAt         time.Time
	DeactivatedAt      *time.Time
	DeactivationReason string
}

// AssignmentHistory is an append-only log of room/bed changes for a booking.
// FromRoomID/FromBedID are nil on the initial record.
type AssignmentHistory struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ChangeType AssignmentChange
	FromRoomID *uuid.UUID
	FromBedID  *uuid.UUID
	ToRoomID   uuid.UUID
	ToBedID    uuid.UUID
	Reason     string
	ChangedAt  time.Time
}
