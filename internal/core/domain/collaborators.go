package domain

import (
	"time"

	"github.com/google/uuid"
)

// Types read from the surrounding system through the collaborator ports.
// The core never writes payments or documents; it only reads their state.

const (
	PaymentCompleted = "completed"

	PaymentTypeAdvance = "advance"
	PaymentTypeDeposit = "deposit"
)

type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        float64
	PaymentStatus string
	PaymentType   string
}

const (
	DocumentIDProof      = "id_proof"
	DocumentPhoto        = "photo"
	DocumentAddressProof = "address_proof"

	DocumentVerified = "verified"
	DocumentFailed   = "failed"
)

type Document struct {
	ID      uuid.UUID
	GuestID uuid.UUID
	DocType string
}

type DocumentVerification struct {
	Status          string
	ConfidenceScore float64
}

type BackgroundCheckResult struct {
	Passed          bool
	Score           float64
	Recommendations []string
}

type Guest struct {
	ID               uuid.UUID
	FullName         string
	Phone            string
	Blacklisted      bool
	NeedsGroundFloor bool
	WantsAC          bool
	WantsBalcony     bool
	PreferredBedType string
}

type StudentProfile struct {
	ID          uuid.UUID
	GuestID     uuid.UUID
	BookingID   uuid.UUID
	HostelID    uuid.UUID
	RoomID      uuid.UUID
	BedID       uuid.UUID
	CheckInDate time.Time
	IsActive    bool
	CreatedAt   time.Time
}

type DigitalService string

const (
	ServiceMobileApp          DigitalService = "mobile_app"
	ServiceWebPortal          DigitalService = "web_portal"
	ServicePaymentIntegration DigitalService = "payment_integration"
	ServiceAccessCard         DigitalService = "access_card"
	ServiceRoomKey            DigitalService = "room_key"
	ServiceLocker             DigitalService = "locker"
	ServiceDigitalAccess      DigitalService = "digital_access"
)

var DigitalServices = []DigitalService{
	ServiceMobileApp,
	ServiceWebPortal,
	ServicePaymentIntegration,
	ServiceAccessCard,
	ServiceRoomKey,
	ServiceLocker,
	ServiceDigitalAccess,
}

// Notification kinds sent through the NotificationSender port.
const (
	NotifyBookingCreated      = "booking_created"
	NotifyBookingApproved     = "booking_approved"
	NotifyBookingRejected     = "booking_rejected"
	NotifyBookingCancelled    = "booking_cancelled"
	NotifyMealPreferences     = "meal_preferences"
	NotifyOrientation         = "orientation_scheduled"
	NotifyWelcomePackage      = "welcome_package"
	NotifyOnboardingCompleted = "onboarding_completed"
)
