package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
)

// Collaborator subsystems outside the booking core. The core only reads
// payment and document state; it never initiates charges or stores bytes.

type PaymentProvider interface {
	GetPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error)
}

type DocumentProvider interface {
	GetDocumentsForGuest(ctx context.Context, guestID uuid.UUID) ([]domain.Document, error)
	VerifyDocument(ctx context.Context, doc domain.Document) (*domain.DocumentVerification, error)
}

type BackgroundChecker interface {
	Check(ctx context.Context, guestID uuid.UUID) (*domain.BackgroundCheckResult, error)
}

// NotificationSender is fire-and-forget: callers log failures and move on.
type NotificationSender interface {
	Send(ctx context.Context, kind string, recipient uuid.UUID, payload map[string]string) error
}

type AccessProvisioner interface {
	Provision(ctx context.Context, studentID uuid.UUID, service domain.DigitalService) error
	// Revoke withdraws every credential issued for the student. It is
	// idempotent; revoking a student with nothing issued is a no-op.
	Revoke(ctx context.Context, studentID uuid.UUID) error
}
