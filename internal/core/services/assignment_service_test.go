package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/hostel_booking/internal/core/domain"
	"github.com/srgjo27/hostel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hostel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestScoreBed_BaseAndOccupancy(t *testing.T) {
	halfFull := domain.BedCandidate{
		Bed:  domain.Bed{BedNumber: "B1"},
		Room: domain.Room{Capacity: 4, Occupied: 2},
	}
	empty := domain.BedCandidate{
		Bed:  domain.Bed{BedNumber: "B2"},
		Room: domain.Room{Capacity: 4, Occupied: 0},
	}

	assert.Equal(t, 60.0, services.ScoreBed(halfFull, nil))
	assert.Equal(t, 70.0, services.ScoreBed(empty, nil))
}

func TestScoreBed_GuestPreferences(t *testing.T) {
	candidate := domain.BedCandidate{
		Bed: domain.Bed{BedNumber: "B1", BedType: "single"},
		Room: domain.Room{
			Capacity:    4,
			Occupied:    2,
			FloorNumber: 0,
			HasAC:       true,
			HasBalcony:  true,
		},
	}

	guest := &domain.Guest{
		NeedsGroundFloor: true,
		WantsAC:          true,
		WantsBalcony:     true,
		PreferredBedType: "single",
	}

	// 50 base + 10 occupancy + 10 ground floor + 15 AC + 5 balcony + 10 bed type = 100
	assert.Equal(t, 100.0, services.ScoreBed(candidate, guest))
}

func TestScoreBed_CappedAtHundred(t *testing.T) {
	candidate := domain.BedCandidate{
		Bed: domain.Bed{BedNumber: "B1", BedType: "single"},
		Room: domain.Room{
			Capacity:    4,
			Occupied:    0,
			FloorNumber: 0,
			HasAC:       true,
			HasBalcony:  true,
		},
	}

	guest := &domain.Guest{
		NeedsGroundFloor: true,
		WantsAC:          true,
		WantsBalcony:     true,
		PreferredBedType: "single",
	}

	assert.Equal(t, 100.0, services.ScoreBed(candidate, guest))
}

func TestRankBeds_PrefersHigherScore(t *testing.T) {
	crowded := domain.BedCandidate{
		Bed:  domain.Bed{BedNumber: "B1"},
		Room: domain.Room{Capacity: 4, Occupied: 4},
	}
	empty := domain.BedCandidate{
		Bed:  domain.Bed{BedNumber: "B2"},
		Room: domain.Room{Capacity: 4, Occupied: 0},
	}

	ranked := services.RankBeds([]domain.BedCandidate{crowded, empty}, nil)

	assert.Equal(t, "B2", ranked[0].Bed.BedNumber)
	assert.Equal(t, "B1", ranked[1].Bed.BedNumber)
}

func TestRankBeds_TieBreaksOnBedNumber(t *testing.T) {
	room := domain.Room{Capacity: 4, Occupied: 2}
	b3 := domain.BedCandidate{Bed: domain.Bed{BedNumber: "B3"}, Room: room}
	b1 := domain.BedCandidate{Bed: domain.Bed{BedNumber: "B1"}, Room: room}
	b2 := domain.BedCandidate{Bed: domain.Bed{BedNumber: "B2"}, Room: room}

	ranked := services.RankBeds([]domain.BedCandidate{b3, b1, b2}, nil)

	assert.Equal(t, "B1", ranked[0].Bed.BedNumber)
	assert.Equal(t, "B2", ranked[1].Bed.BedNumber)
	assert.Equal(t, "B3", ranked[2].Bed.BedNumber)
}

func TestAssign_Success(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	roomID := uuid.New()
	bedID := uuid.New()

	bed := &domain.Bed{
		ID:        bedID,
		RoomID:    roomID,
		BedNumber: "B1",
		Status:    domain.BedAvailable,
		Version:   3,
	}

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetByID", ctx, bedID).Return(bed, nil)
	mockAssignmentRepo.On("HasActiveForBed", ctx, bedID).Return(false, nil)
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 3).Return(nil)
	mockAssignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingAssignment"), mock.AnythingOfType("*domain.AssignmentHistory")).Return(nil)

	a, err := service.Assign(ctx, bookingID, roomID, bedID)

	assert.NoError(t, err)
	if assert.NotNil(t, a) {
		assert.Equal(t, bookingID, a.BookingID)
		assert.Equal(t, bedID, a.BedID)
		assert.True(t, a.IsActive)
	}
}

func TestAssign_Fail_AlreadyAssigned(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mocks.NewBedRepository(t), nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(&domain.BookingAssignment{ID: uuid.New(), IsActive: true}, nil)

	a, err := service.Assign(ctx, bookingID, uuid.New(), uuid.New())

	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssign_Fail_LostReservationRace(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	roomID := uuid.New()
	bedID := uuid.New()

	bed := &domain.Bed{ID: bedID, RoomID: roomID, BedNumber: "B1", Status: domain.BedAvailable, Version: 1}

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetByID", ctx, bedID).Return(bed, nil)
	mockAssignmentRepo.On("HasActiveForBed", ctx, bedID).Return(false, nil)
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 1).Return(domain.ErrBedTaken)

	a, err := service.Assign(ctx, bookingID, roomID, bedID)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssign_ReleasesBedWhenInsertFails(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	roomID := uuid.New()
	bedID := uuid.New()

	bed := &domain.Bed{ID: bedID, RoomID: roomID, BedNumber: "B1", Status: domain.BedAvailable, Version: 1}

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetByID", ctx, bedID).Return(bed, nil)
	mockAssignmentRepo.On("HasActiveForBed", ctx, bedID).Return(false, nil)
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 1).Return(nil)
	mockAssignmentRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	mockBedRepo.On("ReleaseBed", ctx, bedID).Return(nil)

	a, err := service.Assign(ctx, bookingID, roomID, bedID)

	assert.Nil(t, a)
	assert.Error(t, err)
	mockBedRepo.AssertCalled(t, "ReleaseBed", ctx, bedID)
}

func TestAutoAssign_RetriesAfterLostRace(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	hostelID := uuid.New()
	roomID := uuid.New()
	bedID := uuid.New()

	candidate := domain.BedCandidate{
		Bed:  domain.Bed{ID: bedID, RoomID: roomID, BedNumber: "B1", Status: domain.BedAvailable, Version: 1},
		Room: domain.Room{ID: roomID, HostelID: hostelID, RoomType: "double", Capacity: 4, Occupied: 1},
	}

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetCandidates", ctx, hostelID, "double").Return([]domain.BedCandidate{candidate}, nil).Twice()
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 1).Return(domain.ErrBedTaken).Once()
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 1).Return(nil).Once()
	mockAssignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.BookingAssignment"), mock.AnythingOfType("*domain.AssignmentHistory")).Return(nil)

	a, err := service.AutoAssign(ctx, bookingID, hostelID, "double", nil)

	assert.NoError(t, err)
	if assert.NotNil(t, a) {
		assert.Equal(t, bedID, a.BedID)
		assert.Equal(t, roomID, a.RoomID)
	}
}

func TestAutoAssign_Fail_NoCandidates(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	hostelID := uuid.New()

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetCandidates", ctx, hostelID, "double").Return([]domain.BedCandidate{}, nil)

	a, err := service.AutoAssign(ctx, bookingID, hostelID, "double", nil)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAutoAssign_Fail_ExhaustsRetries(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)
	mockBedRepo := mocks.NewBedRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mockBedRepo, nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()
	hostelID := uuid.New()
	bedID := uuid.New()
	roomID := uuid.New()

	candidate := domain.BedCandidate{
		Bed:  domain.Bed{ID: bedID, RoomID: roomID, BedNumber: "B1", Status: domain.BedAvailable, Version: 1},
		Room: domain.Room{ID: roomID, HostelID: hostelID, RoomType: "double", Capacity: 4, Occupied: 1},
	}

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)
	mockBedRepo.On("GetCandidates", ctx, hostelID, "double").Return([]domain.BedCandidate{candidate}, nil).Times(3)
	mockBedRepo.On("ReserveBed", ctx, bedID, bookingID, 1).Return(domain.ErrBedTaken).Times(3)

	a, err := service.AutoAssign(ctx, bookingID, hostelID, "double", nil)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "3 attempts")
}

func TestDeactivate_Fail_NoActiveAssignment(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mocks.NewBedRepository(t), nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	bookingID := uuid.New()

	mockAssignmentRepo.On("GetActiveByBooking", ctx, bookingID).Return(nil, nil)

	err := service.Deactivate(ctx, bookingID, "moving out")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_IdempotentOnMissingRow(t *testing.T) {
	mockAssignmentRepo := mocks.NewAssignmentRepository(t)

	service := services.NewAssignmentService(mockAssignmentRepo, mocks.NewBedRepository(t), nil, services.NewFixedClock(testNow))

	ctx := context.Background()
	assignment := &domain.BookingAssignment{ID: uuid.New(), RoomID: uuid.New()}

	mockAssignmentRepo.On("Delete", ctx, assignment.ID).Return(domain.ErrNotFound)

	assert.NoError(t, service.Remove(ctx, assignment))
	assert.NoError(t, service.Remove(ctx, nil))
}
