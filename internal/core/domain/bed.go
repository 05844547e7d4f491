package domain

import (
	"time"

	"github.com/google/uuid"
)

type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedReserved    BedStatus = "reserved"
	BedOccupied    BedStatus = "occupied"
	BedMaintenance BedStatus = "maintenance"
)

type Room struct {
	ID          uuid.UUID
	HostelID    uuid.UUID
	RoomType    string
	FloorNumber int
	HasAC       bool
	HasBalcony  bool
	Capacity    int
	Occupied    int
}

func (r *Room) OccupancyRatio() float64 {
	if r.Capacity <= 0 {
		return 1
	}
	return float64(r.Occupied) / float64(r.Capacity)
}

type Bed struct {
	ID                  uuid.UUID
	RoomID              uuid.UUID
	BedNumber           string
	BedType             string
	Status              BedStatus
	Version             int
	ReservedByBookingID *uuid.UUID
	ReservedAt          *time.Time
}

func (b *Bed) IsAvailable() bool {
	return b.Status == BedAvailable
}

// BedCandidate pairs a bed with its room attributes for scoring.
type BedCandidate struct {
	Bed  Bed
	Room Room
}
