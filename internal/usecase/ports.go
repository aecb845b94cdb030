package usecase

import (
	"context"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/room"

	"github.com/google/uuid"
)

// CustomerDirectory is the external customer record system. The core only
// needs existence checks; CRUD stays outside.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID uuid.UUID) (bool, error)
}

// AdjacencyEdge is a declared directed edge between two combinable rooms.
type AdjacencyEdge struct {
	RoomID         uuid.UUID
	AdjacentRoomID uuid.UUID
}

// ReaderBinding ties a door reader to the room it guards.
type ReaderBinding struct {
	ReaderID uuid.UUID
	RoomID   uuid.UUID
}

// Inventory is the read-only inventory surface the engine is seeded from at
// startup: rooms, adjacency edges and door readers.
type Inventory interface {
	ListRooms(ctx context.Context) ([]*room.Room, error)
	ListAdjacencies(ctx context.Context) ([]AdjacencyEdge, error)
	ListReaders(ctx context.Context) ([]ReaderBinding, error)
}

// ReservationRecord is the plain record emitted over the persistence boundary.
// Building and room numbers ride along so reporting never has to reach back
// into the core.
type ReservationRecord struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	RoomIDs        []uuid.UUID
	RoomNumbers    []string
	Buildings      []string
	Start          time.Time
	End            time.Time
	Units          int
	TotalRateCents int64
	DepositStatus  string
	Status         string
}

// Journal is the persistence boundary: an external storage layer durably
// persists the state changes the core emits. The core mandates no storage
// technology and never reads back through this interface.
type Journal interface {
	ReservationConfirmed(ctx context.Context, rec ReservationRecord) error
	ReservationRescheduled(ctx context.Context, rec ReservationRecord) error
	ReservationCancelled(ctx context.Context, reservationID uuid.UUID, at time.Time) error
	ReservationCompleted(ctx context.Context, reservationID uuid.UUID, at time.Time) error
	RoomStatusChanged(ctx context.Context, roomID uuid.UUID, st room.Status, at time.Time) error
	SwipeRecorded(ctx context.Context, ev access.Event) error
}
