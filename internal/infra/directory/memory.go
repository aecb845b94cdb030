package directory

import (
	"context"
	"sync"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/room"
	"lastresort/internal/infra"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
)

// MemoryDirectory is a static directory for tests and standalone runs.
type MemoryDirectory struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]struct{}
	cards     map[uuid.UUID]access.CardRecord
	rooms     []*room.Room
	edges     []usecase.AdjacencyEdge
	readers   []usecase.ReaderBinding
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		customers: make(map[uuid.UUID]struct{}),
		cards:     make(map[uuid.UUID]access.CardRecord),
	}
}

func (d *MemoryDirectory) AddCustomer(customerID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers[customerID] = struct{}{}
}

func (d *MemoryDirectory) AddCard(rec access.CardRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards[rec.CardID] = rec
}

func (d *MemoryDirectory) Exists(_ context.Context, customerID uuid.UUID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.customers[customerID]
	return ok, nil
}

func (d *MemoryDirectory) Lookup(_ context.Context, cardID uuid.UUID) (access.CardRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.cards[cardID]
	if !ok {
		return access.CardRecord{}, infra.WrapRepoErr(infra.KindNotFound, "card not found", nil)
	}
	return rec, nil
}

func (d *MemoryDirectory) AddRoom(rm *room.Room) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms = append(d.rooms, rm)
}

func (d *MemoryDirectory) AddAdjacency(roomID, adjacentRoomID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edges = append(d.edges, usecase.AdjacencyEdge{RoomID: roomID, AdjacentRoomID: adjacentRoomID})
}

func (d *MemoryDirectory) AddReader(readerID, roomID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readers = append(d.readers, usecase.ReaderBinding{ReaderID: readerID, RoomID: roomID})
}

func (d *MemoryDirectory) ListRooms(_ context.Context) ([]*room.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*room.Room, len(d.rooms))
	copy(out, d.rooms)
	return out, nil
}

func (d *MemoryDirectory) ListAdjacencies(_ context.Context) ([]usecase.AdjacencyEdge, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]usecase.AdjacencyEdge, len(d.edges))
	copy(out, d.edges)
	return out, nil
}

func (d *MemoryDirectory) ListReaders(_ context.Context) ([]usecase.ReaderBinding, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]usecase.ReaderBinding, len(d.readers))
	copy(out, d.readers)
	return out, nil
}
