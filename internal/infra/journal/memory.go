package journal

import (
	"context"
	"sync"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/room"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
)

// MemoryJournal collects emitted records in memory. Tests and journal-less
// deployments use it.
type MemoryJournal struct {
	mu            sync.Mutex
	Confirmed     []usecase.ReservationRecord
	Rescheduled   []usecase.ReservationRecord
	Cancelled     []uuid.UUID
	Completed     []uuid.UUID
	StatusChanges map[uuid.UUID]room.Status
	Swipes        []access.Event
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		StatusChanges: make(map[uuid.UUID]room.Status),
	}
}

var _ usecase.Journal = (*MemoryJournal)(nil)

func (j *MemoryJournal) ReservationConfirmed(_ context.Context, rec usecase.ReservationRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Confirmed = append(j.Confirmed, rec)
	return nil
}

func (j *MemoryJournal) ReservationRescheduled(_ context.Context, rec usecase.ReservationRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Rescheduled = append(j.Rescheduled, rec)
	return nil
}

func (j *MemoryJournal) ReservationCancelled(_ context.Context, reservationID uuid.UUID, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Cancelled = append(j.Cancelled, reservationID)
	return nil
}

func (j *MemoryJournal) ReservationCompleted(_ context.Context, reservationID uuid.UUID, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Completed = append(j.Completed, reservationID)
	return nil
}

func (j *MemoryJournal) RoomStatusChanged(_ context.Context, roomID uuid.UUID, st room.Status, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.StatusChanges[roomID] = st
	return nil
}

func (j *MemoryJournal) SwipeRecorded(_ context.Context, ev access.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Swipes = append(j.Swipes, ev)
	return nil
}
