// Package status tracks the operational state of rooms independently of
// reservations. Blocking states (maintenance, renovation, reconstruction) are
// authoritative; occupied is advisory and never consulted for bookability.
package status

import (
	"sync"

	"lastresort/internal/domain/room"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

type Tracker struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]room.Status
}

func NewTracker() *Tracker {
	return &Tracker{
		statuses: make(map[uuid.UUID]room.Status),
	}
}

// Register seeds a room with its current status. Invalid statuses fall back
// to available.
func (t *Tracker) Register(roomID uuid.UUID, st room.Status) {
	if !st.IsValid() {
		st = room.StatusAvailable
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[roomID] = st
}

// SetStatus is the single external mutation entrypoint, driven by staff
// operations. Transitions are validated; setting the current status is a no-op.
func (t *Tracker) SetStatus(roomID uuid.UUID, next room.Status) error {
	if !next.IsValid() {
		return errs.Mark(errs.Newf("unknown status %q", next), errs.ErrInvalidTransition)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.statuses[roomID]
	if !ok {
		return errs.Mark(errs.Newf("room %s is not registered", roomID), errs.ErrNotFound)
	}
	if current == next {
		return nil
	}
	if !current.CanTransitionTo(next) {
		return errs.Mark(
			errs.Newf("room %s cannot go %s -> %s", roomID, current, next),
			errs.ErrInvalidTransition,
		)
	}
	t.statuses[roomID] = next
	return nil
}

func (t *Tracker) Status(roomID uuid.UUID) (room.Status, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.statuses[roomID]
	if !ok {
		return "", errs.Mark(errs.Newf("room %s is not registered", roomID), errs.ErrNotFound)
	}
	return st, nil
}

// IsBookable returns false for unregistered rooms and for any blocking status.
func (t *Tracker) IsBookable(roomID uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.statuses[roomID]
	if !ok {
		return false
	}
	return !st.Blocks()
}

// SetAdvisoryOccupied flips available <-> occupied for UI purposes. Blocking
// states are left alone.
func (t *Tracker) SetAdvisoryOccupied(roomID uuid.UUID, occupied bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.statuses[roomID]
	if !ok || current.Blocks() {
		return
	}
	if occupied {
		t.statuses[roomID] = room.StatusOccupied
	} else {
		t.statuses[roomID] = room.StatusAvailable
	}
}
