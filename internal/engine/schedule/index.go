// Package schedule keeps the committed occupancy of every room as a set of
// non-overlapping half-open time ranges. It is the ground truth for
// bookability; room statuses only add authoritative blocks on top.
package schedule

import (
	"sort"
	"sync"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

type entry struct {
	rng           reservation.TimeRange
	reservationID uuid.UUID
}

type Index struct {
	mu     sync.RWMutex
	byRoom map[uuid.UUID][]entry
}

func NewIndex() *Index {
	return &Index{
		byRoom: make(map[uuid.UUID][]entry),
	}
}

// Overlaps reports whether any committed range on the room intersects rng.
// Back-to-back ranges (end of A == start of B) do not intersect.
func (ix *Index) Overlaps(roomID uuid.UUID, rng reservation.TimeRange) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.overlapsLocked(roomID, rng)
}

// Insert commits rng for the reservation, keeping entries ordered by start.
// Returns ErrConflict if any committed range intersects rng.
func (ix *Index) Insert(roomID uuid.UUID, rng reservation.TimeRange, reservationID uuid.UUID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.overlapsLocked(roomID, rng) {
		return errs.Mark(errs.Newf("room %s has a conflicting interval", roomID), errs.ErrConflict)
	}

	entries := ix.byRoom[roomID]
	pos := sort.Search(len(entries), func(i int) bool {
		return entries[i].rng.Start().After(rng.Start())
	})
	entries = append(entries, entry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = entry{rng: rng, reservationID: reservationID}
	ix.byRoom[roomID] = entries
	return nil
}

// Remove drops the interval tagged with the reservation from the room.
// Returns ErrNotFound if no such interval exists.
func (ix *Index) Remove(roomID, reservationID uuid.UUID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	entries := ix.byRoom[roomID]
	for i, e := range entries {
		if e.reservationID == reservationID {
			ix.byRoom[roomID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return errs.Mark(
		errs.Newf("no interval for reservation %s on room %s", reservationID, roomID),
		errs.ErrNotFound,
	)
}

// Count returns the number of committed intervals on the room.
func (ix *Index) Count(roomID uuid.UUID) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byRoom[roomID])
}

// Entries are sorted by start and pairwise non-overlapping, so only the
// neighbors around the insertion point can intersect rng.
func (ix *Index) overlapsLocked(roomID uuid.UUID, rng reservation.TimeRange) bool {
	entries := ix.byRoom[roomID]
	pos := sort.Search(len(entries), func(i int) bool {
		return entries[i].rng.Start().After(rng.Start())
	})
	if pos > 0 && entries[pos-1].rng.Overlaps(rng) {
		return true
	}
	if pos < len(entries) && entries[pos].rng.Overlaps(rng) {
		return true
	}
	return false
}
