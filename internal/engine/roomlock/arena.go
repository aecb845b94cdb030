// Package roomlock serializes access to per-room state. Cross-room operations
// acquire every lock in canonical ascending room-ID order, which rules out
// deadlock between concurrent multi-room bookings with overlapping room sets.
package roomlock

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

type Arena struct {
	mu    sync.Mutex
	slots map[uuid.UUID]chan struct{}
	wait  time.Duration
}

// NewArena bounds every single-lock wait by maxWait; a timed-out wait surfaces
// as ErrBusy so callers can retry with backoff.
func NewArena(maxWait time.Duration) *Arena {
	return &Arena{
		slots: make(map[uuid.UUID]chan struct{}),
		wait:  maxWait,
	}
}

func (a *Arena) slot(roomID uuid.UUID) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.slots[roomID]
	if !ok {
		s = make(chan struct{}, 1)
		a.slots[roomID] = s
	}
	return s
}

// Acquire takes the room's lock, waiting at most the arena's bound.
func (a *Arena) Acquire(ctx context.Context, roomID uuid.UUID) error {
	s := a.slot(roomID)
	timer := time.NewTimer(a.wait)
	defer timer.Stop()

	select {
	case s <- struct{}{}:
		return nil
	case <-timer.C:
		return errs.Mark(errs.Newf("lock wait on room %s exceeded %s", roomID, a.wait), errs.ErrBusy)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Arena) Release(roomID uuid.UUID) {
	<-a.slot(roomID)
}

// AcquireAll locks every room in ascending ID order. On any failure the locks
// already held are released and nothing stays acquired.
func (a *Arena) AcquireAll(ctx context.Context, roomIDs []uuid.UUID) (release func(), err error) {
	ordered := SortIDs(roomIDs)

	held := make([]uuid.UUID, 0, len(ordered))
	for _, id := range ordered {
		if err := a.Acquire(ctx, id); err != nil {
			for i := len(held) - 1; i >= 0; i-- {
				a.Release(held[i])
			}
			return nil, err
		}
		held = append(held, id)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			a.Release(held[i])
		}
	}, nil
}

// SortIDs returns the IDs in canonical ascending order, deduplicated.
func SortIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
