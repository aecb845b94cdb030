// Package allocator is the single allocation authority of the facility: the
// sole mutator of reservation lifecycle and of the interval index. Every
// booking path runs resolve -> status filter -> overlap check -> atomic commit
// under ordered per-room locks.
//
// Locking discipline: the arena's room locks serialize check-then-commit
// across booking requests; a.mu guards the maps and every read or write of
// reservation state. Room locks are always taken before a.mu. Accessors hand
// out detached snapshots, never live entities.
package allocator

import (
	"context"
	"log/slog"
	"sync"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/domain/room"
	"lastresort/internal/engine/adjacency"
	"lastresort/internal/engine/roomlock"
	"lastresort/internal/engine/schedule"
	"lastresort/internal/engine/status"
	"lastresort/internal/pkg/clock"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

// RoomRequest names a primary room and, for combination bookings, the total
// number of rooms the event needs (primary included). RoomCount of 0 or 1 is
// a single-room booking.
type RoomRequest struct {
	PrimaryRoomID uuid.UUID
	RoomCount     int
}

type Allocator struct {
	mu           sync.RWMutex
	rooms        map[uuid.UUID]*room.Room
	reservations map[uuid.UUID]*reservation.Reservation

	index    *schedule.Index
	tracker  *status.Tracker
	resolver *adjacency.Resolver
	arena    *roomlock.Arena
	factory  *reservation.Factory
	clock    clock.Clock
	logger   *slog.Logger
}

func New(
	index *schedule.Index,
	tracker *status.Tracker,
	resolver *adjacency.Resolver,
	arena *roomlock.Arena,
	factory *reservation.Factory,
	clk clock.Clock,
	logger *slog.Logger,
) *Allocator {
	return &Allocator{
		rooms:        make(map[uuid.UUID]*room.Room),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		index:        index,
		tracker:      tracker,
		resolver:     resolver,
		arena:        arena,
		factory:      factory,
		clock:        clk,
		logger:       logger,
	}
}

// RegisterRoom seeds inventory and the status tracker.
func (a *Allocator) RegisterRoom(rm *room.Room) {
	a.mu.Lock()
	a.rooms[rm.ID()] = rm
	a.mu.Unlock()
	a.tracker.Register(rm.ID(), rm.Status())
}

func (a *Allocator) Room(roomID uuid.UUID) (*room.Room, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.roomLocked(roomID)
}

// roomLocked requires a.mu to be held.
func (a *Allocator) roomLocked(roomID uuid.UUID) (*room.Room, error) {
	rm, ok := a.rooms[roomID]
	if !ok {
		return nil, errs.Mark(errs.Newf("room %s", roomID), errs.ErrNotFound)
	}
	return rm, nil
}

// GetReservation returns a detached snapshot of the reservation.
func (a *Allocator) GetReservation(id uuid.UUID) (*reservation.Reservation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	res, err := a.reservationLocked(id)
	if err != nil {
		return nil, err
	}
	return res.Snapshot(), nil
}

// reservationLocked returns the live entity. a.mu must be held.
func (a *Allocator) reservationLocked(id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := a.reservations[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("reservation %s", id), errs.ErrNotFound)
	}
	return res, nil
}

// CreateReservation books the requested room set atomically for the range.
// Any failing room aborts the whole attempt; nothing partial is ever visible.
func (a *Allocator) CreateReservation(
	ctx context.Context,
	customerID uuid.UUID,
	req RoomRequest,
	rng reservation.TimeRange,
	deposit reservation.DepositStatus,
) (*reservation.Reservation, error) {
	roomIDs, err := a.expandRequest(req)
	if err != nil {
		return nil, err
	}

	release, err := a.arena.AcquireAll(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	defer release()

	rooms, err := a.checkRoomSet(roomIDs, rng)
	if err != nil {
		return nil, err
	}

	res, err := a.factory.NewReservation(customerID, rooms, rng, deposit)
	if err != nil {
		return nil, err
	}

	if err := a.commitIntervals(res.ID(), roomIDs, rng); err != nil {
		return nil, err
	}

	if err := res.Confirm(a.clock.Now()); err != nil {
		// Cannot happen for a freshly built pending reservation; undo anyway.
		a.undoIntervals(res.ID(), roomIDs)
		return nil, err
	}

	// Snapshot before publishing makes the entity unreachable to readers
	// while it is still being copied.
	snap := res.Snapshot()
	a.mu.Lock()
	a.reservations[res.ID()] = res
	a.mu.Unlock()

	for _, id := range roomIDs {
		a.tracker.SetAdvisoryOccupied(id, true)
	}

	a.logger.Info("reservation confirmed",
		"reservation_id", snap.ID(),
		"customer_id", customerID,
		"rooms", len(roomIDs),
		"start", rng.Start(),
		"end", rng.End(),
		"units", snap.Units(),
	)
	return snap, nil
}

// CancelReservation releases every interval the reservation holds. Cancelling
// an unknown or already-cancelled reservation is an error, not a no-op, so
// callers detect double-cancel bugs.
func (a *Allocator) CancelReservation(ctx context.Context, id uuid.UUID) error {
	res, err := a.GetReservation(id)
	if err != nil {
		return err
	}

	// The room set never changes after creation, so it is safe to read off the
	// snapshot before the locks are taken.
	roomIDs := res.RoomIDs()
	release, err := a.arena.AcquireAll(ctx, roomIDs)
	if err != nil {
		return err
	}
	defer release()

	a.mu.Lock()
	defer a.mu.Unlock()

	live, err := a.reservationLocked(id)
	if err != nil {
		return err
	}
	if !live.IsActive() {
		return errs.Mark(errs.Newf("reservation %s is already %s", id, live.Status()), errs.ErrNotFound)
	}

	for _, roomID := range roomIDs {
		if err := a.index.Remove(roomID, id); err != nil {
			a.logger.Error("interval missing during cancel", "reservation_id", id, "room_id", roomID)
		}
		a.tracker.SetAdvisoryOccupied(roomID, false)
	}

	if err := live.Cancel(a.clock.Now()); err != nil {
		return err
	}

	a.logger.Info("reservation cancelled", "reservation_id", id)
	return nil
}

// ModifyReservation moves a confirmed reservation to a new range over the same
// room set, as cancel-then-create with a compensating restore: if the new range
// cannot be committed the original intervals are reinstated, so the system
// never ends up with neither booking.
func (a *Allocator) ModifyReservation(
	ctx context.Context,
	id uuid.UUID,
	newRange reservation.TimeRange,
) (*reservation.Reservation, error) {
	res, err := a.GetReservation(id)
	if err != nil {
		return nil, err
	}

	roomIDs := res.RoomIDs()
	release, err := a.arena.AcquireAll(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	defer release()

	a.mu.Lock()
	defer a.mu.Unlock()

	live, err := a.reservationLocked(id)
	if err != nil {
		return nil, err
	}
	if !live.IsActive() {
		return nil, errs.Mark(errs.Newf("reservation %s is already %s", id, live.Status()), errs.ErrNotFound)
	}

	oldRange := live.TimeRange()
	for _, roomID := range roomIDs {
		if err := a.index.Remove(roomID, id); err != nil {
			a.logger.Error("interval missing during modify", "reservation_id", id, "room_id", roomID)
		}
	}

	if err := a.commitIntervals(id, roomIDs, newRange); err != nil {
		a.restoreIntervals(id, roomIDs, oldRange)
		return nil, err
	}

	rooms := make([]*room.Room, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		rm, roomErr := a.roomLocked(roomID)
		if roomErr != nil {
			a.undoIntervals(id, roomIDs)
			a.restoreIntervals(id, roomIDs, oldRange)
			return nil, roomErr
		}
		rooms = append(rooms, rm)
	}

	units, total, err := a.factory.Quote(rooms, newRange)
	if err != nil {
		a.undoIntervals(id, roomIDs)
		a.restoreIntervals(id, roomIDs, oldRange)
		return nil, err
	}

	if err := live.Reschedule(newRange, units, total, a.clock.Now()); err != nil {
		a.undoIntervals(id, roomIDs)
		a.restoreIntervals(id, roomIDs, oldRange)
		return nil, err
	}

	a.logger.Info("reservation modified",
		"reservation_id", id, "start", newRange.Start(), "end", newRange.End())
	return live.Snapshot(), nil
}

// Availability probes a single room for the range without committing anything.
func (a *Allocator) Availability(roomID uuid.UUID, rng reservation.TimeRange) (bool, error) {
	if _, err := a.Room(roomID); err != nil {
		return false, err
	}
	if !a.tracker.IsBookable(roomID) {
		return false, nil
	}
	return !a.index.Overlaps(roomID, rng), nil
}

// AttachEvent links a meeting-space event to a confirmed reservation.
func (a *Allocator) AttachEvent(id uuid.UUID, name string, guestCount int) (*reservation.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.reservationLocked(id)
	if err != nil {
		return nil, err
	}
	ev, err := res.AttachEvent(name, guestCount, a.clock.Now())
	if err != nil {
		return nil, err
	}
	a.logger.Info("event attached", "reservation_id", id, "event_id", ev.ID(), "guests", guestCount)
	return ev, nil
}

// SweepCompleted reports confirmed reservations whose end time has passed and
// marks them completed. The completed state is time-derived; this only makes
// it visible to readers and to the journal.
func (a *Allocator) SweepCompleted() []*reservation.Reservation {
	now := a.clock.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	var completed []*reservation.Reservation
	for _, res := range a.reservations {
		if res.Status() == reservation.StatusConfirmed && res.EffectiveStatus(now) == reservation.StatusCompleted {
			if err := res.Complete(now); err != nil {
				continue
			}
			completed = append(completed, res.Snapshot())
		}
	}
	return completed
}

func (a *Allocator) expandRequest(req RoomRequest) ([]uuid.UUID, error) {
	if req.RoomCount > 1 {
		return a.resolver.Resolve(req.PrimaryRoomID, req.RoomCount, a.tracker.IsBookable)
	}
	if _, err := a.Room(req.PrimaryRoomID); err != nil {
		return nil, err
	}
	return []uuid.UUID{req.PrimaryRoomID}, nil
}

// checkRoomSet validates every room before anything is committed. Room locks
// must already be held.
func (a *Allocator) checkRoomSet(roomIDs []uuid.UUID, rng reservation.TimeRange) ([]*room.Room, error) {
	rooms := make([]*room.Room, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		rm, err := a.Room(roomID)
		if err != nil {
			return nil, err
		}
		if !a.tracker.IsBookable(roomID) {
			st, _ := a.tracker.Status(roomID)
			return nil, errs.Mark(
				errs.Newf("room %s is not bookable (status %s)", rm.Number(), st),
				errs.ErrConflict,
			)
		}
		if a.index.Overlaps(roomID, rng) {
			return nil, errs.Mark(
				errs.Newf("room %s has a conflicting reservation", rm.Number()),
				errs.ErrConflict,
			)
		}
		rooms = append(rooms, rm)
	}
	return rooms, nil
}

// commitIntervals inserts the range into every room, undoing all prior
// insertions if any single one fails.
func (a *Allocator) commitIntervals(resID uuid.UUID, roomIDs []uuid.UUID, rng reservation.TimeRange) error {
	inserted := make([]uuid.UUID, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		if err := a.index.Insert(roomID, rng, resID); err != nil {
			for _, undoneID := range inserted {
				if removeErr := a.index.Remove(undoneID, resID); removeErr != nil {
					a.logger.Error("failed to undo interval insert",
						"reservation_id", resID, "room_id", undoneID, "error", removeErr)
				}
			}
			return err
		}
		inserted = append(inserted, roomID)
	}
	return nil
}

// restoreIntervals reinstates the pre-call range after an aborted modify. The
// old intervals were free a moment ago and the room locks are still held, so
// this cannot fail in practice.
func (a *Allocator) restoreIntervals(resID uuid.UUID, roomIDs []uuid.UUID, rng reservation.TimeRange) {
	if err := a.commitIntervals(resID, roomIDs, rng); err != nil {
		a.logger.Error("failed to restore reservation after modify abort",
			"reservation_id", resID, "error", err)
	}
}

func (a *Allocator) undoIntervals(resID uuid.UUID, roomIDs []uuid.UUID) {
	for _, roomID := range roomIDs {
		if err := a.index.Remove(roomID, resID); err != nil {
			a.logger.Error("failed to undo interval insert",
				"reservation_id", resID, "room_id", roomID, "error", err)
		}
	}
}
