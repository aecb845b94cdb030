package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeRate     = errors.New("rate cannot be negative")
	ErrNoRooms          = errors.New("reservation needs at least one room")
	ErrNotCancellable   = errors.New("reservation is not cancellable")
	ErrNotConfirmable   = errors.New("reservation is not confirmable")
	ErrEventNotAllowed  = errors.New("event requires a confirmed reservation")
	ErrEventAttached    = errors.New("reservation already has an event")
	ErrInvalidGuests    = errors.New("guest count estimate must be positive")
	ErrInvalidResStatus = errors.New("invalid reservation status")
)

// Event is a meeting-space booking detail attached to a confirmed reservation.
// It lives and dies with its reservation.
type Event struct {
	id         uuid.UUID
	name       string
	guestCount int
	createdAt  time.Time
}

func (e *Event) ID() uuid.UUID   { return e.id }
func (e *Event) Name() string    { return e.name }
func (e *Event) GuestCount() int { return e.guestCount }

// Reservation is owned exclusively by the allocator once created. Its room set
// is kept sorted ascending so lock acquisition order is canonical.
type Reservation struct {
	id            uuid.UUID
	customerID    uuid.UUID
	roomIDs       []uuid.UUID
	timeRange     TimeRange
	units         int
	totalRate     Money
	depositStatus DepositStatus
	status        Status
	event         *Event
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructReservation(
	id, customerID uuid.UUID,
	roomIDs []uuid.UUID,
	timeRange TimeRange,
	units int,
	totalRate Money,
	depositStatus DepositStatus,
	status Status,
	createdAt, updatedAt time.Time,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidResStatus
	}
	if len(roomIDs) == 0 {
		return nil, ErrNoRooms
	}
	return &Reservation{
		id:            id,
		customerID:    customerID,
		roomIDs:       sortedIDs(roomIDs),
		timeRange:     timeRange,
		units:         units,
		totalRate:     totalRate,
		depositStatus: depositStatus,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// Snapshot returns a detached copy. The allocator hands snapshots to readers
// so no caller ever holds an entity another request is mutating.
func (r *Reservation) Snapshot() *Reservation {
	c := *r
	c.roomIDs = r.RoomIDs()
	if r.event != nil {
		ev := *r.event
		c.event = &ev
	}
	return &c
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) CustomerID() uuid.UUID        { return r.customerID }
func (r *Reservation) TimeRange() TimeRange         { return r.timeRange }
func (r *Reservation) Units() int                   { return r.units }
func (r *Reservation) TotalRate() Money             { return r.totalRate }
func (r *Reservation) DepositStatus() DepositStatus { return r.depositStatus }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) Event() *Event                { return r.event }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }

// RoomIDs returns the room set in canonical ascending order.
func (r *Reservation) RoomIDs() []uuid.UUID {
	out := make([]uuid.UUID, len(r.roomIDs))
	copy(out, r.roomIDs)
	return out
}

func (r *Reservation) CoversRoom(roomID uuid.UUID) bool {
	for _, id := range r.roomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

// EffectiveStatus derives completed for confirmed reservations whose end time
// has passed. The stored status is untouched; completed is time-derived.
func (r *Reservation) EffectiveStatus(now time.Time) Status {
	if r.status == StatusConfirmed && !now.Before(r.timeRange.End()) {
		return StatusCompleted
	}
	return r.status
}

func (r *Reservation) Confirm(now time.Time) error {
	if !r.status.CanTransitionTo(StatusConfirmed) {
		return ErrNotConfirmable
	}
	r.status = StatusConfirmed
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	if !r.status.CanTransitionTo(StatusCancelled) {
		return ErrNotCancellable
	}
	r.status = StatusCancelled
	r.event = nil
	r.updatedAt = now
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidResStatus
	}
	r.status = StatusCompleted
	r.updatedAt = now
	return nil
}

// Reschedule replaces the billed window in place. The allocator uses it for
// modify-as-cancel-then-create so the reservation keeps its identity.
func (r *Reservation) Reschedule(rng TimeRange, units int, totalRate Money, now time.Time) error {
	if r.status != StatusConfirmed {
		return ErrNotCancellable
	}
	r.timeRange = rng
	r.units = units
	r.totalRate = totalRate
	r.updatedAt = now
	return nil
}

func (r *Reservation) AttachEvent(name string, guestCount int, now time.Time) (*Event, error) {
	if r.status != StatusConfirmed {
		return nil, ErrEventNotAllowed
	}
	if r.event != nil {
		return nil, ErrEventAttached
	}
	if guestCount <= 0 {
		return nil, ErrInvalidGuests
	}
	r.event = &Event{
		id:         uuid.New(),
		name:       name,
		guestCount: guestCount,
		createdAt:  now,
	}
	r.updatedAt = now
	return r.event, nil
}
