package errs

import "errors"

// Allocation error taxonomy. Everything except ErrBusy is terminal for the
// current attempt; ErrBusy is a lock-wait timeout and safe to retry with backoff.
var (
	// ErrConflict marks interval or status collisions on a room.
	ErrConflict = errors.New("reservation conflict")

	// ErrNotFound marks unknown reservations, rooms, readers or cards.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientAdjacency marks combination requests that cannot be
	// satisfied from the primary room's direct neighbors.
	ErrInsufficientAdjacency = errors.New("insufficient adjacency")

	// ErrBusy marks a bounded lock wait that timed out.
	ErrBusy = errors.New("room set busy")

	// ErrInvalidRange marks malformed time ranges.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInvalidTransition marks a room status change the state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrCustomerNotFound = errors.New("customer not found")
)
