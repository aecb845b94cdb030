// Package accesslog ingests badge swipes and correlates them with
// reservations for audit review. The log is append-only: denied attempts are
// recorded like granted ones, and nothing is ever mutated after the fact.
package accesslog

import (
	"context"
	"iter"
	"log/slog"
	"sort"
	"sync"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/reservation"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

// CardDirectory is the external staff directory's read-only card view.
type CardDirectory interface {
	Lookup(ctx context.Context, cardID uuid.UUID) (access.CardRecord, error)
}

// ReservationSource is the correlator's read-only window into allocator
// state. Implementations hand back detached snapshots.
type ReservationSource interface {
	GetReservation(id uuid.UUID) (*reservation.Reservation, error)
}

type Correlator struct {
	mu     sync.RWMutex
	seq    uint64
	events []access.Event
	// readerRooms maps door readers to the rooms they guard.
	readerRooms map[uuid.UUID]uuid.UUID

	cards        CardDirectory
	policy       access.GrantPolicy
	reservations ReservationSource
	logger       *slog.Logger
}

func New(cards CardDirectory, policy access.GrantPolicy, reservations ReservationSource, logger *slog.Logger) *Correlator {
	return &Correlator{
		readerRooms:  make(map[uuid.UUID]uuid.UUID),
		cards:        cards,
		policy:       policy,
		reservations: reservations,
		logger:       logger,
	}
}

// RegisterReader binds a door reader to the room it guards.
func (c *Correlator) RegisterReader(readerID, roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readerRooms[readerID] = roomID
}

// RecordSwipe always appends an event, whatever the verdict. The append path
// takes only the log lock and never a room lock, so swipe ingestion proceeds
// concurrently with booking operations.
func (c *Correlator) RecordSwipe(ctx context.Context, cardID, readerID uuid.UUID, ts time.Time) (access.Event, error) {
	verdict := c.decide(ctx, cardID, ts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, known := c.readerRooms[readerID]; !known {
		return access.Event{}, errs.Mark(errs.Newf("reader %s", readerID), errs.ErrNotFound)
	}

	c.seq++
	ev := access.Event{
		Sequence:  c.seq,
		CardID:    cardID,
		ReaderID:  readerID,
		Timestamp: ts,
		Outcome:   access.OutcomeGranted,
	}
	if !verdict.Granted {
		ev.Outcome = access.OutcomeDenied
		ev.Reason = verdict.Reason
	}
	c.events = append(c.events, ev)

	c.logger.Info("swipe recorded",
		"sequence", ev.Sequence,
		"card_id", cardID,
		"reader_id", readerID,
		"outcome", ev.Outcome,
	)
	return ev, nil
}

func (c *Correlator) decide(ctx context.Context, cardID uuid.UUID, ts time.Time) access.Verdict {
	card, err := c.cards.Lookup(ctx, cardID)
	if err != nil {
		return access.Verdict{Granted: false, Reason: access.DenialReasonCardUnknown}
	}
	return c.policy.Decide(card, ts)
}

// EventsForReservation joins swipes to the rooms reserved by the reservation
// within its time range, ordered by (timestamp, sequence) ascending. The
// returned sequence is lazy, finite and restartable; it is for audit review,
// never for access decisions.
func (c *Correlator) EventsForReservation(resID uuid.UUID) (iter.Seq[access.Event], error) {
	res, err := c.reservations.GetReservation(resID)
	if err != nil {
		return nil, err
	}
	rng := res.TimeRange()

	return func(yield func(access.Event) bool) {
		for _, ev := range c.matching(res, rng) {
			if !yield(ev) {
				return
			}
		}
	}, nil
}

func (c *Correlator) matching(res *reservation.Reservation, rng reservation.TimeRange) []access.Event {
	c.mu.RLock()
	// The log is append-only, so the captured slice header is a stable
	// snapshot once taken.
	events := c.events
	readerRooms := make(map[uuid.UUID]uuid.UUID, len(c.readerRooms))
	for k, v := range c.readerRooms {
		readerRooms[k] = v
	}
	c.mu.RUnlock()

	var matched []access.Event
	for _, ev := range events {
		roomID, ok := readerRooms[ev.ReaderID]
		if !ok || !res.CoversRoom(roomID) {
			continue
		}
		if !rng.Contains(ev.Timestamp) {
			continue
		}
		matched = append(matched, ev)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Sequence < matched[j].Sequence
		}
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	return matched
}

// Len reports the total number of appended events.
func (c *Correlator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
