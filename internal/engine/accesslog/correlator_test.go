//go:build unit

package accesslog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/reservation"
	"lastresort/internal/engine/accesslog"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stayStart = time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)

type fakeCards struct {
	records map[uuid.UUID]access.CardRecord
}

func (f *fakeCards) Lookup(_ context.Context, cardID uuid.UUID) (access.CardRecord, error) {
	rec, ok := f.records[cardID]
	if !ok {
		return access.CardRecord{}, errs.Mark(errs.Newf("card %s", cardID), errs.ErrNotFound)
	}
	return rec, nil
}

type fakeReservations struct {
	byID map[uuid.UUID]*reservation.Reservation
}

func (f *fakeReservations) GetReservation(id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("reservation %s", id), errs.ErrNotFound)
	}
	return res, nil
}

type harness struct {
	correlator   *accesslog.Correlator
	cards        *fakeCards
	reservations *fakeReservations
}

func newHarness() *harness {
	cards := &fakeCards{records: make(map[uuid.UUID]access.CardRecord)}
	reservations := &fakeReservations{byID: make(map[uuid.UUID]*reservation.Reservation)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &harness{
		correlator:   accesslog.New(cards, access.ActiveCardPolicy{}, reservations, logger),
		cards:        cards,
		reservations: reservations,
	}
}

func (h *harness) activeCard() uuid.UUID {
	id := uuid.New()
	h.cards.records[id] = access.CardRecord{CardID: id, StaffID: uuid.New(), Active: true}
	return id
}

func (h *harness) addReservation(t *testing.T, roomIDs []uuid.UUID, rng reservation.TimeRange) *reservation.Reservation {
	t.Helper()
	money, err := reservation.NewMoney(10000)
	require.NoError(t, err)
	res, err := reservation.ReconstructReservation(
		uuid.New(), uuid.New(), roomIDs, rng, 2, money,
		reservation.DepositNone, reservation.StatusConfirmed,
		rng.Start().Add(-24*time.Hour), rng.Start().Add(-24*time.Hour),
	)
	require.NoError(t, err)
	h.reservations.byID[res.ID()] = res
	return res
}

func TestRecordSwipe(t *testing.T) {
	ctx := context.Background()

	t.Run("granted swipe for an active card", func(t *testing.T) {
		h := newHarness()
		reader := uuid.New()
		h.correlator.RegisterReader(reader, uuid.New())
		card := h.activeCard()

		ev, err := h.correlator.RecordSwipe(ctx, card, reader, stayStart)
		require.NoError(t, err)
		assert.Equal(t, access.OutcomeGranted, ev.Outcome)
		assert.Equal(t, uint64(1), ev.Sequence)
	})

	t.Run("denied swipes are appended too", func(t *testing.T) {
		h := newHarness()
		reader := uuid.New()
		h.correlator.RegisterReader(reader, uuid.New())

		inactive := uuid.New()
		h.cards.records[inactive] = access.CardRecord{CardID: inactive, Active: false}

		expired := uuid.New()
		h.cards.records[expired] = access.CardRecord{
			CardID: expired, Active: true, ExpiresAt: stayStart.Add(-time.Hour),
		}

		ev, err := h.correlator.RecordSwipe(ctx, inactive, reader, stayStart)
		require.NoError(t, err)
		assert.Equal(t, access.OutcomeDenied, ev.Outcome)
		assert.Equal(t, access.DenialReasonCardInactive, ev.Reason)

		ev, err = h.correlator.RecordSwipe(ctx, expired, reader, stayStart)
		require.NoError(t, err)
		assert.Equal(t, access.DenialReasonCardExpired, ev.Reason)

		ev, err = h.correlator.RecordSwipe(ctx, uuid.New(), reader, stayStart)
		require.NoError(t, err)
		assert.Equal(t, access.DenialReasonCardUnknown, ev.Reason)

		assert.Equal(t, 3, h.correlator.Len())
	})

	t.Run("unknown reader is rejected and not logged", func(t *testing.T) {
		h := newHarness()
		card := h.activeCard()

		_, err := h.correlator.RecordSwipe(ctx, card, uuid.New(), stayStart)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.Equal(t, 0, h.correlator.Len())
	})

	t.Run("sequence is strictly monotonic", func(t *testing.T) {
		h := newHarness()
		reader := uuid.New()
		h.correlator.RegisterReader(reader, uuid.New())
		card := h.activeCard()

		for i := uint64(1); i <= 5; i++ {
			ev, err := h.correlator.RecordSwipe(ctx, card, reader, stayStart.Add(time.Duration(i)*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, i, ev.Sequence)
		}
	})
}

func TestEventsForReservation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*harness, *reservation.Reservation, uuid.UUID, uuid.UUID) {
		h := newHarness()
		roomA := uuid.New()
		roomB := uuid.New()
		readerA := uuid.New()
		readerB := uuid.New()
		h.correlator.RegisterReader(readerA, roomA)
		h.correlator.RegisterReader(readerB, roomB)

		rng, err := reservation.NewTimeRange(stayStart, stayStart.Add(48*time.Hour))
		require.NoError(t, err)
		res := h.addReservation(t, []uuid.UUID{roomA}, rng)
		return h, res, readerA, readerB
	}

	collect := func(t *testing.T, h *harness, resID uuid.UUID) []access.Event {
		t.Helper()
		seq, err := h.correlator.EventsForReservation(resID)
		require.NoError(t, err)
		var out []access.Event
		for ev := range seq {
			out = append(out, ev)
		}
		return out
	}

	t.Run("joins on room and stay window", func(t *testing.T) {
		h, res, readerA, readerB := setup(t)
		card := h.activeCard()

		// Inside the window at the reserved room.
		_, err := h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(time.Hour))
		require.NoError(t, err)
		// Other room, same window.
		_, err = h.correlator.RecordSwipe(ctx, card, readerB, stayStart.Add(time.Hour))
		require.NoError(t, err)
		// Reserved room but before check-in.
		_, err = h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(-time.Hour))
		require.NoError(t, err)
		// Reserved room at checkout boundary; [start, end) excludes it.
		_, err = h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(48*time.Hour))
		require.NoError(t, err)

		events := collect(t, h, res.ID())
		require.Len(t, events, 1)
		assert.Equal(t, readerA, events[0].ReaderID)
	})

	t.Run("denied swipes appear in the audit join", func(t *testing.T) {
		h, res, readerA, _ := setup(t)

		_, err := h.correlator.RecordSwipe(ctx, uuid.New(), readerA, stayStart.Add(time.Hour))
		require.NoError(t, err)

		events := collect(t, h, res.ID())
		require.Len(t, events, 1)
		assert.Equal(t, access.OutcomeDenied, events[0].Outcome)
	})

	t.Run("ordered by timestamp then sequence", func(t *testing.T) {
		h, res, readerA, _ := setup(t)
		card := h.activeCard()

		// Appended out of timestamp order; readers deliver late sometimes.
		_, err := h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(3*time.Hour))
		require.NoError(t, err)
		_, err = h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(time.Hour))
		require.NoError(t, err)
		_, err = h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(time.Hour))
		require.NoError(t, err)

		events := collect(t, h, res.ID())
		require.Len(t, events, 3)
		assert.Equal(t, uint64(2), events[0].Sequence)
		assert.Equal(t, uint64(3), events[1].Sequence)
		assert.Equal(t, uint64(1), events[2].Sequence)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		h, res, readerA, _ := setup(t)
		card := h.activeCard()

		for i := 0; i < 3; i++ {
			_, err := h.correlator.RecordSwipe(ctx, card, readerA, stayStart.Add(time.Duration(i)*time.Hour))
			require.NoError(t, err)
		}

		seq, err := h.correlator.EventsForReservation(res.ID())
		require.NoError(t, err)

		var first int
		for range seq {
			first++
			if first == 1 {
				break
			}
		}
		var second int
		for range seq {
			second++
		}
		assert.Equal(t, 1, first)
		assert.Equal(t, 3, second)
	})

	t.Run("unknown reservation is an error", func(t *testing.T) {
		h := newHarness()
		_, err := h.correlator.EventsForReservation(uuid.New())
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
