//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/domain/room"
	"lastresort/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)

func buildRoom(t *testing.T, number string, rateCents int64) *room.Room {
	t.Helper()
	rt, err := room.NewType("standard", rateCents, 2)
	require.NoError(t, err)
	rm, err := room.NewRoom(number, room.Location{Building: "main"}, rt, 300, false)
	require.NoError(t, err)
	return rm
}

func buildConfirmed(t *testing.T, clk *clock.MockClock) *reservation.Reservation {
	t.Helper()
	factory := reservation.NewFactory(clk, reservation.UnitNights, reservation.FlatRatePolicy{})
	rng := mustRange(t, testStart, testStart.Add(48*time.Hour))
	res, err := factory.NewReservation(uuid.New(), []*room.Room{buildRoom(t, "101", 10000)}, rng, reservation.DepositPending)
	require.NoError(t, err)
	require.NoError(t, res.Confirm(clk.Now()))
	return res
}

func TestReservationLifecycle(t *testing.T) {
	clk := clock.NewMockClock(testStart.Add(-24 * time.Hour))

	t.Run("created pending then confirmed", func(t *testing.T) {
		factory := reservation.NewFactory(clk, reservation.UnitNights, reservation.FlatRatePolicy{})
		rng := mustRange(t, testStart, testStart.Add(48*time.Hour))
		res, err := factory.NewReservation(uuid.New(), []*room.Room{buildRoom(t, "101", 10000)}, rng, reservation.DepositPending)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.Equal(t, 2, res.Units())
		assert.Equal(t, int64(20000), res.TotalRate().Cents())

		require.NoError(t, res.Confirm(clk.Now()))
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.True(t, res.IsActive())
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		require.NoError(t, res.Cancel(clk.Now()))
		assert.Equal(t, reservation.StatusCancelled, res.Status())

		assert.ErrorIs(t, res.Cancel(clk.Now()), reservation.ErrNotCancellable)
		assert.ErrorIs(t, res.Confirm(clk.Now()), reservation.ErrNotConfirmable)
	})

	t.Run("effective status derives completed after end", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		end := res.TimeRange().End()

		assert.Equal(t, reservation.StatusConfirmed, res.EffectiveStatus(end.Add(-time.Second)))
		assert.Equal(t, reservation.StatusCompleted, res.EffectiveStatus(end))
		assert.Equal(t, reservation.StatusCompleted, res.EffectiveStatus(end.Add(time.Hour)))
		// Stored status is untouched.
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
	})

	t.Run("cancelled never reads as completed", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		require.NoError(t, res.Cancel(clk.Now()))
		assert.Equal(t, reservation.StatusCancelled, res.EffectiveStatus(res.TimeRange().End().Add(time.Hour)))
	})

	t.Run("room IDs are sorted and copied", func(t *testing.T) {
		factory := reservation.NewFactory(clk, reservation.UnitNights, reservation.FlatRatePolicy{})
		rng := mustRange(t, testStart, testStart.Add(24*time.Hour))
		rooms := []*room.Room{buildRoom(t, "103", 10000), buildRoom(t, "101", 10000), buildRoom(t, "102", 10000)}
		res, err := factory.NewReservation(uuid.New(), rooms, rng, reservation.DepositNone)
		require.NoError(t, err)

		ids := res.RoomIDs()
		require.Len(t, ids, 3)
		assert.True(t, ids[0].String() < ids[1].String())
		assert.True(t, ids[1].String() < ids[2].String())

		ids[0] = uuid.Nil
		assert.NotEqual(t, uuid.Nil, res.RoomIDs()[0])

		for _, rm := range rooms {
			assert.True(t, res.CoversRoom(rm.ID()))
		}
		assert.False(t, res.CoversRoom(uuid.New()))
	})
}

func TestReschedule(t *testing.T) {
	clk := clock.NewMockClock(testStart)

	t.Run("confirmed reservation moves window and rebills", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		originalID := res.ID()
		newRange := mustRange(t, testStart.Add(7*24*time.Hour), testStart.Add(10*24*time.Hour))
		total, _ := reservation.NewMoney(30000)

		require.NoError(t, res.Reschedule(newRange, 3, total, clk.Now()))
		assert.Equal(t, newRange.Start(), res.TimeRange().Start())
		assert.Equal(t, 3, res.Units())
		assert.Equal(t, int64(30000), res.TotalRate().Cents())
		assert.Equal(t, originalID, res.ID())
	})

	t.Run("cancelled reservation cannot move", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		require.NoError(t, res.Cancel(clk.Now()))

		newRange := mustRange(t, testStart.Add(7*24*time.Hour), testStart.Add(8*24*time.Hour))
		total, _ := reservation.NewMoney(10000)
		assert.Error(t, res.Reschedule(newRange, 1, total, clk.Now()))
	})
}

func TestAttachEvent(t *testing.T) {
	clk := clock.NewMockClock(testStart)

	t.Run("confirmed reservation takes one event", func(t *testing.T) {
		res := buildConfirmed(t, clk)

		ev, err := res.AttachEvent("quarterly offsite", 40, clk.Now())
		require.NoError(t, err)
		assert.Equal(t, "quarterly offsite", ev.Name())
		assert.Equal(t, 40, ev.GuestCount())
		assert.Equal(t, ev.ID(), res.Event().ID())

		_, err = res.AttachEvent("second event", 10, clk.Now())
		assert.ErrorIs(t, err, reservation.ErrEventAttached)
	})

	t.Run("rejects non-positive guest count", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		_, err := res.AttachEvent("empty party", 0, clk.Now())
		assert.ErrorIs(t, err, reservation.ErrInvalidGuests)
	})

	t.Run("cancelled reservation rejects events and drops attached one", func(t *testing.T) {
		res := buildConfirmed(t, clk)
		_, err := res.AttachEvent("offsite", 12, clk.Now())
		require.NoError(t, err)

		require.NoError(t, res.Cancel(clk.Now()))
		assert.Nil(t, res.Event())

		_, err = res.AttachEvent("retry", 12, clk.Now())
		assert.ErrorIs(t, err, reservation.ErrEventNotAllowed)
	})
}

func TestQuote(t *testing.T) {
	clk := clock.NewMockClock(testStart)
	factory := reservation.NewFactory(clk, reservation.UnitNights, reservation.FlatRatePolicy{})

	t.Run("sums per-room rates", func(t *testing.T) {
		rng := mustRange(t, testStart, testStart.Add(48*time.Hour))
		rooms := []*room.Room{buildRoom(t, "101", 10000), buildRoom(t, "102", 15000)}

		units, total, err := factory.Quote(rooms, rng)
		require.NoError(t, err)
		assert.Equal(t, 2, units)
		assert.Equal(t, int64(50000), total.Cents())
	})

	t.Run("empty room set is rejected", func(t *testing.T) {
		rng := mustRange(t, testStart, testStart.Add(24*time.Hour))
		_, _, err := factory.Quote(nil, rng)
		assert.ErrorIs(t, err, reservation.ErrNoRooms)
	})
}
