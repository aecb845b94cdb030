//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/domain/room"
	"lastresort/internal/engine/adjacency"
	"lastresort/internal/engine/allocator"
	"lastresort/internal/engine/roomlock"
	"lastresort/internal/engine/schedule"
	"lastresort/internal/engine/status"
	"lastresort/internal/infra/journal"
	"lastresort/internal/pkg/clock"
	"lastresort/internal/pkg/errs"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomOpsFixture(t *testing.T) (usecase.RoomOperations, *allocator.Allocator, *status.Tracker, *journal.MemoryJournal) {
	t.Helper()
	clk := clock.NewMockClock(checkIn)
	tracker := status.NewTracker()
	factory := reservation.NewFactory(clk, reservation.UnitNights, reservation.FlatRatePolicy{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	alloc := allocator.New(
		schedule.NewIndex(),
		tracker,
		adjacency.NewResolver(),
		roomlock.NewArena(200*time.Millisecond),
		factory,
		clk,
		logger,
	)
	j := journal.NewMemoryJournal()
	return usecase.NewRoomOperations(alloc, tracker, j, clk, logger), alloc, tracker, j
}

func registerRoom(t *testing.T, alloc *allocator.Allocator) *room.Room {
	t.Helper()
	rt, err := room.NewType("standard", 10000, 2)
	require.NoError(t, err)
	rm, err := room.NewRoom("101", room.Location{Building: "main"}, rt, 300, false)
	require.NoError(t, err)
	alloc.RegisterRoom(rm)
	return rm
}

func TestRoomSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid change is applied and journaled", func(t *testing.T) {
		ops, alloc, tracker, j := newRoomOpsFixture(t)
		rm := registerRoom(t, alloc)

		require.NoError(t, ops.SetStatus(ctx, rm.ID(), room.StatusMaintenance))

		st, err := tracker.Status(rm.ID())
		require.NoError(t, err)
		assert.Equal(t, room.StatusMaintenance, st)
		assert.Equal(t, room.StatusMaintenance, j.StatusChanges[rm.ID()])
	})

	t.Run("forbidden transition is not journaled", func(t *testing.T) {
		ops, alloc, tracker, j := newRoomOpsFixture(t)
		rm := registerRoom(t, alloc)
		tracker.Register(rm.ID(), room.StatusOccupied)

		err := ops.SetStatus(ctx, rm.ID(), room.StatusRenovation)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, j.StatusChanges)
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		ops, _, _, _ := newRoomOpsFixture(t)
		assert.ErrorIs(t, ops.SetStatus(ctx, uuid.New(), room.StatusMaintenance), errs.ErrNotFound)
	})
}

func TestRoomAvailability(t *testing.T) {
	ctx := context.Background()
	ops, alloc, _, _ := newRoomOpsFixture(t)
	rm := registerRoom(t, alloc)

	rng, err := reservation.NewTimeRange(checkIn, checkIn.Add(48*time.Hour))
	require.NoError(t, err)

	available, err := ops.Availability(ctx, rm.ID(), rng)
	require.NoError(t, err)
	assert.True(t, available)

	require.NoError(t, ops.SetStatus(ctx, rm.ID(), room.StatusReconstruction))
	available, err = ops.Availability(ctx, rm.ID(), rng)
	require.NoError(t, err)
	assert.False(t, available)
}
