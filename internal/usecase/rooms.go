package usecase

import (
	"context"
	"log/slog"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/domain/room"
	"lastresort/internal/engine/allocator"
	"lastresort/internal/engine/status"
	"lastresort/internal/pkg/clock"

	"github.com/google/uuid"
)

// RoomOperations is the staff-operations surface. SetStatus is the only
// mutation; booking callers never reach it.
type RoomOperations interface {
	SetStatus(ctx context.Context, roomID uuid.UUID, st room.Status) error
	Availability(ctx context.Context, roomID uuid.UUID, rng reservation.TimeRange) (bool, error)
}

type roomOpsImpl struct {
	alloc   *allocator.Allocator
	tracker *status.Tracker
	journal Journal
	clock   clock.Clock
	logger  *slog.Logger
}

func NewRoomOperations(
	alloc *allocator.Allocator,
	tracker *status.Tracker,
	journal Journal,
	clk clock.Clock,
	logger *slog.Logger,
) RoomOperations {
	return &roomOpsImpl{
		alloc:   alloc,
		tracker: tracker,
		journal: journal,
		clock:   clk,
		logger:  logger,
	}
}

func (u *roomOpsImpl) SetStatus(ctx context.Context, roomID uuid.UUID, st room.Status) error {
	if err := u.tracker.SetStatus(roomID, st); err != nil {
		return err
	}
	if jErr := u.journal.RoomStatusChanged(ctx, roomID, st, u.clock.Now()); jErr != nil {
		u.logger.Error("failed to journal status change", "room_id", roomID, "error", jErr)
	}
	u.logger.Info("room status changed", "room_id", roomID, "status", st)
	return nil
}

func (u *roomOpsImpl) Availability(_ context.Context, roomID uuid.UUID, rng reservation.TimeRange) (bool, error) {
	return u.alloc.Availability(roomID, rng)
}
