package usecase

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"lastresort/internal/domain/access"
	"lastresort/internal/engine/accesslog"
	"lastresort/internal/infra"

	"github.com/google/uuid"
)

type AccessCommands interface {
	RecordSwipe(ctx context.Context, cardID, readerID uuid.UUID, ts time.Time) (access.Event, error)
	EventsForReservation(ctx context.Context, reservationID uuid.UUID) (iter.Seq[access.Event], error)
}

type accessUseCaseImpl struct {
	correlator *accesslog.Correlator
	journal    Journal
	logger     *slog.Logger
}

func NewAccessUseCase(correlator *accesslog.Correlator, journal Journal, logger *slog.Logger) AccessCommands {
	return &accessUseCaseImpl{
		correlator: correlator,
		journal:    journal,
		logger:     logger,
	}
}

func (u *accessUseCaseImpl) RecordSwipe(ctx context.Context, cardID, readerID uuid.UUID, ts time.Time) (access.Event, error) {
	ev, err := u.correlator.RecordSwipe(ctx, cardID, readerID, ts)
	if err != nil {
		return access.Event{}, err
	}
	if jErr := u.journal.SwipeRecorded(ctx, ev); jErr != nil {
		if infra.IsKind(jErr, infra.KindDuplicateKey) {
			u.logger.Warn("swipe already journaled", "sequence", ev.Sequence)
		} else {
			u.logger.Error("failed to journal swipe", "sequence", ev.Sequence, "error", jErr)
		}
	}
	return ev, nil
}

func (u *accessUseCaseImpl) EventsForReservation(_ context.Context, reservationID uuid.UUID) (iter.Seq[access.Event], error) {
	return u.correlator.EventsForReservation(reservationID)
}
