package usecase

import (
	"context"
	"log/slog"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/engine/allocator"
	"lastresort/internal/infra"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateReservationParams struct {
	CustomerID    uuid.UUID
	PrimaryRoomID uuid.UUID
	RoomCount     int
	Range         reservation.TimeRange
	Deposit       reservation.DepositStatus
}

type BookingCommands interface {
	CreateReservation(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
	ModifyReservation(ctx context.Context, id uuid.UUID, newRange reservation.TimeRange) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	AttachEvent(ctx context.Context, id uuid.UUID, name string, guestCount int) (*reservation.Event, error)
	SweepCompleted(ctx context.Context) int
}

type bookingUseCaseImpl struct {
	alloc     *allocator.Allocator
	customers CustomerDirectory
	journal   Journal
	logger    *slog.Logger
}

func NewBookingUseCase(
	alloc *allocator.Allocator,
	customers CustomerDirectory,
	journal Journal,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		alloc:     alloc,
		customers: customers,
		journal:   journal,
		logger:    logger,
	}
}

func (u *bookingUseCaseImpl) CreateReservation(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error) {
	exists, err := u.customers.Exists(ctx, params.CustomerID)
	if err != nil {
		return nil, errs.Wrap(err, "customer lookup failed")
	}
	if !exists {
		return nil, errs.Mark(errs.Newf("customer %s", params.CustomerID), errs.ErrCustomerNotFound)
	}

	res, err := u.alloc.CreateReservation(ctx, params.CustomerID, allocator.RoomRequest{
		PrimaryRoomID: params.PrimaryRoomID,
		RoomCount:     params.RoomCount,
	}, params.Range, params.Deposit)
	if err != nil {
		return nil, err
	}

	// The in-process engine is the allocation authority; a journal hiccup is
	// an operational problem, not a booking failure.
	if jErr := u.journal.ReservationConfirmed(ctx, u.record(res)); jErr != nil {
		if infra.IsKind(jErr, infra.KindDuplicateKey) {
			u.logger.Warn("reservation already journaled", "reservation_id", res.ID())
		} else {
			u.logger.Error("failed to journal reservation", "reservation_id", res.ID(), "error", jErr)
		}
	}
	return res, nil
}

func (u *bookingUseCaseImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	if err := u.alloc.CancelReservation(ctx, id); err != nil {
		return err
	}
	res, err := u.alloc.GetReservation(id)
	if err != nil {
		return err
	}
	if jErr := u.journal.ReservationCancelled(ctx, id, res.UpdatedAt()); jErr != nil {
		u.logger.Error("failed to journal cancellation", "reservation_id", id, "error", jErr)
	}
	return nil
}

func (u *bookingUseCaseImpl) ModifyReservation(ctx context.Context, id uuid.UUID, newRange reservation.TimeRange) (*reservation.Reservation, error) {
	res, err := u.alloc.ModifyReservation(ctx, id, newRange)
	if err != nil {
		return nil, err
	}
	if jErr := u.journal.ReservationRescheduled(ctx, u.record(res)); jErr != nil {
		u.logger.Error("failed to journal reschedule", "reservation_id", id, "error", jErr)
	}
	return res, nil
}

func (u *bookingUseCaseImpl) GetReservation(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return u.alloc.GetReservation(id)
}

func (u *bookingUseCaseImpl) AttachEvent(_ context.Context, id uuid.UUID, name string, guestCount int) (*reservation.Event, error) {
	return u.alloc.AttachEvent(id, name, guestCount)
}

// SweepCompleted surfaces the passive time-derived completed state to the
// journal. Returns the number of reservations it reported.
func (u *bookingUseCaseImpl) SweepCompleted(ctx context.Context) int {
	completed := u.alloc.SweepCompleted()
	for _, res := range completed {
		if jErr := u.journal.ReservationCompleted(ctx, res.ID(), res.UpdatedAt()); jErr != nil {
			u.logger.Error("failed to journal completion", "reservation_id", res.ID(), "error", jErr)
		}
	}
	return len(completed)
}

func (u *bookingUseCaseImpl) record(res *reservation.Reservation) ReservationRecord {
	rec := ReservationRecord{
		ID:             res.ID(),
		CustomerID:     res.CustomerID(),
		RoomIDs:        res.RoomIDs(),
		Start:          res.TimeRange().Start(),
		End:            res.TimeRange().End(),
		Units:          res.Units(),
		TotalRateCents: res.TotalRate().Cents(),
		DepositStatus:  string(res.DepositStatus()),
		Status:         res.Status().String(),
	}
	for _, roomID := range rec.RoomIDs {
		rm, err := u.alloc.Room(roomID)
		if err != nil {
			continue
		}
		rec.RoomNumbers = append(rec.RoomNumbers, rm.Number())
		rec.Buildings = append(rec.Buildings, rm.Location().Building)
	}
	return rec
}
