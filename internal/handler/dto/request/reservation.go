package request

import (
	"time"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/usecase"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	// RoomCount above 1 books a combination anchored on room_id via adjacency.
	RoomCount int       `json:"room_count" binding:"omitempty,min=1,max=16"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Deposit   string    `json:"deposit_status" binding:"omitempty,oneof=none pending paid refunded"`
}

func (r CreateReservationRequest) ToParams() (usecase.CreateReservationParams, error) {
	rng, err := reservation.NewTimeRange(r.Start, r.End)
	if err != nil {
		return usecase.CreateReservationParams{}, err
	}
	deposit := reservation.DepositStatus(r.Deposit)
	if r.Deposit == "" {
		deposit = reservation.DepositNone
	}
	return usecase.CreateReservationParams{
		CustomerID:    r.CustomerID,
		PrimaryRoomID: r.RoomID,
		RoomCount:     r.RoomCount,
		Range:         rng,
		Deposit:       deposit,
	}, nil
}

type ModifyReservationRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

func (r ModifyReservationRequest) ToRange() (reservation.TimeRange, error) {
	return reservation.NewTimeRange(r.Start, r.End)
}

type AttachEventRequest struct {
	Name       string `json:"name" binding:"required"`
	GuestCount int    `json:"guest_count" binding:"required,min=1"`
}
