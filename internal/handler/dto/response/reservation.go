package response

import (
	"time"

	"lastresort/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID   `json:"id"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	RoomIDs        []uuid.UUID `json:"room_ids"`
	Start          time.Time   `json:"start"`
	End            time.Time   `json:"end"`
	Units          int         `json:"units"`
	TotalRateCents int64       `json:"total_rate_cents"`
	DepositStatus  string      `json:"deposit_status"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// FromReservation exposes the time-derived status: a confirmed reservation
// past its end reads as completed.
func FromReservation(res *reservation.Reservation, now time.Time) *ReservationResponse {
	return &ReservationResponse{
		ID:             res.ID(),
		CustomerID:     res.CustomerID(),
		RoomIDs:        res.RoomIDs(),
		Start:          res.TimeRange().Start(),
		End:            res.TimeRange().End(),
		Units:          res.Units(),
		TotalRateCents: res.TotalRate().Cents(),
		DepositStatus:  string(res.DepositStatus()),
		Status:         res.EffectiveStatus(now).String(),
		CreatedAt:      res.CreatedAt(),
		UpdatedAt:      res.UpdatedAt(),
	}
}

type EventResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	GuestCount int       `json:"guest_count"`
}

func FromEvent(ev *reservation.Event) *EventResponse {
	return &EventResponse{
		ID:         ev.ID(),
		Name:       ev.Name(),
		GuestCount: ev.GuestCount(),
	}
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"room_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
