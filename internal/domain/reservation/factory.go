package reservation

import (
	"bytes"
	"sort"

	"lastresort/internal/domain/room"
	"lastresort/internal/pkg/clock"

	"github.com/google/uuid"
)

// RatePolicy is an injected, pure seasonal/occupancy multiplier. The core
// consumes it and never owns rate computation rules.
type RatePolicy interface {
	Multiplier(rt room.Type, units int, rng TimeRange) float64
}

// FlatRatePolicy applies no seasonal adjustment.
type FlatRatePolicy struct{}

func (FlatRatePolicy) Multiplier(room.Type, int, TimeRange) float64 {
	return 1.0
}

type Factory struct {
	clock      clock.Clock
	unit       BillingUnit
	ratePolicy RatePolicy
}

func NewFactory(clk clock.Clock, unit BillingUnit, ratePolicy RatePolicy) *Factory {
	return &Factory{
		clock:      clk,
		unit:       unit,
		ratePolicy: ratePolicy,
	}
}

func (f *Factory) BillingUnit() BillingUnit {
	return f.unit
}

// NewReservation builds a pending reservation over the given rooms. The total
// rate sums, per room, base rate x billed units x policy multiplier. The
// allocator confirms the reservation only after every interval commit lands.
func (f *Factory) NewReservation(
	customerID uuid.UUID,
	rooms []*room.Room,
	rng TimeRange,
	deposit DepositStatus,
) (*Reservation, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if !deposit.IsValid() {
		deposit = DepositNone
	}

	units, total, err := f.Quote(rooms, rng)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rooms))
	for _, rm := range rooms {
		ids = append(ids, rm.ID())
	}

	now := f.clock.Now()
	return &Reservation{
		id:            uuid.New(),
		customerID:    customerID,
		roomIDs:       sortedIDs(ids),
		timeRange:     rng,
		units:         units,
		totalRate:     total,
		depositStatus: deposit,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Quote prices a window over a room set without creating anything. Modify
// uses it to re-bill the reservation it reschedules.
func (f *Factory) Quote(rooms []*room.Room, rng TimeRange) (int, Money, error) {
	if len(rooms) == 0 {
		return 0, Money{}, ErrNoRooms
	}
	units := rng.Units(f.unit)
	var totalCents int64
	for _, rm := range rooms {
		rt := rm.RoomType()
		mult := f.ratePolicy.Multiplier(rt, units, rng)
		totalCents += int64(float64(rt.BaseRateCents()*int64(units)) * mult)
	}
	total, err := NewMoney(totalCents)
	if err != nil {
		return 0, Money{}, err
	}
	return units, total, nil
}

func sortedIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
