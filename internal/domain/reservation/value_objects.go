package reservation

import (
	"time"

	"lastresort/internal/pkg/errs"
)

// TimeRange is a half-open interval [start, end). Touching endpoints do not
// overlap, which is what allows same-day turnover between two stays.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, errs.Mark(
			errs.Newf("end %s must be after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
			errs.ErrInvalidRange,
		)
	}
	return TimeRange{start: start, end: end}, nil
}

func (tr TimeRange) Start() time.Time { return tr.start }
func (tr TimeRange) End() time.Time   { return tr.end }

func (tr TimeRange) Duration() time.Duration {
	return tr.end.Sub(tr.start)
}

// Overlaps uses half-open semantics: [a,b) and [b,c) do not intersect.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.start.Before(other.end) && other.start.Before(tr.end)
}

func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.start) && t.Before(tr.end)
}

// BillingUnit is the whole unit the facility bills by.
type BillingUnit string

const (
	UnitNights BillingUnit = "nights"
	UnitHours  BillingUnit = "hours"
)

func ParseBillingUnit(s string) (BillingUnit, error) {
	switch BillingUnit(s) {
	case UnitNights, UnitHours:
		return BillingUnit(s), nil
	default:
		return "", errs.Newf("unknown billing unit %q", s)
	}
}

func (u BillingUnit) span() time.Duration {
	if u == UnitHours {
		return time.Hour
	}
	return 24 * time.Hour
}

// Units bills partial units as whole ones: a 14:00 check-in to an 11:00
// check-out two days later is 2 nights.
func (tr TimeRange) Units(unit BillingUnit) int {
	span := unit.span()
	d := tr.Duration()
	units := int(d / span)
	if d%span != 0 {
		units++
	}
	return units
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeRate
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}
