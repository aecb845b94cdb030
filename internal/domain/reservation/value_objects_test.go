//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end time.Time) reservation.TimeRange {
	t.Helper()
	rng, err := reservation.NewTimeRange(start, end)
	require.NoError(t, err)
	return rng
}

func TestTimeRange(t *testing.T) {
	base := time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)

	t.Run("end must be after start", func(t *testing.T) {
		_, err := reservation.NewTimeRange(base, base)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidRange)

		_, err = reservation.NewTimeRange(base, base.Add(-time.Hour))
		assert.ErrorIs(t, err, errs.ErrInvalidRange)
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		a := mustRange(t, base, base.Add(48*time.Hour))

		cases := []struct {
			name     string
			other    reservation.TimeRange
			overlaps bool
		}{
			{
				name:     "identical ranges overlap",
				other:    mustRange(t, base, base.Add(48*time.Hour)),
				overlaps: true,
			},
			{
				name:     "partial overlap at tail",
				other:    mustRange(t, base.Add(24*time.Hour), base.Add(72*time.Hour)),
				overlaps: true,
			},
			{
				name:     "contained range overlaps",
				other:    mustRange(t, base.Add(time.Hour), base.Add(2*time.Hour)),
				overlaps: true,
			},
			{
				name:     "back-to-back does not overlap",
				other:    mustRange(t, base.Add(48*time.Hour), base.Add(96*time.Hour)),
				overlaps: false,
			},
			{
				name:     "ending at start does not overlap",
				other:    mustRange(t, base.Add(-24*time.Hour), base),
				overlaps: false,
			},
			{
				name:     "fully before does not overlap",
				other:    mustRange(t, base.Add(-48*time.Hour), base.Add(-24*time.Hour)),
				overlaps: false,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, a.Overlaps(tc.other))
				assert.Equal(t, tc.overlaps, tc.other.Overlaps(a))
			})
		}
	})

	t.Run("contains is half-open", func(t *testing.T) {
		rng := mustRange(t, base, base.Add(2*time.Hour))
		assert.True(t, rng.Contains(base))
		assert.True(t, rng.Contains(base.Add(time.Hour)))
		assert.False(t, rng.Contains(base.Add(2*time.Hour)))
		assert.False(t, rng.Contains(base.Add(-time.Second)))
	})
}

func TestUnits(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		unit  reservation.BillingUnit
		want  int
	}{
		{
			name:  "two-day stay with early checkout bills two nights",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 3, 11, 0, 0, 0, time.UTC),
			unit:  reservation.UnitNights,
			want:  2,
		},
		{
			name:  "exactly 24 hours is one night",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 2, 14, 0, 0, 0, time.UTC),
			unit:  reservation.UnitNights,
			want:  1,
		},
		{
			name:  "one extra minute rounds up to two nights",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 2, 14, 1, 0, 0, time.UTC),
			unit:  reservation.UnitNights,
			want:  2,
		},
		{
			name:  "short stay bills one night",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 1, 16, 0, 0, 0, time.UTC),
			unit:  reservation.UnitNights,
			want:  1,
		},
		{
			name:  "90 minutes bills two hours",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 1, 15, 30, 0, 0, time.UTC),
			unit:  reservation.UnitHours,
			want:  2,
		},
		{
			name:  "exact hours bill as-is",
			start: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 1, 17, 0, 0, 0, time.UTC),
			unit:  reservation.UnitHours,
			want:  3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := mustRange(t, tc.start, tc.end)
			assert.Equal(t, tc.want, rng.Units(tc.unit))
		})
	}
}

func TestParseBillingUnit(t *testing.T) {
	unit, err := reservation.ParseBillingUnit("nights")
	require.NoError(t, err)
	assert.Equal(t, reservation.UnitNights, unit)

	unit, err = reservation.ParseBillingUnit("hours")
	require.NoError(t, err)
	assert.Equal(t, reservation.UnitHours, unit)

	_, err = reservation.ParseBillingUnit("weeks")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	m, err := reservation.NewMoney(12500)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), m.Cents())
	assert.InDelta(t, 125.0, m.Dollars(), 0.001)

	_, err = reservation.NewMoney(-1)
	assert.ErrorIs(t, err, reservation.ErrNegativeRate)

	other, _ := reservation.NewMoney(100)
	assert.Equal(t, int64(12600), m.Add(other).Cents())
}
