//go:build unit

package room_test

import (
	"testing"

	"lastresort/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	rt, err := room.NewType("double", 12000, 2)
	require.NoError(t, err)

	t.Run("new room starts available", func(t *testing.T) {
		wing := "west"
		floor := 2
		rm, err := room.NewRoom("205", room.Location{Building: "main", Wing: &wing, Floor: &floor}, rt, 340, true)
		require.NoError(t, err)
		assert.Equal(t, "205", rm.Number())
		assert.Equal(t, room.StatusAvailable, rm.Status())
		assert.True(t, rm.HasPaidBar())
		assert.Equal(t, "west", *rm.Location().Wing)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := room.NewRoom("", room.Location{Building: "main"}, rt, 340, false)
		assert.ErrorIs(t, err, room.ErrEmptyNumber)

		_, err = room.NewRoom("205", room.Location{Building: "main"}, rt, 0, false)
		assert.ErrorIs(t, err, room.ErrInvalidFootage)

		_, err = room.NewType("double", -1, 2)
		assert.ErrorIs(t, err, room.ErrInvalidRate)

		_, err = room.NewType("double", 12000, 0)
		assert.ErrorIs(t, err, room.ErrInvalidOccupancy)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    room.Status
		to      room.Status
		allowed bool
	}{
		{"available to maintenance", room.StatusAvailable, room.StatusMaintenance, true},
		{"available to occupied", room.StatusAvailable, room.StatusOccupied, true},
		{"occupied to available", room.StatusOccupied, room.StatusAvailable, true},
		{"occupied to maintenance", room.StatusOccupied, room.StatusMaintenance, false},
		{"maintenance to renovation", room.StatusMaintenance, room.StatusRenovation, true},
		{"renovation to reconstruction", room.StatusRenovation, room.StatusReconstruction, true},
		{"reconstruction to available", room.StatusReconstruction, room.StatusAvailable, true},
		{"reconstruction to maintenance", room.StatusReconstruction, room.StatusMaintenance, false},
		{"maintenance to occupied", room.StatusMaintenance, room.StatusOccupied, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusBlocks(t *testing.T) {
	assert.False(t, room.StatusAvailable.Blocks())
	assert.False(t, room.StatusOccupied.Blocks())
	assert.True(t, room.StatusMaintenance.Blocks())
	assert.True(t, room.StatusRenovation.Blocks())
	assert.True(t, room.StatusReconstruction.Blocks())
}
