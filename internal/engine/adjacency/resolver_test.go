//go:build unit

package adjacency_test

import (
	"testing"

	"lastresort/internal/engine/adjacency"
	"lastresort/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allBookable(uuid.UUID) bool { return true }

func TestAddEdge(t *testing.T) {
	r := adjacency.NewResolver()
	a := uuid.New()

	assert.ErrorIs(t, r.AddEdge(a, a), adjacency.ErrSelfLoop)

	b := uuid.New()
	require.NoError(t, r.AddEdge(a, b))
	assert.Equal(t, []uuid.UUID{b}, r.Neighbors(a))
	// Reverse direction is visible too.
	assert.Equal(t, []uuid.UUID{a}, r.Neighbors(b))
}

func TestResolve(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	d := uuid.MustParse("00000000-0000-0000-0000-00000000000d")

	build := func(t *testing.T) *adjacency.Resolver {
		t.Helper()
		r := adjacency.NewResolver()
		require.NoError(t, r.AddEdge(a, b))
		require.NoError(t, r.AddEdge(a, c))
		require.NoError(t, r.AddEdge(c, d))
		return r
	}

	t.Run("single room needs no edges", func(t *testing.T) {
		r := adjacency.NewResolver()
		got, err := r.Resolve(a, 1, allBookable)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a}, got)
	})

	t.Run("fills from direct neighbors in ID order", func(t *testing.T) {
		r := build(t)
		got, err := r.Resolve(a, 3, allBookable)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b, c}, got)
	})

	t.Run("depth-two rooms never count", func(t *testing.T) {
		r := build(t)
		// d is adjacent to c but not to a, so a can only reach 3 rooms.
		_, err := r.Resolve(a, 4, allBookable)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientAdjacency)
	})

	t.Run("unbookable neighbor is skipped", func(t *testing.T) {
		r := build(t)
		got, err := r.Resolve(a, 2, func(id uuid.UUID) bool { return id != b })
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, c}, got)
	})

	t.Run("unbookable primary fails outright", func(t *testing.T) {
		r := build(t)
		_, err := r.Resolve(a, 2, func(id uuid.UUID) bool { return id != a })
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientAdjacency)
	})

	t.Run("shortfall reports insufficient adjacency", func(t *testing.T) {
		r := build(t)
		_, err := r.Resolve(a, 3, func(id uuid.UUID) bool { return id == a || id == b })
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInsufficientAdjacency)
	})

	t.Run("required count below one is invalid", func(t *testing.T) {
		r := build(t)
		_, err := r.Resolve(a, 0, allBookable)
		assert.Error(t, err)
	})
}
