package bootstrap

import (
	"log/slog"

	"lastresort/internal/domain/access"
	"lastresort/internal/domain/reservation"
	"lastresort/internal/engine/accesslog"
	"lastresort/internal/engine/adjacency"
	"lastresort/internal/engine/allocator"
	"lastresort/internal/engine/roomlock"
	"lastresort/internal/engine/schedule"
	"lastresort/internal/engine/status"
	"lastresort/internal/pkg/clock"
	"lastresort/internal/pkg/config"

	"go.uber.org/fx"
)

// EngineModule assembles the in-process allocation core. Everything here is
// singleton state: one interval index, one lock arena, one allocator.
var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		schedule.NewIndex,
		status.NewTracker,
		adjacency.NewResolver,
		NewArena,
		NewFactory,
		allocator.New,
		NewCorrelator,
	),
)

func NewArena(cfg config.Config) *roomlock.Arena {
	return roomlock.NewArena(cfg.Engine.LockWait)
}

func NewFactory(cfg config.Config, clk clock.Clock) (*reservation.Factory, error) {
	unit, err := reservation.ParseBillingUnit(cfg.Engine.BillingUnit)
	if err != nil {
		return nil, err
	}
	return reservation.NewFactory(clk, unit, reservation.FlatRatePolicy{}), nil
}

func NewCorrelator(cards accesslog.CardDirectory, alloc *allocator.Allocator, logger *slog.Logger) *accesslog.Correlator {
	return accesslog.New(cards, access.ActiveCardPolicy{}, alloc, logger)
}
