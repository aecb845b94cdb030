package bootstrap

import (
	"context"

	"lastresort/internal/usecase"

	"go.uber.org/fx"
)

// InventoryModule seeds the engine from the inventory tables before the
// server starts taking requests. The allocator, resolver and correlator all
// boot empty.
var InventoryModule = fx.Module("inventory",
	fx.Invoke(registerInventoryLoad),
)

func registerInventoryLoad(lc fx.Lifecycle, loader usecase.InventoryLoader) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return loader.Load(ctx)
		},
	})
}
