package bootstrap

import (
	"lastresort/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	EngineModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	InventoryModule,
	SchedulerModule,
)
