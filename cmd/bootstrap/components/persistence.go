package components

import (
	"lastresort/internal/engine/accesslog"
	"lastresort/internal/infra/directory"
	"lastresort/internal/infra/journal"
	"lastresort/internal/usecase"

	"go.uber.org/fx"
)

// PersistenceModule binds the postgres-backed outward surfaces. The engine
// itself is in-memory; these adapters journal its decisions and answer
// directory lookups.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			journal.NewPostgresJournal,
			fx.As(new(usecase.Journal)),
		),
		fx.Annotate(
			directory.NewPostgresDirectory,
			fx.As(new(usecase.CustomerDirectory)),
			fx.As(new(accesslog.CardDirectory)),
			fx.As(new(usecase.Inventory)),
		),
	),
)
