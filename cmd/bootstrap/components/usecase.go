package components

import (
	"lastresort/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewBookingUseCase,
		usecase.NewAccessUseCase,
		usecase.NewRoomOperations,
		usecase.NewInventoryLoader,
	),
)
