package bootstrap

import (
	"context"
	"log/slog"

	"lastresort/internal/pkg/config"
	"lastresort/internal/usecase"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

// SchedulerModule runs the completion sweep in the background. Completed is
// time-derived; the sweep only reports it outward, it never gates reads.
var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(
		startCompletionSweeper,
	),
)

func startCompletionSweeper(lc fx.Lifecycle, cfg config.Config, booking usecase.BookingCommands, logger *slog.Logger) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Engine.CompletionSweep),
		gocron.NewTask(func() {
			reported := booking.SweepCompleted(context.Background())
			if reported > 0 {
				logger.Info("completion sweep reported reservations", "count", reported)
			}
		}),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return scheduler.Shutdown()
		},
	})
	return nil
}
