package bootstrap

import (
	"lastresort/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
)

// loadConfig reads .env when present so local runs do not need exported
// variables. Deployed environments inject real env vars and have no .env.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.LoadConfig()
}
