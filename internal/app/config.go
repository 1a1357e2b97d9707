package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-errands/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")

		usage, usageErr := config.Usage()
		if usageErr == nil {
			globalLogger.Info().Msg(usage)
		}
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	config.SetGlobal(cfg)
}
